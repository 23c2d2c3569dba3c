// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package logging

import (
	"net/url"
	"strings"
)

// SanitizeToken masks a secret, showing only the first and last 4 characters.
// Example: "A1B2C3D4E5F6G7H8I9J0" -> "A1B2...I9J0"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// sensitiveKeys are header, query and config names whose values are masked.
var sensitiveKeys = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"x-api-key":     true,
	"authorization": true,
	"token":         true,
	"password":      true,
	"secret":        true,
}

// SanitizeValue masks value when key names a secret.
func SanitizeValue(key, value string) string {
	if sensitiveKeys[strings.ToLower(key)] {
		return SanitizeToken(value)
	}
	return value
}

// SanitizeURL masks secret query parameters and userinfo passwords in raw.
// Unparseable input is returned as "***".
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	if u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	q := u.Query()
	changed := false
	for k, vs := range q {
		if !sensitiveKeys[strings.ToLower(k)] {
			continue
		}
		for i := range vs {
			vs[i] = SanitizeToken(vs[i])
		}
		changed = true
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Truncate shortens s to maxLen bytes, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
