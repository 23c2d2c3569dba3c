// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

/*
Package config loads octolink CLI configuration.

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults
 2. An optional YAML file: $OCTOLINK_CONFIG, then octolink.yaml,
    octolink.yml, /etc/octolink/config.yaml
 3. Environment variables (OCTOPRINT_*, LOG_*)

Example file:

	printer:
	  host: octopi.local
	  port: 80
	  api_key: "ABCDEF0123456789"
	  timeout: 10s
	breaker:
	  enabled: true
	  failure_ratio: 0.5
	logging:
	  level: debug
	  format: console

Only the environment variables listed in envMappings are read; anything
else in the environment is ignored.
*/
package config
