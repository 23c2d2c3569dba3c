// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ShapeError describes the first place where a response body diverges from
// the expected payload shape.
type ShapeError struct {
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", displayPath(e.Path), e.Reason)
}

// shapeChecker is implemented by payload types whose wire form cannot be
// described by struct tags alone (tagged unions, dynamic key sets).
type shapeChecker interface {
	checkShape(raw any, path string) error
}

var (
	shapeCheckerType = reflect.TypeOf((*shapeChecker)(nil)).Elem()
	rawMessageType   = reflect.TypeOf(json.RawMessage(nil))
)

// decodeStrict unmarshals body into dst after verifying that every required
// field is present with the right JSON kind. Unknown fields are ignored.
func decodeStrict(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &ShapeError{Reason: "empty body"}
	}

	var tree any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return &ShapeError{Reason: "malformed JSON: " + err.Error()}
	}

	t := reflect.TypeOf(dst)
	if t == nil || t.Kind() != reflect.Pointer {
		return fmt.Errorf("decode destination must be a non-nil pointer, got %T", dst)
	}
	if err := checkValue(tree, t.Elem(), ""); err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return &ShapeError{Reason: err.Error()}
	}
	return nil
}

// checkValue walks raw (a tree produced with UseNumber) against t.
func checkValue(raw any, t reflect.Type, path string) error {
	if t.Kind() == reflect.Pointer {
		if raw == nil {
			return nil
		}
		return checkValue(raw, t.Elem(), path)
	}
	if t == rawMessageType || t.Kind() == reflect.Interface {
		return nil
	}
	if raw == nil {
		return mismatch(path, t, raw)
	}
	if t.Implements(shapeCheckerType) {
		checker, _ := reflect.Zero(t).Interface().(shapeChecker)
		return checker.checkShape(raw, path)
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return mismatch(path, t, raw)
		}
		return checkStruct(obj, t, path)

	case reflect.Slice:
		arr, ok := raw.([]any)
		if !ok {
			return mismatch(path, t, raw)
		}
		for i, elem := range arr {
			if err := checkValue(elem, t.Elem(), indexPath(path, i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		obj, ok := raw.(map[string]any)
		if !ok {
			return mismatch(path, t, raw)
		}
		for _, k := range sortedKeys(obj) {
			if err := checkValue(obj[k], t.Elem(), fieldPath(path, k)); err != nil {
				return err
			}
		}
		return nil

	case reflect.String:
		if _, ok := raw.(string); !ok {
			return mismatch(path, t, raw)
		}
		return nil

	case reflect.Bool:
		if _, ok := raw.(bool); !ok {
			return mismatch(path, t, raw)
		}
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := asInt(raw)
		if !ok {
			return mismatch(path, t, raw)
		}
		if reflect.Zero(t).OverflowInt(n) {
			return &ShapeError{Path: path, Reason: fmt.Sprintf("integer %d overflows %s", n, t.Kind())}
		}
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := asInt(raw)
		if !ok || n < 0 {
			return mismatch(path, t, raw)
		}
		if reflect.Zero(t).OverflowUint(uint64(n)) {
			return &ShapeError{Path: path, Reason: fmt.Sprintf("integer %d overflows %s", n, t.Kind())}
		}
		return nil

	case reflect.Float32, reflect.Float64:
		if _, ok := asFloat(raw); !ok {
			return mismatch(path, t, raw)
		}
		return nil
	}

	return &ShapeError{Path: path, Reason: "unsupported destination type " + t.String()}
}

func checkStruct(obj map[string]any, t reflect.Type, path string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}

		name, omitempty, skip := jsonFieldName(f)
		if skip {
			continue
		}

		// Embedded structs without a tag are flattened into the parent object.
		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			if err := checkStruct(obj, f.Type, path); err != nil {
				return err
			}
			continue
		}
		if name == "" {
			name = f.Name
		}

		fp := fieldPath(path, name)
		v, present := obj[name]
		if !present {
			if omitempty || f.Type.Kind() == reflect.Pointer {
				continue
			}
			return &ShapeError{Path: fp, Reason: "missing required field"}
		}
		// Optional collections may also be sent as null.
		if v == nil && omitempty && collection(f.Type) {
			continue
		}
		if err := checkValue(v, f.Type, fp); err != nil {
			return err
		}
	}
	return nil
}

func jsonFieldName(f reflect.StructField) (name string, omitempty, skip bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		if f.Anonymous {
			return "", false, false
		}
		return f.Name, false, false
	}
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return parts[0], omitempty, false
}

// collection reports whether t is a slice or map. These are required unless
// their field is tagged omitempty.
func collection(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Map
}

func asInt(raw any) (int64, bool) {
	switch n := raw.(type) {
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func mismatch(path string, t reflect.Type, raw any) error {
	return &ShapeError{
		Path:   path,
		Reason: fmt.Sprintf("expected %s, got %s", expectedKind(t), jsonKind(raw)),
	}
}

func expectedKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "non-negative integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.String()
	}
}

func jsonKind(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number " + string(v)
	case float64:
		return "number " + strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%T", raw)
	}
}

func fieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
