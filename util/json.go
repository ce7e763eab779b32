// util/json.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

func UnmarshalJSON[T any](r io.Reader, out *T) error {
	// The full contents are needed to report error locations.
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return UnmarshalJSONBytes(b, out)
}

// UnmarshalJSONBytes decodes b into out; syntax and type errors are
// reported with the line and column where they occurred.
func UnmarshalJSONBytes[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &serr):
		return fmt.Errorf("%s: %w", jsonLocation(b, serr.Offset), err)
	case errors.As(err, &terr):
		return fmt.Errorf("%s: %s value for %q invalid for type %s", jsonLocation(b, terr.Offset),
			terr.Value, terr.Field, terr.Type)
	default:
		return err
	}
}

func jsonLocation(b []byte, offset int64) string {
	b = b[:min(int(offset), len(b))]
	line := 1 + bytes.Count(b, []byte("\n"))
	col := 1 + len(b) - (bytes.LastIndexByte(b, '\n') + 1)
	return fmt.Sprintf("line %d, column %d", line, col)
}

// CheckJSON checks that contents is valid JSON and that it matches the
// shape of T. Object keys that don't correspond to a field of T are
// reported; they are usually misspellings that json.Unmarshal would
// silently ignore.
func CheckJSON[T any](contents []byte, e *ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	var items any
	if err := UnmarshalJSONBytes(contents, &items); err != nil {
		e.Error(err)
		return
	}

	c := jsonChecker{fields: make(map[reflect.Type]map[string]reflect.Type), e: e}
	c.check(items, reflect.TypeFor[T]())
}

type jsonChecker struct {
	// JSON field name to type, per struct type.
	fields map[reflect.Type]map[string]reflect.Type
	e      *ErrorLogger
}

func (c *jsonChecker) structFields(ty reflect.Type) map[string]reflect.Type {
	if f, ok := c.fields[ty]; ok {
		return f
	}
	f := make(map[string]reflect.Type)
	for _, field := range reflect.VisibleFields(ty) {
		if tag, ok := field.Tag.Lookup("json"); ok {
			name, _, _ := strings.Cut(tag, ",")
			f[name] = field.Type
		}
	}
	c.fields[ty] = f
	return f
}

func (c *jsonChecker) mismatch(v any) {
	c.e.ErrorString("unexpected data format provided for object: %T", v)
}

func (c *jsonChecker) check(v any, ty reflect.Type) {
	for ty.Kind() == reflect.Pointer {
		ty = ty.Elem()
	}
	if v == nil {
		return
	}

	switch ty.Kind() {
	case reflect.Array, reflect.Slice:
		switch a := v.(type) {
		case []any:
			for i, item := range a {
				c.e.Push(fmt.Sprintf("[%d]", i))
				c.check(item, ty.Elem())
				c.e.Pop()
			}
		case string:
			// Positions are arrays that may also be written as strings.
		default:
			c.mismatch(v)
		}

	case reflect.Map:
		m, ok := v.(map[string]any)
		if !ok {
			c.mismatch(v)
			return
		}
		for k, item := range m {
			c.e.Push(k)
			c.check(item, ty.Elem())
			c.e.Pop()
		}

	case reflect.Struct:
		m, ok := v.(map[string]any)
		if !ok {
			c.mismatch(v)
			return
		}
		fields := c.structFields(ty)
		for _, k := range SortedMapKeys(m) {
			if fty, ok := fields[k]; ok {
				c.e.Push(k)
				c.check(m[k], fty)
				c.e.Pop()
			} else {
				c.e.ErrorString("The entry %q is not an expected JSON object. Is it misspelled?", k)
			}
		}
	}
}
