package app

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// applyOptions calls the Set<Option> method of target for every non-empty
// option it has a single-argument setter for. Option names match setter
// names case-insensitively. Options without a setter, or whose value cannot
// be converted to the setter's argument type, are skipped.
func applyOptions(target any, options map[string]any) []string {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	var applied []string
	v := reflect.ValueOf(target)
	for _, name := range names {
		value := options[name]
		if isEmpty(value) {
			continue
		}
		m, ok := setterFor(v, name)
		if !ok {
			continue
		}
		arg, ok := coerce(value, m.Type().In(0))
		if !ok {
			continue
		}
		m.Call([]reflect.Value{arg})
		applied = append(applied, name)
	}
	return applied
}

func setterFor(v reflect.Value, option string) (reflect.Value, bool) {
	want := "set" + option
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if !strings.EqualFold(method.Name, want) {
			continue
		}
		m := v.Method(i)
		if m.Type().NumIn() != 1 {
			return reflect.Value{}, false
		}
		return m, true
	}
	return reflect.Value{}, false
}

// coerce converts a configuration value to t. Configuration comes from YAML
// so values are strings, bools, ints or floats.
func coerce(value any, t reflect.Type) (reflect.Value, bool) {
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(t) {
		v := reflect.New(t).Elem()
		v.Set(rv)
		return v, true
	}
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		switch rv.Kind() {
		case reflect.String, reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			out.SetString(fmt.Sprint(value))
			return out, true
		}
	case reflect.Bool:
		switch rv.Kind() {
		case reflect.Bool:
			out.SetBool(rv.Bool())
			return out, true
		case reflect.String:
			b, err := strconv.ParseBool(rv.String())
			if err != nil {
				return reflect.Value{}, false
			}
			out.SetBool(b)
			return out, true
		case reflect.Int, reflect.Int64:
			out.SetBool(rv.Int() != 0)
			return out, true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = rv.Int()
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			if f != math.Trunc(f) {
				return reflect.Value{}, false
			}
			n = int64(f)
		case reflect.String:
			i, err := strconv.ParseInt(strings.TrimSpace(rv.String()), 10, 64)
			if err != nil {
				return reflect.Value{}, false
			}
			n = i
		default:
			return reflect.Value{}, false
		}
		if out.OverflowInt(n) {
			return reflect.Value{}, false
		}
		out.SetInt(n)
		return out, true
	case reflect.Float32, reflect.Float64:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			out.SetFloat(rv.Float())
			return out, true
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out.SetFloat(float64(rv.Int()))
			return out, true
		case reflect.String:
			f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
			if err != nil {
				return reflect.Value{}, false
			}
			out.SetFloat(f)
			return out, true
		}
	}
	return reflect.Value{}, false
}

// isEmpty follows the loose emptiness used for configuration: nil, false,
// numeric zero, "", "0" and empty collections are empty.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return s == "" || s == "0"
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
