package convert

import (
	"reflect"
	"strconv"
	"strings"
)

// ToBool coerces loosely typed flags. Booleans pass through, strings go
// through strconv.ParseBool and numbers, json.Number included, are true when
// non-zero. Anything else, including nil and unparseable strings, is false.
func ToBool(data any) bool {
	switch v := data.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	}

	if n, ok := data.(interface{ Float64() (float64, error) }); ok {
		f, err := n.Float64()
		return err == nil && f != 0
	}

	val := reflect.ValueOf(data)
	switch val.Kind() {
	case reflect.String:
		return ToBool(val.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return val.Float() != 0
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return false
		}
		return ToBool(val.Elem().Interface())
	}
	return false
}
