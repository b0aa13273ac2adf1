package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	reflect "github.com/goccy/go-reflect"
)

// NormalizeNumber converts a caller-supplied binding value to the
// canonical numeric pair: int64 for integers, float64 for everything
// else. json.Number follows the literal form: no decimal point means
// int64, otherwise float64.
func NormalizeNumber(v any) (any, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		return n, nil
	case json.Number:
		if i := strings.IndexByte(n.String(), '.'); i == -1 {
			if n, err := n.Int64(); errors.Is(err, strconv.ErrSyntax) {
				// retry parse as float64
			} else {
				return n, err
			}
		}
		return n.Float64()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return nil, fmt.Errorf("not a number: %+v (%T)", v, v)
	}
}

// FormatNumber renders a numeric value keeping the int64/float64
// distinction visible: integral floats get a trailing ".0".
func FormatNumber(v any) string {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		s := strconv.FormatFloat(n, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}
