package segment

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Null is the literal null.
var Null = nullValue{}

type nullValue struct{}

// Raw is an expression rendered verbatim, e.g. "new UserDataAccessObject()".
type Raw string

// Field is one entry of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is an object literal with entries in declared order.
type Object []Field

// Literal renders v as a TypeScript expression.
func Literal(v any) string {
	switch v := v.(type) {
	case nil, nullValue:
		return "null"
	case Raw:
		return string(v)
	case string:
		return Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case Object:
		if len(v) == 0 {
			return "{}"
		}
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = f.Key + ": " + Literal(f.Value)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Quote returns s as a single-quoted string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// objectLines returns the entries of a multi-line object literal, or false
// when v is not an object.
func objectLines(v any) ([]string, bool) {
	switch v := v.(type) {
	case Object:
		lines := make([]string, len(v))
		for i, f := range v {
			lines[i] = f.Key + ": " + Literal(f.Value) + ","
		}
		return lines, true
	case map[string]any:
		keys := slices.Sorted(maps.Keys(v))
		lines := make([]string, len(keys))
		for i, k := range keys {
			lines[i] = k + ": " + Literal(v[k]) + ","
		}
		return lines, true
	case map[string]string:
		keys := slices.Sorted(maps.Keys(v))
		lines := make([]string, len(keys))
		for i, k := range keys {
			lines[i] = k + ": " + Quote(v[k]) + ","
		}
		return lines, true
	}
	return nil, false
}
