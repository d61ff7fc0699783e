package strata

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ============================================================
// Canonical Text
// ============================================================
//
// Records render as tag{field=value ...} with declared fields first, in
// declaration order, followed by extension fields in atom order. Other
// tagged values render as tag(payload). The text is meant for logs, tests
// and the demo tool; it is not a wire format and there is no parser.

// String returns the canonical text of v.
func (v Value) String() string {
	if v.ops == nil {
		return canonNull()
	}
	if r, ok := v.payload.(Record); ok {
		return v.tag.Name() + r.body()
	}
	return v.tag.Name() + "(" + canonAny(v.payload) + ")"
}

// String returns the canonical text of r, prefixed by its schema tag.
func (r Record) String() string {
	return r.schema.Tag().Name() + r.body()
}

func (r Record) body() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	write := func(k Atom, v any) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(canonString(k.Name()))
		sb.WriteByte('=')
		sb.WriteString(canonAny(v))
	}
	for _, fd := range r.schema.Fields() {
		if v, ok := r.Lookup(fd.Key()); ok {
			write(fd.Key(), v)
		}
	}
	for _, k := range r.Extensions() {
		v, _ := r.Lookup(k)
		write(k, v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// canonAny renders any payload or field value.
func canonAny(v any) string {
	switch x := v.(type) {
	case nil:
		return canonNull()
	case Value:
		return x.String()
	case interface{ Opaque() Value }:
		return x.Opaque().String()
	case Record:
		return x.String()
	case Atom:
		return canonString(x.Name())
	case bool:
		return canonBool(x)
	case string:
		return canonString(x)
	case []byte:
		return "b64" + quoteString(base64.StdEncoding.EncodeToString(x))
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return canonFloat(rv.Float())
	case reflect.String:
		return canonString(rv.String())
	case reflect.Bool:
		return canonBool(rv.Bool())
	default:
		return fmt.Sprintf("%+v", v)
	}
}

// ============================================================
// Canonical Scalars
// ============================================================

func canonNull() string {
	return "∅"
}

func canonBool(b bool) string {
	if b {
		return "t"
	}
	return "f"
}

// canonFloat uses the shortest round-trip form, E→e, -0→0.
func canonFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	return strings.ReplaceAll(s, "E", "e")
}

// canonString uses the bare form if safe, otherwise quotes.
func canonString(s string) string {
	if isBareSafe(s) {
		return s
	}
	return quoteString(s)
}

// isBareSafe checks if a string can be written without quotes.
// Pattern: ^[A-Za-z_][A-Za-z0-9_\-./]*$, excluding the words that read as
// booleans or null.
func isBareSafe(s string) bool {
	if len(s) == 0 {
		return false
	}

	switch s {
	case "t", "f", "true", "false", "null", "none", "nil":
		return false
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return false
	}
	if !unicode.IsLetter(r) && r != '_' {
		return false
	}

	for i := size; i < len(s); {
		r, size = utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
			r != '_' && r != '-' && r != '.' && r != '/' {
			return false
		}
		i += size
	}

	return true
}

// quoteString returns a quoted string with minimal escapes.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 10)
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				hex := strconv.FormatInt(int64(r), 16)
				if len(hex) == 1 {
					b.WriteByte('0')
				}
				b.WriteString(strings.ToUpper(hex))
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteByte('"')
	return b.String()
}
