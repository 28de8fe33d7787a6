package sql

import (
	"strings"
	"unicode"
)

// Bind rewrites the named ":name" placeholders of q into positional "?"
// placeholders and returns the matching argument list. A name without a
// parameter binds nil, which the driver sends as NULL. Placeholders inside
// quoted identifiers or string literals are left untouched.
func Bind(q Query) (string, []any) {
	var (
		b     strings.Builder
		args  []any
		quote rune
		src   = []rune(q.SQL)
	)
	b.Grow(len(q.SQL))
	for i := 0; i < len(src); i++ {
		r := src[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			b.WriteRune(r)
		case r == '`' || r == '\'' || r == '"':
			quote = r
			b.WriteRune(r)
		case r == ':' && i+1 < len(src) && isNameStart(src[i+1]):
			j := i + 1
			for j < len(src) && isNamePart(src[j]) {
				j++
			}
			args = append(args, q.Params[string(src[i+1:j])])
			b.WriteByte('?')
			i = j - 1
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), args
}

// IsIdentifier reports whether name is read whole as a ":name"
// placeholder by Bind. Column names outside this form cannot be bound.
func IsIdentifier(name string) bool {
	for i, r := range name {
		if (i == 0 && !isNameStart(r)) || !isNamePart(r) {
			return false
		}
	}
	return name != ""
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNamePart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
