package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var rules = inflect.NewDefaultRuleset()

// ClassName returns the singular PascalCase name of a table, e.g. the
// record type "AlbumTrack" of table "album_tracks".
func ClassName(table string) string {
	return rules.Camelize(rules.Singularize(rules.Underscore(table)))
}

// PluralClassName returns the plural PascalCase name of a table, e.g.
// "AlbumTracks".
func PluralClassName(table string) string {
	return rules.Camelize(rules.Pluralize(rules.Singularize(rules.Underscore(table))))
}

// FieldName returns the lowerCamelCase form of name, e.g. "albumTracks".
func FieldName(name string) string {
	return rules.CamelizeDownFirst(rules.Underscore(name))
}

// FileName returns the kebab-case form of name, e.g. "album-tracks".
func FileName(name string) string {
	return rules.Dasherize(rules.Underscore(name))
}

// Singular returns the singular form of name.
func Singular(name string) string {
	return rules.Singularize(name)
}

// Title returns name in title case with words separated by spaces,
// e.g. "Album Tracks".
func Title(name string) string {
	words := strings.ReplaceAll(rules.Underscore(name), "_", " ")
	return cases.Title(language.English).String(words)
}

// ConstName returns the SCREAMING_SNAKE_CASE form of name.
func ConstName(name string) string {
	return strings.ToUpper(rules.Underscore(name))
}
