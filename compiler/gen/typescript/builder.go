package typescript

import (
	"strings"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

// builder holds what every layer of one run shares.
type builder struct {
	cfg *gen.Config
	// tables holds every table followed by its join tables.
	tables []*gen.Table
	ctx    segment.Context
}

// render returns a file renderer writing lines.
func (b *builder) render(lines ...segment.Line) func(*gen.Emitter) error {
	return func(w *gen.Emitter) error {
		segment.Render(w, b.ctx, lines)
		return nil
	}
}

// template returns a file renderer executing the named template.
func (b *builder) template(name string, data any) func(*gen.Emitter) error {
	return func(w *gen.Emitter) error {
		src, err := source(name, data)
		if err != nil {
			return err
		}
		segment.Render(w, b.ctx, []segment.Line{src})
		return nil
	}
}

func (b *builder) auth() *gen.Authentication {
	if !b.cfg.FeatureEnabled(gen.FeatureAuthentication.Name) {
		return nil
	}
	return b.cfg.Authentication
}

// fallback returns the storage selected when the environment names none.
func (b *builder) fallback() *gen.Storage {
	return b.cfg.Storages[len(b.cfg.Storages)-1]
}

func recordName(t *gen.Table) string { return gen.ClassName(t.Name) }
func daoName(t *gen.Table) string    { return gen.ClassName(t.Name) + "DataAccessObject" }
func daoFile(t *gen.Table) string    { return gen.FileName(t.Name) + "-dao" }
func property(t *gen.Table) string   { return gen.FieldName(t.Name) }

// recordNames returns the record type names of tables.
func recordNames(tables []*gen.Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = recordName(t)
	}
	return names
}

// baseType splits a MySQL column type into its lower-case name and its
// display width, e.g. "tinyint" and "(1)".
func baseType(typ string) (string, string) {
	typ = strings.ToLower(strings.TrimSpace(typ))
	width := ""
	if i := strings.IndexByte(typ, '('); i >= 0 {
		typ, width = typ[:i], typ[i:]
		if j := strings.IndexByte(width, ')'); j >= 0 {
			width = width[:j+1]
		}
	}
	if f := strings.Fields(typ); len(f) > 0 {
		typ = f[0]
	}
	return typ, width
}

// tsType maps a MySQL column type to the TypeScript type of its values.
func tsType(typ string) string {
	name, width := baseType(typ)
	switch name {
	case "bool", "boolean":
		return "boolean"
	case "tinyint":
		if width == "(1)" {
			return "boolean"
		}
		return "number"
	case "smallint", "mediumint", "int", "integer", "bigint",
		"decimal", "dec", "numeric", "fixed", "float", "double", "real", "bit", "year":
		return "number"
	}
	return "string"
}

// mongoType maps a MySQL column type to a mongoose schema type.
func mongoType(typ string) string {
	if name, _ := baseType(typ); name == "date" || name == "datetime" || name == "timestamp" {
		return "Date"
	}
	switch tsType(typ) {
	case "boolean":
		return "Boolean"
	case "number":
		return "Number"
	}
	return "String"
}
