package gen

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/syssam/scaffold/dialect/sql"
)

// SchemaField is one column of a table.
type SchemaField struct {
	// Key of the column, unique within its table.
	Key string
	// Type is a MySQL column type, passed through verbatim.
	Type             string
	Required         bool
	AutoIncrement    bool
	UniqueIdentifier bool
	// Default is rendered inside DEFAULT(...). Nil means no default.
	Default any
	// References is set on the id columns of link join tables.
	References *Reference
}

// Reference points a join column at the unique identifier of a table.
type Reference struct {
	Table    string
	Key      string
	Unsigned bool
}

// Link relates a table to another one through a join table.
type Link struct {
	Table            string
	AdditionalFields []SchemaField
}

// Functions toggles the generated operations of a table.
type Functions struct {
	Create  bool
	Update  bool
	Delete  bool
	Get     bool
	GetMany bool
}

// AllFunctions returns a Functions with every operation enabled.
func AllFunctions() Functions {
	return Functions{Create: true, Update: true, Delete: true, Get: true, GetMany: true}
}

// Table is a declared data table.
type Table struct {
	Name   string
	Schema []SchemaField
	Links  map[string]Link
	// Functions are the generated operations. Nil enables all of them.
	Functions *Functions

	join bool
}

// Enabled returns the operations generated for the table.
func (t *Table) Enabled() Functions {
	switch {
	case t.join:
		return Functions{}
	case t.Functions == nil:
		return AllFunctions()
	default:
		return *t.Functions
	}
}

// IsJoin reports whether t is a link join table.
func (t *Table) IsJoin() bool { return t.join }

// UniqueIdentifier returns the first unique-identifier field of the table.
func (t *Table) UniqueIdentifier() (SchemaField, bool) {
	for _, f := range t.Schema {
		if f.UniqueIdentifier {
			return f, true
		}
	}
	return SchemaField{}, false
}

// LinkNames returns the link names of the table in byte-wise order.
func (t *Table) LinkNames() []string {
	return slices.Sorted(maps.Keys(t.Links))
}

// ColumnOptions derives the DDL decorations of the field.
func (f SchemaField) ColumnOptions() sql.ColumnOptions {
	opts := sql.ColumnOptions{
		NotNull:       f.Required || f.UniqueIdentifier,
		Unsigned:      f.AutoIncrement && isIntegerType(f.Type),
		Default:       f.Default,
		PrimaryKey:    f.UniqueIdentifier,
		AutoIncrement: f.AutoIncrement,
	}
	if r := f.References; r != nil {
		opts.ForeignKey = sql.NewForeignKey(r.Table, r.Key)
		opts.Unsigned = opts.Unsigned || r.Unsigned
	}
	return opts
}

// SQL returns the compiler input of the table.
func (t *Table) SQL() *sql.Table {
	columns := make([]sql.Column, len(t.Schema))
	for i, f := range t.Schema {
		columns[i] = sql.Column{Name: f.Key, Type: f.Type, Options: f.ColumnOptions()}
	}
	return sql.NewTable(t.Name, columns...)
}

// JoinTables returns the join tables of t's links, one per link in link
// name order. The join table of link L on table A targeting B is named
// A_L and holds a reference to each side followed by the additional fields.
// Both references form its primary key.
func (c *Config) JoinTables(t *Table) ([]*Table, error) {
	if len(t.Links) == 0 {
		return nil, nil
	}
	from, ok := t.UniqueIdentifier()
	if !ok {
		return nil, NewConfigError("Links", t.Name, "table with links has no unique identifier")
	}
	joins := make([]*Table, 0, len(t.Links))
	for _, name := range t.LinkNames() {
		link := t.Links[name]
		target, ok := c.Table(link.Table)
		if !ok {
			return nil, NewConfigError("Links", t.Name+"."+name, fmt.Sprintf("unknown table %q", link.Table))
		}
		to, ok := target.UniqueIdentifier()
		if !ok {
			return nil, NewConfigError("Links", t.Name+"."+name, fmt.Sprintf("table %q has no unique identifier", link.Table))
		}
		fromKey, toKey := rules.Singularize(t.Name)+"Id", rules.Singularize(target.Name)+"Id"
		if fromKey == toKey {
			return nil, NewConfigError("Links", t.Name+"."+name, fmt.Sprintf("join columns collide on %q", fromKey))
		}
		schema := []SchemaField{
			joinField(fromKey, t.Name, from),
			joinField(toKey, target.Name, to),
		}
		schema = append(schema, link.AdditionalFields...)
		joins = append(joins, &Table{
			Name:   t.Name + "_" + name,
			Schema: schema,
			join:   true,
		})
	}
	return joins, nil
}

// AllTables returns every declared table, each followed by its join tables.
func (c *Config) AllTables() ([]*Table, error) {
	var all []*Table
	for _, t := range c.Tables {
		all = append(all, t)
		joins, err := c.JoinTables(t)
		if err != nil {
			return nil, err
		}
		all = append(all, joins...)
	}
	return all, nil
}

func joinField(key, table string, pk SchemaField) SchemaField {
	return SchemaField{
		Key:              key,
		Type:             pk.Type,
		UniqueIdentifier: true,
		References: &Reference{
			Table:    table,
			Key:      pk.Key,
			Unsigned: pk.ColumnOptions().Unsigned,
		},
	}
}

var integerTypes = map[string]bool{
	"tinyint":   true,
	"smallint":  true,
	"mediumint": true,
	"int":       true,
	"integer":   true,
	"bigint":    true,
}

// isIntegerType reports whether the MySQL column type is an integer type,
// ignoring a display width such as int(11).
func isIntegerType(typ string) bool {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if i := strings.IndexByte(typ, '('); i >= 0 {
		typ = typ[:i]
	}
	return integerTypes[typ]
}
