package sql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/scaffold"
)

// ErrColumnMismatch is returned when the parallel name, type and option
// lists of a table do not have the same length.
var ErrColumnMismatch = errors.New("sql: column lists out of lockstep")

// ForeignKey references the primary key of another table.
type ForeignKey struct {
	Table           string
	PrimaryKey      string
	DeleteOnCascade bool
}

// NewForeignKey returns a foreign key referencing table.primaryKey that
// cascades on delete.
func NewForeignKey(table, primaryKey string) *ForeignKey {
	return &ForeignKey{Table: table, PrimaryKey: primaryKey, DeleteOnCascade: true}
}

// ColumnOptions holds the DDL decorations of a single column.
type ColumnOptions struct {
	NotNull  bool
	Unsigned bool
	// Default is rendered verbatim inside DEFAULT(...). Nil means no default.
	Default       any
	PrimaryKey    bool
	ForeignKey    *ForeignKey
	AutoIncrement bool
}

// Column is one schema entry: its name, its column type and its options.
type Column struct {
	Name    string
	Type    string
	Options ColumnOptions
}

// Table is the compiler input describing one relational table. A nil
// *Table, or a Table with an empty name, is the unbound base type.
type Table struct {
	name    string
	columns []Column
}

// NewTable returns a table with the given columns in declared order.
func NewTable(name string, columns ...Column) *Table {
	return &Table{name: name, columns: columns}
}

// NewTableFromLists builds a table from the three parallel lists used by
// the generated data-access objects. The lists must have equal length.
func NewTableFromLists(name string, names, types []string, options []ColumnOptions) (*Table, error) {
	if len(names) != len(types) || len(names) != len(options) {
		return nil, fmt.Errorf("%w: %d names, %d types, %d options", ErrColumnMismatch, len(names), len(types), len(options))
	}
	columns := make([]Column, len(names))
	for i := range names {
		columns[i] = Column{Name: names[i], Type: types[i], Options: options[i]}
	}
	return NewTable(name, columns...), nil
}

// Abstract returns the unbound base table. Every statement built from it
// fails with scaffold.ErrUsedAbstract.
func Abstract() *Table {
	return &Table{}
}

// TableName returns the table name, or an error if the table is unbound.
func (t *Table) TableName() (string, error) {
	if t == nil || t.name == "" {
		return "", scaffold.NewUsedAbstractError("DataAccessObject", "TableName")
	}
	return t.name, nil
}

// Columns returns the table columns in declared order.
func (t *Table) Columns() []Column {
	if t == nil {
		return nil
	}
	return t.columns
}

// Names returns the column names in declared order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns()))
	for i, c := range t.Columns() {
		names[i] = c.Name
	}
	return names
}

// Types returns the column types in declared order.
func (t *Table) Types() []string {
	types := make([]string, len(t.Columns()))
	for i, c := range t.Columns() {
		types[i] = c.Type
	}
	return types
}

// PrimaryKeys returns the names of all primary-key columns in schema order.
func (t *Table) PrimaryKeys() []string {
	var keys []string
	for _, c := range t.Columns() {
		if c.Options.PrimaryKey {
			keys = append(keys, c.Name)
		}
	}
	return keys
}

// HasColumn reports whether the table declares a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns() {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Quote quotes an identifier with backticks, doubling embedded backticks.
func Quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
