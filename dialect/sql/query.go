package sql

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrEmptyProjection is returned by Find when the projection excludes every
// column of the table.
var ErrEmptyProjection = errors.New("sql: projection selects no column")

type (
	// Conditions maps a column to the value it must equal. All entries are
	// joined with AND.
	Conditions map[string]any

	// Projection maps a column to whether it is included in the result.
	Projection map[string]bool

	// Update maps a column to its new value.
	Update map[string]any

	// Params holds the named parameter payload of a statement.
	Params map[string]any
)

// Query pairs statement text with its named parameters. Values are never
// interpolated into SQL; they are bound through the ":name" placeholders.
type Query struct {
	SQL    string
	Params Params
}

// engineOptions is appended to every CREATE TABLE statement.
const engineOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"

// CreateTable returns the create-if-absent DDL for the table.
func (t *Table) CreateTable() (Query, error) {
	name, err := t.TableName()
	if err != nil {
		return Query{}, err
	}
	clauses := make([]string, 0, len(t.columns)+2)
	for _, c := range t.columns {
		clauses = append(clauses, "\t"+columnClause(c))
	}
	if pks := t.PrimaryKeys(); len(pks) > 0 {
		clauses = append(clauses, "\tPRIMARY KEY ("+quoteAll(pks)+")")
	}
	for _, c := range t.columns {
		fk := c.Options.ForeignKey
		if fk == nil {
			continue
		}
		clause := fmt.Sprintf("\tFOREIGN KEY (%s) REFERENCES %s (%s)", Quote(c.Name), Quote(fk.Table), Quote(fk.PrimaryKey))
		if fk.DeleteOnCascade {
			clause += " ON DELETE CASCADE"
		}
		clauses = append(clauses, clause)
	}
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(Quote(name))
	b.WriteString(" (\n")
	b.WriteString(strings.Join(clauses, ",\n"))
	b.WriteString("\n) ")
	b.WriteString(engineOptions)
	b.WriteString(";\n")
	return Query{SQL: b.String(), Params: Params{}}, nil
}

// columnClause renders a column definition. Decorations follow a fixed
// order: unsigned, DEFAULT, NOT NULL, AUTO_INCREMENT.
func columnClause(c Column) string {
	var b strings.Builder
	b.WriteString(Quote(c.Name))
	b.WriteByte(' ')
	b.WriteString(c.Type)
	if c.Options.Unsigned {
		b.WriteString(" unsigned")
	}
	if c.Options.Default != nil {
		fmt.Fprintf(&b, " DEFAULT(%v)", c.Options.Default)
	}
	if c.Options.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Options.AutoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	}
	return b.String()
}

// DropTable returns the statement dropping the table.
func (t *Table) DropTable() (Query, error) {
	name, err := t.TableName()
	if err != nil {
		return Query{}, err
	}
	return Query{SQL: "DROP TABLE " + Quote(name) + ";\n", Params: Params{}}, nil
}

// DeleteAll returns the statement deleting every row of the table.
func (t *Table) DeleteAll() (Query, error) {
	name, err := t.TableName()
	if err != nil {
		return Query{}, err
	}
	return Query{SQL: "DELETE FROM " + Quote(name) + ";\n", Params: Params{}}, nil
}

// Insert returns the statement inserting item. One placeholder is generated
// per schema column, regardless of which keys item holds; item is passed
// through unchanged as the parameter payload.
func (t *Table) Insert(item map[string]any) (Query, error) {
	name, err := t.TableName()
	if err != nil {
		return Query{}, err
	}
	names := t.Names()
	placeholders := make([]string, len(names))
	for i, n := range names {
		placeholders[i] = ":" + n
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s)\nVALUES (%s);\n", Quote(name), quoteAll(names), strings.Join(placeholders, ", "))
	return Query{SQL: sql, Params: Params(item)}, nil
}

// Find returns the statement selecting the rows matching conditions with
// projection applied. Find-one uses the same statement and keeps the first
// row.
func (t *Table) Find(conditions Conditions, projection Projection) (Query, error) {
	name, err := t.TableName()
	if err != nil {
		return Query{}, err
	}
	list, err := t.selectList(projection)
	if err != nil {
		return Query{}, err
	}
	lines := []string{"SELECT " + list, "FROM " + Quote(name)}
	if where := t.Where(conditions); where != "" {
		lines = append(lines, where)
	}
	return Query{SQL: strings.Join(lines, "\n") + ";\n", Params: Params(conditions)}, nil
}

// Update returns the statement applying update to the rows matching
// conditions. The parameters merge both descriptors; update wins on key
// collision.
func (t *Table) Update(conditions Conditions, update Update) (Query, error) {
	name, err := t.TableName()
	if err != nil {
		return Query{}, err
	}
	lines := []string{"UPDATE " + Quote(name)}
	if set := t.Set(update); set != "" {
		lines = append(lines, "\t"+set)
	}
	if where := t.Where(conditions); where != "" {
		lines = append(lines, "\t"+where)
	}
	params := make(Params, len(conditions)+len(update))
	maps.Copy(params, conditions)
	maps.Copy(params, update)
	return Query{SQL: strings.Join(lines, "\n") + ";\n", Params: params}, nil
}

// Delete returns the statement deleting the rows matching conditions.
func (t *Table) Delete(conditions Conditions) (Query, error) {
	name, err := t.TableName()
	if err != nil {
		return Query{}, err
	}
	lines := []string{"DELETE FROM " + Quote(name)}
	if where := t.Where(conditions); where != "" {
		lines = append(lines, "\t"+where)
	}
	return Query{SQL: strings.Join(lines, "\n") + ";\n", Params: Params(conditions)}, nil
}

// Where renders conditions as a WHERE clause. Only equality joined by AND
// is supported. Empty conditions render no clause.
func (t *Table) Where(conditions Conditions) string {
	if len(conditions) == 0 {
		return ""
	}
	keys := t.orderKeys(slices.Collect(maps.Keys(conditions)))
	return "WHERE " + assignments(keys, " AND ")
}

// Set renders update as a SET clause. Empty updates render no clause.
func (t *Table) Set(update Update) string {
	if len(update) == 0 {
		return ""
	}
	keys := t.orderKeys(slices.Collect(maps.Keys(update)))
	return "SET " + assignments(keys, ", ")
}

// Project returns the columns selected by projection, or nil when every
// column is selected. A projection excluding every column returns an
// empty, non-nil slice.
//
// Entries are scanned in key order. As soon as one entry explicitly
// excludes a column, the statement switches to exclude mode: includes
// collected so far are discarded and every schema column that is not
// explicitly excluded is selected, in schema order.
func (t *Table) Project(projection Projection) []string {
	if len(projection) == 0 {
		return nil
	}
	var columns []string
	for _, k := range t.orderKeys(slices.Collect(maps.Keys(projection))) {
		if !projection[k] {
			columns = make([]string, 0, len(t.columns))
			for _, c := range t.Names() {
				if include, ok := projection[c]; !ok || include {
					columns = append(columns, c)
				}
			}
			return columns
		}
		columns = append(columns, k)
	}
	return columns
}

func (t *Table) selectList(projection Projection) (string, error) {
	columns := t.Project(projection)
	switch {
	case columns == nil:
		return "*", nil
	case len(columns) == 0:
		return "", ErrEmptyProjection
	}
	return quoteAll(columns), nil
}

// orderKeys orders descriptor keys deterministically: schema columns first
// in schema order, then unknown keys in byte-wise order.
func (t *Table) orderKeys(keys []string) []string {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	ordered := make([]string, 0, len(keys))
	for _, c := range t.Names() {
		if _, ok := set[c]; ok {
			ordered = append(ordered, c)
			delete(set, c)
		}
	}
	return append(ordered, slices.Sorted(maps.Keys(set))...)
}

func assignments(keys []string, sep string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = Quote(k) + " = :" + k
	}
	return strings.Join(parts, sep)
}

func quoteAll(idents []string) string {
	quoted := make([]string, len(idents))
	for i, id := range idents {
		quoted[i] = Quote(id)
	}
	return strings.Join(quoted, ", ")
}

// Schema concatenates the CREATE TABLE statements of the given tables in
// order, separated by a blank line.
func Schema(tables ...*Table) (string, error) {
	stmts := make([]string, 0, len(tables))
	for _, t := range tables {
		q, err := t.CreateTable()
		if err != nil {
			return "", err
		}
		stmts = append(stmts, q.SQL)
	}
	return strings.Join(stmts, "\n"), nil
}
