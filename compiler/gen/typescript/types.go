package typescript

import (
	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

func (b *builder) types() *gen.Node {
	n := &gen.Node{Name: "types", Dir: "types"}
	n.AddFile("index.ts", b.render(b.typesIndex()))
	return n
}

// sqlTypes are the column and query types of the relational data access
// objects.
const sqlTypes = `/**
 * MySQL column type of a schema entry.
 */
export type SqlColumnTypes = string;

/**
 * Reference of a column to the key of another table.
 */
export interface ColumnReference {
  table: string;
  primaryKey: string;
  deleteOnCascade: boolean;
}

/**
 * Decorations of a column.
 */
export interface ColumnOptions {
  notNull: boolean;
  unsigned: boolean;
  default: DatabaseColumnTypes | undefined;
  primaryKey: boolean;
  foreignKey: ColumnReference | null;
  autoIncrement: boolean;
}

/**
 * Statement template with named placeholders.
 */
export interface MariaDbQueryTemplate {
  namedPlaceholders: boolean;
  sql: string;
}

/**
 * Named parameters of a statement.
 */
export type MariaDbQueryParameters = Record<string, DatabaseColumnTypes>;

/**
 * Statement template paired with its parameters.
 */
export type MariaDbQuery = [MariaDbQueryTemplate, MariaDbQueryParameters];
`

func (b *builder) typesIndex() segment.Line {
	body := []segment.Line{
		segment.Group(segment.Lines(
			"/**",
			" * Values a column can hold.",
			" */",
			"export type DatabaseColumnTypes = string | number | boolean | Date | null;",
			"",
			"/**",
			" * Equality conditions joined with AND.",
			" */",
			"export type QueryConditions = Record<string, DatabaseColumnTypes>;",
			"",
			"/**",
			" * Columns to include (true) or exclude (false).",
			" */",
			"export type QueryProjection = Record<string, boolean>;",
			"",
			"/**",
			" * New values of columns.",
			" */",
			"export type QueryUpdate = Record<string, DatabaseColumnTypes>;",
		)),
		segment.IfStorage{Storage: "sql", Body: []segment.Line{segment.Source(sqlTypes)}},
		daoInterface(),
	}
	for _, t := range b.tables {
		body = append(body, recordInterface(t))
	}
	return segment.File{Body: body}
}

func daoInterface() segment.Class {
	conditions := segment.Param{Name: "conditions?", Type: "QueryConditions"}
	projection := segment.Param{Name: "projection?", Type: "QueryProjection"}
	return segment.Class{
		Name: "DataAccessObjectInterface<T>",
		Doc:  "Operations every data access object provides.",
		Kind: segment.KindInterface,
		Methods: []segment.Method{
			{Name: "createTable", Returns: "Promise<void>"},
			{Name: "dropTable", Returns: "Promise<void>"},
			{Name: "deleteAll", Returns: "Promise<void>"},
			{Name: "insert", Params: []segment.Param{{Name: "item", Type: "T"}}, Returns: "Promise<number>"},
			{Name: "find", Params: []segment.Param{conditions, projection}, Returns: "Promise<T[]>"},
			{Name: "findOne", Params: []segment.Param{conditions, projection}, Returns: "Promise<T | null>"},
			{Name: "update", Params: []segment.Param{conditions, {Name: "update?", Type: "QueryUpdate"}}, Returns: "Promise<number>"},
			{Name: "delete", Params: []segment.Param{conditions}, Returns: "Promise<number>"},
		},
	}
}

// recordInterface returns the record type of a table. Columns that may be
// left out on insert are optional.
func recordInterface(t *gen.Table) segment.Class {
	props := make([]segment.Property, len(t.Schema))
	for i, f := range t.Schema {
		props[i] = segment.Property{
			Key:      f.Key,
			Type:     tsType(f.Type),
			Optional: f.AutoIncrement || f.Default != nil || !(f.Required || f.UniqueIdentifier),
		}
	}
	return segment.Class{
		Name:       recordName(t),
		Doc:        "Row of " + gen.Title(t.Name) + ".",
		Kind:       segment.KindInterface,
		Properties: props,
	}
}
