package typescript

import (
	"fmt"
	"strings"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
	"github.com/syssam/scaffold/dialect/sql"
)

// DatabasePort is the port of generated MySQL connections.
const DatabasePort = 3306

func (b *builder) sqlDatabase(s *gen.Storage) *gen.Node {
	n := &gen.Node{Name: s.Name, Dir: s.Dir}
	n.AddFile("index.ts", b.sqlIndex)
	n.AddFile("schema.sql", b.schema)
	daos := &gen.Node{Name: s.Name + "-daos", Dir: s.DAOs}
	daos.AddFile("dao.ts", b.template("sql-dao.ts.tmpl", nil))
	daos.AddFile("index.ts", b.daoIndex)
	for _, t := range b.tables {
		daos.AddFile(daoFile(t)+".ts", b.sqlDao(t))
	}
	return n.Add(daos)
}

func (b *builder) sqlIndex(w *gen.Emitter) error {
	connect, err := source("sql-connect", nil)
	if err != nil {
		return err
	}
	props := b.daoProperties(func(t *gen.Table) segment.Raw {
		return segment.Raw("new " + daoName(t) + "()")
	})
	props = append(props, segment.Property{
		Key:    "connection",
		Type:   "Connection | null",
		Doc:    "Connection to database.",
		Static: true,
		Value:  segment.Null,
	})
	daos := make([]string, len(b.tables))
	for i, t := range b.tables {
		daos[i] = daoName(t)
	}
	segment.File{
		Imports: []segment.ImportGroup{
			{Comment: "Packages", Imports: []segment.Import{
				{From: "mariadb", Names: []string{"Connection", "createConnection"}},
			}},
			{Comment: "Local Imports", Imports: []segment.Import{
				{From: "./daos", Names: daos},
				{From: "../database", Names: []string{"Database"}},
				{From: "../../errors", Names: []string{"DatabaseUrlMissingError"}},
				{From: "../../helpers/environment", Names: []string{"Environment"}},
				{From: "../../config/messages", Names: []string{"MESSAGE_DATABASE_CONNECTION_SUCCESS"}},
				{From: "../../helpers/monitor", Names: []string{"Monitor"}},
			}},
		},
		Body: []segment.Line{
			segment.Const{Name: "DATABASE_PORT", Value: DatabasePort},
			segment.Class{
				Name:       "SqlDatabase",
				Doc:        "Database connection to SQL Database.",
				Extends:    []string{"Database"},
				Properties: props,
				Methods: []segment.Method{
					constructor("Instantiates SqlDatabase with correct queries."),
					{
						Name:    "connect",
						Doc:     "Connects to database.",
						Params:  connectParams,
						Returns: "Promise<void>",
						Async:   true,
						Body:    []segment.Line{connect},
					},
					isConnected("SqlDatabase.connection !== null"),
				},
			},
		},
	}.Render(w, b.ctx)
	return nil
}

// schema writes the DDL of every relational table.
func (b *builder) schema(w *gen.Emitter) error {
	tables, err := b.cfg.SQLTables()
	if err != nil {
		return err
	}
	ddl, err := sql.Schema(tables...)
	if err != nil {
		return fmt.Errorf("typescript: compile schema: %w", err)
	}
	for _, line := range strings.Split(strings.TrimSuffix(ddl, "\n"), "\n") {
		w.Append(line)
	}
	return nil
}

func (b *builder) sqlDao(t *gen.Table) func(*gen.Emitter) error {
	return func(w *gen.Emitter) error {
		create, err := t.SQL().CreateTable()
		if err != nil {
			return fmt.Errorf("typescript: compile table %s: %w", t.Name, err)
		}
		var names, types, options []string
		for _, f := range t.Schema {
			names = append(names, segment.Quote(f.Key)+",")
			types = append(types, segment.Quote(f.Type)+",")
			options = append(options, "DataAccessObject.createOptions("+columnOptions(f.ColumnOptions())+"),")
		}
		segment.File{
			Imports: []segment.ImportGroup{
				{Comment: "Local Imports", Imports: []segment.Import{{From: "./dao", Names: []string{"DataAccessObject"}}}},
				{Comment: "Types", Imports: []segment.Import{{From: "../../../types", Names: []string{recordName(t)}}}},
			},
			Body: []segment.Line{segment.Class{
				Name:    daoName(t),
				Doc:     "Data access object for " + gen.Title(t.Name) + ".",
				Extends: []string{"DataAccessObject<" + recordName(t) + ">"},
				Methods: []segment.Method{
					listMethod("_setSchema", "Initializes the schema.", "this._schema", names),
					listMethod("_setTypes", "Initializes the types.", "this._types", types),
					listMethod("_setOptions", "Initializes column options.", "this._options", options),
					{
						Name:       "_getCreateTableQuery",
						Doc:        "Retrieves the create table query.",
						Returns:    "string",
						ReturnsDoc: "SQL query for create table.",
						Body:       segment.Lines("return " + segment.Quote(create.SQL) + ";"),
					},
					{
						Name:       "_getTableName",
						Doc:        "Retrieves the quoted table name.",
						Returns:    "string",
						ReturnsDoc: "Table name.",
						Body:       segment.Lines("return " + segment.Quote(sql.Quote(t.Name)) + ";"),
					},
				},
			}},
		}.Render(w, b.ctx)
		return nil
	}
}

func listMethod(name, doc, target string, items []string) segment.Method {
	return segment.Method{
		Name:    name,
		Doc:     doc,
		Returns: "void",
		Body: []segment.Line{segment.Block{
			Open:  target + " = [",
			Body:  segment.Lines(items...),
			Close: "];",
		}},
	}
}

// columnOptions renders the options differing from the defaults of
// DataAccessObject.createOptions.
func columnOptions(o sql.ColumnOptions) string {
	var obj segment.Object
	if o.NotNull {
		obj = append(obj, segment.Field{Key: "notNull", Value: true})
	}
	if o.Unsigned {
		obj = append(obj, segment.Field{Key: "unsigned", Value: true})
	}
	if o.Default != nil {
		obj = append(obj, segment.Field{Key: "default", Value: o.Default})
	}
	if o.PrimaryKey {
		obj = append(obj, segment.Field{Key: "primaryKey", Value: true})
	}
	if fk := o.ForeignKey; fk != nil {
		ref := "DataAccessObject.createForeignKey(" + segment.Quote(fk.Table) + ", " + segment.Quote(fk.PrimaryKey)
		if !fk.DeleteOnCascade {
			ref += ", false"
		}
		obj = append(obj, segment.Field{Key: "foreignKey", Value: segment.Raw(ref + ")")})
	}
	if o.AutoIncrement {
		obj = append(obj, segment.Field{Key: "autoIncrement", Value: true})
	}
	return segment.Literal(obj)
}
