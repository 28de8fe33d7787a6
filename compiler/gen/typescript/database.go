package typescript

import (
	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

// connectParams are the parameters of every connect method.
var connectParams = []segment.Param{
	{Name: "databaseUrl", Default: "''", Type: "string | undefined", Doc: "Database URL."},
	{Name: "databaseUser", Default: "''", Type: "string | undefined", Doc: "Database username."},
	{Name: "databasePassword", Default: "''", Type: "string | undefined", Doc: "Database password."},
}

func (b *builder) database() *gen.Node {
	n := &gen.Node{Name: "database", Dir: "database"}
	n.AddFile("database.ts", b.render(b.abstractDatabase()))
	n.AddFile("index.ts", b.render(b.databaseIndex()))
	for _, s := range b.cfg.Storages {
		switch s.Name {
		case "sql":
			n.Add(b.sqlDatabase(s))
		case "mongo":
			n.Add(b.mongoDatabase(s))
		case "cache":
			n.Add(b.cacheDatabase(s))
		}
	}
	return n
}

func (b *builder) abstractDatabase() segment.Line {
	props := make([]segment.Property, len(b.tables))
	for i, t := range b.tables {
		props[i] = segment.Property{
			Key:  property(t),
			Type: "DataAccessObjectInterface<" + recordName(t) + ">",
			Doc:  "Data access object for " + gen.Title(t.Name) + ".",
		}
	}
	return segment.File{
		Lint: []string{`@typescript-eslint/no-unused-vars: "off"`},
		Imports: []segment.ImportGroup{
			{Comment: "Local Imports", Imports: []segment.Import{
				{From: "../errors", Names: []string{"UsedAbstractDatabaseError"}},
			}},
			{Comment: "Types", Imports: []segment.Import{
				{From: "../types", Names: append([]string{"DataAccessObjectInterface"}, recordNames(b.tables)...)},
			}},
		},
		Body: []segment.Line{segment.Class{
			Name:       "Database",
			Doc:        "Abstract Database interface, only implement inherited classes.",
			Properties: props,
			Methods: []segment.Method{
				{
					Name:    "connect",
					Doc:     "Connects to database.",
					Params:  connectParams,
					Returns: "Promise<void>",
					Async:   true,
					Body:    segment.Lines("throw new UsedAbstractDatabaseError();"),
				},
				isConnected("false"),
			},
		}},
	}
}

func isConnected(expr string) segment.Method {
	return segment.Method{
		Name:       "isConnected",
		Doc:        "Whether or not the database is connected.",
		Returns:    "boolean",
		ReturnsDoc: "Whether or not the database is connected.",
		Body:       segment.Lines("return " + expr + ";"),
	}
}

// databaseIndex selects the database from the environment. Backends are
// tested in canonical order; the last selected one is the fallback.
func (b *builder) databaseIndex() segment.Line {
	local := []segment.Import{{From: "./database", Names: []string{"Database"}}}
	var cases []segment.Case
	for _, s := range gen.Storages() {
		if b.cfg.HasStorage(s.Name) {
			local = append(local, segment.Import{From: "./" + s.Dir, Names: []string{s.Class}})
		}
		cases = append(cases, segment.Case{
			Storage: s.Name,
			Cond:    "Environment.getDatabaseType() === DATABASE_TYPES." + s.Ident,
			Body:    segment.Lines("DatabaseInstance = new " + s.Class + "();"),
		})
	}
	local = append(local,
		segment.Import{From: "../config", Names: []string{"DATABASE_TYPES"}},
		segment.Import{From: "../helpers/environment", Names: []string{"Environment"}},
	)
	return segment.File{
		Imports: []segment.ImportGroup{{Comment: "Local Imports", Imports: local}},
		Body: []segment.Line{
			segment.Const{Name: "DatabaseInstance", Doc: "Static instance of the database.", Type: "Database | null", Value: segment.Null, Mutable: true},
			segment.Function{
				Name:    "initializeDatabase",
				Doc:     "Generates database based on environmental variables.",
				Returns: "void",
				Body: []segment.Line{segment.Block{
					Open:  "if (!DatabaseInstance) {",
					Body:  []segment.Line{segment.StorageChain{Cases: cases}},
					Close: "}",
				}},
			},
			segment.Function{
				Name:       "getDatabase",
				Doc:        "Retrieves database based on environmental variables.",
				Returns:    "Database",
				ReturnsDoc: "The database.",
				Export:     true,
				Body:       segment.Lines("initializeDatabase();", "", "return DatabaseInstance as Database;"),
			},
		},
	}
}

// daoProperties returns the data access object members of a backend
// database class.
func (b *builder) daoProperties(value func(*gen.Table) segment.Raw) []segment.Property {
	props := make([]segment.Property, len(b.tables))
	for i, t := range b.tables {
		props[i] = segment.Property{
			Key:   property(t),
			Doc:   "Data access object for " + gen.Title(t.Name) + ".",
			Value: value(t),
		}
	}
	return props
}

func constructor(doc string) segment.Method {
	return segment.Method{Name: "constructor", Doc: doc, Body: segment.Lines("super();")}
}

// daoIndex re-exports the data access objects of a backend.
func (b *builder) daoIndex(w *gen.Emitter) error {
	w.Append("export { DataAccessObject } from './dao';")
	for _, t := range b.tables {
		w.Appendf("export { %s } from './%s';", daoName(t), daoFile(t))
	}
	return nil
}
