package typescript

import (
	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

func (b *builder) mongoDatabase(s *gen.Storage) *gen.Node {
	n := &gen.Node{Name: s.Name, Dir: s.Dir}
	n.AddFile("index.ts", b.mongoIndex)
	daos := &gen.Node{Name: s.Name + "-daos", Dir: s.DAOs}
	daos.AddFile("dao.ts", b.template("mongo-dao.ts.tmpl", nil))
	daos.AddFile("index.ts", b.daoIndex)
	for _, t := range b.tables {
		daos.AddFile(daoFile(t)+".ts", b.render(mongoDao(t)))
	}
	return n.Add(daos)
}

func (b *builder) mongoIndex(w *gen.Emitter) error {
	connect, err := source("mongo-connect", nil)
	if err != nil {
		return err
	}
	daos := make([]string, len(b.tables))
	for i, t := range b.tables {
		daos[i] = daoName(t)
	}
	segment.File{
		Imports: []segment.ImportGroup{
			{Comment: "Packages", Imports: []segment.Import{
				{From: "mongoose", Default: "mongoose", Names: []string{"connect", "connection"}},
			}},
			{Comment: "Local Imports", Imports: []segment.Import{
				{From: "./daos", Names: daos},
				{From: "../database", Names: []string{"Database"}},
				{From: "../../errors", Names: []string{"DatabaseUrlMissingError"}},
				{From: "../../config/messages", Names: []string{"MESSAGE_DATABASE_CONNECTION_SUCCESS"}},
				{From: "../../helpers/monitor", Names: []string{"Monitor"}},
			}},
		},
		Body: []segment.Line{
			segment.Text("mongoose.set('strictQuery', false);"),
			segment.Class{
				Name:    "MongoDatabase",
				Doc:     "Database connection to MongoDB.",
				Extends: []string{"Database"},
				Properties: b.daoProperties(func(t *gen.Table) segment.Raw {
					return segment.Raw("new " + daoName(t) + "()")
				}),
				Methods: []segment.Method{
					constructor("Instantiates MongoDatabase with correct queries."),
					{
						Name:    "connect",
						Doc:     "Connects to database.",
						Params:  connectParams,
						Returns: "Promise<void>",
						Async:   true,
						Body:    []segment.Line{connect},
					},
					isConnected("connection && 'readyState' in connection ? connection.readyState === 1 : false"),
				},
			},
		},
	}.Render(w, b.ctx)
	return nil
}

func mongoDao(t *gen.Table) segment.Line {
	record := recordName(t)
	fields := make([]string, len(t.Schema))
	for i, f := range t.Schema {
		obj := segment.Object{{Key: "type", Value: segment.Raw(mongoType(f.Type))}}
		if f.Required || f.UniqueIdentifier {
			obj = append(obj, segment.Field{Key: "required", Value: true})
		}
		if f.UniqueIdentifier && len(t.SQL().PrimaryKeys()) == 1 {
			obj = append(obj, segment.Field{Key: "unique", Value: true})
		}
		if f.Default != nil {
			obj = append(obj, segment.Field{Key: "default", Value: f.Default})
		}
		fields[i] = f.Key + ": " + segment.Literal(obj) + ","
	}
	return segment.File{
		Imports: []segment.ImportGroup{
			{Comment: "Packages", Imports: []segment.Import{{From: "mongoose", Names: []string{"Model", "Schema", "model"}}}},
			{Comment: "Local Imports", Imports: []segment.Import{{From: "./dao", Names: []string{"DataAccessObject"}}}},
			{Comment: "Types", Imports: []segment.Import{{From: "../../../types", Names: []string{record}}}},
		},
		Body: []segment.Line{
			segment.Group{
				segment.Comment{"Schema of " + gen.Title(t.Name) + "."},
				segment.Block{
					Open:  "const " + record + "Schema = new Schema<" + record + ">({",
					Body:  segment.Lines(fields...),
					Close: "});",
				},
			},
			segment.Const{
				Name:  record + "Model",
				Doc:   "Model of " + gen.Title(t.Name) + ".",
				Value: segment.Raw("model<" + record + ">(" + segment.Quote(record) + ", " + record + "Schema, " + segment.Quote(t.Name) + ")"),
			},
			segment.Class{
				Name:    daoName(t),
				Doc:     "Data access object for " + gen.Title(t.Name) + ".",
				Extends: []string{"DataAccessObject<" + record + ">"},
				Methods: []segment.Method{{
					Name:       "_getModel",
					Doc:        "Retrieves the model of the collection.",
					Returns:    "Model<" + record + ">",
					ReturnsDoc: "The model.",
					Body:       segment.Lines("return " + record + "Model;"),
				}},
			},
		},
	}
}
