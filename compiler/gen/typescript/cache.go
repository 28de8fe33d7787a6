package typescript

import (
	"strings"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

func (b *builder) cacheDatabase(s *gen.Storage) *gen.Node {
	n := &gen.Node{Name: s.Name, Dir: s.Dir}
	n.AddFile("index.ts", b.render(b.cacheIndex()))
	n.AddFile("dao.ts", b.template("cache-dao.ts.tmpl", nil))
	return n
}

const cacheConnect segment.Source = `this._connected = true;

Monitor.log(
  CacheDatabase,
  MESSAGE_DATABASE_CONNECTION_SUCCESS,
  Monitor.Layer.UPDATE,
);
`

func (b *builder) cacheIndex() segment.Line {
	props := b.daoProperties(func(t *gen.Table) segment.Raw {
		keys := make([]string, len(t.Schema))
		for i, f := range t.Schema {
			keys[i] = segment.Quote(f.Key)
		}
		return segment.Raw("new CacheDataAccessObject<" + recordName(t) + ">([" + strings.Join(keys, ", ") + "])")
	})
	props = append(props, segment.Property{
		Key:     "connected",
		Type:    "boolean",
		Doc:     "Whether connect was called.",
		Private: true,
		Value:   false,
	})
	return segment.File{
		Lint: []string{`@typescript-eslint/no-unused-vars: "off"`},
		Imports: []segment.ImportGroup{
			{Comment: "Local Imports", Imports: []segment.Import{
				{From: "./dao", Names: []string{"CacheDataAccessObject"}},
				{From: "../database", Names: []string{"Database"}},
				{From: "../../config/messages", Names: []string{"MESSAGE_DATABASE_CONNECTION_SUCCESS"}},
				{From: "../../helpers/monitor", Names: []string{"Monitor"}},
			}},
			{Comment: "Types", Imports: []segment.Import{
				{From: "../../types", Names: recordNames(b.tables)},
			}},
		},
		Body: []segment.Line{segment.Class{
			Name:       "CacheDatabase",
			Doc:        "In-memory database, data is lost on restart.",
			Extends:    []string{"Database"},
			Properties: props,
			Methods: []segment.Method{
				constructor("Instantiates CacheDatabase with empty tables."),
				{
					Name:    "connect",
					Doc:     "Connects to database.",
					Params:  connectParams,
					Returns: "Promise<void>",
					Async:   true,
					Body:    []segment.Line{cacheConnect},
				},
				isConnected("this._connected"),
			},
		}},
	}
}
