package typescript

import (
	"fmt"
	"strings"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

// operation is a generated request handler of a table.
type operation struct {
	name    string
	method  string
	plural  bool
	enabled func(gen.Functions) bool
	// body is formatted with the database property and the record type.
	body     string
	messages []string
	record   bool
}

var operations = []operation{
	{
		name:    "create",
		method:  "post",
		enabled: func(f gen.Functions) bool { return f.Create },
		body: `const database = await Handler._database();
const inserted = await database.%[1]s.insert(req.body as %[2]s);

res.status(201).json({ inserted });`,
		record: true,
	},
	{
		name:    "update",
		method:  "put",
		enabled: func(f gen.Functions) bool { return f.Update },
		body: `const { conditions = {}, update = {} } = req.body || {};
const database = await Handler._database();
const updated = await database.%[1]s.update(
  conditions,
  update,
);

res.status(200).json({ updated });`,
	},
	{
		name:    "delete",
		method:  "delete",
		enabled: func(f gen.Functions) bool { return f.Delete },
		body: `const conditions = (req.body && req.body.conditions) || req.query || {};
const database = await Handler._database();
const deleted = await database.%[1]s.delete(conditions);

res.status(200).json({ deleted });`,
	},
	{
		name:    "get",
		method:  "get",
		enabled: func(f gen.Functions) bool { return f.Get },
		body: `const database = await Handler._database();
const item = await database.%[1]s.findOne(req.query || {});

if (!item) {
  res.status(404).json({ error: MESSAGE_HANDLER_ITEM_NOT_FOUND });
  return;
}

res.status(200).json(item);`,
		messages: []string{"MESSAGE_HANDLER_ITEM_NOT_FOUND"},
	},
	{
		name:    "get-many",
		method:  "get",
		plural:  true,
		enabled: func(f gen.Functions) bool { return f.GetMany },
		body: `const database = await Handler._database();
const items = await database.%[1]s.find(req.query || {});

res.status(200).json(items);`,
	},
}

// tableOperations returns the enabled operations of t.
func tableOperations(t *gen.Table) []operation {
	var ops []operation
	for _, op := range operations {
		if op.enabled(t.Enabled()) {
			ops = append(ops, op)
		}
	}
	return ops
}

// className returns the handler class of op on t, e.g. GetAlbumTracks.
func (op operation) className(t *gen.Table) string {
	verb := "Get"
	switch op.name {
	case "create":
		verb = "Create"
	case "update":
		verb = "Update"
	case "delete":
		verb = "Delete"
	}
	if op.plural {
		return verb + gen.PluralClassName(t.Name)
	}
	return verb + gen.ClassName(t.Name)
}

// fileName returns the handler file of op on t without extension.
func (op operation) fileName(t *gen.Table) string { return gen.FileName(op.className(t)) }

// route returns the route of op relative to the table router.
func (op operation) route() string { return "/" + op.name }

func (b *builder) handlers() *gen.Node {
	n := &gen.Node{Name: "handlers", Dir: "handlers"}
	n.AddFile("handler.ts", b.render(handlerBase()))
	for _, t := range b.tables {
		ops := tableOperations(t)
		if len(ops) == 0 {
			continue
		}
		child := &gen.Node{Name: "handlers-" + t.Name, Dir: gen.FileName(t.Name)}
		for _, op := range ops {
			child.AddFile(op.fileName(t)+".ts", b.render(handler(t, op)))
		}
		n.Add(child)
	}
	if a := b.auth(); a != nil {
		n.Add(b.authHandlers(a))
	}
	return n
}

var handlerParams = []segment.Param{
	{Name: "req", Type: "HandlerRequest", Doc: "Request."},
	{Name: "res", Type: "HandlerResponse", Doc: "Response."},
}

func handlerBase() segment.Line {
	return segment.File{
		Imports: []segment.ImportGroup{{Comment: "Local Imports", Imports: []segment.Import{
			{From: "../database/database", Names: []string{"Database"}},
			{From: "../database", Names: []string{"getDatabase"}},
			{From: "../helpers/environment", Names: []string{"Environment"}},
			{From: "../helpers/monitor", Names: []string{"Monitor"}},
			{From: "../config/messages", Names: []string{"MESSAGE_HANDLER_NOT_IMPLEMENTED"}},
		}}},
		Body: []segment.Line{
			segment.Class{
				Name: "HandlerRequest",
				Doc:  "Request passed to handlers by every runtime.",
				Kind: segment.KindInterface,
				Properties: []segment.Property{
					{Key: "body", Type: "any", Optional: true},
					{Key: "query", Type: "Record<string, any>", Optional: true},
					{Key: "cookies", Type: "Record<string, string>", Optional: true},
				},
			},
			segment.Class{
				Name: "HandlerResponse",
				Doc:  "Response written by handlers in every runtime.",
				Kind: segment.KindInterface,
				Properties: []segment.Property{
					{Key: "cookie", Type: "(name: string, value: string, options?: Record<string, any>) => void", Optional: true},
					{Key: "clearCookie", Type: "(name: string) => void", Optional: true},
				},
				Methods: []segment.Method{
					{Name: "status", Params: []segment.Param{{Name: "code", Type: "number"}}, Returns: "HandlerResponse"},
					{Name: "json", Params: []segment.Param{{Name: "body", Type: "any"}}, Returns: "void"},
				},
			},
			segment.Class{
				Name: "Handler",
				Doc:  "Abstract request handler, use concrete implementations.",
				Methods: []segment.Method{
					{
						Name:    "execute",
						Doc:     "Handles the request.",
						Params:  handlerParams,
						Returns: "Promise<void>",
						Static:  true,
						Async:   true,
						Body:    segment.Lines("res.status(501).json({ error: MESSAGE_HANDLER_NOT_IMPLEMENTED });"),
					},
					{
						Name:       "_database",
						Doc:        "Retrieves the database, connecting it when needed.",
						Returns:    "Promise<Database>",
						ReturnsDoc: "The database.",
						Static:     true,
						Async:      true,
						Body: []segment.Line{segment.Source(`const database = getDatabase();

if (!database.isConnected()) {
  await database.connect(
    Environment.getDatabaseUrl(),
    Environment.getDatabaseUser(),
    Environment.getDatabasePassword(),
  );
}

return database;`)},
					},
					{
						Name: "_fail",
						Doc:  "Reports a failed request.",
						Params: []segment.Param{
							{Name: "res", Type: "HandlerResponse", Doc: "Response."},
							{Name: "error", Type: "unknown", Doc: "Cause of the failure."},
						},
						Returns: "void",
						Static:  true,
						Body: []segment.Line{segment.Source("Monitor.log(\n  Handler,\n  `${error}`,\n  Monitor.Layer.WARNING,\n);\n\nres.status(500).json({ error: `${error}` });")},
					},
				},
			},
		},
	}
}

func handler(t *gen.Table, op operation) segment.Line {
	class := op.className(t)
	local := []segment.Import{{From: "../handler", Names: []string{"Handler", "HandlerRequest", "HandlerResponse"}}}
	if len(op.messages) > 0 {
		local = append(local, segment.Import{From: "../../config/messages", Names: op.messages})
	}
	var types []segment.Import
	if op.record {
		types = append(types, segment.Import{From: "../../types", Names: []string{recordName(t)}})
	}
	return segment.File{
		Imports: []segment.ImportGroup{
			{Comment: "Local Imports", Imports: local},
			{Comment: "Types", Imports: types},
		},
		Body: []segment.Line{
			segment.Class{
				Name:    class,
				Doc:     handlerDoc(t, op),
				Extends: []string{"Handler"},
				Methods: []segment.Method{{
					Name:    "execute",
					Doc:     "Handles the request.",
					Params:  handlerParams,
					Returns: "Promise<void>",
					Static:  true,
					Async:   true,
					Body:    []segment.Line{guarded(fmt.Sprintf(op.body, property(t), recordName(t)))},
				}},
			},
			segment.Text("export default " + class + ";"),
		},
	}
}

// guarded wraps a handler body so failures are reported on the response.
func guarded(body string) segment.Source {
	var sb strings.Builder
	sb.WriteString("try {\n")
	for _, l := range strings.Split(body, "\n") {
		if l != "" {
			sb.WriteString("  " + l)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("} catch (error) {\n  Handler._fail(res, error);\n}")
	return segment.Source(sb.String())
}

func handlerDoc(t *gen.Table, op operation) string {
	title := gen.Title(gen.Singular(t.Name))
	switch op.name {
	case "create":
		return "Creates a " + title + "."
	case "update":
		return "Updates " + gen.Title(t.Name) + "."
	case "delete":
		return "Deletes " + gen.Title(t.Name) + "."
	case "get":
		return "Retrieves a " + title + "."
	}
	return "Retrieves " + gen.Title(t.Name) + "."
}

// authOperation is a generated authentication handler.
type authOperation struct {
	name   string
	class  string
	method string
}

func (b *builder) authOperations(a *gen.Authentication) []authOperation {
	ops := []authOperation{
		{"register", "Register", "post"},
		{"login", "Login", "post"},
	}
	if a.MaintainSessions {
		ops = append(ops, authOperation{"logout", "Logout", "post"})
	}
	return ops
}

type authData struct {
	Record           string
	Property         string
	UsesPassword     bool
	MaintainSessions bool
}

func (b *builder) authHandlers(a *gen.Authentication) *gen.Node {
	n := &gen.Node{Name: "authentication", Dir: "authentication"}
	user, _ := b.cfg.Table(a.UserTable)
	data := authData{
		Record:           recordName(user),
		Property:         property(user),
		UsesPassword:     a.UsesPassword,
		MaintainSessions: a.MaintainSessions,
	}
	if a.MaintainSessions {
		n.AddFile("sessions.ts", b.template("auth-sessions", data))
	}
	for _, op := range b.authOperations(a) {
		n.AddFile(op.name+".ts", b.template("auth-"+op.name, data))
	}
	return n
}
