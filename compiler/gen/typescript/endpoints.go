package typescript

import (
	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

// route binds a handler class to the route of one runtime.
type route struct {
	group  string // table file name or "authentication"
	name   string // operation name, e.g. "get-many"
	method string
	class  string
	// from is the handler module relative to handlers/.
	from string
}

// routes returns the routes of every table operation followed by the
// authentication routes.
func (b *builder) routes() []route {
	var rs []route
	for _, t := range b.tables {
		for _, op := range tableOperations(t) {
			rs = append(rs, route{
				group:  gen.FileName(t.Name),
				name:   op.name,
				method: op.method,
				class:  op.className(t),
				from:   gen.FileName(t.Name) + "/" + op.fileName(t),
			})
		}
	}
	if a := b.auth(); a != nil {
		for _, op := range b.authOperations(a) {
			rs = append(rs, route{
				group:  "authentication",
				name:   op.name,
				method: op.method,
				class:  op.class,
				from:   "authentication/" + op.name,
			})
		}
	}
	return rs
}

// groups returns the routes grouped by table in first-seen order.
func groups(rs []route) ([]string, map[string][]route) {
	var order []string
	byGroup := make(map[string][]route)
	for _, r := range rs {
		if _, ok := byGroup[r.group]; !ok {
			order = append(order, r.group)
		}
		byGroup[r.group] = append(byGroup[r.group], r)
	}
	return order, byGroup
}

// handlerImports returns the default imports of the handlers of rs.
func handlerImports(prefix string, rs []route) []segment.Import {
	imports := make([]segment.Import, len(rs))
	for i, r := range rs {
		imports[i] = segment.Import{From: prefix + r.from, Default: r.class}
	}
	return imports
}

func (b *builder) endpoints() *gen.Node {
	n := &gen.Node{Name: "endpoints", Dir: "endpoints"}
	n.AddFile("index.ts", b.render(b.endpointsIndex()))
	rs := b.routes()
	order, byGroup := groups(rs)
	if b.cfg.HasRuntime(gen.RuntimeExpress) {
		express := &gen.Node{Name: "express", Dir: "express"}
		express.AddFile("index.ts", b.render(b.expressServer(order)))
		for _, g := range order {
			express.AddFile(g+".ts", b.render(expressRouter(byGroup[g])))
		}
		n.Add(express)
	}
	if b.cfg.HasRuntime(gen.RuntimeVercel) {
		vercel := &gen.Node{Name: "vercel", Dir: "vercel"}
		for _, g := range order {
			vercel.AddFile(g+".ts", b.render(vercelFunction(g, byGroup[g])))
		}
		n.Add(vercel)
	}
	if b.cfg.HasRuntime(gen.RuntimeWebSocket) {
		ws := &gen.Node{Name: "websocket", Dir: "websocket"}
		ws.AddFile("index.ts", b.render(socketServer(rs)))
		n.Add(ws)
	}
	return n
}

func (b *builder) endpointsIndex() segment.Line {
	var lines []segment.Line
	if b.cfg.HasRuntime(gen.RuntimeExpress) {
		lines = append(lines, segment.Text("export { Server } from './express';"))
	}
	if b.cfg.HasRuntime(gen.RuntimeWebSocket) {
		lines = append(lines, segment.Text("export { SocketServer } from './websocket';"))
	}
	if len(lines) == 0 {
		lines = append(lines, segment.Text("export {};"))
	}
	return segment.Group(lines)
}

var portParam = []segment.Param{{Name: "port", Type: "number", Doc: "Port to listen on."}}

func (b *builder) expressServer(order []string) segment.Line {
	sessions := false
	if a := b.auth(); a != nil {
		sessions = a.MaintainSessions
	}
	packages := []segment.Import{{From: "express", Default: "express", Names: []string{"Express"}}}
	if sessions {
		packages = append(packages, segment.Import{From: "cookie-parser", Default: "cookieParser"})
	}
	local := []segment.Import{
		{From: "../../helpers/monitor", Names: []string{"Monitor"}},
		{From: "../../config/messages", Names: []string{"MESSAGE_ROUTE_NOT_FOUND"}},
	}
	body := segment.Lines(
		"this.port = port;",
		"this.app = express();",
		"this.app.use(express.json());",
	)
	if sessions {
		body = append(body, segment.Text("this.app.use(cookieParser());"))
	}
	for _, g := range order {
		router := gen.FieldName(g) + "Router"
		local = append(local, segment.Import{From: "./" + g, Default: router})
		body = append(body, segment.Text("this.app.use('/api/"+g+"', "+router+");"))
	}
	body = append(body, segment.Source(`this.app.use((req, res) => {
  res.status(404).json({ error: MESSAGE_ROUTE_NOT_FOUND });
});`))
	return segment.File{
		Imports: []segment.ImportGroup{
			{Comment: "Packages", Imports: packages},
			{Comment: "Local Imports", Imports: local},
		},
		Body: []segment.Line{segment.Class{
			Name: "Server",
			Doc:  "Express server of " + b.cfg.Name + ".",
			Properties: []segment.Property{
				{Key: "app", Type: "Express"},
				{Key: "port", Type: "number"},
			},
			Methods: []segment.Method{
				{Name: "constructor", Doc: "Mounts the API routers.", Params: portParam, Body: body},
				{
					Name:    "start",
					Doc:     "Starts listening.",
					Returns: "void",
					Body: []segment.Line{segment.Source("this.app.listen(this.port, () => {\n  Monitor.log(\n    Server,\n    `Listening on port ${this.port}`,\n    Monitor.Layer.UPDATE,\n  );\n});")},
				},
			},
		}},
	}
}

func expressRouter(rs []route) segment.Line {
	body := segment.Group{segment.Text("const router = Router();")}
	bind := segment.Group{}
	for _, r := range rs {
		bind = append(bind, segment.Text("router."+r.method+"('/"+r.name+"', "+r.class+".execute);"))
	}
	return segment.File{
		Imports: []segment.ImportGroup{
			{Comment: "Packages", Imports: []segment.Import{{From: "express", Names: []string{"Router"}}}},
			{Comment: "Local Imports", Imports: handlerImports("../../handlers/", rs)},
		},
		Body: []segment.Line{body, bind, segment.Text("export default router;")},
	}
}

// routeTable returns the ROUTES constant keyed by key.
func routeTable(rs []route, key func(route) string) segment.Const {
	routes := make(segment.Object, len(rs))
	for i, r := range rs {
		routes[i] = segment.Field{Key: segment.Quote(key(r)), Value: segment.Raw(r.class + ".execute")}
	}
	return segment.Const{
		Name:  "ROUTES",
		Type:  "Record<string, (req: HandlerRequest, res: HandlerResponse) => Promise<void>>",
		Value: routes,
	}
}

func vercelFunction(group string, rs []route) segment.Line {
	return segment.File{
		Imports: []segment.ImportGroup{
			{Comment: "Packages", Imports: []segment.Import{{From: "@vercel/node", Names: []string{"VercelRequest", "VercelResponse"}}}},
			{Comment: "Local Imports", Imports: append([]segment.Import{
				{From: "../../config/messages", Names: []string{"MESSAGE_ROUTE_NOT_FOUND"}},
				{From: "../../handlers/handler", Names: []string{"HandlerRequest", "HandlerResponse"}},
			}, handlerImports("../../handlers/", rs)...)},
		},
		Body: []segment.Line{
			routeTable(rs, func(r route) string { return r.method + " " + r.name }),
			segment.Function{
				Name: "handler",
				Doc:  "Serverless function routing " + gen.Title(group) + " requests by method and operation.",
				Params: []segment.Param{
					{Name: "req", Type: "VercelRequest", Doc: "Request."},
					{Name: "res", Type: "VercelResponse", Doc: "Response."},
				},
				Returns: "Promise<void>",
				Async:   true,
				Body: []segment.Line{segment.Source("const route = ROUTES[`${(req.method || '').toLowerCase()} ${req.query.operation}`];\n\nif (!route) {\n  res.status(404).json({ error: MESSAGE_ROUTE_NOT_FOUND });\n  return;\n}\n\nawait route(req, res);")},
			},
			segment.Text("export default handler;"),
		},
	}
}

func socketServer(rs []route) segment.Line {
	return segment.File{
		Imports: []segment.ImportGroup{
			{Comment: "Packages", Imports: []segment.Import{{From: "ws", Names: []string{"WebSocket", "WebSocketServer"}}}},
			{Comment: "Local Imports", Imports: append([]segment.Import{
				{From: "../../config/messages", Names: []string{"MESSAGE_ROUTE_NOT_FOUND"}},
				{From: "../../handlers/handler", Names: []string{"HandlerRequest", "HandlerResponse"}},
				{From: "../../helpers/monitor", Names: []string{"Monitor"}},
			}, handlerImports("../../handlers/", rs)...)},
		},
		Body: []segment.Line{
			routeTable(rs, func(r route) string { return r.group + "/" + r.name }),
			segment.Class{
				Name: "SocketMessage",
				Doc:  "Message sent by socket clients.",
				Kind: segment.KindInterface,
				Properties: []segment.Property{
					{Key: "id", Type: "string", Optional: true},
					{Key: "route", Type: "string"},
					{Key: "body", Type: "any", Optional: true},
					{Key: "query", Type: "Record<string, any>", Optional: true},
				},
			},
			segment.Class{
				Name:       "SocketResponse",
				Doc:        "Writes handler responses to a socket.",
				Implements: []string{"HandlerResponse"},
				Properties: []segment.Property{
					{Key: "code", Type: "number", Private: true, Value: 200},
					{Key: "socket", Type: "WebSocket", Private: true},
					{Key: "id", Type: "string", Private: true, Optional: true},
				},
				Methods: []segment.Method{
					{
						Name: "constructor",
						Doc:  "Creates a response answering message id on socket.",
						Params: []segment.Param{
							{Name: "socket", Type: "WebSocket", Doc: "Client socket."},
							{Name: "id", Type: "string", Doc: "Message identifier.", Default: "''"},
						},
						Body: segment.Lines("this._socket = socket;", "this._id = id || undefined;"),
					},
					{
						Name:    "status",
						Params:  []segment.Param{{Name: "code", Type: "number"}},
						Returns: "HandlerResponse",
						Body:    segment.Lines("this._code = code;", "return this;"),
					},
					{
						Name:    "json",
						Params:  []segment.Param{{Name: "body", Type: "any"}},
						Returns: "void",
						Body:    segment.Lines("this._socket.send(JSON.stringify({ id: this._id, status: this._code, body }));"),
					},
				},
			},
			segment.Class{
				Name: "SocketServer",
				Doc:  "WebSocket server routing messages to the handlers.",
				Properties: []segment.Property{
					{Key: "port", Type: "number"},
					{Key: "server", Type: "WebSocketServer | null", Value: segment.Null},
				},
				Methods: []segment.Method{
					{Name: "constructor", Params: portParam, Body: segment.Lines("this.port = port;")},
					{
						Name:    "start",
						Doc:     "Starts listening.",
						Returns: "void",
						Body: []segment.Line{segment.Source(`this.server = new WebSocketServer({ port: this.port });
this.server.on('connection', (socket: WebSocket) => {
  socket.on('message', async (data) => {
    await SocketServer.receive(socket, ` + "`${data}`" + `);
  });
});

Monitor.log(
  SocketServer,
  ` + "`Listening on port ${this.port}`" + `,
  Monitor.Layer.UPDATE,
);`)},
					},
					{
						Name: "receive",
						Doc:  "Routes one message to its handler.",
						Params: []segment.Param{
							{Name: "socket", Type: "WebSocket", Doc: "Client socket."},
							{Name: "data", Type: "string", Doc: "Raw message."},
						},
						Returns: "Promise<void>",
						Static:  true,
						Async:   true,
						Body: []segment.Line{segment.Source(`let message: SocketMessage;

try {
  message = JSON.parse(data);
} catch (error) {
  new SocketResponse(socket).status(400).json({ error: ` + "`${error}`" + ` });
  return;
}

const res = new SocketResponse(socket, message.id);
const route = ROUTES[message.route];

if (!route) {
  res.status(404).json({ error: MESSAGE_ROUTE_NOT_FOUND });
  return;
}

await route({ body: message.body, query: message.query }, res);`)},
					},
				},
			},
		},
	}
}
