package typescript

import (
	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

func (b *builder) helpers() *gen.Node {
	n := &gen.Node{Name: "helpers", Dir: "helpers"}
	n.AddFile("environment.ts", b.render(b.environment()))
	n.AddFile("monitor.ts", b.template("monitor.ts.tmpl", struct{ Name string }{b.cfg.Name}))
	return n
}

// getter returns a static environment accessor.
func getter(name, doc, typ, expr string) segment.Method {
	return segment.Method{
		Name:       name,
		Doc:        doc,
		Returns:    typ,
		ReturnsDoc: doc,
		Static:     true,
		Body:       segment.Lines("return " + expr + ";"),
	}
}

func (b *builder) environment() segment.Line {
	config := []string{"DATABASE_TYPES", "DEFAULT_PORT", "SERVER_NAME"}
	methods := []segment.Method{
		getter("getDatabaseType", "The selected database type.", "string",
			"process.env.DATABASE_TYPE || DATABASE_TYPES."+b.fallback().Ident),
		getter("getDatabaseUrl", "The database URL.", "string", "process.env.DATABASE_URL || ''"),
		getter("getDatabaseUser", "The database username.", "string", "process.env.DATABASE_USER || ''"),
		getter("getDatabasePassword", "The database password.", "string", "process.env.DATABASE_PASSWORD || ''"),
		getter("getDatabaseName", "The database name.", "string", "process.env.DATABASE_NAME || SERVER_NAME"),
		getter("getPort", "The server port.", "number", "parseInt(process.env.PORT || `${DEFAULT_PORT}`, 10)"),
	}
	if b.cfg.HasRuntime(gen.RuntimeWebSocket) {
		config = append(config, "DEFAULT_SOCKET_PORT")
		methods = append(methods, getter("getSocketPort", "The socket server port.", "number",
			"parseInt(process.env.SOCKET_PORT || `${DEFAULT_SOCKET_PORT}`, 10)"))
	}
	methods = append(methods,
		getter("getEnvironment", "The environment the server runs in.", "string", "process.env.NODE_ENV || 'development'"),
		getter("isProduction", "Whether the server runs in production.", "boolean", "Environment.getEnvironment() === 'production'"),
	)
	return segment.File{
		Imports: []segment.ImportGroup{{
			Comment: "Local Imports",
			Imports: []segment.Import{{From: "../config", Names: config}},
		}},
		Body: []segment.Line{segment.Class{
			Name:    "Environment",
			Doc:     "Environmental variables of the server.",
			Methods: methods,
		}},
	}
}
