package typescript

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

// versions pins the npm packages of the generated backend.
var versions = map[string]string{
	"@types/bcrypt":                    "^5.0.2",
	"@types/cookie-parser":             "^1.4.6",
	"@types/express":                   "^4.17.21",
	"@types/jest":                      "^29.5.11",
	"@types/node":                      "^20.10.5",
	"@types/ws":                        "^8.5.10",
	"@typescript-eslint/eslint-plugin": "^6.16.0",
	"@typescript-eslint/parser":        "^6.16.0",
	"@vercel/node":                     "^3.0.14",
	"bcrypt":                           "^5.1.1",
	"cookie-parser":                    "^1.4.6",
	"dotenv":                           "^16.3.1",
	"eslint":                           "^8.56.0",
	"express":                          "^4.18.2",
	"jest":                             "^29.7.0",
	"mariadb":                          "^3.2.3",
	"mongoose":                         "^8.0.3",
	"ts-jest":                          "^29.1.1",
	"ts-node":                          "^10.9.2",
	"typescript":                       "^5.3.3",
	"ws":                               "^8.16.0",
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description,omitempty"`
	Main            string            `json:"main"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type tsconfigJSON struct {
	CompilerOptions map[string]any `json:"compilerOptions"`
	Exclude         []string       `json:"exclude"`
}

type eslintJSON struct {
	Root           bool              `json:"root"`
	Parser         string            `json:"parser"`
	Plugins        []string          `json:"plugins"`
	Extends        []string          `json:"extends"`
	Env            map[string]bool   `json:"env"`
	IgnorePatterns []string          `json:"ignorePatterns"`
	Rules          map[string]string `json:"rules"`
}

// project writes the project files into the output root.
func (b *builder) project() *gen.Node {
	n := &gen.Node{Name: "project"}
	n.AddFile("package.json", b.json(b.packageJSON()))
	n.AddFile("tsconfig.json", b.json(tsconfigJSON{
		CompilerOptions: map[string]any{
			"target":                       "es2020",
			"module":                       "commonjs",
			"outDir":                       "dist",
			"rootDir":                      ".",
			"strict":                       true,
			"strictPropertyInitialization": false,
			"esModuleInterop":              true,
			"skipLibCheck":                 true,
		},
		Exclude: []string{"dist", "node_modules"},
	}))
	if b.cfg.HasRuntime(gen.RuntimeExpress) || b.cfg.HasRuntime(gen.RuntimeWebSocket) {
		n.AddFile("index.ts", b.entrypoint)
	}
	if b.cfg.FeatureEnabled(gen.FeatureTesting.Name) {
		n.AddFile("jest.config.js", b.template("jest.config.js.tmpl", nil))
	}
	if b.cfg.FeatureEnabled(gen.FeatureLinting.Name) {
		n.AddFile(".eslintrc.json", b.json(eslintJSON{
			Root:           true,
			Parser:         "@typescript-eslint/parser",
			Plugins:        []string{"@typescript-eslint"},
			Extends:        []string{"eslint:recommended", "plugin:@typescript-eslint/recommended"},
			Env:            map[string]bool{"node": true, "jest": b.cfg.Testing},
			IgnorePatterns: []string{"dist", "node_modules"},
			Rules:          map[string]string{"@typescript-eslint/no-explicit-any": "off"},
		}))
	}
	return n
}

func (b *builder) packageJSON() packageJSON {
	p := packageJSON{
		Name:        gen.FileName(b.cfg.Name),
		Version:     "1.0.0",
		Description: b.cfg.Description,
		Main:        "dist/index.js",
		Scripts: map[string]string{
			"build": "tsc",
			"start": "node dist/index.js",
			"dev":   "ts-node index.ts",
		},
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}
	deps := []string{"dotenv"}
	dev := []string{"typescript", "ts-node", "@types/node"}
	for _, r := range b.cfg.Runtimes {
		deps = append(deps, r.Imports()...)
	}
	if b.cfg.HasRuntime(gen.RuntimeExpress) {
		dev = append(dev, "@types/express")
	}
	if b.cfg.HasRuntime(gen.RuntimeWebSocket) {
		dev = append(dev, "@types/ws")
	}
	for _, s := range b.cfg.Storages {
		deps = append(deps, s.Imports...)
	}
	if a := b.auth(); a != nil {
		if a.UsesPassword {
			deps = append(deps, "bcrypt")
			dev = append(dev, "@types/bcrypt")
		}
		if a.MaintainSessions && b.cfg.HasRuntime(gen.RuntimeExpress) {
			deps = append(deps, "cookie-parser")
			dev = append(dev, "@types/cookie-parser")
		}
	}
	if b.cfg.FeatureEnabled(gen.FeatureTesting.Name) {
		p.Scripts["test"] = "jest"
		dev = append(dev, "jest", "ts-jest", "@types/jest")
	}
	if b.cfg.FeatureEnabled(gen.FeatureLinting.Name) {
		p.Scripts["lint"] = "eslint . --ext .ts"
		dev = append(dev, "eslint", "@typescript-eslint/parser", "@typescript-eslint/eslint-plugin")
	}
	for _, d := range deps {
		p.Dependencies[d] = versions[d]
	}
	for _, d := range dev {
		p.DevDependencies[d] = versions[d]
	}
	return p
}

// json returns a renderer writing v as indented JSON.
func (b *builder) json(v any) func(*gen.Emitter) error {
	return func(w *gen.Emitter) error {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("typescript: encode json: %w", err)
		}
		segment.Render(w, b.ctx, []segment.Line{segment.Source(buf.String())})
		return nil
	}
}

// entrypoint starts the long-running servers.
func (b *builder) entrypoint(w *gen.Emitter) error {
	local := []segment.Import{
		{From: "./helpers/environment", Names: []string{"Environment"}},
	}
	var start []segment.Line
	if b.cfg.HasRuntime(gen.RuntimeExpress) {
		local = append(local, segment.Import{From: "./endpoints/express", Names: []string{"Server"}})
		start = append(start, segment.Text("new Server(Environment.getPort()).start();"))
	}
	if b.cfg.HasRuntime(gen.RuntimeWebSocket) {
		local = append(local, segment.Import{From: "./endpoints/websocket", Names: []string{"SocketServer"}})
		start = append(start, segment.Text("new SocketServer(Environment.getSocketPort()).start();"))
	}
	segment.Imports(w,
		segment.ImportGroup{Comment: "Packages", Imports: []segment.Import{{From: "dotenv/config"}}},
		segment.ImportGroup{Comment: "Local Imports", Imports: local},
	)
	segment.Function{
		Name:    "start",
		Doc:     "Starts the servers of " + b.cfg.Name + ".",
		Returns: "void",
		Body:    start,
	}.Render(w, b.ctx)
	w.Gap()
	w.Append("start();")
	return nil
}
