package typescript

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/syssam/scaffold/compiler/gen/segment"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("typescript").ParseFS(templateFS, "templates/*.tmpl"))

// source executes the named template. The output is indented with two
// spaces per level and is re-indented when rendered.
func source(name string, data any) (segment.Source, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("typescript: execute template %s: %w", name, err)
	}
	return segment.Source(buf.String()), nil
}
