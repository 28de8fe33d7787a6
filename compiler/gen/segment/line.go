package segment

import (
	"slices"
	"strings"
)

// Writer is the sink segments render into.
type Writer interface {
	Append(line string)
	Gap()
	Comment(lines ...string)
	Indent()
	Dedent()
}

// Context holds the generation choices lines are evaluated against.
type Context struct {
	// Storages are the names of the selected storage backends.
	Storages []string
}

// Has reports whether the named storage backend is selected.
func (c Context) Has(storage string) bool {
	return slices.Contains(c.Storages, storage)
}

// Line is one element of a body. Class, Function and Const are lines too,
// so whole files compose from them.
type Line interface {
	Render(Writer, Context)
}

// Render writes lines to w.
func Render(w Writer, ctx Context, lines []Line) {
	for _, l := range lines {
		if l != nil {
			l.Render(w, ctx)
		}
	}
}

// Lines returns a body of plain text lines.
func Lines(text ...string) []Line {
	lines := make([]Line, len(text))
	for i, t := range text {
		lines[i] = Text(t)
	}
	return lines
}

// Text is a single line. An empty Text renders a gap.
type Text string

func (t Text) Render(w Writer, _ Context) {
	if t == "" {
		w.Gap()
		return
	}
	w.Append(string(t))
}

// Comment renders a block comment.
type Comment []string

func (c Comment) Render(w Writer, _ Context) {
	w.Comment(c...)
}

// Block renders Open, the indented Body, then Close.
type Block struct {
	Open  string
	Body  []Line
	Close string
}

func (b Block) Render(w Writer, ctx Context) {
	w.Append(b.Open)
	w.Indent()
	Render(w, ctx, b.Body)
	w.Dedent()
	w.Append(b.Close)
}

// IfStorage renders Body only when Storage is selected.
type IfStorage struct {
	Storage string
	Body    []Line
}

func (s IfStorage) Render(w Writer, ctx Context) {
	if ctx.Has(s.Storage) {
		Render(w, ctx, s.Body)
	}
}

// Case is one branch of a StorageChain.
type Case struct {
	Storage string
	Cond    string
	Body    []Line
}

// StorageChain renders an if / else if / else chain over the cases whose
// storage is selected. Without a Default, the last selected case becomes
// the else branch; a single remaining branch renders unwrapped.
type StorageChain struct {
	Cases   []Case
	Default []Line
}

func (s StorageChain) Render(w Writer, ctx Context) {
	var cases []Case
	for _, c := range s.Cases {
		if ctx.Has(c.Storage) {
			cases = append(cases, c)
		}
	}
	fallback := s.Default
	if fallback == nil && len(cases) > 0 {
		fallback = cases[len(cases)-1].Body
		cases = cases[:len(cases)-1]
	}
	if len(cases) == 0 {
		Render(w, ctx, fallback)
		return
	}
	for i, c := range cases {
		if i == 0 {
			w.Append("if (" + c.Cond + ") {")
		} else {
			w.Append("} else if (" + c.Cond + ") {")
		}
		w.Indent()
		Render(w, ctx, c.Body)
		w.Dedent()
	}
	if fallback != nil {
		w.Append("} else {")
		w.Indent()
		Render(w, ctx, fallback)
		w.Dedent()
	}
	w.Append("}")
}

// Source is multi-line text indented with two spaces or tabs per level.
// Each line is re-indented with the indentation of the writer.
type Source string

func (s Source) Render(w Writer, _ Context) {
	text := strings.TrimSuffix(strings.ReplaceAll(string(s), "\r\n", "\n"), "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			w.Gap()
			continue
		}
		depth := level(line[:len(line)-len(trimmed)])
		for range depth {
			w.Indent()
		}
		w.Append(trimmed)
		for range depth {
			w.Dedent()
		}
	}
}

// level returns the indentation level of a leading whitespace prefix.
func level(prefix string) int {
	n, spaces := 0, 0
	for _, r := range prefix {
		if r == '\t' {
			n++
			continue
		}
		spaces++
	}
	return n + spaces/2
}

// Group renders its lines without separation.
type Group []Line

func (g Group) Render(w Writer, ctx Context) {
	Render(w, ctx, g)
}

// File is a whole source file: eslint directives, the import groups, then
// the body segments separated by gaps. Segments rendering nothing take no
// gap.
type File struct {
	Lint    []string
	Imports []ImportGroup
	Body    []Line
}

func (f File) Render(w Writer, ctx Context) {
	for _, l := range f.Lint {
		w.Append("/* eslint " + l + " */")
	}
	Imports(w, f.Imports...)
	wrote := false
	for _, l := range f.Body {
		if l == nil {
			continue
		}
		s := &separated{Writer: w, gap: wrote}
		l.Render(s, ctx)
		wrote = wrote || s.wrote
	}
}

// separated writes a gap before the first output when gap is set.
type separated struct {
	Writer
	gap, wrote bool
}

func (s *separated) flush() {
	if !s.wrote {
		if s.gap {
			s.Writer.Gap()
		}
		s.wrote = true
	}
}

func (s *separated) Append(line string) {
	s.flush()
	s.Writer.Append(line)
}

func (s *separated) Gap() {
	s.flush()
	s.Writer.Gap()
}

func (s *separated) Comment(lines ...string) {
	s.flush()
	s.Writer.Comment(lines...)
}
