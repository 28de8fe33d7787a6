package segment

import (
	"slices"
	"strings"
)

// Kind is the kind of a class segment.
type Kind int

// Class kinds.
const (
	KindClass Kind = iota
	KindInterface
)

// Class describes an exported class or interface.
type Class struct {
	Name       string
	Doc        string
	Kind       Kind
	Extends    []string
	Implements []string
	Properties []Property
	Methods    []Method
}

// Property is a class member variable.
type Property struct {
	Key      string
	Type     string
	Doc      string
	Static   bool
	Private  bool
	Optional bool
	// Value is the initializer. Nil means no initializer; Null renders null.
	Value any
}

// Param is a function parameter.
type Param struct {
	Name string
	Type string
	Doc  string
	// Default is the default value expression, rendered verbatim.
	Default string
}

// Method is a class member function.
type Method struct {
	Name       string
	Doc        string
	Params     []Param
	Returns    string
	ReturnsDoc string
	Static     bool
	Async      bool
	// Arrow renders the method as an arrow function property.
	Arrow bool
	Body  []Line
}

// Render writes the class to w.
func (c Class) Render(w Writer, ctx Context) {
	if c.Doc != "" {
		w.Comment(c.Doc)
	}
	w.Append(c.header())
	w.Indent()
	props := slices.Clone(c.Properties)
	slices.SortStableFunc(props, func(a, b Property) int {
		return strings.Compare(a.Key, b.Key)
	})
	for _, p := range props {
		if p.Doc != "" {
			w.Comment(p.Doc)
		}
		w.Append(c.property(p))
		w.Gap()
	}
	for i, m := range c.Methods {
		if c.Kind == KindInterface {
			m.comment(w)
			w.Append(m.signature() + ";")
		} else {
			m.render(w, ctx)
		}
		if i < len(c.Methods)-1 {
			w.Gap()
		}
	}
	w.Dedent()
	w.Append("}")
}

func (c Class) header() string {
	var b strings.Builder
	b.WriteString("export ")
	if c.Kind == KindInterface {
		b.WriteString("interface ")
	} else {
		b.WriteString("class ")
	}
	b.WriteString(c.Name)
	if len(c.Extends) > 0 {
		b.WriteString(" extends ")
		b.WriteString(strings.Join(c.Extends, ", "))
	}
	if len(c.Implements) > 0 && c.Kind == KindClass {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(c.Implements, ", "))
	}
	b.WriteString(" {")
	return b.String()
}

func (c Class) property(p Property) string {
	var b strings.Builder
	if p.Static && c.Kind == KindClass {
		b.WriteString("static ")
	}
	if p.Private {
		b.WriteByte('_')
	}
	b.WriteString(p.Key)
	if p.Optional {
		b.WriteByte('?')
	}
	if p.Type != "" {
		b.WriteString(": ")
		b.WriteString(p.Type)
	}
	if p.Value != nil && c.Kind == KindClass {
		b.WriteString(" = ")
		b.WriteString(Literal(p.Value))
	}
	b.WriteByte(';')
	return b.String()
}

func (m Method) render(w Writer, ctx Context) {
	m.comment(w)
	if len(m.Params) > 1 {
		m.multiline(w)
	} else {
		w.Append(m.signature() + m.arrow() + " {")
	}
	w.Indent()
	Render(w, ctx, m.Body)
	w.Dedent()
	if m.Arrow {
		w.Append("};")
	} else {
		w.Append("}")
	}
}

// comment writes the doc block with the parameter and return tags.
func (m Method) comment(w Writer) {
	if m.Doc == "" {
		return
	}
	lines := []string{m.Doc}
	if len(m.Params) > 0 || m.ReturnsDoc != "" {
		lines = append(lines, "")
	}
	for _, p := range m.Params {
		name := p.Name
		if p.Default != "" {
			name = "[" + p.Name + "=" + p.Default + "]"
		}
		typ := p.Type
		if typ == "" {
			typ = "any"
		}
		lines = append(lines, strings.TrimSpace("@param {"+typ+"} "+name+" "+p.Doc))
	}
	if m.ReturnsDoc != "" {
		lines = append(lines, "@returns {"+m.Returns+"} "+m.ReturnsDoc)
	}
	w.Comment(lines...)
}

func (m Method) prefix() string {
	var b strings.Builder
	if m.Static {
		b.WriteString("static ")
	}
	if m.Arrow {
		b.WriteString(m.Name)
		b.WriteString(" = ")
		if m.Async {
			b.WriteString("async ")
		}
		return b.String()
	}
	if m.Async {
		b.WriteString("async ")
	}
	b.WriteString(m.Name)
	return b.String()
}

func (m Method) signature() string {
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.String()
	}
	return m.prefix() + "(" + strings.Join(params, ", ") + ")" + m.returns()
}

func (m Method) multiline(w Writer) {
	w.Append(m.prefix() + "(")
	w.Indent()
	for _, p := range m.Params {
		w.Append(p.String() + ",")
	}
	w.Dedent()
	w.Append(")" + m.returns() + m.arrow() + " {")
}

func (m Method) returns() string {
	if m.Returns == "" {
		return ""
	}
	return ": " + m.Returns
}

func (m Method) arrow() string {
	if m.Arrow {
		return " =>"
	}
	return ""
}

// String returns the parameter as written in a signature.
func (p Param) String() string {
	s := p.Name
	if p.Type != "" {
		s += ": " + p.Type
	}
	if p.Default != "" {
		s += " = " + p.Default
	}
	return s
}
