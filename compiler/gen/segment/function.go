package segment

// Function describes a module-level arrow function.
type Function struct {
	Name       string
	Doc        string
	Params     []Param
	Returns    string
	ReturnsDoc string
	Async      bool
	Export     bool
	Body       []Line
}

// Render writes the function to w.
func (f Function) Render(w Writer, ctx Context) {
	m := Method{
		Name:       f.Name,
		Doc:        f.Doc,
		Params:     f.Params,
		Returns:    f.Returns,
		ReturnsDoc: f.ReturnsDoc,
		Async:      f.Async,
		Arrow:      true,
		Body:       f.Body,
	}
	m.comment(w)
	decl := "const "
	if f.Export {
		decl = "export const "
	}
	m.Doc = ""
	m.Name = decl + f.Name
	m.render(w, ctx)
}

// Const describes a module-level variable. Objects and maps render as a
// multi-line object literal; maps in key order.
type Const struct {
	Name    string
	Doc     string
	Type    string
	Value   any
	Export  bool
	Mutable bool
}

// Render writes the declaration to w.
func (c Const) Render(w Writer, _ Context) {
	if c.Doc != "" {
		w.Comment(c.Doc)
	}
	decl := "const "
	if c.Mutable {
		decl = "let "
	}
	if c.Export {
		decl = "export " + decl
	}
	decl += c.Name
	if c.Type != "" {
		decl += ": " + c.Type
	}
	if lines, ok := objectLines(c.Value); ok {
		w.Append(decl + " = {")
		w.Indent()
		for _, l := range lines {
			w.Append(l)
		}
		w.Dedent()
		w.Append("};")
		return
	}
	w.Append(decl + " = " + Literal(c.Value) + ";")
}
