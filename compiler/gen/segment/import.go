package segment

import (
	"slices"
	"strings"
)

// Import is one import declaration.
type Import struct {
	From    string
	Default string
	Names   []string
}

// ImportGroup is a commented group of imports, e.g. "Packages".
type ImportGroup struct {
	Comment string
	Imports []Import
}

// Imports writes the non-empty groups, each headed by its comment,
// separated and followed by a gap. An import with a non-nil but empty
// Names and no Default imports nothing and is dropped; an import with
// neither is a side-effect import.
func Imports(w Writer, groups ...ImportGroup) {
	written := false
	for _, g := range groups {
		var imports []Import
		for _, imp := range g.Imports {
			if imp.Default == "" && imp.Names != nil && len(imp.Names) == 0 {
				continue
			}
			imports = append(imports, imp)
		}
		if len(imports) == 0 {
			continue
		}
		if written {
			w.Gap()
		}
		if g.Comment != "" {
			w.Append("// " + g.Comment)
		}
		for _, imp := range imports {
			imp.Render(w)
		}
		written = true
	}
	if written {
		w.Gap()
	}
}

// Render writes the declaration to w. Named imports are sorted and break
// over several lines when there is more than one.
func (i Import) Render(w Writer) {
	names := slices.Clone(i.Names)
	slices.Sort(names)
	names = slices.Compact(names)
	from := " from " + Quote(i.From) + ";"
	var head strings.Builder
	head.WriteString("import ")
	if i.Default != "" {
		head.WriteString(i.Default)
	}
	switch {
	case len(names) == 0 && i.Default == "":
		w.Append("import " + Quote(i.From) + ";")
	case len(names) == 0:
		w.Append(head.String() + from)
	case len(names) == 1:
		if i.Default != "" {
			head.WriteString(", ")
		}
		w.Append(head.String() + "{ " + names[0] + " }" + from)
	default:
		if i.Default != "" {
			head.WriteString(", ")
		}
		w.Append(head.String() + "{")
		w.Indent()
		for _, n := range names {
			w.Append(n + ",")
		}
		w.Dedent()
		w.Append("}" + from)
	}
}
