package typescript

import (
	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

// runtimeError is an error class of the generated runtime.
type runtimeError struct {
	file    string
	class   string
	doc     string
	message string
}

var runtimeErrors = []runtimeError{
	{"used-abstract-dao-error", "UsedAbstractDaoError", "Abstract Data Access Object Class Used Error.", "MESSAGE_USED_ABSTRACT_DAO_ERROR"},
	{"used-abstract-database-error", "UsedAbstractDatabaseError", "Abstract Database Class Used Error.", "MESSAGE_USED_ABSTRACT_DATABASE_ERROR"},
	{"database-url-missing-error", "DatabaseUrlMissingError", "Database URL Missing Error.", "MESSAGE_DATABASE_URL_MISSING_ERROR"},
}

func (b *builder) errors() *gen.Node {
	n := &gen.Node{Name: "errors", Dir: "errors"}
	for _, e := range runtimeErrors {
		n.AddFile(e.file+".ts", b.render(errorClass(e)))
	}
	n.AddFile("index.ts", b.errorsIndex)
	return n
}

func errorClass(e runtimeError) segment.Line {
	return segment.File{
		Imports: []segment.ImportGroup{{
			Comment: "Local Imports",
			Imports: []segment.Import{{From: "../config/messages", Names: []string{e.message}}},
		}},
		Body: []segment.Line{segment.Class{
			Name:    e.class,
			Doc:     e.doc,
			Extends: []string{"Error"},
			Methods: []segment.Method{{
				Name: "constructor",
				Body: segment.Lines("super(" + e.message + ");", "this.name = '" + e.class + "';"),
			}},
		}},
	}
}

func (b *builder) errorsIndex(w *gen.Emitter) error {
	for _, e := range runtimeErrors {
		w.Appendf("export { %s } from './%s';", e.class, e.file)
	}
	return nil
}
