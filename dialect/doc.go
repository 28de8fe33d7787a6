// Package dialect names the SQL dialect scaffold compiles statements for.
//
// Generated storage layers target a single relational dialect, MySQL
// (and MariaDB, which accepts the same DDL and named placeholders). The
// statement compiler and the runtime store live in dialect/sql:
//
//	t := sql.NewTable("users",
//	    sql.Column{Name: "id", Type: "int", Options: sql.ColumnOptions{PrimaryKey: true, AutoIncrement: true}},
//	    sql.Column{Name: "name", Type: "varchar(255)"},
//	)
//	q, err := t.Find(sql.Conditions{"id": 5}, nil)
//	// q.SQL    == "SELECT *\nFROM `users`\nWHERE `id` = :id;\n"
//	// q.Params == sql.Params{"id": 5}
//
// # Sub-packages
//
//   - dialect/sql: statement compiler, named-parameter binding and the
//     database/sql backed Store
package dialect
