// Package sql compiles abstract CRUD descriptors into parameterized MySQL
// statements and runs them through database/sql.
//
// # Tables
//
// A Table bundles a name with its ordered columns. Each Column carries its
// name, its column type and its ColumnOptions, so names, types and options
// can never drift apart. Generated data-access objects keep the same data
// as three parallel lists; NewTableFromLists rebuilds a Table from them and
// rejects lists of unequal length with ErrColumnMismatch.
//
// The unbound base table returned by Abstract has no name. Every statement
// built from it fails with scaffold.ErrUsedAbstract.
//
// # Statements
//
// Every statement is returned as a Query: SQL text plus the named
// parameter payload. Values are bound by name (":id") and never
// interpolated:
//
//	t.CreateTable()                 // CREATE TABLE IF NOT EXISTS ...
//	t.DropTable()                   // DROP TABLE `t`;
//	t.DeleteAll()                   // DELETE FROM `t`;
//	t.Insert(item)                  // one placeholder per schema column
//	t.Find(conditions, projection)  // SELECT ... FROM ... [WHERE ...]
//	t.Update(conditions, update)    // UPDATE ... [SET ...] [WHERE ...]
//	t.Delete(conditions)            // DELETE FROM ... [WHERE ...]
//
// Conditions support equality joined with AND only. A projection that
// explicitly excludes any column switches the whole statement to exclude
// mode: every schema column not excluded is selected, in schema order.
//
// Go maps have no order, so descriptor keys are rendered in schema column
// order, followed by unknown keys in byte-wise order.
//
// # Execution
//
// Bind rewrites named placeholders into positional ones for
// go-sql-driver/mysql. A Driver owns the shared connection and a Store runs
// the statements of one table:
//
//	drv := sql.NewDriver(sql.Config{Host: "localhost", Database: "app"})
//	users := sql.NewStore(drv, t)
//	n, err := users.Insert(ctx, map[string]any{"name": "a8m"})
//
// A Driver without a host fails with scaffold.ErrMissingConnection before
// any connection attempt. Connectivity failures are logged as warnings and
// leave the driver not connected; operations then return
// scaffold.ErrNotConnected and retry the connection on the next call.
package sql
