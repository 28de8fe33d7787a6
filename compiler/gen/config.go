package gen

import (
	"strings"

	"github.com/syssam/scaffold/dialect/sql"
)

// Config holds the global codegen configuration shared by every
// generator node and compiler call. A Config is built once by NewConfig
// and must be treated as read-only afterwards.
type Config struct {
	// Name of the generated server. Defaults to "server".
	Name string

	// Description of the generated server.
	Description string

	// Target is the root directory of the generated tree.
	Target string

	// Runtimes are the server surfaces to generate, in canonical order.
	Runtimes []Runtime

	// Storages are the selected storage backends, in canonical order.
	Storages []*Storage

	// Style holds the formatting preferences of the output.
	Style Style

	// Truncate overwrites existing files when set. When unset, files that
	// already exist are left untouched.
	Truncate bool

	// Testing and Linting toggle the generated test and lint setup.
	Testing bool
	Linting bool

	// Authentication configures the optional authentication functionality.
	Authentication *Authentication

	// Tables of the backend, in declared order.
	Tables []*Table
}

// IndentUnit is the character an indentation level is made of.
type IndentUnit string

// Indentation units.
const (
	IndentSpace IndentUnit = "space"
	IndentTab   IndentUnit = "tab"
)

// Newline is the line terminator of generated files.
type Newline string

// Line terminators.
const (
	NewlineLF   Newline = "LF"
	NewlineCRLF Newline = "CRLF"
)

// Style holds the formatting preferences of the output.
type Style struct {
	IndentUnit  IndentUnit
	IndentCount int
	Newline     Newline
}

// Indent returns the text of one indentation level.
func (s Style) Indent() string {
	unit := " "
	if s.IndentUnit == IndentTab {
		unit = "\t"
	}
	return strings.Repeat(unit, s.IndentCount)
}

// EOL returns the line terminator.
func (s Style) EOL() string {
	if s.Newline == NewlineCRLF {
		return "\r\n"
	}
	return "\n"
}

// Authentication configures the generated authentication handlers.
type Authentication struct {
	Enable           bool
	UserTable        string
	UsesPassword     bool
	MaintainSessions bool
	CookieName       string
}

// HasRuntime reports whether runtime r is selected.
func (c *Config) HasRuntime(r Runtime) bool {
	for _, rt := range c.Runtimes {
		if rt == r {
			return true
		}
	}
	return false
}

// HasStorage reports whether the named storage backend is selected.
func (c *Config) HasStorage(name string) bool {
	for _, s := range c.Storages {
		if s.Name == name {
			return true
		}
	}
	return false
}

// StorageNames returns the names of the selected storage backends.
func (c *Config) StorageNames() []string {
	names := make([]string, len(c.Storages))
	for i, s := range c.Storages {
		names[i] = s.Name
	}
	return names
}

// Table returns the table with the given name.
func (c *Config) Table(name string) (*Table, bool) {
	for _, t := range c.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// SQLTables returns the compiler input of every relational table: each
// declared table in order, followed by the join tables of its links.
func (c *Config) SQLTables() ([]*sql.Table, error) {
	all, err := c.AllTables()
	if err != nil {
		return nil, err
	}
	tables := make([]*sql.Table, len(all))
	for i, t := range all {
		tables[i] = t.SQL()
	}
	return tables, nil
}
