package gen

import (
	"errors"
	"fmt"
	"slices"

	"github.com/syssam/scaffold/dialect/sql"
)

// Default configuration values.
const (
	DefaultName        = "server"
	DefaultIndentCount = 2
)

// Option configures code generation.
type Option func(*Config) error

// WithName sets the name of the generated server.
func WithName(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Name", nil, "name cannot be empty")
		}
		c.Name = name
		return nil
	}
}

// WithDescription sets the description of the generated server.
func WithDescription(desc string) Option {
	return func(c *Config) error {
		c.Description = desc
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithRuntimes selects the generated server surfaces. Duplicates are
// ignored and the result is kept in canonical order.
// Supported runtimes: "express", "vercel", "websocket".
func WithRuntimes(names ...string) Option {
	return func(c *Config) error {
		if len(names) == 0 {
			return NewConfigError("Runtimes", nil, "at least one runtime is required")
		}
		var selected []Runtime
		for _, n := range names {
			r, err := NewRuntime(n)
			if err != nil {
				return NewConfigError("Runtimes", n, "unsupported runtime; use express, vercel, or websocket")
			}
			selected = append(selected, r)
		}
		c.Runtimes = nil
		for _, r := range runtimes {
			if slices.Contains(selected, r) {
				c.Runtimes = append(c.Runtimes, r)
			}
		}
		return nil
	}
}

// WithStorages selects the storage backends. Duplicates are ignored and
// the result is kept in canonical order.
// Supported backends: "sql", "mongo", "cache".
func WithStorages(names ...string) Option {
	return func(c *Config) error {
		if len(names) == 0 {
			return NewConfigError("Storages", nil, "at least one storage backend is required")
		}
		for _, n := range names {
			if _, err := NewStorage(n); err != nil {
				return NewConfigError("Storages", n, "unsupported storage; use sql, mongo, or cache")
			}
		}
		c.Storages = nil
		for _, d := range drivers {
			if slices.Contains(names, d.Name) {
				c.Storages = append(c.Storages, d)
			}
		}
		return nil
	}
}

// WithIndent sets the indentation unit and the number of units per level.
func WithIndent(unit IndentUnit, count int) Option {
	return func(c *Config) error {
		if unit != IndentSpace && unit != IndentTab {
			return NewConfigError("IndentUnit", unit, "unsupported indentation; use space or tab")
		}
		if count < 0 {
			return NewConfigError("IndentCount", count, "indentation amount cannot be negative")
		}
		c.Style.IndentUnit = unit
		c.Style.IndentCount = count
		return nil
	}
}

// WithNewline sets the line terminator of generated files.
func WithNewline(nl Newline) Option {
	return func(c *Config) error {
		if nl != NewlineLF && nl != NewlineCRLF {
			return NewConfigError("Newline", nl, "unsupported newline; use LF or CRLF")
		}
		c.Style.Newline = nl
		return nil
	}
}

// WithTruncate controls whether existing files are overwritten.
func WithTruncate(truncate bool) Option {
	return func(c *Config) error {
		c.Truncate = truncate
		return nil
	}
}

// WithTesting toggles the generated test setup.
func WithTesting(enabled bool) Option {
	return func(c *Config) error {
		c.Testing = enabled
		return nil
	}
}

// WithLinting toggles the generated lint setup.
func WithLinting(enabled bool) Option {
	return func(c *Config) error {
		c.Linting = enabled
		return nil
	}
}

// WithAuthentication configures the authentication functionality.
func WithAuthentication(auth Authentication) Option {
	return func(c *Config) error {
		c.Authentication = &auth
		return nil
	}
}

// WithTables appends tables to the configuration.
func WithTables(tables ...*Table) Option {
	return func(c *Config) error {
		for _, t := range tables {
			if t == nil {
				return NewConfigError("Tables", nil, "table cannot be nil")
			}
		}
		c.Tables = append(c.Tables, tables...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// defaultConfig returns a Config holding every documented default.
func defaultConfig() *Config {
	return &Config{
		Name:     DefaultName,
		Runtimes: []Runtime{RuntimeExpress},
		Storages: []*Storage{drivers[2]},
		Style: Style{
			IndentUnit:  IndentSpace,
			IndentCount: DefaultIndentCount,
			Newline:     NewlineLF,
		},
		Truncate: true,
		Testing:  true,
		Linting:  true,
	}
}

// NewConfig creates a new Config with the given options. Defaults are
// applied first, then the options, then structural validation.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// validate checks the structural shape of the tables: unique names and
// keys, typed fields and resolvable links.
func (c *Config) validate() error {
	for _, t := range c.Tables {
		if t.Name == "" {
			return NewTableError("", "", "table name cannot be empty", nil)
		}
		if len(t.Schema) == 0 {
			return NewTableError(t.Name, "", "schema cannot be empty", nil)
		}
	}
	all, err := c.AllTables()
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(all))
	for _, t := range all {
		if names[t.Name] {
			return NewTableError(t.Name, "", "duplicate table name", nil)
		}
		names[t.Name] = true
		keys := make(map[string]bool, len(t.Schema))
		for _, f := range t.Schema {
			switch {
			case f.Key == "":
				return NewTableError(t.Name, "", "field key cannot be empty", nil)
			case keys[f.Key]:
				return NewTableError(t.Name, f.Key, "duplicate field key", nil)
			case !sql.IsIdentifier(f.Key):
				return NewTableError(t.Name, f.Key, "field key must be an identifier", nil)
			case f.Type == "":
				return NewTableError(t.Name, f.Key, "field type cannot be empty", nil)
			}
			keys[f.Key] = true
		}
	}
	if a := c.Authentication; a != nil && a.Enable {
		if _, ok := c.Table(a.UserTable); !ok {
			return NewConfigError("Authentication", a.UserTable, fmt.Sprintf("unknown user table %q", a.UserTable))
		}
	}
	return nil
}
