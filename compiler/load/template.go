package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/scaffold/compiler/gen"
)

// Template is the declarative description of a backend as read from a
// YAML or JSON template file.
type Template struct {
	Name            string           `yaml:"name,omitempty"`
	Description     string           `yaml:"description,omitempty"`
	Types           []string         `yaml:"types,omitempty"`
	Databases       []string         `yaml:"databases,omitempty"`
	Style           *Style           `yaml:"style,omitempty"`
	Truncate        *bool            `yaml:"truncate,omitempty"`
	Testing         *bool            `yaml:"testing,omitempty"`
	Linting         *bool            `yaml:"linting,omitempty"`
	Functionalities *Functionalities `yaml:"functionalities,omitempty"`
	Tables          []*Table         `yaml:"tables,omitempty"`
}

// Style holds the formatting preferences of a template.
type Style struct {
	IndentationType   string `yaml:"indentation-type,omitempty"`
	IndentationAmount *int   `yaml:"indentation-amount,omitempty"`
	NewLine           string `yaml:"new-line,omitempty"`
}

// Functionalities holds the optional functionality of a template.
type Functionalities struct {
	Authentication *Authentication `yaml:"authentication,omitempty"`
}

// Authentication configures the authentication functionality.
type Authentication struct {
	Enable           bool   `yaml:"enable"`
	UserTable        string `yaml:"user-table"`
	UsesPassword     bool   `yaml:"uses-password,omitempty"`
	MaintainSessions bool   `yaml:"maintain-sessions,omitempty"`
	CookieName       string `yaml:"cookie-name,omitempty"`
}

// Table is a table of a template.
type Table struct {
	Name      string           `yaml:"name"`
	Schema    []*Field         `yaml:"schema"`
	Links     map[string]*Link `yaml:"links,omitempty"`
	Functions *Functions       `yaml:"functions,omitempty"`
}

// Field is a column of a template table.
type Field struct {
	Key              string `yaml:"key"`
	Type             string `yaml:"type"`
	Required         bool   `yaml:"required,omitempty"`
	AutoIncrement    bool   `yaml:"auto-increment,omitempty"`
	UniqueIdentifier bool   `yaml:"unique-identifier,omitempty"`
	Default          any    `yaml:"default,omitempty"`
}

// Functions toggles the generated operations of a table. Absent keys are
// enabled.
type Functions struct {
	Create  *bool `yaml:"create,omitempty"`
	Update  *bool `yaml:"update,omitempty"`
	Delete  *bool `yaml:"delete,omitempty"`
	Get     *bool `yaml:"get,omitempty"`
	GetMany *bool `yaml:"get-many,omitempty"`
}

// Link relates a table to another one. In a template it is either the
// target table name or a mapping with the additional join fields.
type Link struct {
	Table            string   `yaml:"table"`
	AdditionalFields []*Field `yaml:"additional-fields,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler for the scalar and the
// mapping form of a link.
func (l *Link) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&l.Table)
	case yaml.MappingNode:
		type plain Link
		return node.Decode((*plain)(l))
	default:
		return fmt.Errorf("line %d: link must be a table name or a mapping", node.Line)
	}
}

// Load reads the template at path and builds its configuration. The
// options are applied after the template, e.g. to set the target.
func Load(path string, opts ...gen.Option) (*gen.Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read template: %w", err)
	}
	t, err := UnmarshalTemplate(buf)
	if err != nil {
		return nil, fmt.Errorf("load: template %s: %w", path, err)
	}
	return t.Config(opts...)
}

// UnmarshalTemplate decodes a YAML or JSON template. Unknown keys are
// rejected.
func UnmarshalTemplate(buf []byte) (*Template, error) {
	t := &Template{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return t, nil
}

// Config builds the configuration described by the template.
func (t *Template) Config(opts ...gen.Option) (*gen.Config, error) {
	options, err := t.Options()
	if err != nil {
		return nil, err
	}
	return gen.NewConfig(append(options, opts...)...)
}

// Options returns the options of the keys set in the template. Keys left
// out keep the configuration defaults.
func (t *Template) Options() ([]gen.Option, error) {
	var opts []gen.Option
	if t.Name != "" {
		opts = append(opts, gen.WithName(t.Name))
	}
	if t.Description != "" {
		opts = append(opts, gen.WithDescription(t.Description))
	}
	if len(t.Types) > 0 {
		opts = append(opts, gen.WithRuntimes(t.Types...))
	}
	if len(t.Databases) > 0 {
		opts = append(opts, gen.WithStorages(t.Databases...))
	}
	if s := t.Style; s != nil {
		opts = append(opts, func(c *gen.Config) error {
			unit, count := c.Style.IndentUnit, c.Style.IndentCount
			if s.IndentationType != "" {
				unit = gen.IndentUnit(s.IndentationType)
			}
			if s.IndentationAmount != nil {
				count = *s.IndentationAmount
			}
			return gen.WithIndent(unit, count)(c)
		})
		if s.NewLine != "" {
			opts = append(opts, gen.WithNewline(gen.Newline(s.NewLine)))
		}
	}
	if t.Truncate != nil {
		opts = append(opts, gen.WithTruncate(*t.Truncate))
	}
	if t.Testing != nil {
		opts = append(opts, gen.WithTesting(*t.Testing))
	}
	if t.Linting != nil {
		opts = append(opts, gen.WithLinting(*t.Linting))
	}
	if f := t.Functionalities; f != nil && f.Authentication != nil {
		a := f.Authentication
		opts = append(opts, gen.WithAuthentication(gen.Authentication{
			Enable:           a.Enable,
			UserTable:        a.UserTable,
			UsesPassword:     a.UsesPassword,
			MaintainSessions: a.MaintainSessions,
			CookieName:       a.CookieName,
		}))
	}
	if len(t.Tables) > 0 {
		tables := make([]*gen.Table, len(t.Tables))
		for i, tt := range t.Tables {
			table, err := tt.table()
			if err != nil {
				return nil, err
			}
			tables[i] = table
		}
		opts = append(opts, gen.WithTables(tables...))
	}
	return opts, nil
}

func (t *Table) table() (*gen.Table, error) {
	if t == nil {
		return nil, gen.NewTableError("", "", "table cannot be null", nil)
	}
	schema, err := fields(t.Name, t.Schema)
	if err != nil {
		return nil, err
	}
	table := &gen.Table{Name: t.Name, Schema: schema}
	if len(t.Links) > 0 {
		table.Links = make(map[string]gen.Link, len(t.Links))
		for name, l := range t.Links {
			if l == nil || l.Table == "" {
				return nil, gen.NewTableError(t.Name, "", fmt.Sprintf("link %q has no table", name), nil)
			}
			additional, err := fields(t.Name, l.AdditionalFields)
			if err != nil {
				return nil, err
			}
			table.Links[name] = gen.Link{Table: l.Table, AdditionalFields: additional}
		}
	}
	if f := t.Functions; f != nil {
		table.Functions = &gen.Functions{
			Create:  enabled(f.Create),
			Update:  enabled(f.Update),
			Delete:  enabled(f.Delete),
			Get:     enabled(f.Get),
			GetMany: enabled(f.GetMany),
		}
	}
	return table, nil
}

func fields(table string, in []*Field) ([]gen.SchemaField, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]gen.SchemaField, len(in))
	for i, f := range in {
		if f == nil {
			return nil, gen.NewTableError(table, "", "field cannot be null", nil)
		}
		out[i] = gen.SchemaField{
			Key:              f.Key,
			Type:             f.Type,
			Required:         f.Required,
			AutoIncrement:    f.AutoIncrement,
			UniqueIdentifier: f.UniqueIdentifier,
			Default:          f.Default,
		}
	}
	return out, nil
}

func enabled(b *bool) bool { return b == nil || *b }
