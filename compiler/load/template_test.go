package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/scaffold/compiler/gen"
)

func TestLoadYAML(t *testing.T) {
	out := t.TempDir()
	cfg, err := Load(filepath.Join("testdata", "music.yaml"), gen.WithTarget(out))
	require.NoError(t, err)

	assert.Equal(t, "music", cfg.Name)
	assert.Equal(t, "Albums and their tracks.", cfg.Description)
	assert.Equal(t, out, cfg.Target)
	assert.Equal(t, []gen.Runtime{gen.RuntimeExpress, gen.RuntimeWebSocket}, cfg.Runtimes)
	assert.Equal(t, []string{"sql", "cache"}, cfg.StorageNames())
	assert.Equal(t, "\t", cfg.Style.Indent())
	assert.Equal(t, "\r\n", cfg.Style.EOL())
	assert.False(t, cfg.Truncate)
	assert.True(t, cfg.Testing)
	assert.False(t, cfg.Linting)
	assert.Equal(t, &gen.Authentication{
		Enable:           true,
		UserTable:        "users",
		UsesPassword:     true,
		MaintainSessions: true,
		CookieName:       "music-session",
	}, cfg.Authentication)

	require.Len(t, cfg.Tables, 3)
	users := cfg.Tables[0]
	assert.Nil(t, users.Functions)
	assert.Equal(t, gen.AllFunctions(), users.Enabled())
	assert.Equal(t, gen.SchemaField{Key: "id", Type: "int", AutoIncrement: true, UniqueIdentifier: true}, users.Schema[0])

	albums := cfg.Tables[1]
	assert.Equal(t, 0, albums.Schema[2].Default)
	assert.Equal(t, gen.Functions{Update: true, Get: true, GetMany: true}, albums.Enabled())
	assert.Equal(t, gen.Link{Table: "users"}, albums.Links["artists"])
	assert.Equal(t, gen.Link{
		Table:            "tracks",
		AdditionalFields: []gen.SchemaField{{Key: "position", Type: "int", Required: true}},
	}, albums.Links["tracks"])

	all, err := cfg.AllTables()
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestLoadJSONDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "minimal.json"))
	require.NoError(t, err)

	assert.Equal(t, gen.DefaultName, cfg.Name)
	assert.Equal(t, []gen.Runtime{gen.RuntimeExpress}, cfg.Runtimes)
	assert.Equal(t, []string{"cache"}, cfg.StorageNames())
	assert.Equal(t, "  ", cfg.Style.Indent())
	assert.Equal(t, "\n", cfg.Style.EOL())
	assert.True(t, cfg.Truncate)
	assert.True(t, cfg.Testing)
	assert.True(t, cfg.Linting)
	require.Len(t, cfg.Tables, 1)
	assert.Equal(t, "empty", cfg.Tables[0].Schema[1].Default)
}

func TestLoadStylePartial(t *testing.T) {
	tmpl, err := UnmarshalTemplate([]byte("style:\n  indentation-amount: 4\n"))
	require.NoError(t, err)
	cfg, err := tmpl.Config()
	require.NoError(t, err)
	assert.Equal(t, "    ", cfg.Style.Indent())
	assert.Equal(t, gen.NewlineLF, cfg.Style.Newline)
}

func TestEmptyTemplate(t *testing.T) {
	tmpl, err := UnmarshalTemplate(nil)
	require.NoError(t, err)
	cfg, err := tmpl.Config()
	require.NoError(t, err)
	assert.Equal(t, gen.DefaultName, cfg.Name)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		config  bool
	}{
		{name: "unknown key", content: "nmae: music\n"},
		{name: "invalid yaml", content: "tables: [\n"},
		{name: "link sequence", content: "tables:\n  - name: a\n    schema: [{key: id, type: int}]\n    links:\n      b: [x]\n"},
		{name: "unsupported runtime", content: "types: [grpc]\n", config: true},
		{name: "unsupported database", content: "databases: [redis]\n", config: true},
		{name: "unsupported newline", content: "style:\n  new-line: CR\n", config: true},
		{name: "unsupported indentation", content: "style:\n  indentation-type: dots\n", config: true},
		{name: "unknown link table", content: "tables:\n  - name: a\n    schema: [{key: id, type: int, unique-identifier: true}]\n    links:\n      b: missing\n", config: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "template.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, tt.config, gen.IsConfigError(err))
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLinkForms(t *testing.T) {
	const tables = `tables:
  - name: users
    schema:
      - key: id
        type: int
        unique-identifier: true
  - name: posts
    schema:
      - key: id
        type: int
        unique-identifier: true
    links:
      authors: users
      editors:
        table: users
`
	tmpl, err := UnmarshalTemplate([]byte(tables))
	require.NoError(t, err)
	cfg, err := tmpl.Config()
	require.NoError(t, err)

	posts := cfg.Tables[1]
	assert.Equal(t, gen.Link{Table: "users"}, posts.Links["authors"])
	assert.Equal(t, posts.Links["authors"], posts.Links["editors"])
	assert.Nil(t, posts.Links["editors"].AdditionalFields)
}
