package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultName, c.Name)
	assert.Equal(t, []Runtime{RuntimeExpress}, c.Runtimes)
	assert.Equal(t, []string{"cache"}, c.StorageNames())
	assert.Equal(t, "  ", c.Style.Indent())
	assert.Equal(t, "\n", c.Style.EOL())
	assert.True(t, c.Truncate)
	assert.True(t, c.Testing)
	assert.True(t, c.Linting)
	assert.Nil(t, c.Authentication)
}

func TestWithName(t *testing.T) {
	t.Run("sets name", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithName("music")(c))
		assert.Equal(t, "music", c.Name)
	})

	t.Run("empty name returns error", func(t *testing.T) {
		err := WithName("")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithTarget(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithTarget("out")(c))
	assert.Equal(t, "out", c.Target)

	err := WithTarget("")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithStorages(t *testing.T) {
	tests := []struct {
		name     string
		in       []string
		expected []string
		wantErr  bool
	}{
		{"single", []string{"mongo"}, []string{"mongo"}, false},
		{"canonical order", []string{"cache", "sql"}, []string{"sql", "cache"}, false},
		{"duplicates", []string{"cache", "mongo", "cache"}, []string{"mongo", "cache"}, false},
		{"all", []string{"cache", "mongo", "sql"}, []string{"sql", "mongo", "cache"}, false},
		{"invalid", []string{"sql", "redis"}, nil, true},
		{"empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithStorages(tt.in...)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.StorageNames())
		})
	}
}

func TestWithRuntimes(t *testing.T) {
	tests := []struct {
		name     string
		in       []string
		expected []Runtime
		wantErr  bool
	}{
		{"single", []string{"vercel"}, []Runtime{RuntimeVercel}, false},
		{"canonical order", []string{"websocket", "express"}, []Runtime{RuntimeExpress, RuntimeWebSocket}, false},
		{"duplicates", []string{"express", "express"}, []Runtime{RuntimeExpress}, false},
		{"invalid", []string{"grpc"}, nil, true},
		{"empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithRuntimes(tt.in...)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.Runtimes)
		})
	}
}

func TestWithIndent(t *testing.T) {
	t.Run("tabs", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithIndent(IndentTab, 1)(c))
		assert.Equal(t, "\t", c.Style.Indent())
	})

	t.Run("four spaces", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithIndent(IndentSpace, 4)(c))
		assert.Equal(t, "    ", c.Style.Indent())
	})

	t.Run("zero count", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithIndent(IndentSpace, 0)(c))
		assert.Equal(t, "", c.Style.Indent())
	})

	t.Run("invalid unit", func(t *testing.T) {
		err := WithIndent("dot", 2)(&Config{})
		assert.True(t, IsConfigError(err))
	})

	t.Run("negative count", func(t *testing.T) {
		err := WithIndent(IndentSpace, -1)(&Config{})
		assert.True(t, IsConfigError(err))
	})
}

func TestWithNewline(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithNewline(NewlineCRLF)(c))
	assert.Equal(t, "\r\n", c.Style.EOL())

	assert.True(t, IsConfigError(WithNewline("CR")(c)))
}

func TestWithTables(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithTables(&Table{Name: "a"})(c))
	require.NoError(t, WithTables(&Table{Name: "b"})(c))
	require.Len(t, c.Tables, 2)
	assert.Equal(t, "b", c.Tables[1].Name)

	assert.True(t, IsConfigError(WithTables(nil)(c)))
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithName(""), WithTarget(""), WithDescription("ok"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "Target")
	assert.Equal(t, "ok", c.Description)
}

func TestMustNewConfig(t *testing.T) {
	assert.NotPanics(t, func() { MustNewConfig(WithName("x")) })
	assert.Panics(t, func() { MustNewConfig(WithStorages("redis")) })
}

func TestValidate(t *testing.T) {
	id := SchemaField{Key: "id", Type: "int", UniqueIdentifier: true}
	tests := []struct {
		name    string
		opts    []Option
		table   bool
		wantErr bool
	}{
		{
			name: "valid",
			opts: []Option{WithTables(&Table{Name: "users", Schema: []SchemaField{id}})},
		},
		{
			name:    "empty table name",
			opts:    []Option{WithTables(&Table{Schema: []SchemaField{id}})},
			table:   true,
			wantErr: true,
		},
		{
			name:    "empty schema",
			opts:    []Option{WithTables(&Table{Name: "users"})},
			table:   true,
			wantErr: true,
		},
		{
			name: "duplicate table",
			opts: []Option{WithTables(
				&Table{Name: "users", Schema: []SchemaField{id}},
				&Table{Name: "users", Schema: []SchemaField{id}},
			)},
			table:   true,
			wantErr: true,
		},
		{
			name:    "duplicate key",
			opts:    []Option{WithTables(&Table{Name: "users", Schema: []SchemaField{id, id}})},
			table:   true,
			wantErr: true,
		},
		{
			name:    "key with hyphen",
			opts:    []Option{WithTables(&Table{Name: "users", Schema: []SchemaField{id, {Key: "first-name", Type: "text"}}})},
			table:   true,
			wantErr: true,
		},
		{
			name:    "key starting with digit",
			opts:    []Option{WithTables(&Table{Name: "users", Schema: []SchemaField{id, {Key: "2fa", Type: "text"}}})},
			table:   true,
			wantErr: true,
		},
		{
			name: "link field with space",
			opts: []Option{WithTables(
				&Table{Name: "users", Schema: []SchemaField{id}},
				&Table{Name: "posts", Schema: []SchemaField{id}, Links: map[string]Link{
					"authors": {Table: "users", AdditionalFields: []SchemaField{{Key: "sort order", Type: "int"}}},
				}},
			)},
			table:   true,
			wantErr: true,
		},
		{
			name:    "empty type",
			opts:    []Option{WithTables(&Table{Name: "users", Schema: []SchemaField{{Key: "id"}}})},
			table:   true,
			wantErr: true,
		},
		{
			name: "join table collides with declared table",
			opts: []Option{WithTables(
				&Table{Name: "albums", Schema: []SchemaField{id}, Links: map[string]Link{"tracks": {Table: "tracks"}}},
				&Table{Name: "tracks", Schema: []SchemaField{id}},
				&Table{Name: "albums_tracks", Schema: []SchemaField{id}},
			)},
			table:   true,
			wantErr: true,
		},
		{
			name: "unknown link target",
			opts: []Option{WithTables(
				&Table{Name: "albums", Schema: []SchemaField{id}, Links: map[string]Link{"tracks": {Table: "tracks"}}},
			)},
			wantErr: true,
		},
		{
			name: "unknown user table",
			opts: []Option{
				WithTables(&Table{Name: "users", Schema: []SchemaField{id}}),
				WithAuthentication(Authentication{Enable: true, UserTable: "accounts"}),
			},
			wantErr: true,
		},
		{
			name: "disabled authentication is not checked",
			opts: []Option{WithAuthentication(Authentication{UserTable: "accounts"})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts...)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.table, IsTableError(err))
		})
	}
}
