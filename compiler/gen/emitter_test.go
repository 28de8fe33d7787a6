package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterText(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		expected string
	}{
		{
			name:     "spaces and LF",
			style:    Style{IndentUnit: IndentSpace, IndentCount: 2, Newline: NewlineLF},
			expected: "// header\n\nclass A {\n  /**\n   * Doc.\n   *\n   */\n  run();\n}\n",
		},
		{
			name:     "tabs and CRLF",
			style:    Style{IndentUnit: IndentTab, IndentCount: 1, Newline: NewlineCRLF},
			expected: "// header\r\n\r\nclass A {\r\n\t/**\r\n\t * Doc.\r\n\t *\r\n\t */\r\n\trun();\r\n}\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewBuffer(&Config{Style: tt.style})
			e.SimpleComment("header")
			e.Gap()
			e.Append("class A {")
			e.Indent()
			e.Comment("Doc.", "")
			e.Appendf("%s();", "run")
			e.Dedent()
			e.Dedent()
			e.Append("}")
			assert.Equal(t, tt.expected, e.String())
		})
	}
}

func TestEmitterEmptyLineHasNoIndent(t *testing.T) {
	e := NewBuffer(&Config{Style: Style{IndentUnit: IndentSpace, IndentCount: 4}})
	e.Indent()
	e.Append("")
	e.Append("x")
	assert.Equal(t, "\n    x\n", e.String())
}

func TestEmitterFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Truncate: true, Style: Style{IndentUnit: IndentSpace, IndentCount: 2}}
	m := &metrics{}

	e, err := NewEmitter(cfg, dir)
	require.NoError(t, err)
	e.metrics = m
	require.NoError(t, e.Descend("config"))
	assert.Equal(t, filepath.Join(dir, "config"), e.Dir())

	require.NoError(t, e.CreateFile("index.ts"))
	e.Indent()
	e.Append("a;")
	require.NoError(t, e.WriteAndClose())

	require.NoError(t, e.CreateFile("empty.ts"))
	require.NoError(t, e.WriteAndClose())

	b, err := os.ReadFile(filepath.Join(dir, "config", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "  a;\n", string(b), "depth is reset per file")
	assert.FileExists(t, filepath.Join(dir, "config", "empty.ts"))
	assert.Equal(t, Metrics{FilesWritten: 2, BytesWritten: 5}, m.snapshot())
	assert.Empty(t, e.String())
}

func TestEmitterSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.ts"), []byte("kept\n"), 0o644))
	m := &metrics{}

	e, err := NewEmitter(&Config{}, dir)
	require.NoError(t, err)
	e.metrics = m
	assert.True(t, e.Exists("index.ts"))

	require.NoError(t, e.CreateFile("index.ts"))
	e.Append("replaced")
	require.NoError(t, e.WriteAndClose())
	require.NoError(t, e.CreateFile("new.ts"))
	e.Append("new")
	require.NoError(t, e.WriteAndClose())

	b, err := os.ReadFile(filepath.Join(dir, "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "kept\n", string(b))
	b, err = os.ReadFile(filepath.Join(dir, "new.ts"))
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(b))
	assert.Equal(t, Metrics{FilesWritten: 1, FilesSkipped: 1, BytesWritten: 4}, m.snapshot())
}

func TestEmitterTruncates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.ts"), []byte("a much longer previous content\n"), 0o644))

	e, err := NewEmitter(&Config{Truncate: true}, dir)
	require.NoError(t, err)
	require.NoError(t, e.CreateFile("index.ts"))
	e.Append("short")
	require.NoError(t, e.WriteAndClose())

	b, err := os.ReadFile(filepath.Join(dir, "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "short\n", string(b))
}

func TestEmitterErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewEmitter(&Config{}, filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
	})

	t.Run("write without file", func(t *testing.T) {
		e := NewBuffer(&Config{})
		err := e.WriteAndClose()
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
	})

	t.Run("descend onto a file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), nil, 0o644))
		e, err := NewEmitter(&Config{}, dir)
		require.NoError(t, err)
		err = e.Descend("config")
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
	})

	t.Run("close is idempotent", func(t *testing.T) {
		e, err := NewEmitter(&Config{Truncate: true}, t.TempDir())
		require.NoError(t, err)
		require.NoError(t, e.CreateFile("a.ts"))
		require.NoError(t, e.Close())
		require.NoError(t, e.Close())
	})
}
