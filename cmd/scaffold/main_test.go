package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const template = `name: notes
databases: [sql, cache]
tables:
  - name: notes
    schema:
      - key: id
        type: int
        auto-increment: true
        unique-identifier: true
      - key: body
        type: text
`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	cmd := newRootCmd(&stderr)
	cmd.SetArgs(args)
	cmd.SetOut(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stderr.String(), err
}

func TestGenerateCommand(t *testing.T) {
	path := writeTemplate(t, template)
	out := t.TempDir()

	logs, err := execute(t, "generate", path, out, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, logs, "generation finished")
	assert.Contains(t, logs, `"run":`)

	for _, name := range []string{
		"package.json",
		"database/index.ts",
		"database/sql-database/schema.sql",
		"database/cache-database/index.ts",
		"endpoints/express/index.ts",
		"handlers/notes/create-note.ts",
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.NoDirExists(t, filepath.Join(out, "database", "mongo-database"))
}

func TestGenerateCommandVerbose(t *testing.T) {
	path := writeTemplate(t, template)
	logs, err := execute(t, "generate", path, t.TempDir(), "-v")
	require.NoError(t, err)
	assert.Contains(t, logs, `"message":"write file"`)
}

func TestGenerateCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no template", args: []string{"generate"}},
		{name: "too many args", args: []string{"generate", "a", "b", "c"}},
		{name: "missing template", args: []string{"generate", filepath.Join(t.TempDir(), "absent.yaml"), t.TempDir()}},
		{name: "invalid template", args: []string{"generate", writeTemplate(t, "unknown-key: 1\n"), t.TempDir()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRunnerWatch(t *testing.T) {
	path := writeTemplate(t, template)
	out := t.TempDir()
	r := &runner{template: path, out: out, workers: 1, log: zerolog.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.watch(ctx) }()

	index := filepath.Join(out, "database", "index.ts")
	require.Eventually(t, func() bool {
		_, err := os.Stat(index)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	// Regenerate after the template changes.
	require.NoError(t, os.Remove(index))
	require.NoError(t, os.WriteFile(path, []byte(template), 0o644))
	require.Eventually(t, func() bool {
		_, err := os.Stat(index)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
