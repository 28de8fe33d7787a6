package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureEnabled(t *testing.T) {
	c := &Config{Testing: true}
	assert.True(t, c.FeatureEnabled(FeatureTesting.Name))
	assert.False(t, c.FeatureEnabled(FeatureLinting.Name))
	assert.False(t, c.FeatureEnabled(FeatureAuthentication.Name))
	assert.False(t, c.FeatureEnabled("unknown"))

	c.Authentication = &Authentication{Enable: true}
	names := make([]string, 0, 2)
	for _, f := range c.Features() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"authentication", "testing"}, names)
}

func TestCleanupFeatures(t *testing.T) {
	cfg := testConfig(t)
	cfg.Testing = false
	for _, path := range []string{
		"jest.config.js",
		".eslintrc.json",
		"handlers/authentication/login.ts",
		"endpoints/express/authentication.ts",
		"endpoints/vercel/authentication.ts",
	} {
		full := filepath.Join(cfg.Target, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("old"), 0o644))
	}

	require.NoError(t, Generate(context.Background(), cfg, stubLanguage{}))

	assert.NoFileExists(t, filepath.Join(cfg.Target, "jest.config.js"))
	assert.FileExists(t, filepath.Join(cfg.Target, ".eslintrc.json"))
	assert.NoDirExists(t, filepath.Join(cfg.Target, "handlers", "authentication"))
	assert.NoDirExists(t, filepath.Join(cfg.Target, "endpoints", "vercel"))
	assert.NoDirExists(t, filepath.Join(cfg.Target, "endpoints", "express"))
}

func TestCleanupSkippedWithoutTruncate(t *testing.T) {
	cfg := testConfig(t)
	cfg.Truncate = false
	cfg.Linting = false
	path := filepath.Join(cfg.Target, ".eslintrc.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	require.NoError(t, Generate(context.Background(), cfg, stubLanguage{}))
	assert.FileExists(t, path)
}
