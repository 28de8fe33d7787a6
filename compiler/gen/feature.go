package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureAuthentication provides a feature-flag for the authentication
	// handlers and endpoints.
	FeatureAuthentication = Feature{
		Name:        "authentication",
		Stage:       Alpha,
		Default:     false,
		Description: "Authentication generates login, logout and registration handlers backed by the user table",
		enabled: func(c *Config) bool {
			return c.Authentication != nil && c.Authentication.Enable
		},
		cleanup: func(c *Config) error {
			if err := os.RemoveAll(filepath.Join(c.Target, "handlers", "authentication")); err != nil {
				return err
			}
			for _, r := range []Runtime{RuntimeExpress, RuntimeVercel} {
				if err := remove(filepath.Join(c.Target, "endpoints", string(r)), "authentication.ts"); err != nil {
					return err
				}
			}
			return nil
		},
	}

	// FeatureTesting provides a feature-flag for the generated test setup.
	FeatureTesting = Feature{
		Name:        "testing",
		Stage:       Stable,
		Default:     true,
		Description: "Testing generates a jest configuration for the backend",
		enabled:     func(c *Config) bool { return c.Testing },
		cleanup: func(c *Config) error {
			return remove(c.Target, "jest.config.js")
		},
	}

	// FeatureLinting provides a feature-flag for the generated lint setup.
	FeatureLinting = Feature{
		Name:        "linting",
		Stage:       Stable,
		Default:     true,
		Description: "Linting generates an eslint configuration for the backend",
		enabled:     func(c *Config) bool { return c.Linting },
		cleanup: func(c *Config) error {
			return remove(c.Target, ".eslintrc.json")
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureAuthentication,
		FeatureTesting,
		FeatureLinting,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are finished, but breaking changes to their output are
	// expected.
	Alpha

	// Beta features are Alpha features with a settled output.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature of the scaffold codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// enabled reports whether the configuration turns the feature on.
	enabled func(*Config) bool

	// cleanup used to cleanup all changes when a feature-flag is removed.
	// e.g. delete files from previous codegen runs.
	cleanup func(*Config) error
}

// FeatureEnabled reports whether the named feature is enabled.
func (c *Config) FeatureEnabled(name string) bool {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f.enabled(c)
		}
	}
	return false
}

// Features returns the enabled features.
func (c *Config) Features() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.enabled(c) {
			fs = append(fs, f)
		}
	}
	return fs
}

// cleanupFeatures removes the output of disabled features left by
// previous runs.
func cleanupFeatures(c *Config) error {
	for _, f := range AllFeatures {
		if f.enabled(c) || f.cleanup == nil {
			continue
		}
		if err := f.cleanup(c); err != nil {
			return NewGenerationError("cleanup", f.Name, "remove disabled feature output", err)
		}
	}
	return nil
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
