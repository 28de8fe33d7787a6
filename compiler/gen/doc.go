// Package gen provides the code generation core of scaffold.
//
// This package holds the configuration of a run, the table model, the
// generator tree and the emitter that writes the output files. Concrete
// output languages live in subpackages; the TypeScript backend is
// implemented by package typescript.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Template file (YAML)
//	        ↓
//	   load.Load (compiler/load)
//	        ↓
//	   Config + Tables (join tables derived from links)
//	        ↓
//	   Language.Layers (generator node tree)
//	        ↓
//	   Generator (concurrent emitters, one per node)
//	        ↓
//	   Generated backend ({target}/)
//
// # Key Types
//
//   - Config: Global configuration of a run, read-only once built
//   - Table, SchemaField, Link: The data model of the backend
//   - Storage, Runtime: The selectable storage backends and server surfaces
//   - Node, File: The generator tree
//   - Emitter: Directory cursor, text buffer and subtask group of a node
//   - Generator: Runs the layers of a Language
//
// # Concurrency
//
// Every layer returned by a Language runs on its own emitter. A node
// writes its files in order, then starts its children concurrently and
// waits for them. Siblings target disjoint directories, so emitters never
// share a file. The number of files rendered at once is bounded by
// WithWorkers.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: Invalid options or unresolvable references
//   - TableError: Structural errors of a table definition
//   - GenerationError: Failures while writing the output tree
//
// Example error handling:
//
//	cfg, err := gen.NewConfig(opts...)
//	if err != nil {
//	    if gen.IsTableError(err) {
//	        // Handle table-specific error
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithName("music"),
//	    gen.WithTarget("./server"),
//	    gen.WithStorages("sql", "cache"),
//	    gen.WithRuntimes("express"),
//	    gen.WithTables(tables...),
//	)
//
// # Usage
//
//	g := gen.NewGenerator(cfg).
//	    WithLanguage(typescript.Language{}).
//	    WithWorkers(4)
//	err := g.Generate(ctx)
//
// # Features
//
// Optional output is guarded by feature flags. When Truncate is set, the
// output of disabled features left by a previous run is removed:
//
//   - authentication: Login, logout and registration handlers
//   - testing: Jest configuration
//   - linting: ESLint configuration
package gen
