package typescript

import (
	"context"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

// Language generates a TypeScript backend.
type Language struct{}

var _ gen.Language = Language{}

// Name implements gen.Language.
func (Language) Name() string { return "typescript" }

// Layers implements gen.Language.
func (Language) Layers(cfg *gen.Config) ([]*gen.Node, error) {
	tables, err := cfg.AllTables()
	if err != nil {
		return nil, err
	}
	b := &builder{
		cfg:    cfg,
		tables: tables,
		ctx:    segment.Context{Storages: cfg.StorageNames()},
	}
	return []*gen.Node{
		b.project(),
		b.config(),
		b.database(),
		b.endpoints(),
		b.errors(),
		b.handlers(),
		b.helpers(),
		b.types(),
	}, nil
}

// Generate writes the TypeScript backend described by cfg.
func Generate(ctx context.Context, cfg *gen.Config) error {
	return gen.Generate(ctx, cfg, Language{})
}
