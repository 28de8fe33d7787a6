package gen

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/syssam/scaffold"
)

// Generator runs the layer tree of a Language into the target directory of
// a configuration.
type Generator struct {
	cfg     *Config
	lang    Language
	workers int
	log     zerolog.Logger
	metrics *metrics
	sem     *semaphore.Weighted
}

// NewGenerator creates a new generator for cfg.
// You must call WithLanguage() to set a language before calling Generate().
//
// Example:
//
//	cfg, err := gen.NewConfig(gen.WithTarget(out))
//	if err != nil {
//		return err
//	}
//	g := gen.NewGenerator(cfg).WithLanguage(typescript.Language{})
//	err = g.Generate(ctx)
func NewGenerator(cfg *Config) *Generator {
	return &Generator{
		cfg:     cfg,
		workers: runtime.GOMAXPROCS(0),
		log:     zerolog.Nop(),
		metrics: &metrics{},
	}
}

// WithLanguage sets the language producing the layers.
func (g *Generator) WithLanguage(l Language) *Generator {
	if l != nil {
		g.lang = l
	}
	return g
}

// WithWorkers sets the number of files rendered concurrently.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithLogger sets the logger of file writes and the run summary.
func (g *Generator) WithLogger(l zerolog.Logger) *Generator {
	g.log = l
	return g
}

// Metrics returns a snapshot of the output written so far.
func (g *Generator) Metrics() Metrics {
	return g.metrics.snapshot()
}

// Generate runs every layer concurrently and waits for all of them. The
// first failure is returned; files written before it stay on disk.
func (g *Generator) Generate(ctx context.Context) error {
	switch {
	case g.cfg == nil:
		return NewConfigError("Config", nil, "config cannot be nil")
	case g.cfg.Target == "":
		return NewConfigError("Target", nil, "no target directory set")
	case g.lang == nil:
		return scaffold.NewUsedAbstractError("Generator", "Generate")
	}
	start := time.Now()
	if err := os.MkdirAll(g.cfg.Target, 0o755); err != nil {
		return NewGenerationError("mkdir", g.cfg.Target, "create target directory", err)
	}
	layers, err := g.lang.Layers(g.cfg)
	if err != nil {
		return NewGenerationError("layers", "", g.lang.Name(), err)
	}
	g.sem = semaphore.NewWeighted(int64(g.workers))
	root, err := g.emitter(g.cfg.Target)
	if err != nil {
		return err
	}
	for _, n := range layers {
		root.Go(func() error { return g.run(ctx, g.cfg.Target, n) })
	}
	if err := root.Wait(); err != nil {
		return err
	}
	if g.cfg.Truncate {
		if err := cleanupFeatures(g.cfg); err != nil {
			return err
		}
	}
	m := g.metrics.snapshot()
	g.log.Info().
		Str("language", g.lang.Name()).
		Str("target", g.cfg.Target).
		Int("written", m.FilesWritten).
		Int("skipped", m.FilesSkipped).
		Int64("bytes", m.BytesWritten).
		Dur("duration", time.Since(start)).
		Msg("generation finished")
	return nil
}

func (g *Generator) emitter(dir string) (*Emitter, error) {
	e, err := NewEmitter(g.cfg, dir)
	if err != nil {
		return nil, err
	}
	e.metrics = g.metrics
	e.log = g.log
	return e, nil
}

// run executes n on a fresh emitter at parent: descend, write the files in
// order, then fan out the children and join them.
func (g *Generator) run(ctx context.Context, parent string, n *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := g.emitter(parent)
	if err != nil {
		return err
	}
	defer e.Close()
	if n.Dir != "" {
		if err := e.Descend(n.Dir); err != nil {
			return err
		}
	}
	for _, f := range n.Files {
		if err := g.write(ctx, e, f); err != nil {
			return err
		}
	}
	dir := e.Dir()
	for _, c := range n.Children {
		e.Go(func() error { return g.run(ctx, dir, c) })
	}
	return e.Wait()
}

func (g *Generator) write(ctx context.Context, e *Emitter, f File) error {
	path := filepath.Join(e.Dir(), f.Name)
	if f.Render == nil {
		return NewGenerationError("render", path, "file has no renderer", scaffold.NewUsedAbstractError("File", "Render"))
	}
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)
	if err := e.CreateFile(f.Name); err != nil {
		return err
	}
	if err := f.Render(e); err != nil {
		_ = e.Close()
		return NewGenerationError("render", path, "render file", err)
	}
	return e.WriteAndClose()
}

// Generate runs the layers of lang for cfg with the default settings.
func Generate(ctx context.Context, cfg *Config, lang Language) error {
	return NewGenerator(cfg).WithLanguage(lang).Generate(ctx)
}
