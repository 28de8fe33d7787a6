package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/typescript"
	"github.com/syssam/scaffold/compiler/load"
	"github.com/syssam/scaffold/internal/logger"
)

// debounce is the quiet period after a template change before
// regenerating. Editors often write a file in several steps.
const debounce = 100 * time.Millisecond

// generateCmd generates the backend described by a template.
func generateCmd(opts *options) *cobra.Command {
	var (
		watch   bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "generate <template> [out]",
		Short: "Generate the backend described by a template",
		Args:  cobra.RangeArgs(1, 2),
		Example: `  scaffold generate template.yaml ./server
  scaffold generate template.json --workers 4 -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := "."
			if len(args) == 2 {
				out = args[1]
			}
			level := "info"
			if opts.verbose {
				level = "debug"
			}
			log := logger.New(&logger.Config{Level: level, Format: logger.FormatAuto, Output: opts.stderr})
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			r := &runner{template: args[0], out: out, workers: workers, log: log}
			if watch {
				return r.watch(ctx)
			}
			_, err := r.run(ctx)
			return err
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate whenever the template changes")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of files rendered concurrently (default: number of CPUs)")
	return cmd
}

// runner generates one template into one output directory.
type runner struct {
	template string
	out      string
	workers  int
	log      zerolog.Logger
}

// run loads the template and generates it once.
func (r *runner) run(ctx context.Context) (gen.Metrics, error) {
	log := r.log.With().Str("run", uuid.NewString()).Logger()
	cfg, err := load.Load(r.template, gen.WithTarget(r.out))
	if err != nil {
		return gen.Metrics{}, err
	}
	g := gen.NewGenerator(cfg).
		WithLanguage(typescript.Language{}).
		WithWorkers(r.workers).
		WithLogger(log)
	if err := g.Generate(ctx); err != nil {
		return g.Metrics(), fmt.Errorf("generate %s: %w", r.template, err)
	}
	return g.Metrics(), nil
}

// watch generates the template, then regenerates it on every change until
// ctx is canceled. Failed runs are logged and do not end the loop.
func (r *runner) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	// Watch the directory: editors replace files on save, which drops a
	// watch on the file itself.
	dir := filepath.Dir(r.template)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	name := filepath.Clean(r.template)
	if _, err := r.run(ctx); err != nil {
		r.log.Error().Err(err).Msg("generation failed")
	}
	r.log.Info().Str("template", name).Msg("watching for changes")

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if _, err := r.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				r.log.Error().Err(err).Msg("generation failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn().Err(err).Msg("watcher error")
		}
	}
}
