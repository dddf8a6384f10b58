package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/sdml/cache"
	"github.com/c360studio/sdml/config"
	"github.com/c360studio/sdml/export"
	"github.com/c360studio/sdml/generate"
	"github.com/c360studio/sdml/graph"
	"github.com/c360studio/sdml/loader"
	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/publish"
)

// ConvertResult summarizes one conversion.
type ConvertResult struct {
	Module  model.Identifier
	Format  export.Format
	Graph   *graph.Graph
	// Modules is the number of module documents loaded from disk.
	Modules int
}

// App wires configuration, loading, lowering, serialization and publishing.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	loader    *loader.Loader
	generator *generate.Generator
	publisher *publish.Publisher
	metrics   *generate.Metrics
	registry  *prometheus.Registry
}

// NewApp creates a new application instance. stream may be nil, which
// disables publishing.
func NewApp(cfg *config.Config, logger *slog.Logger, stream publish.StreamPublisher) *App {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	metrics := generate.NewMetrics(registry)
	opts := append(cfg.GenerateOptions(),
		generate.WithLogger(logger),
		generate.WithMetrics(metrics),
	)

	var publisher *publish.Publisher
	if stream != nil {
		publisher = publish.NewPublisher(stream,
			publish.WithDocumentSubject(cfg.NATS.Subject),
			publish.WithEntities(cfg.PublishEntities()),
			publish.WithLogger(logger),
		)
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		loader:    loader.New(logger),
		generator: generate.NewGenerator(opts...),
		publisher: publisher,
		metrics:   metrics,
		registry:  registry,
	}
}

// Registry exposes the lowering metrics.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Convert loads every module document, lowers the module called name and
// writes it to out in format. Every call starts from a fresh cache so
// edited documents are always re-read.
func (a *App) Convert(ctx context.Context, name string, format export.Format, color bool, out io.Writer) (*ConvertResult, error) {
	id, err := model.NewIdentifier(name)
	if err != nil {
		return nil, err
	}

	store := cache.NewStore().WithStandardModules()
	loaded, err := a.loader.LoadInto(store, a.cfg.Modules.Paths)
	if err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}

	m, ok := store.Get(id)
	if !ok {
		return nil, fmt.Errorf("module %s not found in %v", id, a.cfg.Modules.Paths)
	}
	if missing := store.MissingImports(m); len(missing) > 0 {
		a.logger.Warn("Module imports are not loaded", "module", id, "missing", missing)
	}

	g, err := a.generator.Generate(m, store)
	if err != nil {
		return nil, err
	}

	if err := export.Serialize(out, g, format, export.WithColor(color)); err != nil {
		return nil, err
	}

	if err := a.publisher.Publish(ctx, id.String(), g, format); err != nil {
		return nil, err
	}

	a.logger.Info("Converted module",
		"module", id,
		"format", format,
		"triples", g.Len(),
		"modules_loaded", len(loaded))

	return &ConvertResult{Module: id, Format: format, Graph: g, Modules: len(loaded)}, nil
}
