// Package generate lowers SDML modules into RDF graphs.
//
// Every module becomes an owl:Ontology whose definitions, members, variants
// and annotations are described with the sdml vocabulary. Lowering is
// synchronous and fail-fast: the first resolution error aborts the module and
// no graph is returned for it.
package generate

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/cache"
	"github.com/c360studio/sdml/graph"
	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/owl"
	"github.com/c360studio/sdml/vocabulary/rdf"
	"github.com/c360studio/sdml/vocabulary/rdfs"
	"github.com/c360studio/sdml/vocabulary/sdml"
	"github.com/c360studio/sdml/vocabulary/xsd"
)

// ToGraph lowers m into a new graph. Qualified references are resolved
// against c, which is only read. On error the partial graph is discarded.
func ToGraph(m *model.Module, c cache.ModuleCache, opts ...Option) (*graph.Graph, error) {
	return NewGenerator(opts...).Generate(m, c)
}

// Generator lowers modules with a fixed set of options. It holds no per-module
// state and may be shared.
type Generator struct {
	opts   Options
	logger *slog.Logger
}

// NewGenerator returns a generator configured by opts.
func NewGenerator(opts ...Option) *Generator {
	o := newOptions(opts)
	return &Generator{opts: o, logger: o.Logger.With("component", "generate")}
}

// Generate lowers m into a new graph.
func (g *Generator) Generate(m *model.Module, c cache.ModuleCache) (*graph.Graph, error) {
	if m == nil {
		return nil, fmt.Errorf("generate: nil module")
	}
	started := time.Now()
	g.logger.Debug("Lowering module", "module", m.Name, "source_location", g.opts.IncludeSourceLocation,
		"sequence_encoding", g.opts.SequenceEncoding)

	out := graph.New()
	l := newLowerer(m, c, out, g.opts)
	err := l.module()
	g.opts.Metrics.observe(out, started, err)
	if err != nil {
		g.logger.Warn("Module lowering failed", "module", m.Name, "error", err)
		return nil, fmt.Errorf("lower module %s: %w", m.Name, err)
	}
	if depth := l.ctx.Depth(); depth != 0 {
		return nil, fmt.Errorf("lower module %s: subject stack left at depth %d", m.Name, depth)
	}

	g.logger.Debug("Lowered module", "module", m.Name, "triples", out.Len(),
		"duration", time.Since(started))
	return out, nil
}

func (l *lowerer) module() error {
	m := l.ctx.Module()
	if m.BaseURI == nil {
		return &MissingBaseURIError{Module: m.Name}
	}
	subject, err := joinName(m.BaseURI, "")
	if err != nil {
		return err
	}
	l.prefixes(m)

	return l.ctx.Within(subject, func() error {
		l.emitType(subject, owl.Ontology)
		l.emitType(subject, sdml.Module)
		l.emit(subject, sdml.SrcLabel, label(m.Name))
		l.sourceSpan(subject, m.Span)
		if m.VersionURI != nil {
			l.emit(subject, owl.VersionIRI, quad.IRI(m.VersionURI.String()))
		}
		if m.VersionInfo != "" {
			l.emit(subject, owl.VersionInfo, quad.String(m.VersionInfo))
		}
		if err := l.annotations(m); err != nil {
			return err
		}
		if err := l.imports(subject, m); err != nil {
			return err
		}
		for _, d := range m.Body.Definitions {
			if err := l.definition(d); err != nil {
				return fmt.Errorf("%s %s: %w", model.DefinitionKind(d), d.DefinitionName(), err)
			}
		}
		return nil
	})
}

// imports emits one owl:imports per imported module: its import version URI
// when given, otherwise its base URI from the cache.
func (l *lowerer) imports(subject quad.IRI, m *model.Module) error {
	for _, imported := range m.ImportedModules() {
		if imported.VersionURI != nil {
			l.emit(subject, owl.Imports, quad.IRI(imported.VersionURI.String()))
			continue
		}
		base, err := moduleBase(imported.Name, l.cache)
		if err != nil {
			return err
		}
		l.emit(subject, owl.Imports, quad.IRI(base.String()))
	}
	return nil
}

func (l *lowerer) prefixes(m *model.Module) {
	l.graph.SetPrefix(rdf.Prefix, rdf.Namespace)
	l.graph.SetPrefix(rdfs.Prefix, rdfs.Namespace)
	l.graph.SetPrefix(owl.Prefix, owl.Namespace)
	l.graph.SetPrefix(xsd.Prefix, xsd.Namespace)
	l.graph.SetPrefix(sdml.Prefix, sdml.Namespace)
	l.graph.SetPrefix(m.Name.String(), m.BaseURI.String())
	for _, imported := range m.ImportedModules() {
		if l.cache == nil {
			return
		}
		if base, ok := l.cache.ModuleNameToURI(imported.Name); ok {
			l.graph.SetPrefix(imported.Name.String(), base.String())
		}
	}
}
