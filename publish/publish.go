// Package publish sends lowered module graphs to NATS JetStream, both as a
// serialized document and as one graph-ingest entity message per subject.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/export"
	"github.com/c360studio/sdml/graph"
	"github.com/c360studio/sdml/vocabulary/sdml"
)

const (
	// GraphIngestSubject receives one entity message per lowered subject.
	GraphIngestSubject = "graph.ingest.entity"

	// DefaultDocumentSubject receives whole serialized module graphs.
	DefaultDocumentSubject = "sdml.graph.document"

	sourceName = "sdml"
)

// StreamPublisher is the part of a JetStream client the publisher needs.
// *natsclient.Client from semstreams satisfies it, as does *JetStream.
type StreamPublisher interface {
	PublishToStream(ctx context.Context, subject string, data []byte) error
}

// Publisher publishes lowered graphs.
type Publisher struct {
	stream          StreamPublisher
	documentSubject string
	entities        bool
	logger          *slog.Logger
	now             func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithDocumentSubject overrides DefaultDocumentSubject.
func WithDocumentSubject(subject string) Option {
	return func(p *Publisher) {
		if subject != "" {
			p.documentSubject = subject
		}
	}
}

// WithEntities enables or disables per-subject entity messages.
func WithEntities(enabled bool) Option {
	return func(p *Publisher) { p.entities = enabled }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher creates a publisher on top of stream. A nil stream yields a
// publisher that silently drops everything.
func NewPublisher(stream StreamPublisher, opts ...Option) *Publisher {
	p := &Publisher{
		stream:          stream,
		documentSubject: DefaultDocumentSubject,
		entities:        true,
		logger:          slog.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish serializes g in format and publishes the document, followed by the
// entity messages when enabled.
func (p *Publisher) Publish(ctx context.Context, module string, g *graph.Graph, format export.Format) error {
	if p == nil || p.stream == nil {
		return nil
	}

	content, err := export.String(g, format)
	if err != nil {
		return fmt.Errorf("serialize module %s: %w", module, err)
	}
	if err := p.PublishDocument(ctx, module, format, content, g.Len()); err != nil {
		return err
	}

	if !p.entities {
		return nil
	}
	n, err := p.PublishEntities(ctx, module, g)
	if err != nil {
		return err
	}
	p.logger.Debug("Published module graph",
		"module", module,
		"format", format,
		"subject", p.documentSubject,
		"entities", n)
	return nil
}

// PublishDocument publishes an already serialized module graph.
func (p *Publisher) PublishDocument(ctx context.Context, module string, format export.Format, content string, triples int) error {
	if p == nil || p.stream == nil {
		return nil
	}

	payload := &DocumentPayload{
		Module:    module,
		Format:    string(format),
		Content:   content,
		Triples:   triples,
		UpdatedAt: p.now(),
	}
	if info, ok := export.GetFormatInfo(format); ok {
		payload.MIMEType = info.MIMEType
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid document payload: %w", err)
	}

	data, err := json.Marshal(message.NewBaseMessage(DocumentType, payload, sourceName))
	if err != nil {
		return fmt.Errorf("marshal document message: %w", err)
	}
	if err := p.stream.PublishToStream(ctx, p.documentSubject, data); err != nil {
		return fmt.Errorf("publish document %s: %w", module, err)
	}
	return nil
}

// PublishEntities publishes one entity message per subject of g and returns
// the number published.
func (p *Publisher) PublishEntities(ctx context.Context, module string, g *graph.Graph) (int, error) {
	if p == nil || p.stream == nil {
		return 0, nil
	}

	entities := Entities(module, g, p.now())
	for i, entity := range entities {
		data, err := json.Marshal(message.NewBaseMessage(EntityType, entity, sourceName))
		if err != nil {
			return i, fmt.Errorf("marshal entity message: %w", err)
		}
		if err := p.stream.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
			return i, fmt.Errorf("publish entity %s: %w", entity.EntityID_, err)
		}
	}
	return len(entities), nil
}

// Entities groups the triples of g by subject, in first-seen subject order.
// Predicates in the sdml vocabulary use their dotted names.
// Blank node objects are rewritten to the entity ID of that blank node so
// nested structure stays traversable.
func Entities(module string, g *graph.Graph, now time.Time) []*EntityPayload {
	subjects := g.Subjects()
	entities := make([]*EntityPayload, 0, len(subjects))
	for _, s := range subjects {
		id := EntityID(module, s)
		matched := g.Match(s, nil, nil)
		triples := make([]message.Triple, 0, len(matched))
		for _, t := range matched {
			triples = append(triples, message.Triple{
				Subject:    id,
				Predicate:  predicateName(t.Predicate),
				Object:     objectValue(module, t.Object),
				Source:     "sdml.convert",
				Timestamp:  now,
				Confidence: 1.0,
			})
		}
		entities = append(entities, &EntityPayload{
			EntityID_:  id,
			TripleData: triples,
			UpdatedAt:  now,
		})
	}
	return entities
}

// EntityID generates a consistent entity ID for a lowered subject.
// Format: sdml.local.model.<module>.<kind>.<local name>
func EntityID(module string, subject quad.Value) string {
	switch v := subject.(type) {
	case quad.IRI:
		local := localName(string(v))
		if local == "" {
			return fmt.Sprintf("sdml.local.model.%s.module.%s", module, module)
		}
		return fmt.Sprintf("sdml.local.model.%s.definition.%s", module, local)
	case quad.BNode:
		return fmt.Sprintf("sdml.local.model.%s.node.%s", module, strings.ReplaceAll(string(v), ".", "_"))
	}
	return fmt.Sprintf("sdml.local.model.%s.value.%s", module, strings.ReplaceAll(subject.String(), ".", "_"))
}

// predicateName prefers the registered vocabulary name of p, falling back
// to the full IRI for terms outside the sdml vocabulary.
func predicateName(p quad.IRI) string {
	if name, ok := sdml.DottedName(string(p)); ok {
		return name
	}
	return string(p)
}

// localName is the part of iri after the last '#' or '/'.
func localName(iri string) string {
	local := iri[strings.LastIndexAny(iri, "#/")+1:]
	return strings.ReplaceAll(local, ".", "_")
}

func objectValue(module string, o quad.Value) any {
	switch v := o.(type) {
	case quad.IRI:
		return string(v)
	case quad.BNode:
		return EntityID(module, v)
	case quad.String:
		return string(v)
	case quad.LangString:
		return string(v.Value)
	case quad.TypedString:
		return string(v.Value)
	}
	return o.String()
}
