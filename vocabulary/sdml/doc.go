// Package sdml provides the SDML ontology vocabulary used by the graph lowering
// engine.
//
// Every class, individual and predicate the lowering engine emits is a constant
// in this package. The engine refers to these constants and never builds SDML
// IRIs by string concatenation, so the emitted vocabulary cannot drift.
//
// # Semstreams Integration
//
// Predicates are registered with the semstreams vocabulary registry in init(),
// using three-level dotted names (sdml.category.property) and mapping each to
// its ontology IRI with vocabulary.WithIRI:
//
//	meta := vocabulary.GetPredicateMetadata(sdml.PredicateHasMember)
//	meta.StandardIRI == sdml.HasMember
//
// # Namespace
//
// All terms live under http://sdml.io/sdml-owl.ttl# and are written with the
// prefix "sdml" in Turtle output.
package sdml
