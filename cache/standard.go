package cache

import (
	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/owl"
	"github.com/c360studio/sdml/vocabulary/rdf"
	"github.com/c360studio/sdml/vocabulary/rdfs"
	"github.com/c360studio/sdml/vocabulary/sdml"
	"github.com/c360studio/sdml/vocabulary/xsd"
)

// Base URIs of the standard modules that have no vocabulary package.
const (
	DCNamespace      = "http://purl.org/dc/elements/1.1/"
	DCTermsNamespace = "http://purl.org/dc/terms/"
	ISO3166Namespace = "https://sdml.io/modules/iso3166/2020.ttl#"
	ISO4217Namespace = "https://sdml.io/modules/iso4217/2020.ttl#"
	SKOSNamespace    = "http://www.w3.org/2004/02/skos/core#"
)

// standardModules maps each standard module name to its base URI.
var standardModules = []struct {
	name string
	base string
}{
	{"dc", DCNamespace},
	{"dc_terms", DCTermsNamespace},
	{"iso_3166", ISO3166Namespace},
	{"iso_4217", ISO4217Namespace},
	{owl.Prefix, owl.Namespace},
	{rdf.Prefix, rdf.Namespace},
	{rdfs.Prefix, rdfs.Namespace},
	{sdml.Prefix, sdml.Namespace},
	{"skos", SKOSNamespace},
	{xsd.Prefix, xsd.Namespace},
}

// StandardModules returns a header-only module, name and base URI, for each
// vocabulary every SDML module may import without loading it.
func StandardModules() []*model.Module {
	out := make([]*model.Module, 0, len(standardModules))
	for _, std := range standardModules {
		out = append(out, model.NewModule(model.MustIdentifier(std.name), model.MustURI(std.base)))
	}
	return out
}

// WithStandardModules adds the standard modules to s. A module already in
// the store under the same name is kept.
func (s *Store) WithStandardModules() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range StandardModules() {
		if _, ok := s.modules[m.Name]; !ok {
			s.modules[m.Name] = m
		}
	}
	return s
}
