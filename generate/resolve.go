package generate

import (
	"net/url"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/cache"
	"github.com/c360studio/sdml/model"
)

// Resolve returns the IRI named by ref. An unqualified identifier is joined to
// the current module's base URI; a qualified one to the base URI of the named
// module, looked up in c. A qualified reference to the current module itself
// does not need the cache.
func Resolve(ref model.IdentifierReference, current *model.Module, c cache.ModuleCache) (quad.IRI, error) {
	switch ref := ref.(type) {
	case nil:
		return "", missingReference()
	case model.Identifier:
		if current.BaseURI == nil {
			return "", &MissingBaseURIError{Module: current.Name}
		}
		return joinName(current.BaseURI, ref.String())
	case model.QualifiedIdentifier:
		if ref.Module == current.Name {
			return Resolve(ref.Name, current, c)
		}
		base, err := moduleBase(ref.Module, c)
		if err != nil {
			return "", err
		}
		return joinName(base, ref.Name.String())
	}
	return "", &URIParseError{Value: ref.String(), Err: errUnsupportedReference}
}

func missingReference() error {
	return &URIParseError{Err: errMissingReference}
}

// moduleBase returns the base URI of a cached module.
func moduleBase(name model.Identifier, c cache.ModuleCache) (*model.URI, error) {
	if c == nil {
		return nil, &ModuleNotLoadedError{Module: name}
	}
	if _, ok := c.Get(name); !ok {
		return nil, &ModuleNotLoadedError{Module: name}
	}
	base, ok := c.ModuleNameToURI(name)
	if !ok {
		return nil, &MissingBaseURIError{Module: name}
	}
	return base, nil
}

// joinName appends name to the lexical form of base, so fragment-style bases
// such as "http://ex/onto#" keep their trailing "#".
func joinName(base *model.URI, name string) (quad.IRI, error) {
	s := base.String() + name
	if _, err := url.Parse(s); err != nil {
		return "", &URIParseError{Value: s, Err: err}
	}
	return quad.IRI(s), nil
}
