package generate

import (
	"errors"
	"fmt"

	"github.com/c360studio/sdml/model"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrMissingBaseURI  = errors.New("module has no base URI")
	ErrModuleNotLoaded = errors.New("module not loaded")
	ErrURIParse        = errors.New("invalid URI")
	ErrGenerator       = errors.New("generator failed")

	errUnsupportedReference = errors.New("unsupported identifier reference")
	errMissingReference     = errors.New("missing identifier reference")
)

// MissingBaseURIError reports a module without the base URI needed to resolve a name.
type MissingBaseURIError struct {
	Module model.Identifier
}

func (e *MissingBaseURIError) Error() string {
	return fmt.Sprintf("module %q has no base URI", e.Module)
}

func (e *MissingBaseURIError) Is(target error) bool { return target == ErrMissingBaseURI }

// ModuleNotLoadedError reports a qualified reference to a module absent from the cache.
type ModuleNotLoadedError struct {
	Module model.Identifier
}

func (e *ModuleNotLoadedError) Error() string {
	return fmt.Sprintf("module %q not loaded", e.Module)
}

func (e *ModuleNotLoadedError) Is(target error) bool { return target == ErrModuleNotLoaded }

// URIParseError reports a malformed base URI or joined IRI.
type URIParseError struct {
	Value string
	Err   error
}

func (e *URIParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid URI: %v", e.Err)
	}
	return fmt.Sprintf("invalid URI %q: %v", e.Value, e.Err)
}

func (e *URIParseError) Unwrap() error        { return e.Err }
func (e *URIParseError) Is(target error) bool { return target == ErrURIParse }

// GeneratorError wraps a failure in a downstream writer, such as a serializer.
type GeneratorError struct {
	Name    string
	Message string
	Err     error
}

// NewGeneratorError wraps err as a failure of the named generator.
func NewGeneratorError(name, message string, err error) error {
	return &GeneratorError{Name: name, Message: message, Err: err}
}

func (e *GeneratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func (e *GeneratorError) Unwrap() error        { return e.Err }
func (e *GeneratorError) Is(target error) bool { return target == ErrGenerator }
