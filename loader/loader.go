// Package loader reads SDML modules from YAML documents.
//
// A document holds one module: its name, base URI, imports, annotations and
// definitions. Spans recorded on the module and its definitions are byte
// offsets into the document, so source locations in generated graphs point
// back at the YAML text.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/sdml/cache"
	"github.com/c360studio/sdml/model"
)

// ErrInvalidDocument is returned for documents that do not describe a module.
var ErrInvalidDocument = errors.New("invalid module document")

// Loader reads module documents and fills a cache.
type Loader struct {
	logger *slog.Logger
}

// New creates a loader. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadFile reads and parses one module document.
func (l *Loader) LoadFile(path string) (*model.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("Loaded module", slog.String("path", path), slog.String("module", m.Name.String()),
		slog.Int("definitions", len(m.Body.Definitions)))
	return m, nil
}

// LoadInto loads every document matched by patterns into store, replacing
// modules of the same name. It returns the names loaded, in file order.
func (l *Loader) LoadInto(store *cache.Store, patterns []string) ([]model.Identifier, error) {
	paths, err := Discover(patterns)
	if err != nil {
		return nil, err
	}
	seen := make(map[model.Identifier]string)
	var names []model.Identifier
	for _, path := range paths {
		m, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("%w: module %s defined in both %s and %s", ErrInvalidDocument, m.Name, prev, path)
		}
		seen[m.Name] = path
		store.Insert(m)
		names = append(names, m.Name)
	}

	for _, name := range names {
		m, _ := store.Get(name)
		if missing := store.MissingImports(m); len(missing) > 0 {
			l.logger.Warn("Module imports are not loaded", slog.String("module", name.String()),
				slog.Any("missing", missing))
		}
	}
	return names, nil
}

// Discover expands doublestar glob patterns to a sorted, de-duplicated list
// of files. Patterns without glob characters name files directly.
func Discover(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := expand(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			abs, err := filepath.Abs(match)
			if err != nil {
				return nil, err
			}
			if !seen[abs] {
				seen[abs] = true
				files = append(files, abs)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func expand(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		if _, err := os.Stat(pattern); err != nil {
			return nil, err
		}
		return []string{pattern}, nil
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}
	return matches, nil
}

// Parse decodes a module document.
func Parse(data []byte) (*model.Module, error) {
	var doc moduleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Module == "" {
		return nil, fmt.Errorf("%w: missing module name", ErrInvalidDocument)
	}
	name, err := model.NewIdentifier(doc.Module)
	if err != nil {
		return nil, err
	}

	var base *model.URI
	if doc.Base != "" {
		if base, err = model.ParseURI(doc.Base); err != nil {
			return nil, fmt.Errorf("%w: base: %v", ErrInvalidDocument, err)
		}
	}
	m := model.NewModule(name, base)
	m.Span = model.NewSpan(0, len(bytes.TrimRight(data, " \t\r\n")))
	m.VersionInfo = doc.Version.Info
	if doc.Version.URI != "" {
		if m.VersionURI, err = model.ParseURI(doc.Version.URI); err != nil {
			return nil, fmt.Errorf("%w: version uri: %v", ErrInvalidDocument, err)
		}
	}

	if len(doc.Imports) > 0 {
		stmt, err := buildImports(doc.Imports)
		if err != nil {
			return nil, err
		}
		m.AddImports(stmt)
	}

	anns, err := buildAnnotations(doc.Annotations)
	if err != nil {
		return nil, fmt.Errorf("module annotations: %w", err)
	}
	m.Body.Annotations = anns

	offsets := newLineIndex(data)
	for i := range doc.Definitions {
		n := &doc.Definitions[i]
		d, err := buildDefinition(n)
		if err != nil {
			return nil, fmt.Errorf("definition %d (line %d): %w", i+1, n.Line, err)
		}
		start := offsets.offset(n)
		end := m.Span.End
		if i+1 < len(doc.Definitions) {
			end = offsets.offset(&doc.Definitions[i+1])
		}
		setSpan(d, model.NewSpan(start, end))
		m.AddDefinition(d)
	}
	return m, nil
}

func buildImports(nodes []yaml.Node) (*model.ImportStatement, error) {
	stmt := &model.ImportStatement{}
	for i := range nodes {
		n := &nodes[i]
		var doc importDoc
		switch n.Kind {
		case yaml.ScalarNode:
			if strings.Contains(n.Value, ":") {
				doc.Member = n.Value
			} else {
				doc.Module = n.Value
			}
		case yaml.MappingNode:
			if err := n.Decode(&doc); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: line %d: invalid import", ErrInvalidDocument, n.Line)
		}
		imp, err := buildImport(doc)
		if err != nil {
			return nil, fmt.Errorf("import at line %d: %w", n.Line, err)
		}
		stmt.Imports = append(stmt.Imports, imp)
	}
	return stmt, nil
}

func buildImport(doc importDoc) (model.Import, error) {
	var rename model.Identifier
	if doc.As != "" {
		var err error
		if rename, err = model.NewIdentifier(doc.As); err != nil {
			return nil, err
		}
	}
	if doc.Member != "" {
		name, err := model.ParseQualifiedIdentifier(doc.Member)
		if err != nil {
			return nil, err
		}
		return &model.MemberImport{Name: name, RenamedAs: rename}, nil
	}
	name, err := model.NewIdentifier(doc.Module)
	if err != nil {
		return nil, err
	}
	imp := &model.ModuleImport{Name: name, RenamedAs: rename}
	if doc.Version != "" {
		if imp.VersionURI, err = model.ParseURI(doc.Version); err != nil {
			return nil, fmt.Errorf("%w: version: %v", ErrInvalidDocument, err)
		}
	}
	return imp, nil
}

// lineIndex maps yaml node positions to byte offsets.
type lineIndex struct {
	data   []byte
	starts []int
}

func newLineIndex(data []byte) lineIndex {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{data: data, starts: starts}
}

// offset converts a node's line and column to a byte offset. yaml.v3 counts
// columns in characters, so the line is walked rune by rune.
func (idx lineIndex) offset(n *yaml.Node) int {
	if n.Line < 1 || n.Line > len(idx.starts) {
		return 0
	}
	off := idx.starts[n.Line-1]
	for col := 1; col < n.Column && off < len(idx.data) && idx.data[off] != '\n'; col++ {
		_, size := utf8.DecodeRune(idx.data[off:])
		off += size
	}
	return off
}
