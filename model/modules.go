package model

// Module is a named container of imports, annotations and definitions anchored
// to a base URI. A module is built once by a loader and then treated as
// immutable.
type Module struct {
	Name        Identifier
	BaseURI     *URI
	VersionInfo string
	VersionURI  *URI
	Body        ModuleBody
	Span        *Span
}

// ModuleBody holds a module's content in declaration order.
type ModuleBody struct {
	Imports     []*ImportStatement
	Annotations []Annotation
	Definitions []Definition
	Span        *Span
}

// ImportStatement is one import line, which may name several modules or members.
type ImportStatement struct {
	Imports []Import
	Span    *Span
}

// Import is a *ModuleImport or a *MemberImport.
type Import interface {
	// ImportedModule is the module that must be loaded to satisfy the import.
	ImportedModule() Identifier
	isImport()
}

// ModuleImport imports a whole module, optionally pinned to a version URI.
type ModuleImport struct {
	Name       Identifier
	VersionURI *URI
	RenamedAs  Identifier
}

// MemberImport imports a single qualified member.
type MemberImport struct {
	Name      QualifiedIdentifier
	RenamedAs Identifier
}

func (i *ModuleImport) ImportedModule() Identifier { return i.Name }
func (i *MemberImport) ImportedModule() Identifier { return i.Name.Module }
func (*ModuleImport) isImport()                    {}
func (*MemberImport) isImport()                    {}

// NewModule returns an empty module with the given name and base URI.
func NewModule(name Identifier, base *URI) *Module {
	return &Module{Name: name, BaseURI: base}
}

// AnnotationList returns the module-level annotations.
func (m *Module) AnnotationList() []Annotation { return m.Body.Annotations }

// HasBaseURI reports whether the module declares a base URI.
func (m *Module) HasBaseURI() bool { return m.BaseURI != nil }

// AddDefinition appends d to the module body.
func (m *Module) AddDefinition(d Definition) *Module {
	m.Body.Definitions = append(m.Body.Definitions, d)
	return m
}

// AddImports appends an import statement.
func (m *Module) AddImports(stmt *ImportStatement) *Module {
	m.Body.Imports = append(m.Body.Imports, stmt)
	return m
}

// AddImport appends a single-import statement.
func (m *Module) AddImport(i Import) *Module {
	m.Body.Imports = append(m.Body.Imports, &ImportStatement{Imports: []Import{i}})
	return m
}

// AddAnnotation appends a module-level annotation.
func (m *Module) AddAnnotation(a Annotation) *Module {
	m.Body.Annotations = append(m.Body.Annotations, a)
	return m
}

// Definition returns the definition with the given name.
func (m *Module) Definition(name Identifier) (Definition, bool) {
	for _, d := range m.Body.Definitions {
		if d.DefinitionName() == name {
			return d, true
		}
	}
	return nil, false
}

// ImportedModule is a distinct module dependency with its optional version URI.
type ImportedModule struct {
	Name       Identifier
	VersionURI *URI
}

// ImportedModules returns each imported module once, in first-seen order. A
// version URI given on any whole-module import of the same name is kept.
func (m *Module) ImportedModules() []ImportedModule {
	var out []ImportedModule
	index := make(map[Identifier]int)
	for _, stmt := range m.Body.Imports {
		for _, imp := range stmt.Imports {
			name := imp.ImportedModule()
			var version *URI
			if mi, ok := imp.(*ModuleImport); ok {
				version = mi.VersionURI
			}
			if i, seen := index[name]; seen {
				if out[i].VersionURI == nil {
					out[i].VersionURI = version
				}
				continue
			}
			index[name] = len(out)
			out = append(out, ImportedModule{Name: name, VersionURI: version})
		}
	}
	return out
}
