package importer

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	pklbinary "github.com/pkl-community/pklbinary-go"
	"github.com/pkl-community/pklbinary-go/value"
)

// Module declares what one module resolves.
//
// Classes and TypeAliases hold qualified names as they appear on the wire
// ("module#Ident"). A module with empty lists is open: it resolves every
// name, which suits tooling that trusts the document. A module with lists
// resolves only what is listed; the module class itself (a name without a
// hash) always resolves.
type Module struct {
	URI         string
	Classes     []string
	TypeAliases []string
}

type moduleEntry struct {
	open    bool
	classes map[string]struct{}
	aliases map[string]struct{}
}

// Registry is an in-memory Importer keyed by module URI.
//
// Registration and resolution are safe for concurrent use; a Registry may
// back any number of simultaneous decode calls.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]moduleEntry
}

// NewRegistry returns an empty registry. pkl:base resolves without
// registration.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]moduleEntry)}
}

// Add registers a module, replacing any previous registration of the same URI
func (r *Registry) Add(m Module) {
	entry := moduleEntry{
		open:    len(m.Classes) == 0 && len(m.TypeAliases) == 0,
		classes: make(map[string]struct{}, len(m.Classes)),
		aliases: make(map[string]struct{}, len(m.TypeAliases)),
	}
	for _, name := range m.Classes {
		entry.classes[name] = struct{}{}
	}
	for _, name := range m.TypeAliases {
		entry.aliases[name] = struct{}{}
	}

	r.mu.Lock()
	r.modules[m.URI] = entry
	r.mu.Unlock()
}

// AddAll registers several modules
func (r *Registry) AddAll(ms ...Module) {
	for _, m := range ms {
		r.Add(m)
	}
}

// ImportClass resolves a class reference against the registry
func (r *Registry) ImportClass(name, moduleURI string) (*value.Class, error) {
	if err := r.resolve(name, moduleURI, false); err != nil {
		Logger().Warn("class resolution failed",
			zap.String("name", name), zap.String("module", moduleURI), zap.Error(err))
		return nil, err
	}
	Logger().Debug("resolved class",
		zap.String("name", name), zap.String("module", moduleURI))
	return &value.Class{Name: name, ModuleURI: moduleURI}, nil
}

// ImportTypeAlias resolves a type alias reference against the registry
func (r *Registry) ImportTypeAlias(name, moduleURI string) (*value.TypeAlias, error) {
	if err := r.resolve(name, moduleURI, true); err != nil {
		Logger().Warn("typealias resolution failed",
			zap.String("name", name), zap.String("module", moduleURI), zap.Error(err))
		return nil, err
	}
	Logger().Debug("resolved typealias",
		zap.String("name", name), zap.String("module", moduleURI))
	return &value.TypeAlias{Name: name, ModuleURI: moduleURI}, nil
}

func (r *Registry) resolve(name, moduleURI string, alias bool) error {
	// The standard library resolves without registration. Its names are
	// bare, not hash-qualified; a name outside the table is a bad
	// reference, not a missing module.
	if moduleURI == value.BaseModuleURI {
		if baseResolves(name, alias) {
			return nil
		}
		kind := "class"
		if alias {
			kind = "typealias"
		}
		return fmt.Errorf("module %q has no %s %q", moduleURI, kind, name)
	}

	r.mu.RLock()
	entry, ok := r.modules[moduleURI]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("module %q is not registered: %w", moduleURI, pklbinary.ErrUnresolvableModule)
	}
	if entry.open {
		return nil
	}

	// A name without a hash is the module class itself
	if !alias && !strings.Contains(name, "#") {
		return nil
	}

	members := entry.classes
	kind := "class"
	if alias {
		members = entry.aliases
		kind = "typealias"
	}
	if _, ok := members[name]; !ok {
		return fmt.Errorf("module %q has no %s %q", moduleURI, kind, name)
	}
	return nil
}

var _ pklbinary.Importer = (*Registry)(nil)

// Trusting is an Importer that resolves every reference to its literal wire
// identity. No names are checked; decoding a document with Trusting asserts
// nothing about the classes it references.
type Trusting struct{}

// ImportClass returns a descriptor carrying the given identity
func (Trusting) ImportClass(name, moduleURI string) (*value.Class, error) {
	return &value.Class{Name: name, ModuleURI: moduleURI}, nil
}

// ImportTypeAlias returns a descriptor carrying the given identity
func (Trusting) ImportTypeAlias(name, moduleURI string) (*value.TypeAlias, error) {
	return &value.TypeAlias{Name: name, ModuleURI: moduleURI}, nil
}

var _ pklbinary.Importer = Trusting{}
