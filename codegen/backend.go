package codegen

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/ajroetker/go-mathgen/ir"
)

// Backend is a named bundle of code-generation tables, one per output
// language. A specialized backend composes over a base backend: entry
// lookup checks the specialized tables first and falls back to the
// base chain only when the kind/specifier pair is absent. An entry
// that is present but whose signatures all miss fails hard, mirroring
// the no-fallthrough rule inside tables.
type Backend struct {
	name   string
	base   *Backend
	tables map[ir.Language]Table
}

// NewBackend builds a backend specializing base (nil for a root
// backend).
func NewBackend(name string, base *Backend) *Backend {
	return &Backend{
		name:   name,
		base:   base,
		tables: make(map[ir.Language]Table),
	}
}

func (b *Backend) Name() string { return b.name }

// Base returns the backend this one specializes, or nil.
func (b *Backend) Base() *Backend { return b.base }

// SetTable installs the code-generation table for one output
// language, overriding any table installed under the same language.
func (b *Backend) SetTable(lang ir.Language, t Table) {
	b.tables[lang] = t
}

// Languages returns the sorted set of languages the backend chain can
// generate.
func (b *Backend) Languages() []ir.Language {
	seen := make(map[ir.Language]bool)
	for cur := b; cur != nil; cur = cur.base {
		for lang := range cur.tables {
			seen[lang] = true
		}
	}
	langs := lo.Keys(seen)
	slices.Sort(langs)
	return langs
}

// Resolve selects the generator for a node in the given language,
// walking the specialization chain for the most specialized table
// carrying an entry for the node's kind/specifier.
func (b *Backend) Resolve(lang ir.Language, n *ir.Node) (Generator, error) {
	for cur := b; cur != nil; cur = cur.base {
		t, ok := cur.tables[lang]
		if !ok {
			continue
		}
		if t.HasEntry(n.Kind, n.Spec) {
			return t.Resolve(n)
		}
	}
	return nil, noMatch(n, "no backend in chain %q carries an entry for language %q", b.name, lang)
}

// Registry maps backend names to constructors. It is an explicit
// object owned by one compilation driver; there is no process-wide
// registration state, so independent compilations never interfere.
type Registry struct {
	ctors map[string]func() *Backend
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]func() *Backend)}
}

// Register records a backend constructor under a name. Registering a
// second constructor under the same name silently shadows the first;
// callers relying on that should treat it as a configuration smell.
func (r *Registry) Register(name string, ctor func() *Backend) {
	r.ctors[name] = ctor
}

// New instantiates the backend registered under name.
func (r *Registry) New(name string) (*Backend, error) {
	ctor, ok := r.ctors[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (registered: %v)", name, r.Names())
	}
	return ctor(), nil
}

// Names returns the sorted registered backend names.
func (r *Registry) Names() []string {
	names := lo.Keys(r.ctors)
	slices.Sort(names)
	return names
}
