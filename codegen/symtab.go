package codegen

import (
	"strconv"
	"strings"

	"github.com/ajroetker/go-mathgen/ir"
)

// SymbolCategory partitions declarations within one scope. Each
// category has its own name→entity table; scope sharing is decided
// per category.
type SymbolCategory int

const (
	ConstantSymbol SymbolCategory = iota
	FunctionSymbol
	VariableSymbol
	ProtectedSymbol
	TableSymbol
)

var categoryNames = [...]string{
	ConstantSymbol:  "constant",
	FunctionSymbol:  "function",
	VariableSymbol:  "variable",
	ProtectedSymbol: "protected",
	TableSymbol:     "table",
}

func (c SymbolCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "category(" + strconv.Itoa(int(c)) + ")"
}

// symbolCategories fixes the iteration order for declaration
// emission; within a category, entries emit in first-declared order.
var symbolCategories = [...]SymbolCategory{
	ConstantSymbol, FunctionSymbol, VariableSymbol, ProtectedSymbol, TableSymbol,
}

// SymbolTable is one category's name→entity map. Declarations are
// append-only and irrevocable: names are never freed or reused.
type SymbolTable struct {
	names   []string // insertion order, drives declaration emission
	entries map[string]ir.Entity
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]ir.Entity)}
}

// IsFreeName reports whether the name is unused in this table.
func (s *SymbolTable) IsFreeName(name string) bool {
	_, taken := s.entries[name]
	return !taken
}

// Declare binds name to entity. Fails with a NameCollisionError when
// the name is already taken in this table.
func (s *SymbolTable) Declare(name string, ent ir.Entity) error {
	if !s.IsFreeName(name) {
		return &NameCollisionError{Name: name}
	}
	s.names = append(s.names, name)
	s.entries[name] = ent
	return nil
}

// HasDefinition identity-searches the table for an already-declared
// entity and returns its name. Identity is the entity's arena ID, not
// structural equality: two distinct tables with equal contents are
// two declarations.
func (s *SymbolTable) HasDefinition(ent ir.Entity) (string, bool) {
	for _, name := range s.names {
		if s.entries[name].EntityID() == ent.EntityID() {
			return name, true
		}
	}
	return "", false
}

// Len returns the number of declared names.
func (s *SymbolTable) Len() int { return len(s.names) }

// GenerateDeclarations renders every entry as a declaration statement
// in first-declared order.
func (s *SymbolTable) GenerateDeclarations(lang Language, cat SymbolCategory) string {
	var sb strings.Builder
	for _, name := range s.names {
		sb.WriteString(lang.Declaration(cat, name, s.entries[name]))
	}
	return sb.String()
}

// MultiSymbolTable is one scope's symbol table: five independent
// category tables plus a dependency list of ancestor tables consulted
// for name-uniqueness checks only (never for declaration placement).
// Categories shared with an enclosing scope are seeded from the
// shared map instead of being created fresh, pooling (for example)
// all constants of a function into one table across nested blocks.
type MultiSymbolTable struct {
	tables      map[SymbolCategory]*SymbolTable
	parents     []*MultiSymbolTable
	prefixIndex map[string]int
}

// NewMultiSymbolTable builds a scope table. shared maps categories to
// pre-existing tables owned by an enclosing scope; parents lists
// ancestor scope tables for free-name visibility.
func NewMultiSymbolTable(shared map[SymbolCategory]*SymbolTable, parents []*MultiSymbolTable) *MultiSymbolTable {
	tables := make(map[SymbolCategory]*SymbolTable, len(symbolCategories))
	for _, cat := range symbolCategories {
		if t, ok := shared[cat]; ok {
			tables[cat] = t
		} else {
			tables[cat] = NewSymbolTable()
		}
	}
	return &MultiSymbolTable{
		tables:      tables,
		parents:     parents,
		prefixIndex: make(map[string]int),
	}
}

// Category returns the table backing one category.
func (m *MultiSymbolTable) Category(cat SymbolCategory) *SymbolTable {
	return m.tables[cat]
}

// DependencyTables returns the ancestor tables plus this one, in
// outer-to-inner order, for seeding a nested scope's parent list.
func (m *MultiSymbolTable) DependencyTables() []*MultiSymbolTable {
	deps := make([]*MultiSymbolTable, 0, len(m.parents)+1)
	deps = append(deps, m.parents...)
	deps = append(deps, m)
	return deps
}

// IsFreeName reports whether the name is unused across all five local
// categories and every ancestor scope's categories.
func (m *MultiSymbolTable) IsFreeName(name string) bool {
	for _, cat := range symbolCategories {
		if !m.tables[cat].IsFreeName(name) {
			return false
		}
	}
	for _, parent := range m.parents {
		if !parent.IsFreeName(name) {
			return false
		}
	}
	return true
}

// GetFreeName allocates an unused name from a prefix. A free prefix
// is returned bare and its index counter reset; otherwise probing
// starts at the last-issued index for the prefix and increments until
// an unused name is found. Suffixes therefore increase monotonically
// over a scope's lifetime, and the returned name is unique across the
// visible namespace at call time. Ancestors declaring a colliding
// name later do not rename anything: declarations are append-only.
func (m *MultiSymbolTable) GetFreeName(prefix string) string {
	if m.IsFreeName(prefix) {
		m.prefixIndex[prefix] = 0
		return prefix
	}
	index := m.prefixIndex[prefix]
	for !m.IsFreeName(prefix + strconv.Itoa(index)) {
		index++
	}
	m.prefixIndex[prefix] = index
	return prefix + strconv.Itoa(index)
}

// Declare binds name to entity in one category.
func (m *MultiSymbolTable) Declare(cat SymbolCategory, name string, ent ir.Entity) error {
	return m.tables[cat].Declare(name, ent)
}

// HasDefinition identity-searches one category locally and then in
// every ancestor scope, so a table declared in an outer block is
// found (and not redeclared) from nested blocks.
func (m *MultiSymbolTable) HasDefinition(cat SymbolCategory, ent ir.Entity) (string, bool) {
	if name, ok := m.tables[cat].HasDefinition(ent); ok {
		return name, true
	}
	for _, parent := range m.parents {
		if name, ok := parent.HasDefinition(cat, ent); ok {
			return name, true
		}
	}
	return "", false
}

// IsEmpty reports whether no category holds any declaration.
func (m *MultiSymbolTable) IsEmpty() bool {
	for _, cat := range symbolCategories {
		if m.tables[cat].Len() > 0 {
			return false
		}
	}
	return true
}

// GenerateDeclarations renders every non-excluded category's entries
// as declaration statements. Excluding a category defers its emission
// (typically constants and tables pooled into an outer static block)
// while its names stay reserved from the point of first use.
func (m *MultiSymbolTable) GenerateDeclarations(lang Language, exclude ...SymbolCategory) string {
	excluded := make(map[SymbolCategory]bool, len(exclude))
	for _, cat := range exclude {
		excluded[cat] = true
	}
	var sb strings.Builder
	for _, cat := range symbolCategories {
		if excluded[cat] {
			continue
		}
		sb.WriteString(m.tables[cat].GenerateDeclarations(lang, cat))
	}
	return sb.String()
}
