package codegen

import "github.com/ajroetker/go-mathgen/ir"

// NestedCode is the scope stack: a stack of CodeObjects, innermost
// first, with optional function-wide pooling of constants and tables.
// When pooling is on, every scope's constant (or table) category is
// seeded with the same shared table, so declarations issued anywhere
// in the function reserve names globally and emit once in the
// outermost scope's static block.
type NestedCode struct {
	lang Language

	staticCst   bool
	staticTable bool

	staticCstTable      *SymbolTable
	staticTableTable    *SymbolTable
	staticFunctionTable *SymbolTable

	stack []*CodeObject // stack[0] is the innermost live scope
}

// NewNestedCode builds a scope stack with one open root scope.
// staticCst and staticTable turn on function-wide pooling for the
// constant and table categories.
func NewNestedCode(lang Language, staticCst, staticTable bool) *NestedCode {
	n := &NestedCode{
		lang:                lang,
		staticCst:           staticCst,
		staticTable:         staticTable,
		staticCstTable:      NewSymbolTable(),
		staticTableTable:    NewSymbolTable(),
		staticFunctionTable: NewSymbolTable(),
	}
	n.stack = []*CodeObject{NewCodeObject(lang, n.sharedTables(), nil)}
	return n
}

// sharedTables seeds a new scope's shared categories. Functions are
// always pooled; constants and tables only when the static flags are
// set — otherwise each scope gets its own private table.
func (n *NestedCode) sharedTables() map[SymbolCategory]*SymbolTable {
	shared := map[SymbolCategory]*SymbolTable{
		FunctionSymbol: n.staticFunctionTable,
	}
	if n.staticCst {
		shared[ConstantSymbol] = n.staticCstTable
	}
	if n.staticTable {
		shared[TableSymbol] = n.staticTableTable
	}
	return shared
}

// cur returns the innermost live scope.
func (n *NestedCode) cur() *CodeObject { return n.stack[0] }

// Depth returns the number of open scopes.
func (n *NestedCode) Depth() int { return len(n.stack) }

// OpenScope opens a nested block: the block opener is written into
// the current scope, then a fresh scope is pushed whose symbol table
// shares the pooled categories and lists every enclosing scope's
// table as a name-uniqueness dependency.
func (n *NestedCode) OpenScope() {
	n.cur().OpenBlock()
	parents := n.cur().Symbols().DependencyTables()
	inner := NewCodeObject(n.lang, n.sharedTables(), parents)
	n.stack = append([]*CodeObject{inner}, n.stack...)
}

// CloseScope pops the innermost scope, renders its statements plus
// its non-deferred declarations, merges the text into the parent
// (reindented to the parent's level), and emits the parent's block
// closer followed by cr. The popped scope is consumed: it is never
// written to again.
func (n *NestedCode) CloseScope(cr string) {
	inner := n.stack[0]
	n.stack = n.stack[1:]
	text := inner.Generate(GenerateOptions{
		StaticConstants: n.staticCst,
		StaticTables:    n.staticTable,
		SkipFunctions:   true,
	})
	n.cur().Write(text)
	n.cur().CloseBlock(cr)
}

// Write appends text to the innermost scope.
func (n *NestedCode) Write(text string) { n.cur().Write(text) }

// WriteLine appends one statement line to the innermost scope.
func (n *NestedCode) WriteLine(text string) { n.cur().WriteLine(text) }

// AddComment emits a comment into the innermost scope.
func (n *NestedCode) AddComment(text string) { n.cur().AddComment(text) }

// AddHeader records a header dependency on the outermost scope, where
// the include list is emitted.
func (n *NestedCode) AddHeader(header string) {
	n.stack[len(n.stack)-1].AddHeader(header)
}

// GetFreeVarName allocates (and optionally declares) a variable name
// in the innermost scope.
func (n *NestedCode) GetFreeVarName(arena *ir.Arena, format ir.Format, prefix string, declare bool) (string, error) {
	return n.cur().GetFreeVarName(arena, format, prefix, declare)
}

// DeclareConstant declares a constant in the innermost scope.
func (n *NestedCode) DeclareConstant(cst *ir.Node, prefix string) (string, error) {
	return n.cur().DeclareConstant(cst, prefix)
}

// DeclareTable declares a lookup table in the innermost scope.
func (n *NestedCode) DeclareTable(table *ir.Table, prefix string) (string, error) {
	return n.cur().DeclareTable(table, prefix)
}

// DeclareFunction declares a function in the pooled function table.
func (n *NestedCode) DeclareFunction(name string, fn *ir.Function) (string, error) {
	return n.cur().DeclareFunction(name, fn)
}

// Generate assembles the outermost scope's final text, headers and
// static declaration pools included. Callers abandoning a generation
// after an error discard the NestedCode instead; partial output is
// never assembled.
func (n *NestedCode) Generate(banner string) string {
	outer := n.stack[len(n.stack)-1]
	return outer.Generate(GenerateOptions{Headers: true, Banner: banner})
}
