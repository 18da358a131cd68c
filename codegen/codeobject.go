package codegen

import (
	"strings"

	"github.com/ajroetker/go-mathgen/ir"
)

// indentUnit is one level of indentation in emitted source.
const indentUnit = "    "

// CodeObject is one scope's emission buffer: an indentation-aware
// text accumulator plus the scope's symbol table and header list.
// Indentation is explicit state applied as text is written, not a
// post-processing pass.
type CodeObject struct {
	lang    Language
	sb      strings.Builder
	level   int
	pending bool // indent owed before the next non-newline write
	headers []string
	symbols *MultiSymbolTable
}

// NewCodeObject builds a scope buffer. shared and parents seed the
// scope's symbol table per MultiSymbolTable semantics.
func NewCodeObject(lang Language, shared map[SymbolCategory]*SymbolTable, parents []*MultiSymbolTable) *CodeObject {
	return &CodeObject{
		lang:    lang,
		symbols: NewMultiSymbolTable(shared, parents),
	}
}

// Symbols returns the scope's symbol table.
func (c *CodeObject) Symbols() *MultiSymbolTable { return c.symbols }

// Write appends text, indenting the start of every line (including
// lines inside text) to the current level. Blank lines stay blank.
func (c *CodeObject) Write(text string) {
	for len(text) > 0 {
		if c.pending && text[0] != '\n' {
			for i := 0; i < c.level; i++ {
				c.sb.WriteString(indentUnit)
			}
			c.pending = false
		}
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			c.sb.WriteString(text)
			return
		}
		c.sb.WriteString(text[:i+1])
		c.pending = true
		text = text[i+1:]
	}
}

// WriteLine appends one full statement line.
func (c *CodeObject) WriteLine(text string) {
	c.Write(text + "\n")
}

// Indent increases the indentation level.
func (c *CodeObject) Indent() { c.level++ }

// Dedent decreases the indentation level.
func (c *CodeObject) Dedent() {
	if c.level > 0 {
		c.level--
	}
}

// OpenBlock emits the language's block opener and indents.
func (c *CodeObject) OpenBlock() {
	c.WriteLine(c.lang.BlockOpen())
	c.Indent()
}

// CloseBlock dedents and emits the block closer followed by cr.
func (c *CodeObject) CloseBlock(cr string) {
	c.Dedent()
	c.Write(c.lang.BlockClose() + cr)
}

// LinkBlock closes the current block and opens a sibling in one line
// ("} else {").
func (c *CodeObject) LinkBlock(transition string) {
	c.Dedent()
	c.WriteLine(c.lang.BlockClose() + " " + transition + " " + c.lang.BlockOpen())
	c.Indent()
}

// AddComment emits a full-line comment.
func (c *CodeObject) AddComment(text string) {
	c.Write(c.lang.Comment(text))
}

// AddHeader records a header dependency. First add wins; duplicates
// are dropped so the include list stays deduplicated.
func (c *CodeObject) AddHeader(header string) {
	for _, h := range c.headers {
		if h == header {
			return
		}
	}
	c.headers = append(c.headers, header)
}

// Headers returns the recorded header list in first-add order.
func (c *CodeObject) Headers() []string { return c.headers }

// GetFreeVarName allocates an unused variable name from prefix and,
// when declare is set, declares a variable entity of the given format
// under it.
func (c *CodeObject) GetFreeVarName(arena *ir.Arena, format ir.Format, prefix string, declare bool) (string, error) {
	name := c.symbols.GetFreeName(prefix)
	if declare {
		v := arena.NewVariable(name, format)
		if err := c.symbols.Declare(VariableSymbol, name, v); err != nil {
			return "", err
		}
	}
	return name, nil
}

// DeclareConstant declares a constant node under a fresh name derived
// from prefix, deduplicating by entity identity: a constant already
// declared (here or in an ancestor scope) keeps its first name.
func (c *CodeObject) DeclareConstant(cst *ir.Node, prefix string) (string, error) {
	if name, ok := c.symbols.HasDefinition(ConstantSymbol, cst); ok {
		return name, nil
	}
	name := c.symbols.GetFreeName(prefix)
	if err := c.symbols.Declare(ConstantSymbol, name, cst); err != nil {
		return "", err
	}
	return name, nil
}

// DeclareTable declares a lookup table under a fresh name derived
// from prefix, deduplicating by entity identity across the visible
// scope chain.
func (c *CodeObject) DeclareTable(table *ir.Table, prefix string) (string, error) {
	if name, ok := c.symbols.HasDefinition(TableSymbol, table); ok {
		return name, nil
	}
	name := c.symbols.GetFreeName(prefix)
	if err := c.symbols.Declare(TableSymbol, name, table); err != nil {
		return "", err
	}
	return name, nil
}

// DeclareFunction declares a function entity under its own name.
func (c *CodeObject) DeclareFunction(name string, fn *ir.Function) (string, error) {
	if err := c.symbols.Declare(FunctionSymbol, name, fn); err != nil {
		return "", err
	}
	return name, nil
}

// GenerateOptions controls final text assembly for one scope.
type GenerateOptions struct {
	// Headers prepends the include list (and Banner, when set).
	Headers bool
	// Banner is an identification comment emitted before includes.
	Banner string
	// StaticConstants, StaticTables and SkipFunctions exclude the
	// corresponding categories from this scope's declaration block,
	// deferring their emission to an outer static block.
	StaticConstants bool
	StaticTables    bool
	SkipFunctions   bool
}

// Generate assembles the scope's final text: optional banner and
// includes, the non-excluded declaration block, then the accumulated
// statements.
func (c *CodeObject) Generate(opts GenerateOptions) string {
	var sb strings.Builder
	if opts.Headers {
		if opts.Banner != "" {
			sb.WriteString(c.lang.Comment(opts.Banner))
		}
		for _, h := range c.headers {
			sb.WriteString(c.lang.Include(h))
		}
		if opts.Banner != "" || len(c.headers) > 0 {
			sb.WriteString("\n")
		}
	}
	var exclude []SymbolCategory
	if opts.StaticConstants {
		exclude = append(exclude, ConstantSymbol)
	}
	if opts.StaticTables {
		exclude = append(exclude, TableSymbol)
	}
	if opts.SkipFunctions {
		exclude = append(exclude, FunctionSymbol)
	}
	decls := c.symbols.GenerateDeclarations(c.lang, exclude...)
	sb.WriteString(decls)
	if decls != "" {
		sb.WriteString("\n")
	}
	sb.WriteString(c.sb.String())
	return sb.String()
}
