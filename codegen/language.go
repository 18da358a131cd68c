package codegen

import "github.com/ajroetker/go-mathgen/ir"

// Language renders the statement-level surface of one output syntax:
// declarations, assignments, comments, includes and block delimiters.
// Expression-level syntax comes from the backend tables; the split
// keeps tables about operators and Language about statements.
type Language interface {
	ID() ir.Language

	// Literal renders a constant node as an inline literal.
	Literal(n *ir.Node) (string, error)
	// Declaration renders one declared entity as a full declaration
	// statement, newline included.
	Declaration(cat SymbolCategory, name string, ent ir.Entity) string
	// Assignment renders a full assignment statement, newline
	// included.
	Assignment(dst, src string) string
	// TableAccess renders an element load from a declared table.
	TableAccess(name, index string) string
	// Comment renders a full-line comment.
	Comment(text string) string
	// Include renders one header inclusion line.
	Include(header string) string

	// BlockOpen and BlockClose delimit nested scopes.
	BlockOpen() string
	BlockClose() string
}
