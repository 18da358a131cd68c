package codegen

import (
	"fmt"
	"strings"

	"github.com/ajroetker/go-mathgen/ir"
)

// Operand is the rendered form of a node: a bare target-language
// expression or the name of a variable holding it.
type Operand struct {
	Text   string
	Format ir.Format
	// IsVar marks named bindings; bare expressions embedded into a
	// parent expression are parenthesized, variables are not.
	IsVar bool
	// noParens suppresses parenthesization for expressions that bind
	// tighter than any operator (function calls, identity casts).
	noParens bool
}

// Sub returns the operand text as embeddable sub-expression text.
func (o Operand) Sub() string {
	if o.IsVar || o.noParens {
		return o.Text
	}
	return "(" + o.Text + ")"
}

// Context is handed to a generator's Render. Operand and Rewritten
// both re-enter table resolution, so Render implementations must be
// reentrant.
type Context struct {
	// Operand renders a child node into sub-expression text, folding
	// it into a named binding when its own generator requires that.
	Operand func(child *ir.Node) (Operand, error)
	// Rewritten renders a replacement tree produced by a complex
	// generator. The rewrite depth is bounded; exceeding the ceiling
	// fails fast instead of looping on a rewrite cycle.
	Rewritten func(repl *ir.Node) (Operand, error)
	// AddHeader records a header/include the rendered text depends on.
	AddHeader func(header string)
}

// Generator renders one matched node to target surface syntax.
type Generator interface {
	Render(n *ir.Node, ctx *Context) (Operand, error)
}

// folder is implemented by generators that force their result into an
// intermediate named binding even when the node has a single use.
type folder interface {
	forceFolding() bool
}

// ForcesFolding reports whether the generator requires an
// intermediate named binding for its result.
func ForcesFolding(g Generator) bool {
	f, ok := g.(folder)
	return ok && f.forceFolding()
}

// checkArity verifies the node's child count against the generator's
// declared arity.
func checkArity(n *ir.Node, arity int) error {
	if len(n.Children) != arity {
		return Malformedf(n, "expected %d operands, node has %d", arity, len(n.Children))
	}
	return nil
}

func renderOperands(n *ir.Node, ctx *Context) ([]Operand, error) {
	ops := make([]Operand, len(n.Children))
	for i, c := range n.Children {
		op, err := ctx.Operand(c)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

// SymbolOperator renders a node through a fixed operator token:
// infix for binary nodes, prefix (or postfix with Inverse) for unary
// ones.
type SymbolOperator struct {
	Symbol       string
	Arity        int
	ForceFolding bool
	// Inverse renders unary operators postfix (VHDL attribute syntax
	// such as clk'event).
	Inverse bool
	// NoSpace omits the separator between symbol and operand.
	NoSpace bool
	// NoParens suppresses parenthesization when embedded.
	NoParens bool
}

func (g *SymbolOperator) forceFolding() bool { return g.ForceFolding }

func (g *SymbolOperator) Render(n *ir.Node, ctx *Context) (Operand, error) {
	if err := checkArity(n, g.Arity); err != nil {
		return Operand{}, err
	}
	ops, err := renderOperands(n, ctx)
	if err != nil {
		return Operand{}, err
	}
	sep := " "
	if g.NoSpace {
		sep = ""
	}
	var text string
	switch g.Arity {
	case 1:
		if g.Inverse {
			text = ops[0].Sub() + sep + g.Symbol
		} else {
			text = g.Symbol + sep + ops[0].Sub()
		}
	case 2:
		text = ops[0].Sub() + " " + g.Symbol + " " + ops[1].Sub()
	default:
		parts := make([]string, len(ops))
		for i, op := range ops {
			parts[i] = op.Sub()
		}
		text = strings.Join(parts, " "+g.Symbol+" ")
	}
	return Operand{Text: text, Format: n.Format, noParens: g.NoParens}, nil
}

// TemplateOperator renders through a format string with positional
// %s operand substitution.
type TemplateOperator struct {
	Template     string
	Arity        int
	ForceFolding bool
	Headers      []string
}

func (g *TemplateOperator) forceFolding() bool { return g.ForceFolding }

func (g *TemplateOperator) Render(n *ir.Node, ctx *Context) (Operand, error) {
	if err := checkArity(n, g.Arity); err != nil {
		return Operand{}, err
	}
	// Indexed verbs (%[2]s) defeat the simple slot count; templates
	// using them are trusted to match their declared arity.
	if !strings.Contains(g.Template, "%[") {
		if slots := strings.Count(g.Template, "%s"); slots != g.Arity {
			return Operand{}, Malformedf(n, "template %q has %d operand slots, operator arity is %d",
				g.Template, slots, g.Arity)
		}
	}
	ops, err := renderOperands(n, ctx)
	if err != nil {
		return Operand{}, err
	}
	for _, h := range g.Headers {
		ctx.AddHeader(h)
	}
	args := make([]any, len(ops))
	for i, op := range ops {
		args[i] = op.Sub()
	}
	return Operand{Text: fmt.Sprintf(g.Template, args...), Format: n.Format}, nil
}

// FunctionOperator renders as a call to a named function or
// procedure.
type FunctionOperator struct {
	Name         string
	Arity        int
	ForceFolding bool
	// Headers lists include files the call depends on, recorded into
	// the buffer's header list at render time.
	Headers []string
}

func (g *FunctionOperator) forceFolding() bool { return g.ForceFolding }

func (g *FunctionOperator) Render(n *ir.Node, ctx *Context) (Operand, error) {
	if err := checkArity(n, g.Arity); err != nil {
		return Operand{}, err
	}
	ops, err := renderOperands(n, ctx)
	if err != nil {
		return Operand{}, err
	}
	for _, h := range g.Headers {
		ctx.AddHeader(h)
	}
	parts := make([]string, len(ops))
	for i, op := range ops {
		// Call arguments never need extra parentheses.
		parts[i] = op.Text
	}
	text := g.Name + "(" + strings.Join(parts, ", ") + ")"
	return Operand{Text: text, Format: n.Format, noParens: true}, nil
}

// ComplexOperator rewrites the node into a different sub-tree before
// rendering: a tree-to-tree macro for targets lacking a direct
// primitive. The rewrite must strictly reduce toward primitive kinds;
// the driver bounds rewrite depth and fails fast on cycles.
type ComplexOperator struct {
	Modify func(n *ir.Node) (*ir.Node, error)
}

func (g *ComplexOperator) Render(n *ir.Node, ctx *Context) (Operand, error) {
	repl, err := g.Modify(n)
	if err != nil {
		return Operand{}, err
	}
	return ctx.Rewritten(repl)
}

// DynamicOperator computes a concrete generator from the node itself,
// for surface syntax depending on node attributes (bit-slice bounds
// derived from operand widths).
type DynamicOperator struct {
	Build func(n *ir.Node) (Generator, error)
}

func (g *DynamicOperator) Render(n *ir.Node, ctx *Context) (Operand, error) {
	built, err := g.Build(n)
	if err != nil {
		return Operand{}, err
	}
	return built.Render(n, ctx)
}

// IdentityOperator renders as the sole operand unchanged: a
// type-level cast the target spells as nothing. The declared result
// format is propagated onward so a parent's matcher sees the
// post-cast format.
type IdentityOperator struct {
	// OutputFormat overrides the propagated format; nil keeps the
	// node's own result format.
	OutputFormat ir.Format
	NoParens     bool
}

func (g *IdentityOperator) Render(n *ir.Node, ctx *Context) (Operand, error) {
	if err := checkArity(n, 1); err != nil {
		return Operand{}, err
	}
	op, err := ctx.Operand(n.Children[0])
	if err != nil {
		return Operand{}, err
	}
	format := n.Format
	if g.OutputFormat != nil {
		format = g.OutputFormat
	}
	op.Format = format
	if g.NoParens {
		op.noParens = true
	}
	return op, nil
}
