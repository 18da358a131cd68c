package main

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-mathgen/codegen"
	"github.com/ajroetker/go-mathgen/ir"
)

// generateDemo renders the built-in demonstration tree through the
// backend and returns the assembled output text.
func generateDemo(backend *codegen.Backend, lang codegen.Language, name string, staticCst, staticTable bool) (string, error) {
	arena := ir.NewArena()
	buf := codegen.NewNestedCode(lang, staticCst, staticTable)
	gen := codegen.NewExprGenerator(backend, lang)

	var tree *ir.Node
	switch lang.ID() {
	case ir.VHDLCode:
		tree = demoVectorTree(arena)
	default:
		tree = demoScalarTree(arena)
	}

	buf.OpenScope()
	if err := gen.EmitAssignment(buf, "result", tree); err != nil {
		return "", err
	}
	buf.CloseScope("\n")

	title := cases.Title(language.English).String(name)
	return buf.Generate(lang.Comment(title + " (generated by mathgen)")), nil
}

// demoScalarTree is a polynomial-style accumulation over binary64:
// a coefficient table load, a multiply-add, and a sign transfer.
func demoScalarTree(a *ir.Arena) *ir.Node {
	x := a.NewVariable("x", ir.Binary64)
	y := a.NewVariable("y", ir.Binary64)
	i := a.NewVariable("i", ir.Int32)

	coeffs := a.NewTable(ir.Binary64, []string{
		"0x1p-1", "0x1.5555555555555p-3", "0x1.999999999999ap-4",
	})
	c := a.NewTableLoad(coeffs, i, ir.Binary64)

	prod := a.NewNode(ir.Multiplication, ir.SpecNone, ir.Binary64, x, y).SetTag("prod")
	acc := a.NewNode(ir.Addition, ir.SpecNone, ir.Binary64, prod, c).SetTag("acc")
	return a.NewNode(ir.CopySign, ir.SpecNone, ir.Binary64, acc, x)
}

// demoVectorTree exercises the hardware rules: a vector addition, a
// synthesized two's-complement negation, and a zero extension.
func demoVectorTree(a *ir.Arena) *ir.Node {
	v8 := ir.BitVector(8)
	lhs := a.NewVariable("a", v8)
	rhs := a.NewVariable("b", v8)

	sum := a.NewNode(ir.Addition, ir.SpecNone, v8, lhs, rhs).SetTag("sum")
	neg := a.NewNode(ir.Negation, ir.SpecNone, v8, sum).SetTag("neg")
	return a.NewNode(ir.ZeroExt, ir.SpecNone, ir.BitVector(12), neg).WithExtSize(4)
}
