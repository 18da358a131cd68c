package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/ajroetker/go-mathgen/ir"
)

func testBackend(tbl Table) *Backend {
	b := NewBackend("test", nil)
	b.SetTable(ir.CCode, tbl)
	return b
}

func intAddTable(force bool) Table {
	return Table{
		ir.Addition: {ir.SpecNone: []RuleGroup{{Rules: []Rule{
			{Sig: TypeStrictMatch(ir.Int32, ir.Int32, ir.Int32), Gen: &SymbolOperator{Symbol: "+", Arity: 2, ForceFolding: force}},
		}}}},
	}
}

func TestExprGeneratorSimpleExpression(t *testing.T) {
	arena := ir.NewArena()
	buf := NewNestedCode(testLang{}, false, false)
	gen := NewExprGenerator(testBackend(intAddTable(false)), testLang{})

	n := arena.NewNode(ir.Addition, ir.SpecNone, ir.Int32,
		arena.NewVariable("a", ir.Int32), arena.NewVariable("b", ir.Int32))

	op, err := gen.Generate(buf, n)
	if err != nil {
		t.Fatal(err)
	}
	if op.Text != "a + b" {
		t.Errorf("Generate = %q, want %q", op.Text, "a + b")
	}
	if got := buf.Generate(""); got != "" {
		t.Errorf("unfolded expression wrote statements: %q", got)
	}
}

func TestExprGeneratorFolding(t *testing.T) {
	arena := ir.NewArena()
	buf := NewNestedCode(testLang{}, false, false)
	gen := NewExprGenerator(testBackend(intAddTable(true)), testLang{})

	n := arena.NewNode(ir.Addition, ir.SpecNone, ir.Int32,
		arena.NewVariable("a", ir.Int32), arena.NewVariable("b", ir.Int32))

	op, err := gen.Generate(buf, n)
	if err != nil {
		t.Fatal(err)
	}
	if !op.IsVar || op.Text != "tmp" {
		t.Fatalf("folded result = %+v, want variable tmp", op)
	}

	want := "variable tmp;\n\ntmp = a + b;\n"
	if got := buf.Generate(""); got != want {
		t.Errorf("Generate = %q, want %q", got, want)
	}
}

func TestExprGeneratorTagSeedsFoldName(t *testing.T) {
	arena := ir.NewArena()
	buf := NewNestedCode(testLang{}, false, false)
	gen := NewExprGenerator(testBackend(intAddTable(true)), testLang{})

	n := arena.NewNode(ir.Addition, ir.SpecNone, ir.Int32,
		arena.NewVariable("a", ir.Int32), arena.NewVariable("b", ir.Int32)).SetTag("acc")

	op, err := gen.Generate(buf, n)
	if err != nil {
		t.Fatal(err)
	}
	if op.Text != "acc" {
		t.Errorf("folded name = %q, want %q", op.Text, "acc")
	}
}

func TestExprGeneratorEmitAssignment(t *testing.T) {
	arena := ir.NewArena()
	buf := NewNestedCode(testLang{}, false, false)
	gen := NewExprGenerator(testBackend(intAddTable(false)), testLang{})

	n := arena.NewNode(ir.Addition, ir.SpecNone, ir.Int32,
		arena.NewVariable("a", ir.Int32), arena.NewConstant(1, ir.Int32))

	if err := gen.EmitAssignment(buf, "result", n); err != nil {
		t.Fatal(err)
	}
	if got := buf.Generate(""); got != "result = a + 1;\n" {
		t.Errorf("Generate = %q, want %q", got, "result = a + 1;\n")
	}
}

func TestExprGeneratorNoMatchingRule(t *testing.T) {
	arena := ir.NewArena()
	buf := NewNestedCode(testLang{}, false, false)
	gen := NewExprGenerator(testBackend(intAddTable(false)), testLang{})

	n := arena.NewNode(ir.Multiplication, ir.SpecNone, ir.Int32,
		arena.NewVariable("a", ir.Int32), arena.NewVariable("b", ir.Int32))

	if _, err := gen.Generate(buf, n); !errors.Is(err, ErrNoMatchingRule) {
		t.Fatalf("Generate error = %v, want %v", err, ErrNoMatchingRule)
	}
	if got := buf.Generate(""); got != "" {
		t.Errorf("failed generation left text in buffer:\n%q", got)
	}
}

func TestExprGeneratorTableLoad(t *testing.T) {
	arena := ir.NewArena()
	buf := NewNestedCode(testLang{}, false, false)
	gen := NewExprGenerator(testBackend(intAddTable(false)), testLang{})

	lut := arena.NewTable(ir.Int32, []string{"0", "1", "2"})
	n := arena.NewTableLoad(lut, arena.NewVariable("i", ir.Int32), ir.Int32)

	op, err := gen.Generate(buf, n)
	if err != nil {
		t.Fatal(err)
	}
	if op.Text != "table[i]" {
		t.Errorf("Generate = %q, want %q", op.Text, "table[i]")
	}
	if got := buf.Generate(""); !strings.Contains(got, "table table;") {
		t.Errorf("table declaration missing:\n%q", got)
	}
}

func TestExprGeneratorComplexRewrite(t *testing.T) {
	arena := ir.NewArena()
	buf := NewNestedCode(testLang{}, false, false)

	tbl := intAddTable(false)
	tbl[ir.Negation] = map[ir.Specifier][]RuleGroup{
		ir.SpecNone: {{Rules: []Rule{
			{Sig: TypeStrictMatch(ir.Int32, ir.Int32), Gen: &ComplexOperator{Modify: func(n *ir.Node) (*ir.Node, error) {
				a := n.Arena()
				return a.NewNode(ir.Addition, ir.SpecNone, ir.Int32,
					n.Children[0], a.NewConstant(1, ir.Int32)), nil
			}}},
		}}},
	}
	gen := NewExprGenerator(testBackend(tbl), testLang{})

	n := arena.NewNode(ir.Negation, ir.SpecNone, ir.Int32, arena.NewVariable("x", ir.Int32))
	op, err := gen.Generate(buf, n)
	if err != nil {
		t.Fatal(err)
	}
	if op.Text != "x + 1" {
		t.Errorf("rewritten render = %q, want %q", op.Text, "x + 1")
	}
}

func TestExprGeneratorRewriteCycle(t *testing.T) {
	arena := ir.NewArena()
	buf := NewNestedCode(testLang{}, false, false)

	tbl := Table{
		ir.Negation: {ir.SpecNone: []RuleGroup{{Rules: []Rule{
			{Sig: TypeStrictMatch(ir.Int32, ir.Int32), Gen: &ComplexOperator{Modify: func(n *ir.Node) (*ir.Node, error) {
				// Rewrites to a node of the same shape: never reduces.
				a := n.Arena()
				return a.NewNode(ir.Negation, ir.SpecNone, ir.Int32, n.Children[0]), nil
			}}},
		}}}},
	}
	gen := NewExprGenerator(testBackend(tbl), testLang{})

	n := arena.NewNode(ir.Negation, ir.SpecNone, ir.Int32, arena.NewVariable("x", ir.Int32))
	if _, err := gen.Generate(buf, n); !errors.Is(err, ErrMalformedNode) {
		t.Fatalf("Generate error = %v, want %v (rewrite cycle must hit the depth ceiling)", err, ErrMalformedNode)
	}
}
