package codegen

import (
	"errors"
	"testing"

	"github.com/ajroetker/go-mathgen/ir"
)

func TestBackendChainFallback(t *testing.T) {
	arena := ir.NewArena()
	baseAdd := &SymbolOperator{Symbol: "+", Arity: 2}
	baseMul := &SymbolOperator{Symbol: "*", Arity: 2}
	specAdd := &SymbolOperator{Symbol: "add", Arity: 2}

	base := NewBackend("base", nil)
	base.SetTable(ir.CCode, Table{
		ir.Addition: {ir.SpecNone: []RuleGroup{{Rules: []Rule{
			{Sig: TypeStrictMatch(ir.Int32, ir.Int32, ir.Int32), Gen: baseAdd},
		}}}},
		ir.Multiplication: {ir.SpecNone: []RuleGroup{{Rules: []Rule{
			{Sig: TypeStrictMatch(ir.Int32, ir.Int32, ir.Int32), Gen: baseMul},
		}}}},
	})

	spec := NewBackend("specialized", base)
	spec.SetTable(ir.CCode, Table{
		ir.Addition: {ir.SpecNone: []RuleGroup{{Rules: []Rule{
			{Sig: TypeStrictMatch(ir.Int32, ir.Int32, ir.Int32), Gen: specAdd},
		}}}},
	})

	add := arena.NewNode(ir.Addition, ir.SpecNone, ir.Int32,
		arena.NewVariable("a", ir.Int32), arena.NewVariable("b", ir.Int32))
	mul := arena.NewNode(ir.Multiplication, ir.SpecNone, ir.Int32,
		arena.NewVariable("a", ir.Int32), arena.NewVariable("b", ir.Int32))

	got, err := spec.Resolve(ir.CCode, add)
	if err != nil {
		t.Fatal(err)
	}
	if got != Generator(specAdd) {
		t.Error("specialized entry did not shadow the base entry")
	}

	got, err = spec.Resolve(ir.CCode, mul)
	if err != nil {
		t.Fatal(err)
	}
	if got != Generator(baseMul) {
		t.Error("absent specialized entry did not fall back to the base")
	}
}

func TestBackendEntryPresentButMissIsFatal(t *testing.T) {
	arena := ir.NewArena()

	base := NewBackend("base", nil)
	base.SetTable(ir.CCode, Table{
		ir.Addition: {ir.SpecNone: []RuleGroup{{Rules: []Rule{
			{Sig: TypeStrictMatch(ir.Int64, ir.Int64, ir.Int64), Gen: &SymbolOperator{Symbol: "+", Arity: 2}},
		}}}},
	})

	spec := NewBackend("specialized", base)
	spec.SetTable(ir.CCode, Table{
		ir.Addition: {ir.SpecNone: []RuleGroup{{Rules: []Rule{
			{Sig: TypeStrictMatch(ir.Int32, ir.Int32, ir.Int32), Gen: &SymbolOperator{Symbol: "add", Arity: 2}},
		}}}},
	})

	// The specialized table has an Addition entry, so resolution
	// commits to it; the base's matching Int64 rule is unreachable.
	n := arena.NewNode(ir.Addition, ir.SpecNone, ir.Int64,
		arena.NewVariable("a", ir.Int64), arena.NewVariable("b", ir.Int64))

	if _, err := spec.Resolve(ir.CCode, n); !errors.Is(err, ErrNoMatchingRule) {
		t.Fatalf("Resolve error = %v, want %v", err, ErrNoMatchingRule)
	}
}

func TestBackendMissingLanguage(t *testing.T) {
	arena := ir.NewArena()
	b := NewBackend("c-only", nil)
	b.SetTable(ir.CCode, intAddTable(false))

	n := arena.NewNode(ir.Addition, ir.SpecNone, ir.Int32,
		arena.NewVariable("a", ir.Int32), arena.NewVariable("b", ir.Int32))

	if _, err := b.Resolve(ir.VHDLCode, n); !errors.Is(err, ErrNoMatchingRule) {
		t.Fatalf("Resolve error = %v, want %v", err, ErrNoMatchingRule)
	}
}

func TestBackendLanguages(t *testing.T) {
	base := NewBackend("base", nil)
	base.SetTable(ir.CCode, Table{})
	spec := NewBackend("specialized", base)
	spec.SetTable(ir.VHDLCode, Table{})

	langs := spec.Languages()
	if len(langs) != 2 || langs[0] != ir.CCode || langs[1] != ir.VHDLCode {
		t.Errorf("Languages = %v, want [c vhdl]", langs)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("b", func() *Backend { return NewBackend("b", nil) })
	r.Register("a", func() *Backend { return NewBackend("a", nil) })

	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names = %v, want [a b]", names)
	}

	b, err := r.New("a")
	if err != nil {
		t.Fatal(err)
	}
	if b.Name() != "a" {
		t.Errorf("New(a).Name = %q", b.Name())
	}

	if _, err := r.New("missing"); err == nil {
		t.Error("New(missing) succeeded")
	}
}

func TestRegistryShadowing(t *testing.T) {
	r := NewRegistry()
	r.Register("x", func() *Backend { return NewBackend("first", nil) })
	r.Register("x", func() *Backend { return NewBackend("second", nil) })

	b, err := r.New("x")
	if err != nil {
		t.Fatal(err)
	}
	if b.Name() != "second" {
		t.Errorf("later registration did not shadow: got %q", b.Name())
	}
}
