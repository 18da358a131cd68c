package main

import (
	"strings"
	"testing"

	"github.com/ajroetker/go-mathgen/target"
)

func TestGenerateDemoC(t *testing.T) {
	backend, err := target.DefaultRegistry().New(target.CBackendName)
	if err != nil {
		t.Fatal(err)
	}
	lang, err := target.LanguageByID("c")
	if err != nil {
		t.Fatal(err)
	}

	out, err := generateDemo(backend, lang, "demo", true, true)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"/* Demo (generated by mathgen) */",
		"#include <math.h>",
		"static const double table[3]",
		"result = copysign((x * y) + table[i], x);",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateDemoVHDL(t *testing.T) {
	backend, err := target.DefaultRegistry().New(target.VHDLBackendName)
	if err != nil {
		t.Fatal(err)
	}
	lang, err := target.LanguageByID("vhdl")
	if err != nil {
		t.Fatal(err)
	}

	out, err := generateDemo(backend, lang, "demo", true, true)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"-- Demo (generated by mathgen)",
		"signal sum : std_logic_vector(7 downto 0);",
		"sum <= a + b;",
		"neg <= not(sum) + '1';",
		`result <= "0000" & neg;`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
