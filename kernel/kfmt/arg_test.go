//go:build !kfmtdebug

package kfmt

import (
	"bytes"
	"testing"
)

func TestArgMismatchCoercion(t *testing.T) {
	specs := []struct {
		format    string
		args      []Arg
		expOutput string
	}{
		{"missing args %d %s|", nil, "missing args 0 |"},
		{"not int %d", []Arg{Str("foo")}, "not int 0"},
		{"not string '%s'", []Arg{Int(123)}, "not string ''"},
		{"zero arg %c|", []Arg{{}}, "zero arg \x00|"},
		// a mismatched argument is still consumed
		{"%d %d", []Arg{Str("skip"), Int(2)}, "0 2"},
	}

	for specIndex, spec := range specs {
		var buf bytes.Buffer
		Fprintf(&buf, spec.format, spec.args...)

		if got := buf.String(); got != spec.expOutput {
			t.Errorf("[spec %d] expected to get\n%q\ngot:\n%q", specIndex, spec.expOutput, got)
		}
	}
}

func TestArgKind(t *testing.T) {
	specs := []struct {
		arg Arg
		exp ArgKind
	}{
		{Arg{}, KindNone},
		{Int(-1), KindInt},
		{Char('a'), KindInt},
		{Uint(1), KindUint},
		{Str(""), KindString},
	}

	for specIndex, spec := range specs {
		if got := spec.arg.Kind(); got != spec.exp {
			t.Errorf("[spec %d] expected kind %d; got %d", specIndex, spec.exp, got)
		}
	}
}
