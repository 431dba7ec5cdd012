//go:build kfmtdebug

package kfmt

import (
	"bytes"
	"testing"

	"github.com/hegza/xil-custom-sys/kernel"
)

func TestArgMismatchPanics(t *testing.T) {
	specs := []struct {
		format string
		args   []Arg
		expErr *kernel.Error
	}{
		{"%d", nil, errArgMissing},
		{"%d", []Arg{Str("foo")}, errArgNotInt},
		{"%s", []Arg{Uint(1)}, errArgNotString},
	}

	for specIndex, spec := range specs {
		func() {
			defer func() {
				if err := recover(); err != spec.expErr {
					t.Errorf("[spec %d] expected panic with %v; got %v", specIndex, spec.expErr, err)
				}
			}()

			var buf bytes.Buffer
			Fprintf(&buf, spec.format, spec.args...)
		}()
	}
}
