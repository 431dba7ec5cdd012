//go:build kfmtdebug

package kfmt

import "github.com/hegza/xil-custom-sys/kernel"

// argMismatch aborts formatting when the argument list does not agree with
// the format string.
func argMismatch(err *kernel.Error) {
	panic(err)
}
