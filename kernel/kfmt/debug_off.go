//go:build !kfmtdebug

package kfmt

import "github.com/hegza/xil-custom-sys/kernel"

// argMismatch is a no-op unless the package is built with the kfmtdebug tag.
func argMismatch(*kernel.Error) {}
