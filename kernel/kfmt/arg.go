package kfmt

import "github.com/hegza/xil-custom-sys/kernel"

// ArgKind identifies the value stored in an Arg.
type ArgKind uint8

// The argument kinds understood by the formatter.
const (
	KindNone ArgKind = iota
	KindInt
	KindUint
	KindString
)

// Arg is a single formatter argument. Args are plain values so building an
// argument list never boxes anything into an interface and never touches the
// heap.
type Arg struct {
	kind ArgKind
	num  int32
	str  string
}

// Int returns a signed 32-bit argument.
func Int(v int32) Arg { return Arg{kind: KindInt, num: v} }

// Uint returns an unsigned 32-bit argument.
func Uint(v uint32) Arg { return Arg{kind: KindUint, num: int32(v)} }

// Str returns a string argument. The formatter treats a NUL byte inside s as
// the end of the string.
func Str(s string) Arg { return Arg{kind: KindString, str: s} }

// Char returns an argument for the %c verb.
func Char(c byte) Arg { return Arg{kind: KindInt, num: int32(c)} }

// Kind returns the kind of value stored in a.
func (a Arg) Kind() ArgKind { return a.kind }

var (
	errArgMissing   = &kernel.Error{Module: "kfmt", Message: "missing argument"}
	errArgNotInt    = &kernel.Error{Module: "kfmt", Message: "integer verb with non-integer argument"}
	errArgNotString = &kernel.Error{Module: "kfmt", Message: "string verb with non-string argument"}
)

// argCursor hands out the arguments of a single Fprintf call in order.
//
// Asking for a kind that does not match the stored argument is a caller bug.
// Regular builds coerce the value (signed and unsigned share their bits, the
// other mismatches read as the zero value); builds tagged kfmtdebug panic.
type argCursor struct {
	args []Arg
	next int

	// pulled counts requests; with dryRun set no argument is read.
	pulled int
	dryRun bool
}

func (c *argCursor) pull() (Arg, bool) {
	c.pulled++
	if c.dryRun {
		return Arg{}, false
	}

	if c.next >= len(c.args) {
		argMismatch(errArgMissing)
		return Arg{}, false
	}

	a := c.args[c.next]
	c.next++
	return a, true
}

// nextInt returns the next argument as a 32-bit integer.
func (c *argCursor) nextInt() int32 {
	a, ok := c.pull()
	if !ok {
		return 0
	}

	if a.kind != KindInt && a.kind != KindUint {
		argMismatch(errArgNotInt)
		return 0
	}

	return a.num
}

// nextString returns the next argument as a string.
func (c *argCursor) nextString() string {
	a, ok := c.pull()
	if !ok {
		return ""
	}

	if a.kind != KindString {
		argMismatch(errArgNotString)
		return ""
	}

	return a.str
}
