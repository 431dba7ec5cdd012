package kfmt

import (
	"io"
	"strings"
)

const (
	// maxBufSize defines the buffer size for formatting numbers. It fits a
	// 32-bit value in any base >= 2.
	maxBufSize = 32

	// defaultMaxChars is the string precision used when a conversion does
	// not specify one.
	defaultMaxChars = 32767
)

const hexDigits = "0123456789ABCDEF"

var (
	// earlyPrintBuffer is a ring buffer that stores Printf output before a
	// UART or other sink has been initialized.
	earlyPrintBuffer ringBuffer

	// outputSink is where Printf sends its output. If set to nil, output
	// is redirected to the earlyPrintBuffer.
	outputSink io.ByteWriter
)

// params holds the state of the conversion currently being parsed.
type params struct {
	// length of the rendered value before padding
	renderedLen int

	minWidth int
	maxChars int
	padChar  byte

	padRequested    bool
	leftJustify     bool
	treatAsUnsigned bool
}

func (p *params) reset() {
	*p = params{
		maxChars: defaultMaxChars,
		padChar:  ' ',
	}
}

// SetOutputSink sets the default target for calls to Printf to w and copies
// any data accumulated in the earlyPrintBuffer to it.
func SetOutputSink(w io.ByteWriter) {
	outputSink = w
	if w != nil {
		earlyPrintBuffer.drainTo(w)
	}
}

// OutputSink returns the sink currently used by Printf. While no sink is
// installed, this is the early ring buffer.
func OutputSink() io.ByteWriter {
	if outputSink == nil {
		return &earlyPrintBuffer
	}

	return outputSink
}

// Printf formats according to format and writes the result to the active
// output sink. See Fprintf for the supported syntax.
func Printf(format string, args ...Arg) {
	Fprintf(OutputSink(), format, args...)
}

// Println behaves like Printf and terminates the output with "\n\r".
func Println(format string, args ...Arg) {
	Fprintln(OutputSink(), format, args...)
}

// Fprintln behaves like Fprintf and terminates the output with "\n\r".
func Fprintln(w io.ByteWriter, format string, args ...Arg) {
	Fprintf(w, format, args...)
	w.WriteByte('\n')
	w.WriteByte('\r')
}

// Fprintf provides a minimal printf implementation that can be safely used
// before any memory allocator is available. It never allocates and writes
// its output to w one byte at a time. Write errors reported by w are
// ignored.
//
// The format string ends at its last byte or at the first NUL byte. Each
// conversion has the form
//
//	%[-][0][width][.precision][l]verb
//
// where verb is one of (case-insensitive):
//
//	%%       a literal percent sign; consumes no argument
//	%d %i    signed base 10
//	%u       unsigned base 10
//	%x %p    unsigned base 16 with upper-case digits
//	%s       string; at most precision bytes are copied
//	%c       the low byte of an integer argument
//
// A width pads the field to at least that many bytes, on the left unless the
// '-' flag is present. The pad byte is '0' if the width starts with a zero and
// a space otherwise. The 'l' modifier is accepted and ignored.
//
// Inside a conversion a backslash followed by one byte emits a control code:
// \a (BEL), \h (BS), \r (CR), \n (CR LF); any other byte is copied through.
// These letters are case-sensitive. Unknown verbs end the conversion without
// producing output.
//
// The argument list must agree with the format string. See Arg for what
// happens when it does not.
//
// Fprintf holds no locks. Callers sharing w with interrupt handlers or other
// cores must serialize access themselves, for instance through a Console.
// Calling Fprintf from inside w.WriteByte is not supported.
func Fprintf(w io.ByteWriter, format string, args ...Arg) {
	cursor := argCursor{args: args}
	fmtScan(w, format, &cursor)
}

// ArgCount returns the number of arguments format consumes. Tools use it
// to check an argument list before formatting.
func ArgCount(format string) int {
	cursor := argCursor{dryRun: true}
	fmtScan(discard{}, format, &cursor)
	return cursor.pulled
}

// fmtScan is the top-level scan shared by Fprintf and ArgCount.
func fmtScan(w io.ByteWriter, format string, cursor *argCursor) {
	var (
		par params
		pos int
	)

	if nul := strings.IndexByte(format, 0); nul != -1 {
		format = format[:nul]
	}

	for pos < len(format) {
		if ch := format[pos]; ch != '%' {
			w.WriteByte(ch)
			pos++
			continue
		}

		par.reset()
		pos = fmtConversion(w, format, pos+1, &par, cursor)
	}
}

// fmtConversion parses the conversion that starts at format[pos] (the byte
// after '%'), renders it to w and returns the index of the first byte after
// the conversion.
func fmtConversion(w io.ByteWriter, format string, pos int, par *params, cursor *argCursor) int {
	var precision bool

	for pos < len(format) {
		ch := format[pos]
		if isDigit(ch) {
			if precision {
				par.maxChars, pos = scanDigits(format, pos)
				continue
			}

			if ch == '0' {
				par.padChar = '0'
			}
			par.minWidth, pos = scanDigits(format, pos)
			par.padRequested = true
			continue
		}

		pos++
		switch toLower(ch) {
		case '%':
			w.WriteByte('%')
		case '-':
			par.leftJustify = true
			continue
		case '.':
			precision = true
			continue
		case 'l':
			continue
		case 'u':
			par.treatAsUnsigned = true
			fmtNumber(w, cursor.nextInt(), 10, par)
		case 'i', 'd':
			fmtNumber(w, cursor.nextInt(), 10, par)
		case 'x', 'p':
			par.treatAsUnsigned = true
			fmtNumber(w, cursor.nextInt(), 16, par)
		case 's':
			fmtString(w, cursor.nextString(), par)
		case 'c':
			w.WriteByte(byte(cursor.nextInt()))
		case '\\':
			if pos < len(format) {
				fmtEscape(w, format[pos])
				pos++
			}
		}

		return pos
	}

	// reached end of the format string inside a conversion
	return pos
}

// fmtEscape writes the control sequence selected by the byte following a
// backslash.
func fmtEscape(w io.ByteWriter, ch byte) {
	switch ch {
	case 'a':
		w.WriteByte(0x07)
	case 'h':
		w.WriteByte(0x08)
	case 'r':
		w.WriteByte(0x0d)
	case 'n':
		w.WriteByte(0x0d)
		w.WriteByte(0x0a)
	default:
		w.WriteByte(ch)
	}
}

// scanDigits parses the run of decimal digits starting at format[pos] and
// returns its value together with the index of the first non-digit byte.
// Overflow is not checked.
func scanDigits(format string, pos int) (int, int) {
	var n int
	for ; pos < len(format) && isDigit(format[pos]); pos++ {
		n = n*10 + int(format[pos]-'0')
	}

	return n, pos
}

// fmtNumber prints n in the requested base (10 or 16). A minus sign is only
// printed for signed base-10 conversions.
func fmtNumber(w io.ByteWriter, n int32, base uint32, par *params) {
	var (
		buf      [maxBufSize]byte
		right    int
		negative = !par.treatAsUnsigned && base == 10 && n < 0
		uval     = uint32(n)
	)

	if negative {
		uval = uint32(-n)
	}

	// Build the number backwards
	for {
		buf[right] = hexDigits[uval%base]
		right++

		uval /= base
		if uval == 0 {
			break
		}
	}

	if negative {
		buf[right] = '-'
		right++
	}

	par.renderedLen = right
	fmtPadding(w, !par.leftJustify, par)
	for right--; right >= 0; right-- {
		w.WriteByte(buf[right])
	}
	fmtPadding(w, par.leftJustify, par)
}

// fmtString prints s, copying at most par.maxChars bytes. Padding is computed
// from the full length of s regardless of the precision.
func fmtString(w io.ByteWriter, s string, par *params) {
	if nul := strings.IndexByte(s, 0); nul != -1 {
		s = s[:nul]
	}

	par.renderedLen = len(s)
	fmtPadding(w, !par.leftJustify, par)
	for i, budget := 0, par.maxChars; i < len(s) && budget > 0; i, budget = i+1, budget-1 {
		w.WriteByte(s[i])
	}
	fmtPadding(w, par.leftJustify, par)
}

// fmtPadding writes the pad bytes for the current conversion if side matches
// the requested justification and the rendered value is narrower than the
// field width.
func fmtPadding(w io.ByteWriter, side bool, par *params) {
	if !par.padRequested || !side {
		return
	}

	for i := par.renderedLen; i < par.minWidth; i++ {
		w.WriteByte(par.padChar)
	}
}

// discard is a sink that drops everything written to it.
type discard struct{}

func (discard) WriteByte(byte) error { return nil }

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func toLower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}

	return ch
}
