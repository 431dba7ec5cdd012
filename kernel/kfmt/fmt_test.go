package kfmt

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

func TestPrintf(t *testing.T) {
	defer func() {
		outputSink = nil
	}()

	// mute vet warnings about malformed printf formatting strings
	printfn := Printf

	specs := []struct {
		fn        func()
		expOutput string
	}{
		{
			func() { printfn("no args") },
			"no args",
		},
		{
			func() { printfn("") },
			"",
		},
		{
			func() { printfn("100%% done") },
			"100% done",
		},
		// signed ints
		{
			func() { printfn("%d", Int(42)) },
			"42",
		},
		{
			func() { printfn("%i|%D|%ld", Int(-10), Int(0), Int(2147483647)) },
			"-10|0|2147483647",
		},
		{
			func() { printfn("%d", Int(-2147483648)) },
			"-2147483648",
		},
		{
			func() { printfn("%5d", Int(42)) },
			"   42",
		},
		{
			func() { printfn("%-5d|", Int(42)) },
			"42   |",
		},
		{
			func() { printfn("%05d", Int(7)) },
			"00007",
		},
		{
			func() { printfn("'%5d'", Int(-42)) },
			"'  -42'",
		},
		{
			func() { printfn("'%05d'", Int(-7)) },
			"'000-7'",
		},
		{
			func() { printfn("'%2d'", Int(-1234)) },
			"'-1234'",
		},
		{
			func() { printfn("'%-05d'", Int(7)) },
			"'70000'",
		},
		// unsigned ints
		{
			func() { printfn("%u", Uint(4294967295)) },
			"4294967295",
		},
		{
			func() { printfn("%u", Int(-1)) },
			"4294967295",
		},
		{
			func() { printfn("%d", Uint(4294967295)) },
			"-1",
		},
		{
			func() { printfn("%lu items", Uint(3)) },
			"3 items",
		},
		// hex
		{
			func() { printfn("%x", Int(255)) },
			"FF",
		},
		{
			func() { printfn("0x%X", Uint(0xbadf00d)) },
			"0xBADF00D",
		},
		{
			func() { printfn("%x", Int(-1)) },
			"FFFFFFFF",
		},
		{
			func() { printfn("0x%08x", Uint(0xb8000)) },
			"0x000B8000",
		},
		{
			func() { printfn("%p", Uint(0xb8000)) },
			"B8000",
		},
		{
			func() { printfn("%x", Int(0)) },
			"0",
		},
		// precision only limits strings
		{
			func() { printfn("%.2d", Int(12345)) },
			"12345",
		},
		{
			func() { printfn("%08.3x", Uint(0xab)) },
			"000000AB",
		},
		{
			func() { printfn("'%5.1d'", Int(-42)) },
			"'  -42'",
		},
		{
			func() { printfn("%.0u", Uint(0)) },
			"0",
		},
		// strings
		{
			func() { printfn("%s arg", Str("STRING")) },
			"STRING arg",
		},
		{
			func() { printfn("%.3s", Str("hello")) },
			"hel",
		},
		{
			func() { printfn("%.0s|", Str("hello")) },
			"|",
		},
		{
			func() { printfn("%.10s", Str("hello")) },
			"hello",
		},
		{
			func() { printfn("'%8s'", Str("abc")) },
			"'     abc'",
		},
		{
			func() { printfn("'%-8s'", Str("abc")) },
			"'abc     '",
		},
		{
			func() { printfn("'%2s'", Str("abcde")) },
			"'abcde'",
		},
		{
			// the field width is computed from the full string length
			func() { printfn("'%5.2s'", Str("abc")) },
			"'  ab'",
		},
		{
			func() { printfn("'%s'", Str("nul\x00terminated")) },
			"'nul'",
		},
		// chars
		{
			func() { printfn("%c", Int(65)) },
			"A",
		},
		{
			func() { printfn("%c%C", Char('o'), Char('k')) },
			"ok",
		},
		{
			func() { printfn("%c", Int(0x141)) },
			"A",
		},
		// backslash escapes inside a conversion
		{
			func() { printfn("a%\\nb") },
			"a\r\nb",
		},
		{
			func() { printfn("%\\a%\\h%\\r") },
			"\x07\x08\r",
		},
		{
			func() { printfn("%\\N%\\q") },
			"Nq",
		},
		{
			func() { printfn("trailing %\\") },
			"trailing ",
		},
		// unknown verbs and truncated conversions
		{
			func() { printfn("bad verb %Q!") },
			"bad verb !",
		},
		{
			func() { printfn("bad verb %5Q!", Int(1)) },
			"bad verb !",
		},
		{
			func() { printfn("dangling %-05") },
			"dangling ",
		},
		{
			func() { printfn("before\x00after %d", Int(1)) },
			"before",
		},
		// multiple arguments
		{
			func() { printfn("%%%s%d%x", Str("foo"), Int(123), Uint(0xab)) },
			"%foo123AB",
		},
	}

	var buf bytes.Buffer
	SetOutputSink(&buf)

	for specIndex, spec := range specs {
		buf.Reset()
		spec.fn()

		if got := buf.String(); got != spec.expOutput {
			t.Errorf("[spec %d] expected to get\n%q\ngot:\n%q", specIndex, spec.expOutput, got)
		}
	}
}

func TestPrintfToRingBuffer(t *testing.T) {
	defer func() {
		outputSink = nil
	}()

	outputSink = nil
	earlyPrintBuffer = ringBuffer{}

	Printf("hello %s", Str("world"))
	Println("!")

	var buf bytes.Buffer
	SetOutputSink(&buf)

	if exp, got := "hello world!\n\r", buf.String(); got != exp {
		t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
	}

	if earlyPrintBuffer.Len() != 0 {
		t.Fatalf("expected ring buffer to be drained; %d bytes left", earlyPrintBuffer.Len())
	}

	if OutputSink() != &buf {
		t.Fatal("expected OutputSink to return the installed sink")
	}
}

func TestFprintf(t *testing.T) {
	var buf bytes.Buffer

	exp := "hello world"
	Fprintf(&buf, exp)

	if got := buf.String(); got != exp {
		t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
	}
}

func TestFprintln(t *testing.T) {
	var buf bytes.Buffer

	Fprintln(&buf, "x=%d", Int(1))

	if exp, got := "x=1\n\r", buf.String(); got != exp {
		t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
	}
}

func TestFprintfConsumesArgsInOrder(t *testing.T) {
	var buf bytes.Buffer

	// %% and escapes must not consume arguments
	Fprintf(&buf, "%%%\\n%d%d", Int(1), Int(2))

	if exp, got := "%\r\n12", buf.String(); got != exp {
		t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
	}
}

func TestNumberDigits(t *testing.T) {
	values := []int32{0, 1, 9, 10, 15, 16, 255, 4096, 65535, 1000000, 2147483647}

	for _, v := range values {
		for _, base := range []uint32{10, 16} {
			var (
				buf bytes.Buffer
				par params
			)
			par.reset()
			par.treatAsUnsigned = base == 16

			fmtNumber(&buf, v, base, &par)

			exp := strings.ToUpper(strconv.FormatInt(int64(v), int(base)))
			if got := buf.String(); got != exp {
				t.Errorf("expected %d in base %d to render as %q; got %q", v, base, exp, got)
			}

			if par.renderedLen != len(exp) {
				t.Errorf("expected renderedLen for %d in base %d to be %d; got %d", v, base, len(exp), par.renderedLen)
			}
		}

		if v == 0 {
			continue
		}

		var (
			buf bytes.Buffer
			par params
		)
		par.reset()
		fmtNumber(&buf, -v, 10, &par)
		if exp, got := "-"+strconv.Itoa(int(v)), buf.String(); got != exp {
			t.Errorf("expected %d to render as %q; got %q", -v, exp, got)
		}
	}
}

func TestStringPrecision(t *testing.T) {
	inputs := []string{"", "a", "hello", "the big brown fox"}

	for _, s := range inputs {
		for k := 0; k <= len(s)+2; k++ {
			var buf bytes.Buffer
			Fprintf(&buf, "%."+strconv.Itoa(k)+"s", Str(s))

			n := k
			if n > len(s) {
				n = len(s)
			}

			if exp, got := s[:n], buf.String(); got != exp {
				t.Errorf("expected %%.%ds of %q to render as %q; got %q", k, s, exp, got)
			}
		}
	}
}

func TestWidthLaw(t *testing.T) {
	for _, v := range []int32{0, 7, -7, 123, -4567, 2147483647} {
		for width := 0; width < 14; width++ {
			for _, flags := range []string{"", "-", "0", "-0"} {
				var (
					buf  bytes.Buffer
					core = strconv.Itoa(int(v))
				)
				Fprintf(&buf, "%"+flags+strconv.Itoa(width)+"d", Int(v))

				fieldLen := len(core)
				if width > fieldLen {
					fieldLen = width
				}

				got := buf.String()
				if len(got) != fieldLen {
					t.Errorf("expected %q with width %d and flags %q to be %d bytes; got %q", core, width, flags, fieldLen, got)
					continue
				}

				padLen := fieldLen - len(core)
				padCh := " "
				if strings.Contains(flags, "0") {
					padCh = "0"
				}

				exp := strings.Repeat(padCh, padLen) + core
				if strings.HasPrefix(flags, "-") {
					exp = core + strings.Repeat(padCh, padLen)
				}

				if got != exp {
					t.Errorf("expected %q with width %d and flags %q to render as %q; got %q", core, width, flags, exp, got)
				}
			}
		}
	}
}

func TestScanDigits(t *testing.T) {
	specs := []struct {
		input   string
		pos     int
		exp     int
		expNext int
	}{
		{"12s", 0, 12, 2},
		{"%05d", 1, 5, 3},
		{"x", 0, 0, 0},
		{"32767", 0, 32767, 5},
	}

	for specIndex, spec := range specs {
		got, next := scanDigits(spec.input, spec.pos)
		if got != spec.exp || next != spec.expNext {
			t.Errorf("[spec %d] expected (%d, %d); got (%d, %d)", specIndex, spec.exp, spec.expNext, got, next)
		}
	}
}

// fixedSink collects output in a fixed array so that it never allocates.
type fixedSink struct {
	buf [256]byte
	n   int
}

func (s *fixedSink) WriteByte(b byte) error {
	s.buf[s.n%len(s.buf)] = b
	s.n++
	return nil
}

func TestFprintfDoesNotAllocate(t *testing.T) {
	sink := new(fixedSink)

	allocs := testing.AllocsPerRun(100, func() {
		sink.n = 0
		Fprintf(sink, "[%s] %-6d|%08x|%.2s|%c%%", Str("kfmt"), Int(-42), Uint(0xdead), Str("xyz"), Char('!'))
	})

	if allocs != 0 {
		t.Fatalf("expected Fprintf to perform no allocations; got %v", allocs)
	}

	if exp, got := "[kfmt] -42   |0000DEAD|xy|!%", string(sink.buf[:sink.n]); got != exp {
		t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
	}
}

func TestArgCount(t *testing.T) {
	specs := []struct {
		format string
		exp    int
	}{
		{"", 0},
		{"no args", 0},
		{"100%% done%\\n", 0},
		{"%d %s %c", 3},
		{"%-08.3lx|%5.2S|%Q", 2},
		{"%u\x00%d", 1},
	}

	for specIndex, spec := range specs {
		if got := ArgCount(spec.format); got != spec.exp {
			t.Errorf("[spec %d] expected ArgCount(%q) to return %d; got %d", specIndex, spec.format, spec.exp, got)
		}
	}
}
