package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hegza/xil-custom-sys/kernel/kfmt"
)

var (
	errCharRange = errors.New("character value out of range")
	errIntRange  = errors.New("value out of range")
	errNegative  = errors.New("value must not be negative")
)

// ParseArg converts a command-line argument into a formatter argument.
//
// Typed arguments carry a prefix: "i:" (signed), "u:" (unsigned), "s:"
// (string) and "c:" (a character code such as 7 or 0x41, or any other
// single character taken literally). Untyped arguments that parse as a
// decimal or 0x-prefixed hex integer become integers; everything else
// becomes a string.
func ParseArg(raw string) (kfmt.Arg, error) {
	kind, val, typed := strings.Cut(raw, ":")
	if typed {
		switch kind {
		case "i":
			neg, mag, err := parseNumber(val)
			if err != nil {
				return kfmt.Arg{}, err
			}
			n, ok := toInt32(neg, mag)
			if !ok {
				return kfmt.Arg{}, errIntRange
			}
			return kfmt.Int(n), nil
		case "u":
			neg, mag, err := parseNumber(val)
			if err != nil {
				return kfmt.Arg{}, err
			}
			if neg {
				return kfmt.Arg{}, errNegative
			}
			return kfmt.Uint(uint32(mag)), nil
		case "s":
			return kfmt.Str(val), nil
		case "c":
			neg, mag, err := parseNumber(val)
			if err != nil {
				if len(val) == 1 {
					return kfmt.Char(val[0]), nil
				}
				return kfmt.Arg{}, err
			}
			if neg || mag > 0xff {
				return kfmt.Arg{}, errCharRange
			}
			return kfmt.Char(byte(mag)), nil
		}
	}

	neg, mag, err := parseNumber(raw)
	if err != nil {
		return kfmt.Str(raw), nil
	}
	if n, ok := toInt32(neg, mag); ok {
		return kfmt.Int(n), nil
	}
	if !neg {
		return kfmt.Uint(uint32(mag)), nil
	}
	return kfmt.Str(raw), nil
}

// parseNumber parses an optionally negative decimal or 0x/0X hex integer
// whose magnitude fits in 32 bits. A leading zero does not select octal.
func parseNumber(s string) (neg bool, mag uint64, err error) {
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, rest
	}

	base := 10
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s, base = s[2:], 16
	}

	mag, err = strconv.ParseUint(s, base, 32)
	return neg, mag, err
}

func toInt32(neg bool, mag uint64) (int32, bool) {
	if neg {
		if mag > -math.MinInt32 {
			return 0, false
		}
		return int32(-int64(mag)), true
	}
	if mag > math.MaxInt32 {
		return 0, false
	}
	return int32(mag), true
}

// ParseArgs converts all command-line arguments.
func ParseArgs(raw []string) ([]kfmt.Arg, error) {
	args := make([]kfmt.Arg, 0, len(raw))
	for i, r := range raw {
		a, err := ParseArg(r)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%q): %w", i+1, r, err)
		}
		args = append(args, a)
	}
	return args, nil
}
