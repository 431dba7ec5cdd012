package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const longHelp = `xilprintf formats FORMAT with the same allocation-free printf engine the
firmware uses and writes the result to stdout.

Conversions: %[-][0][width][.precision][l]verb with verbs d i u x X p s c %.
Inside a conversion, \a \h \r \n emit BEL, BS, CR and CR LF.

Arguments may be typed with a prefix: i:-5 u:0xffffffff s:text c:65 c:A.
A c: value that is a number is a character code (c:7 is BEL); any other
single character is taken literally. Decimal and 0x hex arguments without a
prefix are passed as integers, anything else as strings. A leading zero
does not mean octal.

With --board the output is sent through the PS UART driver, probed by the
HAL on an in-memory register file, exactly as the firmware console would
transmit it.

Default flags can be stored one per line in $XILPRINTF_CONFIG_PATH or
~/.xilprintf.`

// NewCommand returns the xilprintf root command. Output goes to out and log
// messages to errOut.
func NewCommand(out *os.File, errOut io.Writer) *cobra.Command {
	var (
		cfg   Config
		color string
		level string
	)

	cmd := &cobra.Command{
		Use:           "xilprintf [flags] FORMAT [ARG...]",
		Short:         "Format text with the bare-metal printf engine",
		Long:          longHelp,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg.Color, err = ParseColorMode(color); err != nil {
				return err
			}
			if cfg.LogLevel, err = log.ParseLevel(level); err != nil {
				return fmt.Errorf("invalid log level %q: %w", level, err)
			}

			cfg.Format, cfg.Args = args[0], args[1:]
			return Run(cfg, out, errOut)
		},
	}

	bindFlags(cmd.Flags(), &cfg, &color, &level)
	return cmd
}

func bindFlags(fs *pflag.FlagSet, cfg *Config, color, level *string) {
	fs.BoolVarP(&cfg.Newline, "newline", "n", false, `terminate the output with "\n\r"`)
	fs.StringVarP(&cfg.Prefix, "prefix", "p", "", "prefix injected at the start of every output line")
	fs.BoolVarP(&cfg.Visible, "visible", "v", false, "show control bytes as escape sequences")
	fs.BoolVar(&cfg.Board, "board", false, "print through the UART driver on an emulated register file")
	fs.StringVar(color, "color", "auto", "style visible escapes: auto, always or never")
	fs.StringVar(level, "log-level", "warn", "log level: debug, info, warn or error")

	// everything after FORMAT is an argument, including negative numbers
	fs.SetInterspersed(false)
}
