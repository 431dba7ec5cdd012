package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/hegza/xil-custom-sys/kernel/kfmt"
)

// Run formats cfg.Format with cfg.Args and writes the result to out.
func Run(cfg Config, out *os.File, errOut io.Writer) error {
	logger := log.NewWithOptions(errOut, log.Options{
		Level:  cfg.LogLevel,
		Prefix: "xilprintf",
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		return err
	}

	args, err := ParseArgs(cfg.Args)
	if err != nil {
		logger.Error("invalid argument", "err", err)
		return err
	}

	if want := kfmt.ArgCount(cfg.Format); want != len(args) {
		logger.Warn("argument count does not match format", "want", want, "got", len(args))
	}

	// Determine color mode
	useColor := false
	switch cfg.Color {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	}

	styles := NoStyles()
	if useColor && cfg.Visible {
		r := lipgloss.NewRenderer(out)
		r.SetColorProfile(termenv.ANSI)
		styles = NewStyles(r)
	}

	sink := newTermSink(NewWriter(out), cfg.Visible, styles)

	logger.Debug("formatting", "format", cfg.Format, "args", len(args), "newline", cfg.Newline, "board", cfg.Board)
	if cfg.Board {
		console, err := boardConsole(sink, cfg.Prefix, logger)
		if err != nil {
			logger.Error("board emulation failed", "err", err)
			return err
		}

		if cfg.Newline {
			console.Println(cfg.Format, args...)
		} else {
			console.Printf(cfg.Format, args...)
		}
	} else {
		var w io.ByteWriter = sink
		if cfg.Prefix != "" {
			w = &kfmt.PrefixSink{Sink: sink, Prefix: cfg.Prefix}
		}

		if cfg.Newline {
			kfmt.Fprintln(w, cfg.Format, args...)
		} else {
			kfmt.Fprintf(w, cfg.Format, args...)
		}
	}

	if err := sink.Flush(); err != nil {
		logger.Error("write failed", "err", err)
		return fmt.Errorf("write output: %w", err)
	}

	logger.Debug("done", "bytes", sink.n)
	return nil
}
