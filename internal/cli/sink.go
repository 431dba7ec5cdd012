package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used for visible control bytes.
type Styles struct {
	Control lipgloss.Style

	enabled bool
}

// NewStyles creates the default styles on renderer r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Control: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true), // bold yellow
		enabled: true,
	}
}

// NoStyles returns styles that render text unchanged.
func NoStyles() Styles {
	return Styles{}
}

func (s Styles) control(text string) string {
	if !s.enabled {
		return text
	}
	return s.Control.Render(text)
}

// termSink is the end of the sink chain: it buffers formatter output,
// optionally replaces control bytes with visible escapes and counts the
// bytes it received.
type termSink struct {
	w       *bufio.Writer
	visible bool
	styles  Styles
	n       int
}

func newTermSink(w io.Writer, visible bool, styles Styles) *termSink {
	return &termSink{w: bufio.NewWriter(w), visible: visible, styles: styles}
}

// WriteByte implements io.ByteWriter.
func (s *termSink) WriteByte(b byte) error {
	s.n++
	if !s.visible || !isControl(b) {
		return s.w.WriteByte(b)
	}

	if _, err := s.w.WriteString(s.styles.control(escapeName(b))); err != nil {
		return err
	}
	if b == '\n' {
		return s.w.WriteByte('\n')
	}
	return nil
}

// Flush writes any buffered bytes to the underlying writer.
func (s *termSink) Flush() error {
	return s.w.Flush()
}

func isControl(b byte) bool {
	return b < 0x20 || b == 0x7f
}

func escapeName(b byte) string {
	switch b {
	case 0x07:
		return `\a`
	case 0x08:
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	}
	return fmt.Sprintf(`\x%02x`, b)
}
