// Package console renders user-facing output either plainly or with
// color, selected once at startup. Callers hold a Console and never
// branch on which implementation is active.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console is the output capability handed to every stage.
type Console interface {
	// Printf writes unstyled text.
	Printf(format string, args ...any)

	// Headerf writes a section heading.
	Headerf(format string, args ...any)

	// Infof writes an informational status line.
	Infof(format string, args ...any)

	// Successf writes a completion/confirmation line.
	Successf(format string, args ...any)

	// Errorf writes a non-fatal error line.
	Errorf(format string, args ...any)

	// Progressf rewrites an in-place progress line ("[3/12] 25%").
	Progressf(done, total int, label string)

	// ProgressDone terminates an in-place progress line.
	ProgressDone()
}

// New selects the styled console when w is a terminal and NO_COLOR is
// unset, falling back to plain text otherwise.
func New(w io.Writer) Console {
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return &Styled{w: w}
		}
	}
	return &Plain{w: w}
}

// Plain writes uncolored text. Progress lines are rewritten with \r
// only when the writer is a file; otherwise each update gets its own
// line so captured output stays readable.
type Plain struct {
	w io.Writer
}

// NewPlain returns a plain console writing to w.
func NewPlain(w io.Writer) *Plain { return &Plain{w: w} }

func (c *Plain) Printf(format string, args ...any)   { fmt.Fprintf(c.w, format, args...) }
func (c *Plain) Headerf(format string, args ...any)  { fmt.Fprintf(c.w, format, args...) }
func (c *Plain) Infof(format string, args ...any)    { fmt.Fprintf(c.w, format, args...) }
func (c *Plain) Successf(format string, args ...any) { fmt.Fprintf(c.w, format, args...) }
func (c *Plain) Errorf(format string, args ...any)   { fmt.Fprintf(c.w, format, args...) }

func (c *Plain) Progressf(done, total int, label string) {
	fmt.Fprintf(c.w, "\r%s [%d/%d] %d%%", label, done, total, percent(done, total))
}

func (c *Plain) ProgressDone() {
	fmt.Fprintln(c.w)
}

// Styled writes colored text via fatih/color.
type Styled struct {
	w io.Writer
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

func (c *Styled) Printf(format string, args ...any) { fmt.Fprintf(c.w, format, args...) }

func (c *Styled) Headerf(format string, args ...any) {
	headerColor.Fprintf(c.w, format, args...)
}

func (c *Styled) Infof(format string, args ...any) {
	infoColor.Fprintf(c.w, format, args...)
}

func (c *Styled) Successf(format string, args ...any) {
	successColor.Fprintf(c.w, format, args...)
}

func (c *Styled) Errorf(format string, args ...any) {
	errorColor.Fprintf(c.w, format, args...)
}

func (c *Styled) Progressf(done, total int, label string) {
	fmt.Fprintf(c.w, "\r%s ", label)
	infoColor.Fprintf(c.w, "[%d/%d]", done, total)
	fmt.Fprintf(c.w, " %d%%", percent(done, total))
}

func (c *Styled) ProgressDone() {
	fmt.Fprintln(c.w)
}

func percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return done * 100 / total
}
