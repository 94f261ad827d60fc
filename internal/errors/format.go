package errors

import (
	"fmt"
	"io"
	"strings"
)

// Lines of source shown around a location, and the width detail text is
// wrapped to.
const (
	sourceWindow = 5
	detailWidth  = 70
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiWhite = "\033[37m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

var colorEnabled = true

// DisableColors turns off ANSI escapes in Format and Fprint, e.g. when
// stderr is not a terminal.
func DisableColors() {
	colorEnabled = false
}

// EnableColors turns ANSI escapes back on.
func EnableColors() {
	colorEnabled = true
}

// paint applies the given ANSI attributes to text.
func paint(text string, attrs ...string) string {
	if !colorEnabled || len(attrs) == 0 {
		return text
	}
	return strings.Join(attrs, "") + text + ansiReset
}

// Format renders the error for a terminal: a header line, the source
// around Location, the wrapped detail, the hint and the wrapped cause.
func (e *TetherError) Format() string {
	var b strings.Builder
	e.writeHeader(&b)
	e.writeSource(&b)
	e.writeDetail(&b)

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Hint: ", ansiCyan), e.Suggestion)
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n", paint("Caused by: ", ansiGray), e.Wrapped.Error())
	}
	return b.String()
}

func (e *TetherError) writeHeader(b *strings.Builder) {
	label := "ERROR: "
	if e.Code != "" {
		label = "ERROR "
	}
	b.WriteString("\n")
	b.WriteString(paint(label, ansiRed, ansiBold))
	if e.Code != "" {
		b.WriteString(paint(e.Code+": ", ansiWhite, ansiBold))
	}
	b.WriteString(paint(e.Message, ansiWhite))
	b.WriteString("\n\n")
}

func (e *TetherError) writeSource(b *strings.Builder) {
	if e.Location == nil {
		return
	}
	fmt.Fprintf(b, "  %s\n\n", paint(e.Location.String(), ansiCyan))
	if len(e.Context) == 0 {
		return
	}

	first := max(e.Location.Line-sourceWindow/2, 1)
	bar := paint(" │ ", ansiGray)
	for i, line := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", paint("→ ", ansiRed), n, bar, line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n",
				paint("│ ", ansiGray),
				strings.Repeat(" ", e.Location.Column-1),
				paint("^", ansiRed))
		}
	}
	b.WriteString("\n")
}

// writeDetail prints Detail, or the registered detail of the code when the
// error carries none.
func (e *TetherError) writeDetail(b *strings.Builder) {
	detail := e.Detail
	if detail == "" {
		detail = registry[e.Code].Detail
	}
	if detail == "" {
		return
	}
	for _, line := range wrapText(detail, detailWidth) {
		fmt.Fprintf(b, "  %s\n", line)
	}
	b.WriteString("\n")
}

// FormatCompact renders the error on one line:
// "file:line:col: CODE: message (detail)".
func (e *TetherError) FormatCompact() string {
	var parts []string
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	msg := e.Message
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return strings.Join(append(parts, msg), ": ")
}

// wrapText splits text into lines of at most width characters, breaking
// between words. A single word longer than width gets its own line.
func wrapText(text string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Fprint writes err to w, using Format for a *TetherError.
func Fprint(w io.Writer, err error) {
	var te *TetherError
	if As(err, &te) {
		fmt.Fprint(w, te.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint("ERROR:", ansiRed, ansiBold), err.Error())
}
