package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maxvaer/urlcheck/internal/result"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// TextWriter writes the bucketed results as colored text.
type TextWriter struct {
	w       io.Writer
	closer  io.Closer
	noColor bool
	quiet   bool
}

// NewTextWriter creates a text output writer. If outputFile is empty,
// stdout is used. noColor disables ANSI escape codes.
func NewTextWriter(outputFile string, noColor, quiet bool) (*TextWriter, error) {
	w, closer, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	return &TextWriter{w: w, closer: closer, noColor: noColor, quiet: quiet}, nil
}

func (t *TextWriter) Write(set *result.Set) error {
	reset := colorReset
	red := colorRed
	if t.noColor {
		reset = ""
		red = ""
	}

	for _, code := range set.StatusCodes() {
		color := t.colorForStatus(code)
		for _, size := range set.Sizes(code) {
			for _, u := range set.Buckets[code][size] {
				if _, err := fmt.Fprintf(t.w, "%s%3d%s  %8d  %s\n", color, code, reset, size, u); err != nil {
					return err
				}
			}
		}
	}

	for _, f := range set.Failures {
		if _, err := fmt.Fprintf(t.w, "%sERR%s  %8s  %s (%s)\n", red, reset, "-", f.URL, f.Err); err != nil {
			return err
		}
	}

	if t.quiet {
		return nil
	}
	_, err := fmt.Fprintf(os.Stderr,
		"\nTotal: %d | Valid: %d | Skipped: %d | Errors: %d | Duration: %s\n",
		set.Stats.Total,
		set.Stats.Valid,
		set.Stats.Skipped(),
		set.Stats.Errored,
		set.Stats.Duration().Round(time.Millisecond),
	)
	return err
}

func (t *TextWriter) Close() error {
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

func (t *TextWriter) colorForStatus(code int) string {
	if t.noColor {
		return ""
	}
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	case code >= 500:
		return colorRed
	default:
		return ""
	}
}
