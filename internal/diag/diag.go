// Package diag provides colorized, tty-aware status output for the
// ifcinspect CLI: section headers, labels, and info/success/warning
// lines. Color is disabled automatically on a non-terminal stdout, and
// can be forced off with --no-color or the NO_COLOR environment
// variable.
package diag

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
	countColor   = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
)

// Init enables or disables color output for the lifetime of the
// process. Call it once, early in main, after flags and NO_COLOR are
// resolved.
func Init(noColor bool) {
	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// Header prints a bold section title.
func Header(title string) {
	fmt.Println()
	headerColor.Println(title)
	headerColor.Println(dashes(len(title)))
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}

// Label formats a bold field label, e.g. "Schema:".
func Label(s string) string {
	return labelColor.Sprint(s)
}

// DimText formats secondary, de-emphasized text, e.g. a file path.
func DimText(s string) string {
	return dimColor.Sprint(s)
}

// CountText formats a numeric count for emphasis.
func CountText(n int) string {
	return countColor.Sprintf("%d", n)
}

// Info prints an informational line prefixed with "info:".
func Info(format string, args ...interface{}) {
	infoColor.Fprintf(os.Stderr, "info: "+format+"\n", args...)
}

// Success prints a confirmation line prefixed with a checkmark.
func Success(format string, args ...interface{}) {
	successColor.Fprintf(os.Stderr, "✓ "+format+"\n", args...)
}

// Warn prints a warning line prefixed with "warning:".
func Warn(format string, args ...interface{}) {
	warnColor.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
