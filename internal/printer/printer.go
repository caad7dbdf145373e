// Package printer renders styled console output.
package printer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style definitions for consistent console output across the application.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
)

var (
	mu     sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects regular and error output. Nil writers restore the
// process streams.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

// SetNoColor turns styling off, or back to what the environment supports.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// Render functions return styled strings without printing.

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info returns text with info (cyan) styling.
func Info(text string) string {
	return infoStyle.Render(text)
}

// Print functions write one line to the configured output. PrintError goes
// to the error stream.

func writeLine(toErr bool, s string) {
	mu.Lock()
	w := stdout
	if toErr {
		w = stderr
	}
	mu.Unlock()
	_, _ = fmt.Fprintln(w, s)
}

// Println prints text unstyled.
func Println(text string) {
	writeLine(false, text)
}

// Printf prints formatted text unstyled, without adding a newline.
func Printf(format string, args ...any) {
	mu.Lock()
	w := stdout
	mu.Unlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// PrintFaint prints text with faint styling.
func PrintFaint(text string) {
	writeLine(false, Faint(text))
}

// PrintBold prints text with bold styling.
func PrintBold(text string) {
	writeLine(false, Bold(text))
}

// PrintSuccess prints text with success (green) styling.
func PrintSuccess(text string) {
	writeLine(false, Success(text))
}

// PrintError prints text with error (red) styling.
func PrintError(text string) {
	writeLine(true, Error(text))
}

// PrintWarning prints text with warning (yellow) styling.
func PrintWarning(text string) {
	writeLine(false, Warning(text))
}

// PrintInfo prints text with info (cyan) styling.
func PrintInfo(text string) {
	writeLine(false, Info(text))
}
