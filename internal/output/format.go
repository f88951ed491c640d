// Package output provides terminal output formatting utilities for the relnotes CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ariel-frischer/relnotes/internal/notes"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSeparator prints a dim magenta rule with a centered label.
func PrintSeparator(out io.Writer, label string) {
	termWidth := GetTerminalWidth()
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "\n%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// PrintWarning prints a yellow "Warning:" prefix followed by message.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("Warning:"), message)
}

// PrintSuccess prints a green checkmark and a cyan message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintBlockPreview prints a block as it would be sent to the API, headed by
// the action that would be taken.
func PrintBlockPreview(out io.Writer, b notes.Block, action notes.SyncAction) {
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	PrintSeparator(out, b.Release)
	fmt.Fprintf(out, "%s %s\n", white(b.Name), dim("("+string(action)+")"))
	if b.Body != "" {
		fmt.Fprintf(out, "\n%s\n", b.Body)
	}
}

// PrintSyncResults prints one line per synchronized block and a count summary.
func PrintSyncResults(out io.Writer, results []notes.SyncResult) {
	dim := color.New(color.Faint).SprintFunc()

	for _, r := range results {
		fmt.Fprintf(out, "  %s %s %s\n", actionColor(r.Action)(string(r.Action)), r.Block.Name, dim(r.Block.Release))
	}
	fmt.Fprintln(out, SummarizeSync(results))
}

// SummarizeSync returns "N created, N updated, N skipped".
func SummarizeSync(results []notes.SyncResult) string {
	counts := map[notes.SyncAction]int{}
	for _, r := range results {
		counts[r.Action]++
	}
	return fmt.Sprintf("%d created, %d updated, %d skipped",
		counts[notes.ActionCreated], counts[notes.ActionUpdated], counts[notes.ActionSkipped])
}

func actionColor(action notes.SyncAction) func(a ...interface{}) string {
	switch action {
	case notes.ActionCreated:
		return color.New(color.FgGreen).SprintFunc()
	case notes.ActionUpdated:
		return color.New(color.FgCyan).SprintFunc()
	default:
		return color.New(color.FgYellow).SprintFunc()
	}
}
