package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles the parts of a formatted error. The plain palette leaves
// text untouched.
type palette struct {
	label    func(a ...interface{}) string
	message  func(a ...interface{}) string
	category func(a ...interface{}) string
	usage    func(a ...interface{}) string
	fix      func(a ...interface{}) string
	bullet   func(a ...interface{}) string
}

var (
	colored = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
	}
	plain = palette{
		label:    fmt.Sprint,
		message:  fmt.Sprint,
		category: fmt.Sprint,
		usage:    fmt.Sprint,
		fix:      fmt.Sprint,
		bullet:   fmt.Sprint,
	}

	warnLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// FormatError renders err for the terminal: a header line with the
// category, then the usage and remediation steps when present. Colors are
// dropped automatically when stdout is not a terminal.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return colored.render(err)
}

// FormatErrorPlain renders err without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return plain.render(err)
}

func (p palette) render(err *CLIError) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// FprintError writes the formatted err to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatWarning formats a non-fatal CLIError, such as an unreachable network,
// as a single warning line followed by its remediation hints.
func FormatWarning(err *CLIError) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", warnLabel("Warning:"), err.Message)
	for _, step := range err.Remediation {
		fmt.Fprintf(&sb, "  %s\n", step)
	}
	return sb.String()
}

// FprintWarning writes the formatted warning to w.
func FprintWarning(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatWarning(err))
}
