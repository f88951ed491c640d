// Package progress reports pipeline stages on the terminal, with a spinner
// when the output is interactive and plain lines otherwise.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// CapabilitiesOf reports what w can display. Only an *os.File attached to
// a terminal gets a spinner; NO_COLOR disables color and RELNOTES_ASCII=1
// forces ASCII symbols.
func CapabilitiesOf(w io.Writer) TerminalCapabilities {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return TerminalCapabilities{}
	}

	caps := TerminalCapabilities{
		IsTTY:           true,
		SupportsColor:   os.Getenv("NO_COLOR") == "",
		SupportsUnicode: os.Getenv("RELNOTES_ASCII") != "1",
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil {
		caps.Width = width
	}
	return caps
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities.
// Unicode: ✓/✗ with braille spinner (set 14). ASCII: [OK]/[FAIL] with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // | / - \
	}
}
