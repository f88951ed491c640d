package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Display shows the current pipeline stage. On a TTY the stage is drawn next
// to a spinner and finished stages are marked with a checkmark; otherwise
// each stage is printed on its own line.
type Display struct {
	mu      sync.Mutex
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
	current string
}

// NewDisplay creates a Display writing to out.
func NewDisplay(out io.Writer, caps TerminalCapabilities) *Display {
	d := &Display{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
	if caps.IsTTY {
		d.spin = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(out))
	}
	return d
}

// Stage marks the previous stage done and starts reporting name. It has the
// signature expected by notes.PipelineOptions.OnStage.
func (d *Display) Stage(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.finishLocked(d.symbols.Checkmark)
	d.current = name

	if d.spin == nil {
		fmt.Fprintf(d.out, "%s...\n", name)
		return
	}
	d.spin.Suffix = " " + name + "..."
	d.spin.Start()
}

// Done marks the current stage as completed.
func (d *Display) Done() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finishLocked(d.symbols.Checkmark)
}

// Fail marks the current stage as failed.
func (d *Display) Fail() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finishLocked(d.symbols.Failure)
}

// Symbols returns the symbol set in use.
func (d *Display) Symbols() ProgressSymbols {
	return d.symbols
}

func (d *Display) finishLocked(symbol string) {
	if d.current == "" {
		return
	}
	if d.spin != nil {
		d.spin.Stop()
		fmt.Fprintf(d.out, "%s %s\n", symbol, d.current)
	} else if symbol == d.symbols.Failure {
		fmt.Fprintf(d.out, "%s %s\n", symbol, d.current)
	}
	d.current = ""
}
