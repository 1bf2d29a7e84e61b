package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressReporter prints one status line per update of a long-running
// operation, such as a clone, with the time elapsed since it started.
type ProgressReporter struct {
	mu       sync.Mutex
	out      io.Writer
	statuses map[string]string
	start    time.Time
	now      func() time.Time
}

// NewProgressReporter reports to out.
func NewProgressReporter(out io.Writer) *ProgressReporter {
	return &ProgressReporter{
		out:      out,
		statuses: make(map[string]string),
		start:    time.Now(),
		now:      time.Now,
	}
}

// Update records the status of name and prints it.
func (p *ProgressReporter) Update(name, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.statuses[name] = status
	p.render(name)
}

// Status returns the last status reported for name.
func (p *ProgressReporter) Status(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statuses[name]
}

func (p *ProgressReporter) render(name string) {
	status := p.statuses[name]
	symbol := "[.]"
	switch status {
	case "completed":
		symbol = "[*]"
	case "failed":
		symbol = "[x]"
	case "starting", "cloning":
		symbol = "[~]"
	}

	elapsed := p.now().Sub(p.start).Round(time.Second)
	fmt.Fprintf(p.out, "%s %s: %s %s\n", symbol, name, status, mutedStyle.Render("["+elapsed.String()+"]"))
}

// Done prints the total time taken.
func (p *ProgressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := p.now().Sub(p.start).Round(time.Millisecond)
	fmt.Fprintf(p.out, "Completed in %s\n", elapsed)
}
