package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusTime    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statusSuccess = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	statusFailure = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// StatusPrinter renders monitoring session progress to a terminal, one
// timestamped line per update.
type StatusPrinter struct {
	mu    sync.Mutex
	out   io.Writer
	start time.Time
}

// NewStatusPrinter creates a printer writing to out.
func NewStatusPrinter(out io.Writer) *StatusPrinter {
	return &StatusPrinter{
		out:   out,
		start: time.Now(),
	}
}

// Update prints a progress line.
func (p *StatusPrinter) Update(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s %s\n", p.timestamp(), statusInfo.Render(message))
}

// Success prints a highlighted success line.
func (p *StatusPrinter) Success(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s %s\n", p.timestamp(), statusSuccess.Render(message))
}

// Failure prints a highlighted failure line.
func (p *StatusPrinter) Failure(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s %s\n", p.timestamp(), statusFailure.Render(message))
}

// Done prints a closing line with the total elapsed time.
func (p *StatusPrinter) Done(outcome string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	elapsed := time.Since(p.start).Round(time.Second)
	fmt.Fprintf(p.out, "%s Session %s after %s\n", p.timestamp(), outcome, elapsed)
}

func (p *StatusPrinter) timestamp() string {
	return statusTime.Render(time.Now().Format("15:04:05"))
}
