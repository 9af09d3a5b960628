package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/buscacep/internal/lookup"
)

// StepStatus represents the current state of one code in a batch
type StepStatus int

const (
	StepPending  StepStatus = iota // Not yet started
	StepRunning                    // Lookup in flight
	StepComplete                   // Address found
	StepMissed                     // No address for the code
	StepFailed                     // Lookup failed
)

// StepStatusFor maps a lookup phase to a batch step status.
func StepStatusFor(phase lookup.Phase) StepStatus {
	switch phase {
	case lookup.PhaseLoading:
		return StepRunning
	case lookup.PhaseFound:
		return StepComplete
	case lookup.PhaseNotFound:
		return StepMissed
	case lookup.PhaseFailed:
		return StepFailed
	default:
		return StepPending
	}
}

// Step represents one postal code in a batch lookup
type Step struct {
	Number  int        // Step number (1-based)
	Name    string     // Postal code as typed
	Status  StepStatus // Current status
	Message string     // Optional note (e.g., "São Paulo/SP", "timeout")
}

// Progress represents a batch progress display with bar and step list
type Progress struct {
	Label     string  // e.g., "Looking up 3 postal codes"
	Steps     []Step  // One per code
	Total     int     // Total steps
	Percent   float64 // Progress percentage (0.0 - 1.0)
	Width     int     // Terminal width
	ShowBar   bool    // Whether to show progress bar
	ShowSteps bool    // Whether to show step list
	bar       progress.Model
}

// NewProgress creates a progress display with one step per name
func NewProgress(label string, names []string) *Progress {
	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Number: i + 1, Name: name, Status: StepPending}
	}

	p := &Progress{
		Label:     label,
		Steps:     steps,
		Total:     len(names),
		ShowBar:   true,
		ShowSteps: true,
	}
	return p.SetWidth(GetTerminalWidth())
}

// SetWidth sets the terminal width for responsive rendering
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := width - 20 // Leave room for percentage and step count
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	p.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
	)
	return p
}

// UpdateStep updates a specific step's status and optional message
func (p *Progress) UpdateStep(stepNumber int, status StepStatus, message string) {
	if stepNumber < 1 || stepNumber > len(p.Steps) {
		return
	}
	idx := stepNumber - 1
	p.Steps[idx].Status = status
	p.Steps[idx].Message = message

	done := 0
	for _, s := range p.Steps {
		if s.Status == StepComplete || s.Status == StepMissed || s.Status == StepFailed {
			done++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(done) / float64(p.Total)
	}
}

// Counts returns how many steps ended found, missed and failed.
func (p *Progress) Counts() (found, missed, failed int) {
	for _, s := range p.Steps {
		switch s.Status {
		case StepComplete:
			found++
		case StepMissed:
			missed++
		case StepFailed:
			failed++
		}
	}
	return found, missed, failed
}

// Render returns the styled progress display as a string
func (p *Progress) Render() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(ProgressLabelStyle.Render(p.Label))
		b.WriteString("\n\n")
	}

	if p.ShowBar {
		b.WriteString(p.renderProgressBar())
		b.WriteString("\n\n")
	}

	if p.ShowSteps {
		lines := make([]string, 0, len(p.Steps))
		for _, step := range p.Steps {
			lines = append(lines, p.renderStepLine(step))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	return b.String()
}

// renderProgressBar renders the progress bar line
func (p *Progress) renderProgressBar() string {
	found, missed, failed := p.Counts()

	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(fmt.Sprintf("%s  %3.0f%%  [%d found, %d not found, %d failed]",
			p.bar.ViewAs(p.Percent), p.Percent*100, found, missed, failed))
}

// renderStepLine renders a single step line
func (p *Progress) renderStepLine(step Step) string {
	var marker string
	var style lipgloss.Style

	switch step.Status {
	case StepComplete:
		marker, style = StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		marker, style = StepMarkerRunning, StepRunningStyle
	case StepMissed:
		marker, style = WarningMarker, WarningTitleStyle
	case StepFailed:
		marker, style = FailureMarker, ErrorTitleStyle
	default:
		marker, style = StepMarkerPending, StepPendingStyle
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  [%d/%d] ", step.Number, p.Total))
	b.WriteString(style.Render(step.Name))

	// Keep markers in one column
	padding := 12 - lipgloss.Width(step.Name)
	if padding < 1 {
		padding = 1
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(style.Render(marker))

	if step.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Message + ")"))
	}

	return b.String()
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}
