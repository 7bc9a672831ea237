package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"picks/internal/pipeline"
)

// Model renders batch progress fed by the pipeline collector: a fixed-width
// current-file label, running counters, and a progress bar over the known
// task total.
type Model struct {
	updates   <-chan pipeline.ProgressUpdate
	started   time.Time
	width     int
	total     int
	completed int
	succeeded int
	skipped   int
	failed    int
	label     string
	lastError string
	quitting  bool
}

type doneMsg struct{}

type updateMsg pipeline.ProgressUpdate

func NewModel(total int, updates <-chan pipeline.ProgressUpdate) Model {
	return Model{total: total, updates: updates, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.completed += msg.CompletedDelta
		m.succeeded += msg.SucceededDelta
		m.skipped += msg.SkippedDelta
		m.failed += msg.FailedDelta
		if msg.Label != "" {
			m.label = msg.Label
		}
		if msg.FailureMessage != "" {
			m.lastError = msg.FailureMessage
		}
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.completed) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	bar := renderBar(barWidth, ratio)
	elapsed := time.Since(m.started).Round(time.Millisecond)

	counters := fmt.Sprintf("ok:%d skip:%d fail:%d", m.succeeded, m.skipped, m.failed)
	lines := []string{
		titleStyle.Render("picks"),
		labelStyle.Render(fmt.Sprintf("Images: %d/%d", m.completed, m.total)) + dimStyle.Render("  "+counters),
		dimStyle.Render("Current: ") + labelStyle.Render(m.label),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(bar),
	}
	if m.lastError != "" {
		lines = append(lines, errorStyle.Render("! "+m.lastError))
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan pipeline.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(ColorWarn)
)
