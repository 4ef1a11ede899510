// Package ui renders a live progress display while a scoring run is in
// flight. Judgments stream in from worker goroutines via Send-style
// messages; the display never blocks the scoring engine.
package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/whence/internal/score"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	fillStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))
)

// TargetMsg announces the target currently being scored.
type TargetMsg struct {
	Label string
	Total int
}

// ResultMsg reports one completed judgment.
type ResultMsg struct {
	Result score.GuessResult
	Done   int
	Total  int
}

// DoneMsg stops the display.
type DoneMsg struct{}

type progressModel struct {
	spinner  spinner.Model
	label    string
	total    int
	done     int
	correct  int
	last     score.GuessResult
	haveLast bool
}

func newProgressModel() progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = fillStyle
	return progressModel{spinner: s}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TargetMsg:
		m.label = msg.Label
		m.total = msg.Total
		m.done = 0
		m.correct = 0
		m.haveLast = false
		return m, nil

	case ResultMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.last = msg.Result
		m.haveLast = true
		if msg.Result.Correct {
			m.correct++
		}
		return m, nil

	case DoneMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() tea.View {
	if m.label == "" {
		return tea.NewView("")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), labelStyle.Render(m.label))
	fmt.Fprintf(&b, "  %s %s", m.bar(24), dimStyle.Render(fmt.Sprintf("%d/%d", m.done, m.total)))
	if m.done > 0 {
		fmt.Fprintf(&b, "  %s", correctStyle.Render(fmt.Sprintf("%d correct", m.correct)))
	}
	b.WriteString("\n")

	if m.haveLast {
		icon := correctStyle.Render("✓")
		if !m.last.Correct {
			icon = wrongStyle.Render("✗")
		}
		fmt.Fprintf(&b, "  %s %s\n", icon,
			dimStyle.Render(fmt.Sprintf("%s -> %s", oneLine(m.last.Item, 48), m.last.Guessed)))
	}

	return tea.NewView(b.String())
}

func (m progressModel) bar(width int) string {
	if m.total == 0 {
		return dimStyle.Render(strings.Repeat("░", width))
	}
	filled := width * m.done / m.total
	if filled > width {
		filled = width
	}
	return fillStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

func oneLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > max {
		s = s[:max-3] + "..."
	}
	return s
}

// Progress runs the display in its own goroutine and forwards events to it.
type Progress struct {
	prog *tea.Program
	done chan struct{}
}

// StartProgress launches the display.
func StartProgress() *Progress {
	p := &Progress{
		prog: tea.NewProgram(newProgressModel()),
		done: make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		_, _ = p.prog.Run()
	}()
	return p
}

// Target switches the display to a new target.
func (p *Progress) Target(label string, total int) {
	p.prog.Send(TargetMsg{Label: label, Total: total})
}

// Result reports a completed judgment. Safe to call from any goroutine.
func (p *Progress) Result(r score.GuessResult, done, total int) {
	p.prog.Send(ResultMsg{Result: r, Done: done, Total: total})
}

// Stop tears the display down and waits for it to exit.
func (p *Progress) Stop() {
	p.prog.Send(DoneMsg{})
	<-p.done
}
