package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"asset-studio/internal/page"
	"asset-studio/internal/studio"
)

const (
	placeholder     = "Describe the image... (Enter to generate, Esc to quit)"
	previewChars    = 48
	promptCharLimit = 2000
)

// SaveReporter tells the view where the last image went, if anywhere.
type SaveReporter interface {
	LastSaved() string
}

type submittedMsg struct {
	outcome studio.Outcome
}

type Model struct {
	ctx   context.Context
	ctrl  *studio.Controller
	page  *page.Page
	saves SaveReporter

	textinput textinput.Model
	spinner   spinner.Model
	pending   bool
}

func NewModel(ctx context.Context, ctrl *studio.Controller, p *page.Page, saves SaveReporter) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = promptCharLimit
	ti.Width = 72
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:       ctx,
		ctrl:      ctrl,
		page:      p,
		saves:     saves,
		textinput: ti,
		spinner:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}

	case tea.WindowSizeMsg:
		if msg.Width > 8 {
			m.textinput.Width = msg.Width - 8
		}
		return m, nil

	case submittedMsg:
		m.pending = false
		return m, nil

	case spinner.TickMsg:
		if !m.pending && !m.page.Snapshot().LoadingVisible {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// handleEnter is the keyboard binding of the trigger control. It does nothing
// while the trigger is disabled.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.pending || !m.page.TriggerEnabled() {
		return m, nil
	}

	m.page.SetPrompt(m.textinput.Value())
	m.pending = true
	return m, tea.Batch(m.spinner.Tick, m.submitCmd())
}

func (m Model) submitCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return submittedMsg{outcome: ctrl.SubmitInput(ctx)}
	}
}

func (m Model) View() string {
	snap := m.page.Snapshot()

	var b strings.Builder
	b.WriteString("Asset Studio\n\n")
	b.WriteString(m.textinput.View())
	b.WriteString("\n\n")

	switch {
	case snap.LoadingVisible || m.pending:
		fmt.Fprintf(&b, "%s Generating image...\n", m.spinner.View())
	case snap.ResultVisible:
		fmt.Fprintf(&b, "Image ready: %s (%d chars)\n", preview(snap.ImageSource), len(snap.ImageSource))
		if m.saves != nil {
			if path := m.saves.LastSaved(); path != "" {
				fmt.Fprintf(&b, "Saved to: %s\n", path)
			}
		}
	case snap.ErrorVisible:
		fmt.Fprintf(&b, "Error: %s\n", snap.ErrorMessage)
	}

	b.WriteString("\nEnter: generate • Esc: quit\n")
	return b.String()
}

func preview(src string) string {
	if len(src) <= previewChars {
		return src
	}
	return src[:previewChars] + "..."
}

// Run starts the terminal program. Log output goes to logFile so it does not
// tear the screen.
func Run(ctx context.Context, ctrl *studio.Controller, p *page.Page, saves SaveReporter, logFile string) error {
	f, err := tea.LogToFile(logFile, "studio")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	program := tea.NewProgram(NewModel(ctx, ctrl, p, saves), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
