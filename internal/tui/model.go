// Package tui implements the bubbletea front-end: views become navigable
// button lists, chat panes switch to a text input.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"menuflow"
	"menuflow/pkg/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#38bdf8")).MarginBottom(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399")).Bold(true)
	buttonStyle   = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("#34d399")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	helpStyle     = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

// viewMsg carries a freshly rendered view into the model.
type viewMsg struct {
	view domain.View
	err  error
}

// Model is the bubbletea model wrapping one user's session.
type Model struct {
	app    *menuflow.App
	ctx    context.Context
	userID string

	view   domain.View
	cursor int
	input  textinput.Model
	err    error
}

// NewModel creates the TUI model for a user.
func NewModel(ctx context.Context, app *menuflow.App, userID string) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 512

	return Model{
		app:    app,
		ctx:    ctx,
		userID: userID,
		input:  input,
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		view, err := m.app.Render(m.ctx, m.userID)
		return viewMsg{view: view, err: err}
	}
}

func (m Model) apply(action domain.Action) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Apply(m.ctx, m.userID, action); err != nil {
			return viewMsg{err: err}
		}
		view, err := m.app.Render(m.ctx, m.userID)
		return viewMsg{view: view, err: err}
	}
}

func (m Model) submitText(text string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.SubmitText(m.ctx, m.userID, text); err != nil {
			return viewMsg{err: err}
		}
		view, err := m.app.Render(m.ctx, m.userID)
		return viewMsg{view: view, err: err}
	}
}

func (m Model) chatMode() bool {
	return m.view.ScreenType == domain.KindChatInput
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		if m.cursor >= len(m.view.Actions) {
			m.cursor = 0
		}
		if m.chatMode() {
			m.input.Reset()
			return m, m.input.Focus()
		}
		m.input.Blur()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.chatMode() {
			if msg.Type == tea.KeyEnter {
				text := strings.TrimSpace(m.input.Value())
				if text == "" {
					return m, nil
				}
				m.input.Reset()
				return m, m.submitText(text)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.view.Actions)-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.cursor < len(m.view.Actions) {
				return m, m.apply(m.view.Actions[m.cursor])
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.view.Text))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	if m.chatMode() {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: send • ctrl+c: quit"))
		return b.String()
	}

	if m.view.Layout == "grid" && m.view.Columns > 1 {
		b.WriteString(m.renderGrid())
	} else {
		for i, action := range m.view.Actions {
			b.WriteString(m.renderButton(i, action))
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render("↑/↓: move • enter: select • q: quit"))
	return b.String()
}

func (m Model) renderButton(i int, action domain.Action) string {
	if i == m.cursor {
		return selectedStyle.Render("> " + action.Label)
	}
	return buttonStyle.Render(action.Label)
}

// renderGrid joins buttons into rows of the screen's column count.
func (m Model) renderGrid() string {
	var rows []string
	for start := 0; start < len(m.view.Actions); start += m.view.Columns {
		end := start + m.view.Columns
		if end > len(m.view.Actions) {
			end = len(m.view.Actions)
		}

		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cell := m.renderButton(i, m.view.Actions[i])
			cells = append(cells, lipgloss.NewStyle().Width(24).Render(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n") + "\n"
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, app *menuflow.App, userID string) error {
	_, err := tea.NewProgram(NewModel(ctx, app, userID), tea.WithAltScreen()).Run()
	return err
}
