package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/chat"
	apierrors "github.com/qyf6zs2vmg-hue/CeloraAI/internal/errors"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/render"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/store"
)

// Message types for the TUI
type (
	// sentMsg reports a finished exchange: the session that received the
	// message, and the error when generation failed.
	sentMsg struct {
		sessionID string
		err       error
	}
	// copyAckExpiredMsg clears the transient "copied" acknowledgment.
	copyAckExpiredMsg struct{}
)

// Model is the chat view state.
type Model struct {
	exchange  *chat.Exchange
	store     *store.Store
	user      models.User
	modelName string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// View state: at most one session is active; empty means the next
	// message starts a new one.
	activeID string
	messages []models.Message
	title    string

	loading bool
	copied  bool
	ready   bool
	err     error

	width  int
	height int
}

// NewModel creates the chat view.
func NewModel(ex *chat.Exchange, st *store.Store, user models.User, modelName string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	state := st.Load()
	ApplyTheme(state.Theme)

	return Model{
		exchange:  ex,
		store:     st,
		user:      user,
		modelName: modelName,
		textarea:  ta,
		spinner:   s,
		title:     models.TitleNewChat,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 4
		statusHeight := 1

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - 1
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 2)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 2)
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if !m.loading {
				return m, tea.Quit
			}

		case "ctrl+n":
			// Start a fresh conversation; the next send creates a session.
			if !m.loading {
				m.activeID = ""
				m.messages = nil
				m.title = models.TitleNewChat
				m.err = nil
				m.refreshViewport()
			}

		case "ctrl+y":
			if text, ok := m.lastReply(); ok {
				if err := chat.CopyMessage(text); err == nil {
					m.copied = true
					cmds = append(cmds, copyAckTimer())
				}
			}

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if !m.loading && input != "" {
				if input == "exit" || input == "quit" {
					return m, tea.Quit
				}

				// Optimistically show the user message; the store copy is
				// written by the exchange before the network call.
				m.messages = append(m.messages, models.NewUserMessage(input, ""))
				if m.activeID == "" {
					m.title = models.DeriveTitle(input, false)
				}
				m.refreshViewport()
				m.viewport.GotoBottom()

				m.loading = true
				m.err = nil
				// The input buffer clears now, before the reply arrives.
				m.textarea.Reset()

				cmds = append(cmds, m.send(input), m.spinner.Tick)
				return m, tea.Batch(cmds...)
			}
		}

	case sentMsg:
		m.loading = false
		if msg.sessionID != "" {
			m.activeID = msg.sessionID
		}
		if msg.err != nil && !apierrors.IsInputRejected(msg.err) {
			m.err = msg.err
		}
		m.syncFromStore()
		m.refreshViewport()
		m.viewport.GotoBottom()

	case copyAckExpiredMsg:
		m.copied = false

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Typing stays live while a reply is in flight; only submission is
	// gated on the loading flag.
	if _, ok := msg.(tea.KeyMsg); ok {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Starting...")
	}

	contentWidth := m.width - 4
	var sections []string

	headerParts := []string{
		titleStyle.Render("Celora"),
		hintStyle.Render("  |  "),
		subtitleStyle.Render(m.modelName),
		hintStyle.Render("  |  "),
		subtitleStyle.Render(m.title),
	}
	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, headerParts...))
	sections = append(sections, header)

	sections = append(sections, m.viewport.View())

	if m.loading {
		sections = append(sections, loadingStyle.Render("  "+m.spinner.View()+" thinking..."))
	} else if m.err != nil {
		sections = append(sections, errorStyle.Render("  "+m.err.Error()))
	}

	sections = append(sections, inputStyle.Width(contentWidth).Render(m.textarea.View()))

	status := fmt.Sprintf("  %s  •  enter send  •  ctrl+n new chat  •  ctrl+y copy  •  esc quit", m.user.Name)
	if m.copied {
		status = copiedStyle.Render("  copied!") + statusStyle.Render(status)
	} else {
		status = statusStyle.Render(status)
	}
	sections = append(sections, status)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// send dispatches the exchange off the UI goroutine.
func (m Model) send(input string) tea.Cmd {
	ex := m.exchange
	activeID := m.activeID
	return func() tea.Msg {
		id, err := ex.Send(context.Background(), activeID, input, "")
		return sentMsg{sessionID: id, err: err}
	}
}

func copyAckTimer() tea.Cmd {
	return tea.Tick(chat.CopyAckDuration, func(time.Time) tea.Msg {
		return copyAckExpiredMsg{}
	})
}

// syncFromStore reloads the active session's transcript and title.
func (m *Model) syncFromStore() {
	if m.activeID == "" {
		return
	}
	if session, ok := m.store.FindSession(m.activeID); ok {
		m.messages = session.Messages
		m.title = session.Title
	}
}

// lastReply returns the most recent model message, if any.
func (m *Model) lastReply() (string, bool) {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == models.RoleModel {
			return m.messages[i].Content, true
		}
	}
	return "", false
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.viewport.Width - 2
	var sb strings.Builder

	for _, msg := range m.messages {
		switch msg.Role {
		case models.RoleUser:
			sb.WriteString(userLabelStyle.Render("You"))
			sb.WriteString("\n")
			sb.WriteString(userTextStyle.Render(msg.Content))
			if msg.Image != "" {
				sb.WriteString(hintStyle.Render("\n[image attached]"))
			}
		case models.RoleModel:
			sb.WriteString(botLabelStyle.Render("Celora"))
			sb.WriteString("\n")
			rendered, err := render.MarkdownWithWidth(msg.Content, width)
			if err != nil {
				rendered = msg.Content
			}
			sb.WriteString(strings.TrimRight(rendered, "\n"))
		}
		sb.WriteString("\n\n")
	}

	m.viewport.SetContent(sb.String())
}

// Run starts the chat TUI.
func Run(ex *chat.Exchange, st *store.Store, user models.User, modelName string) error {
	p := tea.NewProgram(NewModel(ex, st, user, modelName), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
