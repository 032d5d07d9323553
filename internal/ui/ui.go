// Package ui provides the interactive terminal chat interface.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/futureHQ/uranus/internal/agent"
)

// chatMessage is one rendered entry in the transcript.
type chatMessage struct {
	role    string // "user", "assistant", "system"
	content string
}

// responseMsg carries the agent's reply back into the update loop.
type responseMsg struct {
	content string
}

// Model is the bubbletea model for the chat session.
type Model struct {
	agent  *agent.Agent
	logger *zap.Logger
	styles Styles

	textInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model

	messages []chatMessage
	thinking bool
	ready    bool
	width    int
	height   int
}

// NewModel builds the chat UI around an agent.
func NewModel(a *agent.Agent, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask me anything..."
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 80
	ti.Prompt = styles.Prompt.Render("> ")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusText

	return Model{
		agent:     a,
		logger:    logger,
		styles:    styles,
		textInput: ti,
		spinner:   sp,
		messages: []chatMessage{
			{role: "system", content: "Type a request, or /help for commands."},
		},
	}
}

// Init starts the input blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles terminal events and agent responses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.thinking {
				return m, nil
			}
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.Reset()

			if handled, model, cmd := m.handleCommand(input); handled {
				return model, cmd
			}

			m.messages = append(m.messages, chatMessage{role: "user", content: input})
			m.thinking = true
			m.refreshViewport()
			return m, tea.Batch(m.spinner.Tick, m.runAgent(input))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := strings.Count(Banner(), "\n") + 3
		footerHeight := 4
		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = vpHeight
		}
		m.textInput.Width = msg.Width - 6
		m.refreshViewport()

	case responseMsg:
		m.thinking = false
		m.messages = append(m.messages, chatMessage{role: "assistant", content: msg.content})
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.thinking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleCommand intercepts slash commands and the bare exit words.
func (m Model) handleCommand(input string) (bool, tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "exit", "quit", "q", "/exit", "/quit":
		return true, m, tea.Quit
	case "/clear":
		m.agent.Memory().Clear()
		m.messages = []chatMessage{
			{role: "system", content: "Conversation cleared."},
		}
		m.refreshViewport()
		return true, m, nil
	case "/help":
		m.messages = append(m.messages, chatMessage{role: "system", content: helpText()})
		m.refreshViewport()
		return true, m, nil
	case "/tools":
		m.messages = append(m.messages, chatMessage{
			role:    "system",
			content: "Available tools:\n" + m.agent.Tools().Description(),
		})
		m.refreshViewport()
		return true, m, nil
	}
	return false, m, nil
}

func helpText() string {
	return strings.Join([]string{
		"Commands:",
		"  /help   show this help",
		"  /tools  list available tools",
		"  /clear  reset the conversation",
		"  exit    leave the session (also: quit, q)",
	}, "\n")
}

// runAgent executes the agent off the update loop and delivers the reply.
func (m Model) runAgent(input string) tea.Cmd {
	a := m.agent
	return func() tea.Msg {
		return responseMsg{content: a.Run(context.Background(), input)}
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m Model) renderMessages() string {
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.role {
		case "user":
			b.WriteString(m.styles.UserMessage.Render("You: ") + msg.content)
		case "assistant":
			b.WriteString(m.styles.AssistantMessage.Render(m.agent.Name()+": ") + msg.content)
		default:
			b.WriteString(m.styles.SystemMessage.Render(msg.content))
		}
	}
	return b.String()
}

// View renders the full chat screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.BannerTitle.Render(Banner()))
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderMessages())
	}
	b.WriteString("\n\n")

	if m.thinking {
		b.WriteString(m.spinner.View() + m.styles.StatusText.Render(" thinking..."))
	} else {
		b.WriteString(m.textInput.View())
	}
	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render("enter: send • /help: commands • ctrl+c: quit"))

	return m.styles.App.Render(b.String())
}

// Run starts the interactive session and blocks until it exits.
func Run(a *agent.Agent, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(a, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
