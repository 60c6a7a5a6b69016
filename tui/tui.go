// Package tui is a bubbletea front end for a connected Archipelago
// client: a scrolling message log with a chat input bar. Everything the
// client reports (chat, server messages, item log, death links) lands in
// the log; typed lines go out as chat.
package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-archipelago/client/pkg/helpers"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// ClientInterface is what the TUI needs from an Archipelago client.
type ClientInterface interface {
	SlotName() string
	RoomAddress() string
	MaxLogLines() int
	Say(message string) bool
	TryDisconnect()
}

// TUI is the terminal model. Drive it with tea.NewProgram or Start.
type TUI struct {
	client       ClientInterface
	viewport     viewport.Model
	textInput    textinput.Model
	logs         *helpers.LimitedQueue[string]
	logMutex     sync.Mutex
	ready        bool
	inputEnabled bool
	width        int
	height       int
}

// New creates a TUI for a client.
func New(client ClientInterface) *TUI {
	ti := textinput.New()
	ti.Placeholder = "Connecting..."
	ti.Blur()
	ti.CharLimit = 256
	ti.Width = 50

	return &TUI{
		client:    client,
		textInput: ti,
		logs:      helpers.NewLimitedQueue[string](client.MaxLogLines()),
	}
}

func (t *TUI) Init() tea.Cmd {
	return textinput.Blink
}

func (t *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			t.client.TryDisconnect()
			return t, tea.Quit

		case tea.KeyEnter:
			if !t.inputEnabled {
				return t, nil
			}
			input := strings.TrimSpace(t.textInput.Value())
			if input != "" {
				if !t.client.Say(input) {
					t.AddLog(fmt.Sprintf("Failed to send: %s", input))
				}
				t.textInput.SetValue("")
			}
			return t, nil
		}

	case tea.WindowSizeMsg:
		if !t.ready {
			t.viewport = viewport.New(msg.Width, msg.Height-3)
			t.viewport.SetContent(t.renderLogs())
			t.ready = true
		} else {
			t.viewport.Width = msg.Width
			t.viewport.Height = msg.Height - 3
		}
		t.width = msg.Width
		t.height = msg.Height
		t.textInput.Width = msg.Width - 2

	case LogMsg:
		t.AddLog(string(msg))
		if t.ready {
			// do not scroll if not at bottom, to prevent flickering
			wasAtBottom := t.viewport.AtBottom()
			t.viewport.SetContent(t.renderLogs())
			if wasAtBottom {
				t.viewport.GotoBottom()
			}
		}
		return t, nil

	case EnableInputMsg:
		t.inputEnabled = true
		t.textInput.Placeholder = "Type a chat message..."
		t.textInput.Focus()
		return t, nil
	}

	if t.ready {
		t.viewport, cmd = t.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	if t.inputEnabled {
		t.textInput, cmd = t.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return t, tea.Batch(cmds...)
}

func (t *TUI) View() string {
	if !t.ready {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf("Archipelago - %s@%s", t.client.SlotName(), t.client.RoomAddress()))

	var helpText string
	if t.inputEnabled {
		helpText = helpStyle.Render("Enter: send chat • Ctrl+C/Esc: quit")
	} else {
		helpText = helpStyle.Render("Connecting... • Ctrl+C/Esc: quit")
	}

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s",
		title,
		t.viewport.View(),
		inputStyle.Render("> "+t.textInput.View()),
		helpText,
	)
}

// AddLog appends a line to the scrollback, evicting the oldest past the
// client's line limit.
func (t *TUI) AddLog(msg string) {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	t.logs.Push(msg)
}

func (t *TUI) renderLogs() string {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	return strings.Join(t.logs.Items(), "\n")
}

// LogMsg appends one line to the scrollback.
type LogMsg string

// EnableInputMsg unlocks the chat bar once the client is connected.
type EnableInputMsg struct{}

// Writer adapts the scrollback into an io.Writer so a client's logger can
// be pointed at the TUI.
type Writer struct {
	program *tea.Program
}

func NewWriter(program *tea.Program) *Writer {
	return &Writer{program: program}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if msg != "" {
		w.program.Send(LogMsg(msg))
	}
	return len(p), nil
}

// Start creates the program and a log writer for it.
func Start(client ClientInterface) (*tea.Program, io.Writer) {
	t := New(client)
	p := tea.NewProgram(t, tea.WithAltScreen())
	return p, NewWriter(p)
}

// EnableInput unlocks the chat bar.
func EnableInput(program *tea.Program) {
	if program != nil {
		program.Send(EnableInputMsg{})
	}
}
