package shell

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunFunc is the zero-argument action bound to the shell's button.
type RunFunc func(ctx context.Context) error

// Config describes a shell before it is mounted.
type Config struct {
	Heading string
	Button  string
	// Run is the button's action. A nil Run renders the button disabled and
	// makes activation a no-op.
	Run RunFunc
	// Alerts optionally feeds guest alert messages into the status line.
	Alerts <-chan string
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	buttonStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 3)
	focusedButtonStyle  = buttonStyle.Foreground(lipgloss.Color("212")).BorderForeground(lipgloss.Color("212"))
	disabledButtonStyle = buttonStyle.Faint(true)
	statusStyle         = lipgloss.NewStyle().MarginTop(1)
	hintStyle           = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

// runDoneMsg reports the outcome of a single button activation.
type runDoneMsg struct {
	err error
}

// alertMsg carries one guest alert into the shell.
type alertMsg string

// Model is the Bubble Tea model for the mounted shell.
type Model struct {
	cfg     Config
	running bool
	status  string
}

// New builds a mount-ready shell model. Missing labels fall back to the
// stock heading and button text.
func New(cfg Config) Model {
	if cfg.Heading == "" {
		cfg.Heading = "wasmpanel"
	}
	if cfg.Button == "" {
		cfg.Button = "Run Computation"
	}
	return Model{cfg: cfg}
}

// Init subscribes to the alert feed, when one is configured.
func (m Model) Init() tea.Cmd {
	return m.awaitAlert()
}

// Update implements the shell's event handling: button activation, alert
// delivery, run completion and quitting.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter", " ":
			return m.activate()
		}

	case runDoneMsg:
		m.running = false
		if msg.err != nil {
			m.status = fmt.Sprintf("computation failed: %v", msg.err)
		} else {
			m.status = "computation finished"
		}
		return m, nil

	case alertMsg:
		m.status = string(msg)
		return m, m.awaitAlert()
	}

	return m, nil
}

// activate starts one computation run. A disabled button or a run already in
// flight makes activation a no-op.
func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.cfg.Run == nil || m.running {
		return m, nil
	}
	m.running = true
	m.status = "running..."
	run := m.cfg.Run
	return m, func() tea.Msg {
		return runDoneMsg{err: run(context.Background())}
	}
}

// awaitAlert returns a command that blocks on the next alert message.
func (m Model) awaitAlert() tea.Cmd {
	alerts := m.cfg.Alerts
	if alerts == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-alerts
		if !ok {
			return nil
		}
		return alertMsg(s)
	}
}

// View renders the heading, the single button, the status line and the quit
// hint.
func (m Model) View() string {
	var button string
	switch {
	case m.cfg.Run == nil:
		button = disabledButtonStyle.Render(m.cfg.Button)
	case m.running:
		button = buttonStyle.Render(m.cfg.Button)
	default:
		button = focusedButtonStyle.Render(m.cfg.Button)
	}

	view := headingStyle.Render(m.cfg.Heading) + "\n" + button
	if m.status != "" {
		view += "\n" + statusStyle.Render(m.status)
	}
	view += "\n" + hintStyle.Render("enter/space: run • q: quit")
	return view + "\n"
}

// Mount runs the shell program until the user quits. Tests pass options like
// tea.WithInput/tea.WithOutput to detach it from the terminal.
func Mount(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("shell exited abnormally: %w", err)
	}
	return nil
}
