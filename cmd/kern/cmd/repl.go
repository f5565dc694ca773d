package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/user-simon/kern"
	"github.com/user-simon/kern/internal/config"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive calculator",
	Long: `Repl starts an interactive session. Type an expression and press enter
to evaluate it; whitespace decides how tightly operators bind.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cfg)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

var (
	accentColor    = lipgloss.Color("#7C3AED")
	successColor   = lipgloss.Color("#22C55E")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#EAB308")
)

type styles struct {
	prompt   lipgloss.Style
	result   lipgloss.Style
	errmsg   lipgloss.Style
	muted    lipgloss.Style
	header   lipgloss.Style
	helpKey  lipgloss.Style
	helpDesc lipgloss.Style
	border   lipgloss.Style
}

func newStyles(color bool) styles {
	s := styles{
		prompt:   lipgloss.NewStyle(),
		result:   lipgloss.NewStyle(),
		errmsg:   lipgloss.NewStyle(),
		muted:    lipgloss.NewStyle(),
		header:   lipgloss.NewStyle().Padding(0, 1),
		helpKey:  lipgloss.NewStyle(),
		helpDesc: lipgloss.NewStyle(),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
	}
	if !color {
		return s
	}
	s.prompt = s.prompt.Foreground(accentColor).Bold(true)
	s.result = s.result.Foreground(successColor)
	s.errmsg = s.errmsg.Foreground(errorColor)
	s.muted = s.muted.Foreground(mutedColor)
	s.header = s.header.Foreground(accentColor).Bold(true)
	s.helpKey = s.helpKey.Foreground(highlightColor)
	s.helpDesc = s.helpDesc.Foreground(mutedColor)
	s.border = s.border.BorderForeground(accentColor)
	return s
}

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	ctx         *kern.Context
	prec        uint
	format      string
	echo        bool
	st          styles
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous input"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next input"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "evaluate"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "toggle tree echo"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(cfg *config.Config) replModel {
	st := newStyles(!cfg.NoColor)

	ti := textinput.New()
	ti.Placeholder = "type an expression..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = st.prompt
	ti.Prompt = cfg.Prompt

	prec := uint(cfg.Prec)
	return replModel{
		textInput:  ti,
		ctx:        kern.NewContext(kern.Prec(prec)),
		prec:       prec,
		format:     cfg.Format,
		echo:       cfg.Echo,
		st:         st,
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.toggleEcho()
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Enter):
			// The input is not trimmed: interior spacing is what the
			// language parses, and the ends are harmless.
			input := m.textInput.Value()
			trimmed := strings.TrimSpace(input)
			if trimmed == "" {
				return m, nil
			}

			if strings.HasPrefix(trimmed, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(trimmed)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":echo", ":e":
		m = m.toggleEcho()
	case ":prec", ":p":
		m = m.setPrec(parts[1:])
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) toggleEcho() replModel {
	m.echo = !m.echo
	output := "tree echo off"
	if m.echo {
		output = "tree echo on"
	}
	m.history = append(m.history, historyEntry{output: output})
	return m
}

// setPrec changes the precision of calculations. The evaluation context is
// replaced, since precision is fixed at context creation.
func (m replModel) setPrec(args []string) replModel {
	if len(args) != 1 {
		m.history = append(m.history, historyEntry{
			output: "usage: :prec bits",
			isErr:  true,
		})
		return m
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		m.history = append(m.history, historyEntry{
			output: fmt.Sprintf("precision %q must be a positive number", args[0]),
			isErr:  true,
		})
		return m
	}
	m.prec = uint(n)
	m.ctx = kern.NewContext(kern.Prec(m.prec))
	m.history = append(m.history, historyEntry{
		output: fmt.Sprintf("precision set to %d bits", n),
	})
	return m
}

func (m replModel) evaluate(input string) (string, bool) {
	a, err := kern.Parse(input)
	if err != nil {
		return err.Error(), true
	}
	r := m.ctx.Eval(a)
	if r == nil {
		return m.ctx.Err().Error(), true
	}
	out := fmt.Sprintf(m.format, r)
	if m.echo {
		out = a.String() + " : " + out
	}
	return out, false
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return m.st.muted.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := m.st.header.Render("kern")
	version := m.st.muted.Render("v" + Version)
	b.WriteString(header + " " + version + "\n")
	b.WriteString(m.st.muted.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 12
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(m.st.muted.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + m.st.errmsg.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + m.st.result.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(m.renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := m.st.helpKey.Render("ctrl+k") + m.st.helpDesc.Render(" help  ") +
		m.st.helpKey.Render("tab") + m.st.helpDesc.Render(" tree  ") +
		m.st.helpKey.Render("ctrl+l") + m.st.helpDesc.Render(" clear  ") +
		m.st.helpKey.Render("ctrl+c") + m.st.helpDesc.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func (m replModel) renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate input history"},
		{"Enter", "Evaluate expression"},
		{"Tab", "Toggle tree echo"},
		{":prec N", "Set precision in bits"},
		{":echo", "Toggle tree echo"},
		{":clear", "Clear history"},
		{":help", "Toggle this help"},
		{":quit", "Exit"},
	}

	var lines []string
	lines = append(lines, m.st.prompt.Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			m.st.helpKey.Render(fmt.Sprintf("%-8s", h.key)),
			m.st.helpDesc.Render(h.desc))
		lines = append(lines, line)
	}

	return m.st.border.Render(strings.Join(lines, "\n"))
}

func runREPL(cfg *config.Config) error {
	p := tea.NewProgram(newREPLModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
