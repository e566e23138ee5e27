package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	hostbridge "github.com/wippyai/host-bridge"
	"github.com/wippyai/host-bridge/bind"
	"github.com/wippyai/host-bridge/hostapi"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	bridge   *hostbridge.Bridge
	sigs     []bind.Signature
	inputs   []textinput.Model
	result   string
	err      error
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(b *hostbridge.Bridge) *interactiveModel {
	return &interactiveModel{
		bridge: b,
		sigs:   b.Funcs.Signatures(),
		state:  stateSelectFunc,
	}
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.sigs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	sig := m.sigs[m.selected]
	m.inputs = make([]textinput.Model, len(sig.Params))
	for i, p := range sig.Params {
		ti := textinput.New()
		ti.Placeholder = placeholderFor(p)
		ti.Prompt = fmt.Sprintf("arg%d (%s): ", i, p)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func placeholderFor(k bind.Kind) string {
	switch k {
	case bind.KindInt:
		return "42"
	case bind.KindReal:
		return "3.14"
	case bind.KindLogical:
		return "true"
	case bind.KindString:
		return "text"
	case bind.KindInts:
		return "1:2:na:4"
	case bind.KindReals:
		return "1.5:2.5"
	case bind.KindLogicals:
		return "true:false:na"
	case bind.KindStrings:
		return "a:b:c"
	default:
		return string(k)
	}
}

func (m *interactiveModel) callFunction() tea.Msg {
	sig := m.sigs[m.selected]

	args := make([]hostapi.Ref, len(m.inputs))
	for i, input := range m.inputs {
		ref, err := parseArg(m.bridge.API, sig.Params[i], input.Value())
		if err != nil {
			return callResultMsg{err: fmt.Errorf("arg%d: %w", i, err)}
		}
		args[i] = ref
	}

	ref, hostErr := m.bridge.Funcs.Invoke(sig.Name, args)
	if hostErr != nil {
		return callResultMsg{err: fmt.Errorf("%s", hostErr.Msg)}
	}
	return callResultMsg{result: formatRef(m.bridge.API, ref)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Host Bridge"))
	b.WriteString(" ")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to call:\n\n")
		for i, sig := range m.sigs {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatSig(sig)))
			} else {
				b.WriteString(cursor + m.formatSig(sig))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		sig := m.sigs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(sig.Name)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		sig := m.sigs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(sig.Name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

// statusLine surfaces host and registry health next to the title.
func (m *interactiveModel) statusLine() string {
	var parts []string
	if h := m.bridge.Host(); h != nil {
		parts = append(parts, fmt.Sprintf("%d live objects", h.LiveObjects()))
		parts = append(parts, fmt.Sprintf("%d collected", h.Collected()))
	}
	parts = append(parts, fmt.Sprintf("%d protected", m.bridge.Protect.Size()))
	return helpStyle.Render(strings.Join(parts, " • "))
}

func (m *interactiveModel) formatSig(sig bind.Signature) string {
	var params []string
	for _, p := range sig.Params {
		params = append(params, typeStyle.Render(string(p)))
	}
	result := ""
	if sig.Result != bind.KindNone {
		result = " -> " + typeStyle.Render(string(sig.Result))
	}
	return funcStyle.Render(sig.Name) + "(" + strings.Join(params, ", ") + ")" + result
}

func runInteractive(b *hostbridge.Bridge) error {
	p := tea.NewProgram(newInteractiveModel(b), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
