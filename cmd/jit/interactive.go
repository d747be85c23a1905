package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	exprStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	irStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type replModel struct {
	err     error
	input   textinput.Model
	xInput  textinput.Model
	yInput  textinput.Model
	history []historyEntry
	ir      string
	showIR  bool
	state   modelState
}

type historyEntry struct {
	expr   string
	x, y   int64
	result int64
}

type modelState int

const (
	stateInputExpr modelState = iota
	stateInputVars
	stateShowResult
)

func newReplModel() *replModel {
	input := textinput.New()
	input.Placeholder = "(x + y) * 2"
	input.Prompt = "expr> "
	input.Width = 60
	input.Focus()

	xInput := textinput.New()
	xInput.Prompt = "x = "
	xInput.Placeholder = "0"
	xInput.Width = 20

	yInput := textinput.New()
	yInput.Prompt = "y = "
	yInput.Placeholder = "0"
	yInput.Width = 20

	return &replModel{
		input:  input,
		xInput: xInput,
		yInput: yInput,
		state:  stateInputExpr,
	}
}

type evalResultMsg struct {
	err   error
	entry historyEntry
	ir    string
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) evaluate() tea.Msg {
	expr := strings.TrimSpace(m.input.Value())
	x, _ := strconv.ParseInt(strings.TrimSpace(m.xInput.Value()), 10, 64)
	y, _ := strconv.ParseInt(strings.TrimSpace(m.yInput.Value()), 10, 64)

	c, err := compileExpr(expr)
	if err != nil {
		return evalResultMsg{err: err}
	}
	defer c.Close()

	result, err := c.Run(x, y)
	if err != nil {
		return evalResultMsg{err: err}
	}
	return evalResultMsg{
		entry: historyEntry{expr: expr, x: x, y: y, result: result},
		ir:    c.ir,
	}
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputExpr && m.state != stateInputVars {
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateInputExpr:
				if strings.TrimSpace(m.input.Value()) == "" {
					return m, nil
				}
				// Only ask for variable values when the expression uses
				// them.
				if strings.ContainsAny(m.input.Value(), "xy") {
					m.state = stateInputVars
					m.input.Blur()
					m.xInput.Focus()
					return m, nil
				}
				return m, m.evaluate

			case stateInputVars:
				return m, m.evaluate

			case stateShowResult:
				m.state = stateInputExpr
				m.err = nil
				m.input.SetValue("")
				m.xInput.Blur()
				m.yInput.Blur()
				m.input.Focus()
			}

		case "tab":
			if m.state == stateInputVars {
				if m.xInput.Focused() {
					m.xInput.Blur()
					m.yInput.Focus()
				} else {
					m.yInput.Blur()
					m.xInput.Focus()
				}
			}

		case "d":
			if m.state == stateShowResult {
				m.showIR = !m.showIR
			}

		case "esc":
			switch m.state {
			case stateInputVars:
				m.state = stateInputExpr
				m.xInput.Blur()
				m.yInput.Blur()
				m.input.Focus()
			case stateShowResult:
				m.state = stateInputExpr
				m.err = nil
				m.input.Focus()
			}
		}

	case evalResultMsg:
		m.err = msg.err
		m.ir = msg.ir
		if msg.err == nil {
			m.history = append(m.history, msg.entry)
		}
		m.state = stateShowResult
	}

	var cmds []tea.Cmd
	switch m.state {
	case stateInputExpr:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	case stateInputVars:
		var cmd tea.Cmd
		m.xInput, cmd = m.xInput.Update(msg)
		cmds = append(cmds, cmd)
		m.yInput, cmd = m.yInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("LLVM Expression JIT"))
	b.WriteString("\n\n")

	for _, h := range m.history {
		b.WriteString(fmt.Sprintf("  %s = %s  (x=%d, y=%d)\n",
			exprStyle.Render(h.expr), resultStyle.Render(strconv.FormatInt(h.result, 10)), h.x, h.y))
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	switch m.state {
	case stateInputExpr:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter compile and run • ctrl+c quit"))

	case stateInputVars:
		b.WriteString(exprStyle.Render(m.input.Value()))
		b.WriteString("\n\n")
		b.WriteString(m.xInput.View())
		b.WriteString("\n")
		b.WriteString(m.yInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab switch field • enter run • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			last := m.history[len(m.history)-1]
			b.WriteString(fmt.Sprintf("%s = %s\n",
				exprStyle.Render(last.expr), resultStyle.Render(strconv.FormatInt(last.result, 10))))
			if m.showIR {
				b.WriteString("\n")
				b.WriteString(irStyle.Render(m.ir))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter next expression • d toggle IR • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newReplModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
