package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/serpent"

	"github.com/coder/expertchat"
)

// formState is the lifecycle of a single question.
type formState int

const (
	stateIdle formState = iota
	stateSubmitted
	stateCompleted
	stateFailed
)

func (s formState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateSubmitted:
		return "submitted"
	case stateCompleted:
		return "completed"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("formState(%d)", int(s))
	}
}

const (
	formTitle   = "🤖 LLM専門家チャットアプリ"
	formUsage   = "専門家を選択し、質問を入力して Ctrl+S で回答を生成します。Tab で専門家を切り替え、Esc で終了します。"
	placeholder = "例: 量子コンピュータの最新の進展について教えてください。"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2FA8FF"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000"))
	answerStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2FA8FF")).
			Padding(0, 1)
)

// answerMsg carries the result of one oracle call.
type answerMsg struct {
	text string
	err  error
}

type formModel struct {
	ctx      context.Context
	invoker  *expertchat.Invoker
	render   func(s string, width int) string
	personas []expertchat.Persona
	selected int

	input   textarea.Model
	spinner spinner.Model
	width   int

	state   formState
	warning string
	answer  string
	err     error
}

func newFormModel(ctx context.Context, invoker *expertchat.Invoker, persona string) formModel {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(6)
	ta.SetWidth(defaultWrapWidth)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := formModel{
		ctx:      ctx,
		invoker:  invoker,
		render:   renderMarkdown,
		personas: expertchat.Personas(),
		input:    ta,
		spinner:  sp,
		width:    defaultWrapWidth,
	}
	if i, ok := personaIndex(m.personas, persona); ok {
		m.selected = i
	}
	return m
}

func personaIndex(personas []expertchat.Persona, label string) (int, bool) {
	for i, p := range personas {
		if string(p) == label {
			return i, true
		}
	}
	return 0, false
}

// checkFormPersona warns when label is not one of the form's choices. The
// form then starts on the first persona, whereas one-shot mode would answer
// with the generic instruction.
func checkFormPersona(w io.Writer, label string) bool {
	if _, ok := personaIndex(expertchat.Personas(), label); ok {
		return true
	}
	warnf(w, "unknown persona %q, the form starts with %s\n", label, expertchat.Personas()[0])
	return false
}

func (m formModel) persona() string {
	return string(m.personas[m.selected])
}

func (m formModel) Init() tea.Cmd {
	return textarea.Blink
}

// generate performs the oracle call off the UI loop.
func (m formModel) generate(query, persona string) tea.Cmd {
	return func() tea.Msg {
		text, err := m.invoker.Invoke(m.ctx, query, persona)
		return answerMsg{text: text, err: err}
	}
}

func (m formModel) submit() (formModel, tea.Cmd) {
	query := m.input.Value()
	if err := expertchat.ValidateQuery(query); err != nil {
		m.warning = emptyQueryWarning
		return m, nil
	}
	m.warning = ""
	m.state = stateSubmitted
	debugPrompt(expertchat.BuildPrompt(query, m.persona()))
	return m, tea.Batch(m.spinner.Tick, m.generate(query, m.persona()))
}

// reset returns a displayed result to idle.
func (m *formModel) reset() {
	m.state = stateIdle
	m.answer = ""
	m.err = nil
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(msg.Width-2, 20))
		return m, nil

	case answerMsg:
		if m.state != stateSubmitted {
			return m, nil
		}
		if msg.err != nil {
			m.state = stateFailed
			m.err = msg.err
			return m, nil
		}
		m.state = stateCompleted
		m.answer = msg.text
		return m, nil

	case spinner.TickMsg:
		if m.state != stateSubmitted {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		// The oracle call is not cancellable; input waits for it.
		if m.state == stateSubmitted {
			return m, nil
		}
		if m.state == stateCompleted || m.state == stateFailed {
			m.reset()
		}
		switch msg.String() {
		case "ctrl+s":
			return m.submit()
		case "tab":
			m.selected = (m.selected + 1) % len(m.personas)
			return m, nil
		case "shift+tab":
			m.selected = (m.selected + len(m.personas) - 1) % len(m.personas)
			return m, nil
		}
		m.warning = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m formModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(formTitle) + "\n")
	b.WriteString(mutedStyle.Render(formUsage) + "\n\n")

	b.WriteString(headingStyle.Render("1. 専門家を選択してください") + "\n")
	for i, p := range m.personas {
		mark := "( )"
		if i == m.selected {
			mark = "(•)"
		}
		fmt.Fprintf(&b, "  %s %s\n", mark, p)
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("2. 質問を入力してください") + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.warning != "" {
		b.WriteString(warnStyle.Render(m.warning) + "\n")
	}
	b.WriteString("\n")

	switch m.state {
	case stateSubmitted:
		b.WriteString(m.spinner.View() + " 専門家が回答を生成中です...\n")
	case stateCompleted:
		b.WriteString(headingStyle.Render("3. 専門家からの回答") + "\n")
		b.WriteString(answerStyle.Render(strings.TrimRight(m.render(m.answer, m.width-4), "\n")) + "\n")
	case stateFailed:
		cause := m.err
		var ue *expertchat.UpstreamError
		if errors.As(cause, &ue) {
			cause = ue.Err
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("エラーが発生しました: %v", cause)) + "\n")
		b.WriteString(warnStyle.Render(credentialHint) + "\n")
	}

	b.WriteString(mutedStyle.Render("\nPowered by go-openai & Bubble Tea") + "\n")
	return b.String()
}

// interactive runs the question form until the user quits.
func interactive(inv *serpent.Invocation, opts runOptions) error {
	checkFormPersona(inv.Stderr, opts.persona)
	m := newFormModel(inv.Context(), opts.invoker, opts.persona)
	if opts.raw {
		m.render = func(s string, _ int) string { return s }
	} else {
		// Detecting the background once the program owns the terminal
		// races with its input reader.
		style := "light"
		if lipgloss.HasDarkBackground() {
			style = "dark"
		}
		m.render = func(s string, width int) string {
			return renderMarkdownWith(s, width, glamour.WithStandardStyle(style))
		}
	}
	p := tea.NewProgram(m,
		tea.WithContext(inv.Context()),
		tea.WithInput(inv.Stdin),
		tea.WithOutput(inv.Stdout),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
