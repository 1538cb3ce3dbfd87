package play

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/SimeonTsvetanov/quizzard/internal/quizgen"
	"github.com/SimeonTsvetanov/quizzard/internal/ui/components"
	"github.com/SimeonTsvetanov/quizzard/internal/ui/theme"
)

type phase int

const (
	phaseLoading phase = iota
	phaseChoice
	phaseOpen
	phaseRevealed
)

// questionMsg carries a finished generation back into the update loop.
type questionMsg struct {
	question *quizgen.Question
	err      error
}

// statusMsg is one progress event from the orchestrator.
type statusMsg quizgen.StatusUpdate

// Model is the root Bubble Tea model for a quiz round.
type Model struct {
	orch   *quizgen.Orchestrator
	params quizgen.Params
	status chan quizgen.StatusUpdate

	phase    phase
	question *quizgen.Question
	choice   components.MultiChoice
	input    components.AnswerInput
	waiting  time.Duration
	err      error

	asked   int
	correct int

	width  int
	height int
}

// New creates a play model. The orchestrator's status channel must be
// the one passed here so countdowns reach the view.
func New(orch *quizgen.Orchestrator, params quizgen.Params, status chan quizgen.StatusUpdate) Model {
	return Model{
		orch:   orch,
		params: params,
		status: status,
		phase:  phaseLoading,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.generate(), m.listenStatus())
}

// generate runs one orchestrator call off the update loop.
func (m Model) generate() tea.Cmd {
	return func() tea.Msg {
		q, err := m.orch.Generate(context.Background(), m.params)
		return questionMsg{question: q, err: err}
	}
}

// listenStatus forwards one status update into the program.
func (m Model) listenStatus() tea.Cmd {
	return func() tea.Msg {
		u, ok := <-m.status
		if !ok {
			return nil
		}
		return statusMsg(u)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		if msg.State == quizgen.StateWaiting {
			m.waiting = msg.Wait
		} else {
			m.waiting = 0
		}
		return m, m.listenStatus()

	case questionMsg:
		m.err = msg.err
		if msg.err != nil {
			m.phase = phaseRevealed
			return m, nil
		}
		m.question = msg.question
		m.asked++
		if len(m.question.Options) > 0 {
			m.choice = components.NewMultiChoice(m.question.Text, m.question.Options, m.question.CorrectOption)
			m.phase = phaseChoice
			return m, nil
		}
		m.input = components.NewAnswerInput("type your answer")
		m.phase = phaseOpen
		return m, m.input.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.phase != phaseOpen || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case "enter":
			switch m.phase {
			case phaseChoice:
				var cmd tea.Cmd
				m.choice, cmd = m.choice.Update(msg)
				if m.choice.Submitted {
					if m.choice.IsCorrect() {
						m.correct++
					}
					m.phase = phaseRevealed
				}
				return m, cmd
			case phaseOpen:
				correct := m.input.Matches(m.question.Answer)
				m.input.Submit(correct)
				if correct {
					m.correct++
				}
				m.phase = phaseRevealed
				return m, nil
			case phaseRevealed:
				if m.err != nil {
					return m, tea.Quit
				}
				m.phase = phaseLoading
				return m, m.generate()
			}
		}
	}

	// Delegate navigation and typing to the active component.
	var cmd tea.Cmd
	switch m.phase {
	case phaseChoice:
		m.choice, cmd = m.choice.Update(msg)
	case phaseOpen:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	quota := m.orch.Quota()
	header := theme.Header.Width(m.width).Render(
		theme.Title.Render("Quizzard") + "  " +
			theme.Subtitle.Render(fmt.Sprintf("score %d/%d", m.correct, m.asked)) + "  " +
			components.NewQuotaBar(quota.RequestsRemaining, 15, 20).View())

	var body string
	switch m.phase {
	case phaseLoading:
		if m.waiting > 0 {
			body = theme.Throttled.Render(
				fmt.Sprintf("Rate limit reached, next question in %ds...", int(m.waiting.Round(time.Second)/time.Second)))
		} else {
			body = theme.Hint.Render("Thinking of a question...")
		}
	case phaseChoice:
		body = m.choice.View()
	case phaseOpen:
		body = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.question.Text) +
			"\n\n" + m.input.View()
	case phaseRevealed:
		if m.err != nil {
			body = theme.Incorrect.Render("Generation failed: "+m.err.Error()) +
				"\n\n" + theme.Hint.Render("Press Enter to quit.")
			break
		}
		body = m.revealView()
	}

	card := theme.Card.Width(m.width - 4).Render(body)

	footer := theme.Footer.Width(m.width).Render(theme.Hint.Render(m.footerHints()))

	content := lipgloss.JoinVertical(lipgloss.Left, header, card, footer)
	v.SetContent(content)
	return v
}

// revealView shows the verdict and the correct answer after submission.
func (m Model) revealView() string {
	var body string
	if len(m.question.Options) > 0 {
		body = m.choice.View()
		if m.choice.IsCorrect() {
			body += "\n" + theme.Correct.Render("Correct!")
		} else {
			body += "\n" + theme.Incorrect.Render("Wrong.") + " " +
				theme.Body.Render("The answer is "+m.question.Answer+".")
		}
	} else {
		body = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.question.Text) +
			"\n\n" + m.input.View()
		if m.input.Matches(m.question.Answer) {
			body += "\n\n" + theme.Correct.Render("Correct!")
		} else {
			body += "\n\n" + theme.Incorrect.Render("Wrong.") + " " +
				theme.Body.Render("The answer is "+m.question.Answer+".")
		}
	}
	body += "\n" + theme.Subtitle.Render(fmt.Sprintf("%s · %s", m.question.Category, m.question.Difficulty))
	return body
}

func (m Model) footerHints() string {
	switch m.phase {
	case phaseChoice:
		return "↑↓ navigate · Enter answer · Ctrl+C quit"
	case phaseOpen:
		return "Enter answer · Ctrl+C quit"
	case phaseRevealed:
		return "Enter next question · q quit"
	default:
		return "Ctrl+C quit"
	}
}

// Run starts the interactive quiz loop.
func Run(orch *quizgen.Orchestrator, params quizgen.Params, status chan quizgen.StatusUpdate) error {
	p := tea.NewProgram(New(orch, params, status))
	_, err := p.Run()
	return err
}
