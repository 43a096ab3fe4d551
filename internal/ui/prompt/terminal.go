package prompt

import (
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/unilang/internal/domain"
)

// Terminal prompts with an inline bubbletea text input.
type Terminal struct {
	in     io.Reader
	out    io.Writer
	styler domain.Styler
}

// Prompt runs the input program until enter, ctrl+c or esc.
func (t *Terminal) Prompt(req Request) (string, error) {
	p := tea.NewProgram(
		newInputModel(req, t.styler),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.input.Value(), nil
}

type inputModel struct {
	input     textinput.Model
	styler    domain.Styler
	done      bool
	cancelled bool
}

func newInputModel(req Request, styler domain.Styler) inputModel {
	ti := textinput.New()
	ti.Prompt = styler.Argument(req.label()) + ": "
	if req.Sensitive {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()

	return inputModel{input: ti, styler: styler}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.input.View() + "\n" + m.styler.Muted("enter to submit, esc to cancel") + "\n"
}
