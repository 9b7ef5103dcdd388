package exec

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))

// spinnerDone signals the wrapped work finished.
type spinnerDone struct{ err error }

type spinnerModel struct {
	spinner spinner.Model
	label   string
	err     error
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDone:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	return m.spinner.View() + " " + m.label
}

// WithSpinner runs fn while showing a spinner labelled with the command
// being run. Falls back to running fn directly if the TUI cannot start.
func WithSpinner(label string, fn func() error) error {
	model := newSpinnerModel(label)
	p := tea.NewProgram(model)

	result := make(chan error, 1)
	go func() {
		err := fn()
		result <- err
		p.Send(spinnerDone{err: err})
	}()

	if _, err := p.Run(); err != nil {
		return <-result
	}
	return <-result
}
