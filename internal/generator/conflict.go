package generator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConflictResolution is the decision for a Create job whose target exists.
type ConflictResolution int

const (
	ResolutionSkip ConflictResolution = iota
	ResolutionOverwrite
	ResolutionShowDiff
	ResolutionCancel
)

// ConflictStrategy decides what happens to an existing file.
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// ConflictResolver applies one strategy across an invocation, selected
// from the CLI flags.
type ConflictResolver struct {
	strategy ConflictStrategy
}

// NewConflictResolver picks a strategy from the flags. --force cannot be
// combined with --skip or --diff.
func NewConflictResolver(force, skip, diff bool) (*ConflictResolver, error) {
	if force && (skip || diff) {
		return nil, fmt.Errorf("--force cannot be combined with --skip or --diff")
	}
	switch {
	case force:
		return &ConflictResolver{strategy: forceStrategy{}}, nil
	case skip:
		return &ConflictResolver{strategy: skipStrategy{}}, nil
	case diff:
		return &ConflictResolver{strategy: &diffStrategy{}}, nil
	default:
		return &ConflictResolver{strategy: &interactiveStrategy{}}, nil
	}
}

// Resolve returns the decision for one conflicting path.
func (r *ConflictResolver) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return r.strategy.Resolve(path, existing, newer)
}

type forceStrategy struct{}

func (forceStrategy) Resolve(string, []byte, []byte) (ConflictResolution, error) {
	return ResolutionOverwrite, nil
}

type skipStrategy struct{}

func (skipStrategy) Resolve(string, []byte, []byte) (ConflictResolution, error) {
	return ResolutionSkip, nil
}

// diffStrategy shows the diff, then falls through to the menu.
type diffStrategy struct{}

func (s *diffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	diff := FormatDiff(path, path, existing, newer, &DiffOptions{Color: true, Width: TerminalWidth()})

	if strings.Count(diff, "\n") > 20 {
		model := newDiffPager(path, diff)
		p := tea.NewProgram(model, tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return ResolutionCancel, fmt.Errorf("showing diff: %w", err)
		}
		if final.(diffPager).cancelled {
			return ResolutionCancel, nil
		}
	} else {
		fmt.Println(diff)
	}

	menu := &interactiveStrategy{}
	return menu.Resolve(path, existing, newer)
}

// interactiveStrategy prompts with a keyboard menu. Choosing "show diff"
// loops back to the menu, so the diff can be reviewed more than once.
type interactiveStrategy struct{}

func (s *interactiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	p := tea.NewProgram(newConflictMenu(path))
	final, err := p.Run()
	if err != nil {
		return ResolutionCancel, fmt.Errorf("showing conflict menu: %w", err)
	}

	menu := final.(conflictMenu)
	if menu.selected == nil {
		return ResolutionCancel, nil
	}
	if *menu.selected == ResolutionShowDiff {
		diffS := &diffStrategy{}
		return diffS.Resolve(path, existing, newer)
	}
	return *menu.selected, nil
}

var (
	conflictWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	conflictTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
	conflictCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	conflictMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type conflictMenu struct {
	path     string
	choices  []string
	cursor   int
	selected *ConflictResolution
}

func newConflictMenu(path string) conflictMenu {
	return conflictMenu{
		path: path,
		choices: []string{
			"Show diff and decide",
			"Skip (keep existing file)",
			"Overwrite (replace with generated code)",
			"Cancel invocation",
		},
	}
}

func (m conflictMenu) Init() tea.Cmd { return nil }

func (m conflictMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			resolution := [...]ConflictResolution{
				ResolutionShowDiff, ResolutionSkip, ResolutionOverwrite, ResolutionCancel,
			}[m.cursor]
			m.selected = &resolution
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m conflictMenu) View() string {
	var b strings.Builder
	b.WriteString(conflictWarnStyle.Render("File exists: ") + conflictTitleStyle.Render(m.path) + "\n\n")
	b.WriteString(conflictMutedStyle.Render("  [↑/↓] navigate   [enter] select   [q] cancel") + "\n\n")
	for i, choice := range m.choices {
		if i == m.cursor {
			b.WriteString("  " + conflictCursorStyle.Render("> "+choice) + "\n")
		} else {
			b.WriteString("    " + choice + "\n")
		}
	}
	return b.String()
}

type diffPager struct {
	path      string
	diff      string
	viewport  viewport.Model
	ready     bool
	cancelled bool
}

func newDiffPager(path, diff string) diffPager {
	return diffPager{path: path, diff: diff}
}

func (m diffPager) Init() tea.Cmd { return nil }

func (m diffPager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "q":
			// Back to the menu without cancelling the invocation.
			return m, tea.Quit
		case "up", "k":
			m.viewport.ScrollUp(1)
		case "down", "j":
			m.viewport.ScrollDown(1)
		case "pgup", "b":
			m.viewport.PageUp()
		case "pgdown", "f", "space":
			m.viewport.PageDown()
		}
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-3)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - 3
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffPager) View() string {
	if !m.ready {
		return "loading diff..."
	}
	header := conflictTitleStyle.Render("Diff: " + m.path)
	footer := conflictMutedStyle.Render("[↑/↓] scroll   [q] back   [esc] cancel")
	return header + "\n" + m.viewport.View() + "\n" + footer
}
