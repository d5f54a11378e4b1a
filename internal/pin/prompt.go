// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package pin

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/curvekey/internal/security"
)

var (
	promptLabelStyle = lipgloss.NewStyle().Bold(true)
	promptHintStyle  = lipgloss.NewStyle().Faint(true)
)

// Prompt asks for the PIN with a masked bubbletea input. It is the fallback
// when a plain terminal read is unavailable; if no TTY can be opened at all
// it reports ErrNoInteractiveSurface so a chain can keep falling through.
type Prompt struct{}

// Provide implements Strategy.
func (Prompt) Provide(prompt string) (security.Secret, error) {
	model := newPromptModel(prompt)
	out, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoInteractiveSurface, err)
	}
	final, ok := out.(promptModel)
	if !ok || final.cancelled {
		return nil, ErrCancelled
	}
	return security.FromString(final.input.Value()), nil
}

type promptModel struct {
	prompt    string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newPromptModel(prompt string) promptModel {
	input := textinput.New()
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()
	return promptModel{prompt: prompt, input: input}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return promptLabelStyle.Render(m.prompt) + " " + m.input.View() + "\n" +
		promptHintStyle.Render("enter to confirm, esc to cancel") + "\n"
}
