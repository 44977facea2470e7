package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/foodcatch/internal/leaderboard"
)

// cardResult reports what happened to the name card after an update.
type cardResult int

const (
	cardEditing cardResult = iota
	cardSubmitted
	cardCancelled
)

// NameCard asks for the player name.
type NameCard struct {
	input textinput.Model
	prev  string
}

// NewNameCard creates an empty name card.
func NewNameCard() NameCard {
	ti := textinput.New()
	ti.Placeholder = leaderboard.DefaultPlayer
	ti.CharLimit = leaderboard.MaxNameLen
	ti.Width = leaderboard.MaxNameLen
	ti.Prompt = "> "
	return NameCard{input: ti}
}

// Open shows the card prefilled with the current name.
func (c NameCard) Open(current string) (NameCard, tea.Cmd) {
	c.prev = current
	c.input.SetValue(current)
	c.input.CursorEnd()
	return c, c.input.Focus()
}

// Value returns the sanitized name typed so far.
func (c NameCard) Value() string {
	return leaderboard.SanitizeName(c.input.Value())
}

// Update handles a message. Enter submits; Esc cancels when a previous
// name exists.
func (c NameCard) Update(msg tea.Msg) (NameCard, tea.Cmd, cardResult) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			c.input.Blur()
			return c, nil, cardSubmitted
		case tea.KeyEsc:
			if c.prev != "" {
				c.input.Blur()
				return c, nil, cardCancelled
			}
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd, cardEditing
}

// View renders the card centered in a width x height area.
func (c NameCard) View(width, height int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Render("Who's catching?")
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("enter to play")
	if c.prev != "" {
		hint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("enter to save  •  esc to keep " + c.prev)
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", c.input.View(), "", hint))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
