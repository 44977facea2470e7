package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/foodcatch/internal/leaderboard"
	"github.com/vovakirdan/foodcatch/internal/storage"
)

// BoardKeyMap defines the key bindings for the leaderboard panel.
type BoardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Close key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Close, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Close, k.Quit}}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Close: key.NewBinding(
			key.WithKeys("tab", "esc", "b"),
			key.WithHelp("tab/esc", "back to game"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardAction is what the panel asks its host to do after an update.
type boardAction int

const (
	boardStay boardAction = iota
	boardClose
	boardQuit
)

// BoardView shows the leaderboard and the player's own run history.
type BoardView struct {
	entries []leaderboard.Entry
	stats   *storage.PlayerStats
	runs    []storage.ScoreEntry
	player  string
	online  bool
	status  string
	table   table.Model
	help    help.Model
	keys    BoardKeyMap
	width   int
	height  int
}

// NewBoardView creates a leaderboard panel.
func NewBoardView(width, height int, online bool) BoardView {
	h := help.New()
	h.ShowAll = false

	v := BoardView{
		online: online,
		keys:   DefaultBoardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	v.table = v.createTable()
	return v
}

// createTable creates a new table with appropriate columns.
func (v *BoardView) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: leaderboard.MaxNameLen},
		{Title: "Score", Width: 8},
		{Title: "Since", Width: 14},
	}

	// Drop the date column on narrow terminals
	if v.width < 66 {
		columns = columns[:3]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, min(leaderboard.MaxEntries+1, v.height-10))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// SetEntries replaces the shown board and moves the cursor to player's row.
func (v *BoardView) SetEntries(entries []leaderboard.Entry, player string) {
	v.entries = entries
	v.player = player
	v.updateTableRows()
}

// SetStats sets the player's run history summary.
func (v *BoardView) SetStats(stats *storage.PlayerStats) {
	v.stats = stats
}

// SetRuns sets the player's best runs.
func (v *BoardView) SetRuns(runs []storage.ScoreEntry) {
	v.runs = runs
}

// SetStatus sets a one-line notice, such as a failed refresh.
func (v *BoardView) SetStatus(status string) {
	v.status = status
}

// Resize adapts the panel to a new terminal size.
func (v *BoardView) Resize(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
	v.table = v.createTable()
	v.updateTableRows()
}

// updateTableRows updates the table with current entries.
func (v *BoardView) updateTableRows() {
	withDate := len(v.table.Columns()) > 3
	want := leaderboard.Key(v.player)
	cursor := 0

	rows := make([]table.Row, len(v.entries))
	for i, e := range v.entries {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
		}
		if withDate {
			row = append(row, formatAt(e.At))
		}
		rows[i] = row
		if want != "" && leaderboard.Key(e.Name) == want {
			cursor = i
		}
	}
	v.table.SetRows(rows)
	v.table.SetCursor(cursor)
}

// formatRuns lists scores with the day each was played.
func formatRuns(runs []storage.ScoreEntry) string {
	parts := make([]string, len(runs))
	for i, r := range runs {
		parts[i] = fmt.Sprintf("%d (%s)", r.Score, r.CreatedAt.Format("Jan 02"))
	}
	return "best runs: " + strings.Join(parts, "  ")
}

func formatAt(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("Jan 02 15:04")
}

// Update handles messages for the panel.
func (v BoardView) Update(msg tea.Msg) (BoardView, tea.Cmd, boardAction) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, v.keys.Quit):
			return v, nil, boardQuit
		case key.Matches(k, v.keys.Close):
			return v, nil, boardClose
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd, boardStay
}

// View renders the panel.
func (v BoardView) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "LEADERBOARD"
	if v.online {
		title += " - online"
	} else {
		title += " - this machine"
	}
	b.WriteString(titleStyle.Render(centerText(title, v.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(v.renderTableContent()), v.width))
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if v.stats != nil && v.stats.RunsCount > 0 {
		line := fmt.Sprintf("%s: %d runs, best %d, average %.0f",
			v.stats.Player, v.stats.RunsCount, v.stats.HighScore, v.stats.AvgScore)
		b.WriteString(centerText(dim.Render(line), v.width))
		b.WriteString("\n")
	}
	if len(v.runs) > 0 {
		b.WriteString(centerText(dim.Render(formatRuns(v.runs)), v.width))
		b.WriteString("\n")
	}
	if v.status != "" {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
		b.WriteString(centerText(warn.Render(v.status), v.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(v.help.View(v.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (v BoardView) renderTableContent() string {
	if len(v.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores yet.\nCatch something!")
	}

	return v.table.View()
}

// centerText pads text to center it within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}
