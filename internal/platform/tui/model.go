package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/foodcatch/internal/catch"
	"github.com/vovakirdan/foodcatch/internal/config"
	"github.com/vovakirdan/foodcatch/internal/core"
	"github.com/vovakirdan/foodcatch/internal/leaderboard"
	"github.com/vovakirdan/foodcatch/internal/storage"
)

// Services are the collaborators a session uses. Any of them may be nil
// except Board.
type Services struct {
	Store    *storage.Store
	Board    *leaderboard.Board
	Reporter *leaderboard.Reporter
	Logger   *log.Logger
}

// Options configure one play session.
type Options struct {
	Runtime core.RuntimeConfig
	Catch   config.CatchConfig

	// Player preselects the name. When empty the saved name is used, and
	// without one the name card is shown first.
	Player string

	// RememberName persists name changes in the store.
	RememberName bool
}

type mode int

const (
	modePlay mode = iota
	modeName
	modeBoard
)

// boardMsg carries a refreshed leaderboard.
type boardMsg struct {
	entries []leaderboard.Entry
	stats   *storage.PlayerStats
	runs    []storage.ScoreEntry
	err     error
}

// nameMsg reports a finished rename.
type nameMsg struct {
	best int
	boardMsg
}

// Model is the Bubble Tea model for a catch session.
type Model struct {
	game     *catch.Game
	screen   *core.Screen
	svc      Services
	opts     Options
	keys     *KeyMapper
	input    core.InputFrame
	state    core.GameState
	mode     mode
	player   string
	card     NameCard
	board    BoardView
	entries  []leaderboard.Entry
	lastTick time.Time
	quitting bool
	startCmd tea.Cmd
}

// NewModel creates a session model and starts the first run.
func NewModel(svc Services, opts Options) Model {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if svc.Logger == nil {
		svc.Logger = log.New(io.Discard)
	}

	player := leaderboard.SanitizeName(opts.Player)
	if player == "" && opts.RememberName && svc.Store != nil {
		saved, _, err := svc.Store.Get(context.Background(), storage.KeyPlayerName)
		if err != nil {
			svc.Logger.Warn("could not read saved player name", "error", err)
		}
		player = leaderboard.SanitizeName(saved)
	}

	gameOpts := []catch.Option{catch.WithPlayer(player)}
	if svc.Reporter != nil {
		gameOpts = append(gameOpts, catch.WithReporter(svc.Reporter))
	}
	game := catch.NewGame(opts.Catch, gameOpts...)
	game.Reset(opts.Runtime)

	m := Model{
		game:   game,
		screen: core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		svc:    svc,
		opts:   opts,
		keys:   NewKeyMapper(),
		input:  core.NewInputFrame(),
		player: player,
		card:   NewNameCard(),
		board:  NewBoardView(opts.Runtime.ScreenW, opts.Runtime.ScreenH, svc.Board != nil && svc.Board.Online()),
	}
	m.state = game.State()
	if player != "" {
		game.SetBest(m.highScore(player))
	} else {
		m.mode = modeName
		m.card, m.startCmd = m.card.Open("")
	}
	return m
}

// Init starts the tick loop and loads the leaderboard snapshot.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.Runtime.TickRate), m.loadBoard(), m.startCmd)
}

// Player returns the current player name.
func (m Model) Player() string {
	return m.player
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case boardMsg:
		m.applyBoard(msg)
		return m, nil

	case nameMsg:
		m.game.SetBest(msg.best)
		m.applyBoard(msg.boardMsg)
		return m, nil
	}

	switch m.mode {
	case modeName:
		return m.updateName(msg)
	case modeBoard:
		return m.updateBoard(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.game.FieldRect().Contains(msg.X, msg.Y) {
			m.input.SetPointer(msg.X)
		}
	}
	return m, nil
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case action == core.ActionRename:
		m.mode = modeName
		var cmd tea.Cmd
		m.card, cmd = m.card.Open(m.player)
		return m, cmd
	case action == core.ActionBoard:
		m.mode = modeBoard
		return m, m.loadBoard()
	case action != core.ActionNone:
		m.input.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The run keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	m.board.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation by the real time since the last tick.
// The name card and leaderboard panel freeze the run.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.Runtime.TickRate)

	dt := 0.0
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	if m.mode != modePlay || dt <= 0 {
		m.input.Clear()
		return m, next
	}

	result := m.game.StepDT(m.input, dt)
	m.state = result.State
	m.input.Clear()

	if result.GameOverNow {
		m.svc.Logger.Info("run finished", "player", m.player, "score", m.state.Score)
		return m, tea.Batch(next, m.awaitReport())
	}
	return m, next
}

// updateName drives the name card.
func (m Model) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	var res cardResult
	m.card, cmd, res = m.card.Update(msg)

	switch res {
	case cardSubmitted:
		m.mode = modePlay
		m.lastTick = time.Time{}
		cmd = m.setPlayer(m.card.Value())
		return m, cmd
	case cardCancelled:
		m.mode = modePlay
		m.lastTick = time.Time{}
		return m, nil
	}
	return m, cmd
}

// updateBoard drives the leaderboard panel.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action boardAction
	m.board, cmd, action = m.board.Update(msg)

	switch action {
	case boardQuit:
		m.quitting = true
		return m, tea.Quit
	case boardClose:
		m.mode = modePlay
		m.lastTick = time.Time{}
		return m, nil
	}
	return m, cmd
}

// setPlayer switches the run to a new name and renames the player's
// leaderboard entry and history.
func (m *Model) setPlayer(name string) tea.Cmd {
	if name == "" {
		name = m.player
	}
	if name == "" {
		name = leaderboard.DefaultPlayer
	}

	old := m.player
	m.player = name
	m.game.Engine().SetPlayer(name)
	if old == name {
		return nil
	}

	svc, remember := m.svc, m.opts.RememberName
	svc.Logger.Info("player renamed", "from", old, "to", name)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leaderboard.DefaultTimeout)
		defer cancel()

		if svc.Store != nil {
			if remember {
				if err := svc.Store.Put(ctx, storage.KeyPlayerName, name); err != nil {
					svc.Logger.Warn("could not save player name", "error", err)
				}
			}
			if old != "" {
				if err := svc.Store.RenamePlayer(old, name); err != nil {
					svc.Logger.Warn("could not rename run history", "error", err)
				}
			}
		}

		msg := nameMsg{best: storeHighScore(svc.Store, name)}
		if old != "" && svc.Board != nil {
			msg.entries, msg.err = svc.Board.Rename(ctx, old, name)
		} else {
			msg.boardMsg = fetchBoard(ctx, svc, name)
		}
		if msg.stats == nil {
			msg.stats = storeStats(svc.Store, name)
			msg.runs = storeBestRuns(svc.Store, name)
		}
		return msg
	}
}

// loadBoard refreshes the leaderboard in the background.
func (m Model) loadBoard() tea.Cmd {
	svc, player := m.svc, m.player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leaderboard.DefaultTimeout)
		defer cancel()
		return fetchBoard(ctx, svc, player)
	}
}

// awaitReport refreshes the leaderboard once this player's final score is
// submitted. Other sessions may share the reporter.
func (m Model) awaitReport() tea.Cmd {
	svc, player := m.svc, m.player
	return func() tea.Msg {
		if svc.Reporter != nil {
			<-svc.Reporter.Settled(player)
		}
		ctx, cancel := context.WithTimeout(context.Background(), leaderboard.DefaultTimeout)
		defer cancel()
		return fetchBoard(ctx, svc, player)
	}
}

func fetchBoard(ctx context.Context, svc Services, player string) boardMsg {
	var msg boardMsg
	if svc.Board != nil {
		msg.entries, msg.err = svc.Board.Entries(ctx)
	}
	msg.stats = storeStats(svc.Store, player)
	msg.runs = storeBestRuns(svc.Store, player)
	return msg
}

func (m *Model) applyBoard(msg boardMsg) {
	if msg.entries != nil {
		m.entries = msg.entries
	}
	m.board.SetEntries(m.entries, m.player)
	if msg.stats != nil {
		m.board.SetStats(msg.stats)
		m.board.SetRuns(msg.runs)
	}
	if msg.err != nil {
		m.svc.Logger.Warn("leaderboard refresh failed", "error", msg.err)
		m.board.SetStatus("remote leaderboard unavailable, showing local scores")
	} else {
		m.board.SetStatus("")
	}
}

func (m Model) highScore(player string) int {
	return storeHighScore(m.svc.Store, player)
}

func storeHighScore(store *storage.Store, player string) int {
	if store == nil || player == "" {
		return 0
	}
	best, err := store.HighScore(player)
	if err != nil {
		return 0
	}
	return best
}

func storeStats(store *storage.Store, player string) *storage.PlayerStats {
	if store == nil || player == "" {
		return nil
	}
	stats, err := store.Stats(player)
	if err != nil {
		return nil
	}
	return stats
}

// bestRuns is how many personal runs the leaderboard panel lists.
const bestRuns = 5

func storeBestRuns(store *storage.Store, player string) []storage.ScoreEntry {
	if store == nil || player == "" {
		return nil
	}
	runs, err := store.TopScores(player, bestRuns)
	if err != nil {
		return nil
	}
	return runs
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH
	switch m.mode {
	case modeName:
		return m.card.View(w, h)
	case modeBoard:
		return m.board.View()
	}

	m.game.Render(m.screen)
	if m.state.GameOver {
		drawBoardSummary(m.screen, m.entries, m.player)
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local session.
func Run(svc Services, opts Options) error {
	p := tea.NewProgram(
		NewModel(svc, opts),
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer steering
	)

	_, err := p.Run()
	return err
}
