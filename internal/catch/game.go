package catch

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/foodcatch/internal/config"
	"github.com/vovakirdan/foodcatch/internal/core"
)

// Visual characters for rendering
const (
	GroundChar  = '▔'
	CounterChar = '▄'
	TargetChar  = '·'
	AgentLeft   = '\\'
	AgentBody   = '_'
	AgentRight  = '/'
)

// keyHold is how long a single direction key press keeps steering.
// Terminals only report key repeats, never key releases.
const keyHold = 0.18

// missFlashTime is how long the HUD shows a miss.
const missFlashTime = 0.25

// Game adapts the Engine to the platform's screen and input model.
type Game struct {
	cfg    config.CatchConfig
	opts   []Option
	engine *Engine

	runtime        core.RuntimeConfig
	paused         bool
	dir            int
	dirTimer       float64
	missFlash      float64
	caught         int
	best           int
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// NewGame creates a game. The engine is built on the first Reset.
func NewGame(cfg config.CatchConfig, opts ...Option) *Game {
	return &Game{
		cfg:        cfg,
		opts:       opts,
		minScreenW: 40,
		minScreenH: 14,
	}
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "foodcatch"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Food Catch"
}

// Engine returns the underlying engine, or nil before Reset.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Reset starts a new run. The first call builds the engine from the
// runtime seed; later calls restart it.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.engine == nil {
		opts := append([]Option{WithSeed(runtime.Seed)}, g.opts...)
		g.engine = NewEngine(g.cfg, opts...)
	} else {
		g.engine.Restart()
	}
	g.paused = false
	g.dir = 0
	g.dirTimer = 0
	g.missFlash = 0
	g.caught = 0
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize updates the screen projection without touching the run.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// SetBest sets the personal best shown in the HUD.
func (g *Game) SetBest(score int) {
	g.best = score
}

// SetPaused freezes or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	if g.engine != nil && g.engine.Run().Phase == PhaseGameOver {
		return
	}
	g.paused = paused
}

// Step advances one fixed tick at the runtime tick rate.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return g.StepDT(in, 1/float64(rate))
}

// StepDT advances the game by dt seconds of real time.
func (g *Game) StepDT(in core.InputFrame, dt float64) core.StepResult {
	run := g.engine.Run()

	if in.Has(core.ActionPause) && run.Phase != PhaseGameOver {
		g.paused = !g.paused
	}

	if run.Phase == PhaseGameOver && (in.Has(core.ActionRestart) || in.Has(core.ActionConfirm)) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.missFlash = math.Max(0, g.missFlash-dt)
	ev := g.engine.Step(dt, g.input(in, dt))

	g.caught += len(ev.Caught)
	if ev.Missed > 0 {
		g.missFlash = missFlashTime
	}
	if s := g.engine.Run().Score; s > g.best {
		g.best = s
	}

	return core.StepResult{
		State:       g.State(),
		Caught:      len(ev.Caught),
		Missed:      ev.Missed,
		GameOverNow: ev.GameOverNow,
	}
}

// input turns platform actions into engine steering.
func (g *Game) input(in core.InputFrame, dt float64) Input {
	switch {
	case in.Has(core.ActionLeft) && !in.Has(core.ActionRight):
		g.dir, g.dirTimer = -1, keyHold
	case in.Has(core.ActionRight) && !in.Has(core.ActionLeft):
		g.dir, g.dirTimer = 1, keyHold
	}

	out := Input{}
	if g.dirTimer > 0 {
		out.Dir = g.dir
		g.dirTimer -= dt
	}
	if in.HasPointer {
		out.TargetX = g.cellToWorldX(in.PointerX)
		out.HasTarget = true
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	run := g.engine.Run()
	return core.GameState{
		Score:    run.Score,
		Misses:   run.Misses,
		GameOver: run.Phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

// fieldTop is the first screen row of the playfield; the HUD sits above it
// and the legend below.
const fieldTop = 1

func (g *Game) fieldRows() int {
	return max(1, g.runtime.ScreenH-2)
}

// FieldRect is the playfield area in screen cells.
func (g *Game) FieldRect() core.Rect {
	return core.NewRect(0, fieldTop, g.runtime.ScreenW, g.fieldRows())
}

func (g *Game) worldToCell(x, y float64) (int, int) {
	cols := float64(max(1, g.runtime.ScreenW))
	rows := float64(g.fieldRows())
	cx := int(math.Floor(x / g.cfg.Field.Width * cols))
	cy := fieldTop + int(math.Floor(y/g.cfg.Field.Height*rows))
	return cx, cy
}

func (g *Game) cellToWorldX(col int) float64 {
	cols := float64(max(1, g.runtime.ScreenW))
	return (float64(col) + 0.5) * g.cfg.Field.Width / cols
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.runtime.ScreenW != dst.Width() || g.runtime.ScreenH != dst.Height() {
		g.Resize(dst.Width(), dst.Height())
	}

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	snap := g.engine.Snapshot()

	g.renderHUD(dst, &snap)
	g.renderField(dst)
	g.renderItems(dst, &snap)
	g.renderAgent(dst, &snap)
	g.renderLegend(dst)
	g.renderOverlay(dst, &snap)
}

// renderHUD draws score, best, misses and the player name.
func (g *Game) renderHUD(dst *core.Screen, snap *Snapshot) {
	left := fmt.Sprintf("Score: %d  Best: %d  Caught: %d", snap.Run.Score, g.best, g.caught)
	dst.DrawText(1, 0, left)

	misses := strings.Repeat("x", snap.Run.Misses) + strings.Repeat("-", max(0, snap.Run.MaxMisses-snap.Run.Misses))
	color := core.ColorDefault
	if g.missFlash > 0 {
		color = core.ColorBrightRed
	}
	dst.DrawTextColor(dst.Width()/2+4, 0, "Miss "+misses, color)

	if name := g.engine.Player(); name != "" {
		right := fmt.Sprintf("%s  L%d", name, snap.Lanes)
		dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
	}
}

// renderField draws the counter items drop from and the ground line.
func (g *Game) renderField(dst *core.Screen) {
	src := g.cfg.Field.Source
	x0, y := g.worldToCell(src.X, src.Y+src.H)
	x1, _ := g.worldToCell(src.X+src.W, src.Y+src.H)
	dst.DrawHLineColor(x0, y, x1-x0, CounterChar, core.ColorBrown)

	_, gy := g.worldToCell(0, g.cfg.Field.GroundY())
	dst.DrawHLineColor(0, gy, dst.Width(), GroundChar, core.ColorGreen)
}

// renderItems draws falling items and marks the primary target on the ground.
func (g *Game) renderItems(dst *core.Screen, snap *Snapshot) {
	amp := g.cfg.Physics.WobbleAmplitude
	_, gy := g.worldToCell(0, snap.GroundY)

	for i := range snap.Items {
		it := &snap.Items[i]
		x, y := g.worldToCell(it.VisualX(amp), it.Y)
		if it.ID == snap.Run.PrimaryID {
			dst.SetColored(x, gy, TargetChar, core.ColorBrightYellow)
		}
		dst.SetColored(x, y, it.Category.Glyph, it.Category.Color)
	}
}

// renderAgent draws the catcher as a bowl.
func (g *Game) renderAgent(dst *core.Screen, snap *Snapshot) {
	a := snap.Agent
	x0, y := g.worldToCell(a.X, a.Y)
	x1, _ := g.worldToCell(a.X+a.W, a.Y)
	width := max(3, x1-x0)

	color := core.ColorBrightCyan
	if g.missFlash > 0 {
		color = core.ColorBrightRed
	}
	dst.SetColored(x0, y, AgentLeft, color)
	dst.DrawHLineColor(x0+1, y, width-2, AgentBody, color)
	dst.SetColored(x0+width-1, y, AgentRight, color)
}

// renderLegend lists the categories and their values on the last row.
func (g *Game) renderLegend(dst *core.Screen) {
	y := dst.Height() - 1
	x := 1
	for _, c := range g.engine.Categories() {
		entry := fmt.Sprintf(" %s %d ", c.Name, c.Value)
		if x+1+len(entry) >= dst.Width() {
			break
		}
		dst.SetColored(x, y, c.Glyph, c.Color)
		dst.DrawText(x+1, y, entry)
		x += 1 + len(entry)
	}
}

// renderOverlay draws pause and game over boxes.
func (g *Game) renderOverlay(dst *core.Screen, snap *Snapshot) {
	switch {
	case snap.Run.Phase == PhaseGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  R to restart", snap.Run.Score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
