package catch

import (
	"strings"
	"testing"

	"github.com/vovakirdan/foodcatch/internal/config"
	"github.com/vovakirdan/foodcatch/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

func TestGameRender(t *testing.T) {
	g := NewGame(config.DefaultCatchConfig(), WithPlayer("ann"))
	g.Reset(testRuntime())
	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "Score:") || !strings.Contains(hud, "ann") {
		t.Errorf("HUD = %q, expected score and player name", hud)
	}
	if legend := screen.Row(23); !strings.Contains(legend, "Chicken 12") {
		t.Errorf("legend = %q, expected category values", legend)
	}
	if !strings.ContainsRune(screen.String(), GroundChar) {
		t.Error("ground line not rendered")
	}
	if !strings.ContainsRune(screen.String(), AgentRight) {
		t.Error("agent not rendered")
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := NewGame(config.DefaultCatchConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60})

	screen := core.NewScreen(20, 8)
	g.Render(screen)

	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected too-small message, got:\n%s", screen.String())
	}
}

func TestGamePause(t *testing.T) {
	g := NewGame(config.DefaultCatchConfig())
	g.Reset(testRuntime())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	result := g.Step(pause)
	if !result.State.Paused {
		t.Fatal("expected paused after pause action")
	}

	elapsed := g.Engine().Run().Elapsed
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if got := g.Engine().Run().Elapsed; got != elapsed {
		t.Errorf("Elapsed advanced while paused: %v -> %v", elapsed, got)
	}

	result = g.Step(pause)
	if result.State.Paused {
		t.Error("expected resumed after second pause action")
	}
}

func TestGameKeySteering(t *testing.T) {
	g := NewGame(config.DefaultCatchConfig(), WithoutSpawner())
	g.Reset(testRuntime())
	start := g.Engine().Snapshot().Agent.X

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	g.Step(left)
	// The key keeps steering for a short hold without repeats.
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}

	moved := g.Engine().Snapshot().Agent.X
	if want := start - 6*g.cfg.Agent.Speed/60; !approx(moved, want, 1e-6) {
		t.Errorf("agent X = %v, expected %v", moved, want)
	}

	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}
	settled := g.Engine().Snapshot().Agent.X
	g.Step(core.NewInputFrame())
	if got := g.Engine().Snapshot().Agent.X; got != settled {
		t.Errorf("agent kept moving after key hold expired: %v -> %v", settled, got)
	}
}

func TestGamePointerSteering(t *testing.T) {
	g := NewGame(config.DefaultCatchConfig(), WithoutSpawner())
	g.Reset(testRuntime())

	if got := g.cellToWorldX(0); !approx(got, 6, eps) {
		t.Errorf("cellToWorldX(0) = %v, expected 6", got)
	}

	in := core.NewInputFrame()
	in.SetPointer(0)
	for i := 0; i < 120; i++ {
		g.Step(in)
	}
	if got := g.Engine().Snapshot().Agent.X; !approx(got, 0, 1e-6) {
		t.Errorf("agent X = %v, expected 0 after steering to the left edge", got)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	rep := &fakeReporter{}
	g := NewGame(config.DefaultCatchConfig(), WithoutSpawner(), WithReporter(rep), WithPlayer("bob"))
	g.Reset(testRuntime())

	for i := 0; i < 3; i++ {
		g.Engine().Place(fallingItem(60+float64(i)*10, 470, 200, 200, 80))
	}
	result := g.Step(core.NewInputFrame())
	if !result.GameOverNow || !result.State.GameOver {
		t.Fatalf("result = %+v, expected game over", result)
	}
	if result.Missed != 3 {
		t.Errorf("Missed = %d, expected 3", result.Missed)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected GAME OVER overlay")
	}

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if len(rep.calls) != 1 {
		t.Errorf("reporter calls = %d, expected 1", len(rep.calls))
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	result = g.Step(restart)
	if result.State.GameOver || result.State.Misses != 0 {
		t.Errorf("state after restart = %+v, expected fresh run", result.State)
	}
}

func TestGameBestTracksScore(t *testing.T) {
	g := NewGame(config.DefaultCatchConfig(), WithoutSpawner())
	g.Reset(testRuntime())
	g.SetBest(5)

	e := g.Engine()
	it := e.spawner.Drop(e.agent.Center(), e.spawner.SpawnY(), chicken(),
		config.DropConfig{Variance: 45}, 5, 0, &e.agent, e.CatchY())
	e.Place(it)
	for i := 0; i < 600 && e.Run().Score == 0; i++ {
		g.Step(core.NewInputFrame())
	}

	if g.best != 12 {
		t.Errorf("best = %d, expected 12", g.best)
	}
}

func TestAutopilotFollowsPrimary(t *testing.T) {
	e := quietEngine()
	pilot := NewAutopilot(e.Config())

	if in := pilot.Steer(e.Snapshot()); in.HasTarget {
		t.Errorf("Steer() on empty field = %+v, expected no target", in)
	}

	e.Place(fallingItem(300, 200, 100, 100, 40))
	e.Place(fallingItem(700, 150, 100, 100, 40))
	e.Step(tick, Input{})

	snap := e.Snapshot()
	p, ok := snap.Primary()
	if !ok {
		t.Fatal("expected a primary target")
	}
	in := pilot.Steer(snap)
	if !in.HasTarget || in.TargetX != p.X {
		t.Errorf("Steer() = %+v, expected target x %v", in, p.X)
	}
}
