package flappy

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

const dt = 1.0 / 60.0

// memStore is an in-memory BestStore.
type memStore struct {
	best  int
	saves []int
	err   error
}

func (m *memStore) LoadBest() int { return m.best }

func (m *memStore) SaveBest(best int) error {
	m.saves = append(m.saves, best)
	if m.err != nil {
		return m.err
	}
	m.best = best
	return nil
}

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newGame(store BestStore) *Game {
	g := New(testConfig(), store)
	g.Reset(testRuntime(42))
	return g
}

func newPlayingGame(t *testing.T, store BestStore) *Game {
	t.Helper()
	g := newGame(store)
	g.Step(core.NewInputFrame(core.ActionConfirm), 0)
	if g.Mode() != ModePlaying {
		t.Fatalf("Confirm in menu should start playing, mode = %v", g.Mode())
	}
	return g
}

// crash forces a ground collision on the next step.
func crash(g *Game) StepResult {
	g.flyer.Y = g.ground.Top
	return g.Step(core.NewInputFrame(), dt)
}

// autopilot flaps whenever the flyer sinks below the next gap center.
func autopilot(g *Game) core.InputFrame {
	target := g.cfg.World.GroundTop() / 2
	for _, p := range g.pipes.Pipes() {
		if p.X+g.pipes.Width() > g.flyer.X-g.flyer.Radius {
			target = p.GapY
			break
		}
	}
	in := core.NewInputFrame()
	if g.flyer.Y > target+20 {
		in.Set(core.ActionJump)
	}
	return in
}

func hasEvent(res StepResult, kind EventKind) bool {
	for _, e := range res.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestGameStartsInMenu(t *testing.T) {
	g := newGame(nil)
	if g.Mode() != ModeMenu {
		t.Errorf("initial mode = %v, expected MENU", g.Mode())
	}
	if g.ID() != "flappy" || g.Title() == "" {
		t.Error("ID/Title not set")
	}
}

func TestConfirmStartsCleanSession(t *testing.T) {
	g := newGame(nil)
	res := g.Step(core.NewInputFrame(core.ActionConfirm), 0)

	if res.State.Mode != ModePlaying {
		t.Fatalf("mode = %v, expected PLAYING", res.State.Mode)
	}
	if res.State.Score != 0 {
		t.Errorf("score = %d, expected 0", res.State.Score)
	}
	if len(g.pipes.Pipes()) != 0 {
		t.Errorf("pipe pool should be empty, got %d", len(g.pipes.Pipes()))
	}
	if !hasEvent(res, EventStarted) {
		t.Error("expected EventStarted")
	}
}

func TestUnmatchedInputsAreIgnored(t *testing.T) {
	g := newGame(nil)

	g.Step(core.NewInputFrame(core.ActionJump, core.ActionCancel, core.ActionQuit, core.Action(42)), dt)
	if g.Mode() != ModeMenu {
		t.Fatalf("menu should only react to Confirm, mode = %v", g.Mode())
	}

	g.Step(core.NewInputFrame(core.ActionConfirm), 0)
	g.Step(core.NewInputFrame(core.ActionConfirm, core.ActionCancel), dt)
	if g.Mode() != ModePlaying {
		t.Fatalf("playing should ignore Confirm/Cancel, mode = %v", g.Mode())
	}
}

func TestJumpWhilePlaying(t *testing.T) {
	g := newPlayingGame(t, nil)
	y0 := g.flyer.Y

	g.Step(core.NewInputFrame(core.ActionJump), dt)

	if math.Abs(g.flyer.VY-(-550+1800*dt)) > 1e-9 {
		t.Errorf("VY after jump step = %f, expected %f", g.flyer.VY, -550+1800*dt)
	}
	if g.flyer.Y >= y0 {
		t.Errorf("jump should move flyer up, was %f now %f", y0, g.flyer.Y)
	}
}

func TestMultipleEventsProcessedInOrder(t *testing.T) {
	g := newGame(nil)
	g.Step(core.NewInputFrame(core.ActionConfirm, core.ActionJump), dt)

	if g.Mode() != ModePlaying {
		t.Fatalf("mode = %v, expected PLAYING", g.Mode())
	}
	if g.flyer.VY >= 0 {
		t.Errorf("jump after start in the same frame should apply, VY = %f", g.flyer.VY)
	}
}

func TestFallingFlyerHitsGround(t *testing.T) {
	g := newPlayingGame(t, nil)
	groundTop := g.ground.Top

	for i := 0; i < 600; i++ {
		res := g.Step(core.NewInputFrame(), dt)
		if res.State.GameOver() {
			if g.flyer.Y+g.flyer.Radius < groundTop {
				t.Errorf("game over above ground: y=%f", g.flyer.Y)
			}
			if !Collides(g.flyer, g.pipes, groundTop) {
				t.Error("collision detector should report the ground hit")
			}
			if !hasEvent(res, EventCollided) {
				t.Error("expected EventCollided")
			}
			return
		}
	}
	t.Fatal("flyer never hit the ground")
}

func TestCeilingCollision(t *testing.T) {
	g := newPlayingGame(t, nil)
	g.flyer.Y = 15
	g.flyer.VY = -550

	res := g.Step(core.NewInputFrame(), dt)
	if !res.State.GameOver() {
		t.Error("touching the ceiling should end the session")
	}
}

func TestPipeCollision(t *testing.T) {
	g := newPlayingGame(t, nil)

	// Bottom pipe directly under the flyer's level
	g.pipes.pipes = append(g.pipes.pipes, Pipe{
		X:         g.flyer.X - 10,
		GapY:      g.flyer.Y - 150,
		GapHeight: 200,
	})

	res := g.Step(core.NewInputFrame(), dt)
	if !res.State.GameOver() {
		t.Error("flyer overlapping a pipe should end the session")
	}
}

func TestNoCollisionInsideGap(t *testing.T) {
	cfg := testConfig()
	pm := NewPipeManager(1, cfg.World, cfg.Pipes)
	f := NewFlyer(cfg.World, cfg.Player, cfg.Physics)
	pm.pipes = append(pm.pipes, Pipe{X: f.X - 40, GapY: f.Y, GapHeight: 200})

	if Collides(f, pm, cfg.World.GroundTop()) {
		t.Error("flyer centered in a wide gap should not collide")
	}

	// Touching edges do not overlap: pipe starts exactly at the flyer's right side
	pm.pipes[0] = Pipe{X: f.X + f.Radius, GapY: 100, GapHeight: 100}
	if Collides(f, pm, cfg.World.GroundTop()) {
		t.Error("pipe starting at the flyer's right edge should not collide")
	}
}

func TestGameOverFreezesSimulation(t *testing.T) {
	g := newPlayingGame(t, nil)
	g.pipes.Spawn(220)
	crash(g)
	if g.Mode() != ModeGameOver {
		t.Fatalf("mode = %v, expected GAME_OVER", g.Mode())
	}

	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		res := g.Step(core.NewInputFrame(core.ActionJump), dt)
		if len(res.Events) != 0 {
			t.Fatalf("frozen game emitted events: %+v", res.Events)
		}
	}
	after := g.Snapshot()

	if after.Flyer != before.Flyer || after.Elapsed != before.Elapsed || after.Steps != before.Steps {
		t.Error("simulation advanced during GAME_OVER")
	}
	if after.Pipes[0] != before.Pipes[0] || after.Ground != before.Ground {
		t.Error("world scrolled during GAME_OVER")
	}
}

func TestScoreCountsEachPipeOnce(t *testing.T) {
	g := newPlayingGame(t, nil)

	// A pipe already behind the flyer with a wide gap around it
	g.pipes.pipes = append(g.pipes.pipes, Pipe{
		X:         g.flyer.X - g.pipes.Width() - 1,
		GapY:      g.flyer.Y,
		GapHeight: 300,
	})

	res := g.Step(core.NewInputFrame(), dt)
	if res.State.Score != 1 || !hasEvent(res, EventScored) {
		t.Fatalf("score = %d, expected 1 with EventScored", res.State.Score)
	}

	for i := 0; i < 20; i++ {
		res = g.Step(core.NewInputFrame(), dt)
		if res.State.Score != 1 {
			t.Fatalf("step %d: score = %d, pipe counted twice", i, res.State.Score)
		}
	}
}

func TestAutopilotScores(t *testing.T) {
	g := newPlayingGame(t, nil)

	for i := 0; i < 1200; i++ {
		res := g.Step(autopilot(g), dt)
		if res.State.GameOver() {
			t.Fatalf("autopilot crashed at step %d with score %d", i, res.State.Score)
		}
	}
	if g.score < 3 {
		t.Errorf("score after 20s = %d, expected at least 3", g.score)
	}
}

func TestDeterminism(t *testing.T) {
	type run struct {
		scores    []int
		crashStep int
		gaps      []float64
	}

	play := func(input func(g *Game, step int) core.InputFrame) run {
		g := newPlayingGame(t, nil)
		r := run{crashStep: -1}
		for step := 0; step < 3000; step++ {
			res := g.Step(input(g, step), dt)
			r.scores = append(r.scores, res.State.Score)
			if res.State.GameOver() {
				r.crashStep = step
				break
			}
		}
		for _, p := range g.pipes.Pipes() {
			r.gaps = append(r.gaps, p.GapY)
		}
		return r
	}

	inputs := map[string]func(g *Game, step int) core.InputFrame{
		"scripted": func(_ *Game, step int) core.InputFrame {
			if step%21 == 0 {
				return core.NewInputFrame(core.ActionJump)
			}
			return core.NewInputFrame()
		},
		"autopilot": func(g *Game, _ int) core.InputFrame {
			return autopilot(g)
		},
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			a, b := play(input), play(input)
			if a.crashStep != b.crashStep {
				t.Errorf("crash steps differ: %d vs %d", a.crashStep, b.crashStep)
			}
			if len(a.scores) != len(b.scores) {
				t.Fatalf("run lengths differ: %d vs %d", len(a.scores), len(b.scores))
			}
			for i := range a.scores {
				if a.scores[i] != b.scores[i] {
					t.Fatalf("score differs at step %d: %d vs %d", i, a.scores[i], b.scores[i])
				}
			}
			if len(a.gaps) != len(b.gaps) {
				t.Fatalf("pipe counts differ: %d vs %d", len(a.gaps), len(b.gaps))
			}
			for i := range a.gaps {
				if a.gaps[i] != b.gaps[i] {
					t.Errorf("gap %d differs: %f vs %f", i, a.gaps[i], b.gaps[i])
				}
			}
		})
	}
}

func TestBestScoreNotOverwrittenByLowerScore(t *testing.T) {
	store := &memStore{best: 5}
	g := newPlayingGame(t, store)

	if g.State().Best != 5 {
		t.Fatalf("best = %d, expected 5 loaded from store", g.State().Best)
	}

	g.score = 3
	res := crash(g)

	if !res.State.GameOver() {
		t.Fatal("expected GAME_OVER")
	}
	if len(store.saves) != 0 {
		t.Errorf("store written with %v, expected no write", store.saves)
	}
	if store.best != 5 || res.State.Best != 5 {
		t.Errorf("best = %d/%d, expected 5", store.best, res.State.Best)
	}
}

func TestBestScorePersistedWhenBeaten(t *testing.T) {
	store := &memStore{best: 5}
	g := newPlayingGame(t, store)

	g.score = 7
	res := crash(g)

	if !hasEvent(res, EventNewBest) {
		t.Error("expected EventNewBest")
	}
	if len(store.saves) != 1 || store.best != 7 {
		t.Errorf("saves = %v best = %d, expected one save of 7", store.saves, store.best)
	}
	if res.State.Best != 7 {
		t.Errorf("in-memory best = %d, expected 7", res.State.Best)
	}

	// Further frames in GAME_OVER must not save again
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame(), dt)
	}
	if len(store.saves) != 1 {
		t.Errorf("best saved %d times, expected once", len(store.saves))
	}
}

func TestSaveFailureIsNonFatal(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	g := newPlayingGame(t, store)

	g.score = 2
	res := crash(g)

	var failure *Event
	for i := range res.Events {
		if res.Events[i].Kind == EventSaveFailed {
			failure = &res.Events[i]
		}
	}
	if failure == nil || failure.Err == nil || !strings.Contains(failure.Err.Error(), "disk full") {
		t.Fatalf("expected EventSaveFailed carrying the error, got %+v", res.Events)
	}
	if res.State.Best != 2 {
		t.Errorf("in-memory best = %d, expected 2", res.State.Best)
	}

	// The game keeps running
	res = g.Step(core.NewInputFrame(core.ActionConfirm), dt)
	if res.State.Mode != ModePlaying {
		t.Errorf("restart after save failure: mode = %v", res.State.Mode)
	}
}

func TestRestartResetsSession(t *testing.T) {
	g := newPlayingGame(t, nil)
	for i := 0; i < 200; i++ {
		g.Step(autopilot(g), dt)
	}
	g.score = 4
	crash(g)

	res := g.Step(core.NewInputFrame(core.ActionConfirm), 0)
	if res.State.Mode != ModePlaying || res.State.Score != 0 || res.State.Elapsed != 0 {
		t.Errorf("restart state = %+v", res.State)
	}
	if len(g.pipes.Pipes()) != 0 || g.pipes.sinceSpawn != 0 {
		t.Error("restart should empty the pipe pool and spawn timer")
	}
	start := NewFlyer(g.cfg.World, g.cfg.Player, g.cfg.Physics)
	if g.flyer != start {
		t.Errorf("flyer = %+v, expected start position %+v", g.flyer, start)
	}
	if res.State.Best != 4 {
		t.Errorf("best = %d, expected 4 to survive restart", res.State.Best)
	}
}

func TestCancelReturnsToMenu(t *testing.T) {
	g := newPlayingGame(t, nil)
	crash(g)

	res := g.Step(core.NewInputFrame(core.ActionCancel), dt)
	if res.State.Mode != ModeMenu || !hasEvent(res, EventMenu) {
		t.Fatalf("Cancel in GAME_OVER should go to MENU, state = %+v", res.State)
	}

	// Cancel then Confirm in one frame goes through the menu into a new session
	crashAgain := newPlayingGame(t, nil)
	crash(crashAgain)
	res = crashAgain.Step(core.NewInputFrame(core.ActionCancel, core.ActionConfirm), 0)
	if res.State.Mode != ModePlaying {
		t.Errorf("mode = %v, expected PLAYING", res.State.Mode)
	}
}

func TestDifficultyOnlyAdvancesWhilePlaying(t *testing.T) {
	g := newGame(nil)
	for i := 0; i < 100; i++ {
		g.Step(core.NewInputFrame(), 1.0)
	}
	if g.State().Elapsed != 0 || g.Snapshot().Speed != 180 {
		t.Fatalf("difficulty advanced in MENU: elapsed=%f speed=%f", g.State().Elapsed, g.Snapshot().Speed)
	}

	g.Step(core.NewInputFrame(core.ActionConfirm), 0)
	for i := 0; i < 600; i++ {
		g.Step(autopilot(g), dt)
	}
	snap := g.Snapshot()
	if snap.Elapsed < 9.9 || snap.Speed <= 180 || snap.Gap >= 220 {
		t.Fatalf("difficulty did not advance while playing: %+v", snap)
	}

	crash(g)
	frozen := g.Snapshot()
	for i := 0; i < 100; i++ {
		g.Step(core.NewInputFrame(), 1.0)
	}
	if g.Snapshot().Speed != frozen.Speed || g.Snapshot().Elapsed != frozen.Elapsed {
		t.Error("difficulty advanced in GAME_OVER")
	}
}

func TestSessionsUseDistinctSeeds(t *testing.T) {
	g := newPlayingGame(t, nil)
	if g.Seed() != 43 {
		t.Errorf("first session seed = %d, expected runtime seed + 1", g.Seed())
	}
	first := g.pipes.Spawn(220).GapY
	crash(g)
	g.Step(core.NewInputFrame(core.ActionConfirm), 0)
	if g.Seed() != 44 {
		t.Errorf("second session seed = %d, expected 44", g.Seed())
	}
	second := g.pipes.Spawn(220).GapY

	again := newPlayingGame(t, nil)
	if again.pipes.Spawn(220).GapY != first {
		t.Error("first session of a fresh game should repeat the same gap sequence")
	}
	if first == second {
		t.Error("consecutive sessions should draw different gaps")
	}
}

func TestModeString(t *testing.T) {
	if ModeMenu.String() != "MENU" || ModePlaying.String() != "PLAYING" || ModeGameOver.String() != "GAME_OVER" {
		t.Error("unexpected mode names")
	}
	if Mode(9).String() != "UNKNOWN" {
		t.Error("unknown mode should stringify as UNKNOWN")
	}
}
