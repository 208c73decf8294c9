package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newTestPipes(seed int64) *PipeManager {
	cfg := testConfig()
	return NewPipeManager(seed, cfg.World, cfg.Pipes)
}

func TestPipeSpawnPosition(t *testing.T) {
	pm := newTestPipes(1)
	p := pm.Spawn(220)

	if p.X != 432 {
		t.Errorf("spawned at X=%f, expected world width 432", p.X)
	}
	if p.Passed {
		t.Error("new pipe should not be passed")
	}
	if p.GapHeight != 220 {
		t.Errorf("GapHeight = %f, expected 220", p.GapHeight)
	}
	if len(pm.Pipes()) != 1 {
		t.Errorf("expected 1 pipe, got %d", len(pm.Pipes()))
	}
}

func TestPipeSpansAlwaysPositive(t *testing.T) {
	cfg := testConfig()
	groundTop := cfg.World.GroundTop()

	gaps := []float64{0, 140, 220, 400, groundTop - 2*cfg.Pipes.MinSpan, 10000}
	for seed := int64(0); seed < 20; seed++ {
		pm := newTestPipes(seed)
		for _, gap := range gaps {
			for i := 0; i < 50; i++ {
				p := pm.Spawn(gap)
				top := p.GapTop()
				bottom := groundTop - p.GapBottom()
				if top <= 0 || bottom <= 0 {
					t.Fatalf("seed %d gap %f: non-positive span top=%f bottom=%f", seed, gap, top, bottom)
				}
				if top < cfg.Pipes.MinSpan-1e-9 || bottom < cfg.Pipes.MinSpan-1e-9 {
					t.Fatalf("seed %d gap %f: span below min_span top=%f bottom=%f", seed, gap, top, bottom)
				}
			}
		}
	}
}

func TestPipeGapCenterBand(t *testing.T) {
	cfg := testConfig()
	groundTop := cfg.World.GroundTop()
	pm := newTestPipes(99)

	for i := 0; i < 500; i++ {
		p := pm.Spawn(220)
		if p.GapY < groundTop*0.15 || p.GapY > groundTop*0.85 {
			t.Fatalf("gap center %f outside band [%f, %f]", p.GapY, groundTop*0.15, groundTop*0.85)
		}
	}
}

func TestPipeSpawnTimerResetsToZero(t *testing.T) {
	pm := newTestPipes(1)

	if pm.Tick(1.0, 220) {
		t.Fatal("should not spawn before the interval")
	}
	if !pm.Tick(1.0, 220) {
		t.Fatal("should spawn once the interval has elapsed")
	}
	// Overshoot of 0.4s is dropped, so 1.5s more is not enough
	if pm.Tick(1.5, 220) {
		t.Fatal("timer should restart from zero, not carry the overshoot")
	}
	if len(pm.Pipes()) != 1 {
		t.Errorf("expected 1 pipe, got %d", len(pm.Pipes()))
	}
}

func TestPipeSpawnCadence(t *testing.T) {
	pm := newTestPipes(1)
	spawned := 0
	for i := 0; i < 600; i++ { // 10 seconds at 60 FPS
		if pm.Tick(1.0/60.0, 220) {
			spawned++
		}
	}
	if spawned != 6 {
		t.Errorf("spawned %d pipes in 10s, expected 6", spawned)
	}
}

func TestPipeRemovedWhenFullyOffscreen(t *testing.T) {
	world := config.WorldConfig{Width: 450, Height: 768, GroundHeight: 100}
	pipes := testConfig().Pipes
	pipes.Width = 90
	pm := NewPipeManager(1, world, pipes)
	pm.Spawn(220)

	// (450 + 90) / 180 = 3 seconds = 180 steps
	for step := 1; step <= 180; step++ {
		removed := pm.Update(1.0/60.0, 180)
		if step < 180 {
			if removed != 0 || len(pm.Pipes()) != 1 {
				t.Fatalf("step %d: pipe removed early", step)
			}
			continue
		}
		if removed != 1 || len(pm.Pipes()) != 0 {
			t.Fatalf("step %d: pipe should be removed at x = -width", step)
		}
	}
}

func TestPipeRemovalPreservesOrder(t *testing.T) {
	pm := newTestPipes(5)
	pm.pipes = append(pm.pipes,
		Pipe{X: -200, GapY: 300, GapHeight: 200},
		Pipe{X: 10, GapY: 310, GapHeight: 200},
		Pipe{X: 200, GapY: 320, GapHeight: 200},
		Pipe{X: 400, GapY: 330, GapHeight: 200},
	)

	pm.Update(0, 180)

	got := pm.Pipes()
	if len(got) != 3 {
		t.Fatalf("expected 3 pipes after removal, got %d", len(got))
	}
	for i, want := range []float64{310, 320, 330} {
		if got[i].GapY != want {
			t.Errorf("pipe %d GapY = %f, expected %f", i, got[i].GapY, want)
		}
	}
}

func TestMarkPassedCountsOnce(t *testing.T) {
	pm := newTestPipes(1)
	pm.pipes = append(pm.pipes, Pipe{X: 100, GapY: 300, GapHeight: 200})

	if n := pm.MarkPassed(150); n != 0 {
		t.Fatalf("flyer inside pipe span should not score, got %d", n)
	}
	if n := pm.MarkPassed(181); n != 1 {
		t.Fatalf("flyer past right edge should score 1, got %d", n)
	}
	for i := 0; i < 100; i++ {
		if n := pm.MarkPassed(181 + float64(i)); n != 0 {
			t.Fatalf("pipe counted again on check %d", i)
		}
	}
	if !pm.Pipes()[0].Passed {
		t.Error("pipe should be flagged as passed")
	}
}

func TestPipeRects(t *testing.T) {
	p := Pipe{X: 50, GapY: 300, GapHeight: 200}
	top := p.TopRect(80)
	bottom := p.BottomRect(80, 668)

	if top.Y != 0 || top.H != 200 || top.W != 80 {
		t.Errorf("TopRect = %+v", top)
	}
	if bottom.Y != 400 || bottom.Bottom() != 668 {
		t.Errorf("BottomRect = %+v", bottom)
	}
}
