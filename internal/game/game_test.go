package game

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-outpost/internal/config"
	"github.com/vovakirdan/tui-outpost/internal/economy"
	"github.com/vovakirdan/tui-outpost/internal/world"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(config.Default(), t0)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func energy(t *testing.T, g *Game) float64 {
	t.Helper()
	r, err := g.Ledger().Peek(economy.Energy)
	if err != nil {
		t.Fatalf("Peek(energy) failed: %v", err)
	}
	return r.Cur
}

// frame runs one frame at t0 (no tick due) with the given events.
func frame(g *Game, events ...Event) FrameResult {
	var q EventQueue
	q.Push(events...)
	return g.Frame(t0, &q)
}

func embark10(seed int64) world.Location {
	return world.EmbarkAt(world.EmbarkParams{Seed: seed, Width: 10, Height: 10})
}

func assertPairing(t *testing.T, g *Game) {
	t.Helper()
	snap := g.Snapshot()
	if snap.Screen == ScreenEmbark && snap.TileMap == nil {
		t.Fatal("Embark screen without a tilemap")
	}
	if snap.Screen == ScreenEmbark && snap.Location.IsBase() {
		t.Fatal("Embark screen while at base")
	}
	if snap.Screen == ScreenIdle && snap.TileMap != nil {
		t.Fatal("Idle screen with a tilemap")
	}
}

func TestNewGameStartsAtBase(t *testing.T) {
	g := newTestGame(t)
	snap := g.Snapshot()

	if snap.Screen != ScreenIdle {
		t.Errorf("Screen = %v, expected Idle", snap.Screen)
	}
	if snap.Location != world.AtBase() {
		t.Errorf("Location = %v, expected AtBase", snap.Location)
	}
	if snap.TileMap != nil {
		t.Error("TileMap should be nil at base")
	}
	if snap.PlayerX != 50 || snap.PlayerY != 50 {
		t.Errorf("default player = (%d, %d), expected (50, 50)", snap.PlayerX, snap.PlayerY)
	}
	if e := energy(t, g); e != 100 {
		t.Errorf("energy = %v, expected 100", e)
	}
	if len(snap.Resources) != 3 {
		t.Errorf("len(Resources) = %d, expected 3", len(snap.Resources))
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Tick.Interval = 0
	if _, err := New(cfg, t0); err == nil {
		t.Error("New() with zero tick interval should fail")
	}
}

// Scenario 1: survey spends energy once, then is gated.
func TestSurveyScenario(t *testing.T) {
	g := newTestGame(t)

	frame(g, SurveySurroundings{})

	if e := energy(t, g); e != 0 {
		t.Errorf("energy after survey = %v, expected 0", e)
	}
	snap := g.Snapshot()
	if len(snap.Scouted) != 1 {
		t.Fatalf("len(Scouted) = %d, expected 1", len(snap.Scouted))
	}
	if _, ok := snap.Scouted[0].Embark(); !ok {
		t.Errorf("Scouted[0] = %v, expected an embark location", snap.Scouted[0])
	}
	if snap.Scouted[0] != world.EmbarkAt(world.DefaultEmbarkParams()) {
		t.Errorf("Scouted[0] = %v, expected default params", snap.Scouted[0])
	}
	if snap.CanSurvey {
		t.Error("CanSurvey should be false with no energy")
	}

	frame(g, SurveySurroundings{})

	if e := energy(t, g); e != 0 {
		t.Errorf("energy after gated survey = %v, expected 0", e)
	}
	if n := len(g.Snapshot().Scouted); n != 1 {
		t.Errorf("len(Scouted) after gated survey = %d, expected 1", n)
	}
}

// Scenario 2: embarking builds a bordered 10x10 room with the player centered.
func TestEmbarkScenario(t *testing.T) {
	g := newTestGame(t)

	res := frame(g, RequestEmbark{Location: embark10(0)})

	if res.Transition == nil {
		t.Fatal("expected a committed transition")
	}
	if res.Transition.From != ScreenIdle || res.Transition.To != ScreenEmbark {
		t.Errorf("Transition = %+v, expected Idle -> Embark", *res.Transition)
	}

	snap := g.Snapshot()
	if snap.Screen != ScreenEmbark {
		t.Fatalf("Screen = %v, expected Embark", snap.Screen)
	}
	if snap.Location != embark10(0) {
		t.Errorf("Location = %v, expected %v", snap.Location, embark10(0))
	}
	if snap.TileMap == nil {
		t.Fatal("TileMap should be populated")
	}
	if snap.TileMap.Cols() != 10 || snap.TileMap.Rows() != 10 {
		t.Errorf("TileMap = %dx%d, expected 10x10", snap.TileMap.Cols(), snap.TileMap.Rows())
	}
	for i := 0; i < 10; i++ {
		for _, p := range [][2]int{{i, 0}, {i, 9}, {0, i}, {9, i}} {
			if tile, _ := snap.TileMap.At(p[0], p[1]); tile != world.TileWall {
				t.Errorf("border tile %v = %v, expected Wall", p, tile)
			}
		}
	}
	if snap.PlayerX != 5 || snap.PlayerY != 5 {
		t.Errorf("player = (%d, %d), expected (5, 5)", snap.PlayerX, snap.PlayerY)
	}
	assertPairing(t, g)
}

// Scenario 3: walking left stops at the wall.
func TestWalkLeftScenario(t *testing.T) {
	g := newTestGame(t)
	frame(g, RequestEmbark{Location: embark10(0)})

	expected := []int{4, 3, 2, 1, 1, 1, 1, 1, 1}
	for i, want := range expected {
		res := frame(g, KeyAction{Direction: DirLeft})
		snap := g.Snapshot()
		if snap.PlayerX != want {
			t.Errorf("step %d: x = %d, expected %d", i+1, snap.PlayerX, want)
		}
		if snap.PlayerY != 5 {
			t.Errorf("step %d: y = %d, expected 5", i+1, snap.PlayerY)
		}
		blocked := want == 1 && i >= 4
		if blocked && res.Moves.Blocked != 1 {
			t.Errorf("step %d: Blocked = %d, expected 1", i+1, res.Moves.Blocked)
		}
		if !blocked && res.Moves.Moved != 1 {
			t.Errorf("step %d: Moved = %d, expected 1", i+1, res.Moves.Moved)
		}
		if g.session.PendingDX != 0 || g.session.PendingDY != 0 {
			t.Errorf("step %d: pending deltas not cleared", i+1)
		}
	}
}

// Scenario 4: the tick gate runs at most one step per frame.
func TestTickScenario(t *testing.T) {
	g := newTestGame(t)
	var q EventQueue

	// Drain some energy so regeneration is observable
	q.Push(SurveySurroundings{})
	g.Frame(t0, &q)
	if e := energy(t, g); e != 0 {
		t.Fatalf("energy = %v, expected 0", e)
	}

	res := g.Frame(t0.Add(999*time.Millisecond), &q)
	if res.Ticked {
		t.Error("tick should not run before the interval elapsed")
	}
	if e := energy(t, g); e != 0 {
		t.Errorf("energy = %v, expected 0 before tick", e)
	}

	res = g.Frame(t0.Add(time.Second), &q)
	if !res.Ticked {
		t.Error("tick should run once the interval elapsed")
	}
	if e := energy(t, g); e != 1 {
		t.Errorf("energy = %v, expected 1 after one tick", e)
	}

	// A huge gap still yields exactly one step
	late := t0.Add(time.Hour)
	res = g.Frame(late, &q)
	if !res.Ticked {
		t.Error("tick should run after a long gap")
	}
	if e := energy(t, g); e != 2 {
		t.Errorf("energy = %v, expected 2 (no catch-up)", e)
	}

	// The next tick is measured from the late frame, not from the old schedule
	res = g.Frame(late.Add(500*time.Millisecond), &q)
	if res.Ticked {
		t.Error("tick should be measured from the last tick time")
	}
}

func TestTickScheduler(t *testing.T) {
	s := NewTickScheduler(time.Second, t0)

	tests := []struct {
		at       time.Duration
		expected bool
	}{
		{0, false},
		{500 * time.Millisecond, false},
		{time.Second, true},
		{1500 * time.Millisecond, false},
		{2 * time.Second, true},
		{10 * time.Second, true},
		{10*time.Second + 999*time.Millisecond, false},
	}

	for _, tc := range tests {
		if got := s.Check(t0.Add(tc.at)); got != tc.expected {
			t.Errorf("Check(+%v) = %v, expected %v", tc.at, got, tc.expected)
		}
	}
	if s.Last() != t0.Add(10*time.Second) {
		t.Errorf("Last() = %v, expected +10s", s.Last())
	}
}

func TestNoPassiveEconomyWhileEmbarked(t *testing.T) {
	g := newTestGame(t)
	var q EventQueue

	q.Push(SurveySurroundings{}, BuyCircle{Amount: 3})
	g.Frame(t0, &q)
	q.Push(RequestEmbark{Location: embark10(0)})
	g.Frame(t0, &q)

	res := g.Frame(t0.Add(2*time.Second), &q)
	if !res.Ticked {
		t.Fatal("tick should run")
	}
	if e := energy(t, g); e != 0 {
		t.Errorf("energy while embarked = %v, expected 0", e)
	}
	if sq, _ := g.Snapshot().Resource(economy.Squares); sq.Cur != 0 {
		t.Errorf("squares while embarked = %v, expected 0", sq.Cur)
	}
}

func TestCirclesProduceSquaresAtBase(t *testing.T) {
	g := newTestGame(t)
	var q EventQueue

	q.Push(BuyCircle{Amount: 2}, BuyCircle{Amount: 1.5})
	g.Frame(t0, &q)

	circles, _ := g.Snapshot().Resource(economy.Circles)
	if circles.Cur != 3.5 {
		t.Fatalf("circles = %v, expected 3.5", circles.Cur)
	}

	g.Frame(t0.Add(time.Second), &q)
	g.Frame(t0.Add(2*time.Second), &q)

	squares, _ := g.Snapshot().Resource(economy.Squares)
	if squares.Cur != 7 {
		t.Errorf("squares = %v, expected 7 after two ticks", squares.Cur)
	}

	// Invalid purchases are dropped
	q.Push(BuyCircle{Amount: -4}, BuyCircle{Amount: 0})
	g.Frame(t0.Add(2*time.Second), &q)
	circles, _ = g.Snapshot().Resource(economy.Circles)
	if circles.Cur != 3.5 {
		t.Errorf("circles = %v, expected unchanged 3.5", circles.Cur)
	}
}

func TestEnergyRegenClampsAtMax(t *testing.T) {
	g := newTestGame(t)
	var q EventQueue

	for i := 1; i <= 5; i++ {
		g.Frame(t0.Add(time.Duration(i)*time.Second), &q)
	}
	if e := energy(t, g); e != 100 {
		t.Errorf("energy = %v, expected to stay clamped at 100", e)
	}
}

func TestReturnToBase(t *testing.T) {
	g := newTestGame(t)
	frame(g, RequestEmbark{Location: embark10(0)})
	frame(g, KeyAction{Direction: DirUp})

	res := frame(g, RequestReturnToBase{})
	if res.Transition == nil || !res.Transition.Leaving() || res.Transition.To != ScreenIdle {
		t.Fatalf("Transition = %+v, expected Embark -> Idle", res.Transition)
	}

	snap := g.Snapshot()
	if snap.Screen != ScreenIdle {
		t.Errorf("Screen = %v, expected Idle", snap.Screen)
	}
	if snap.Location != world.AtBase() {
		t.Errorf("Location = %v, expected AtBase", snap.Location)
	}
	if snap.TileMap != nil {
		t.Error("TileMap should be discarded at base")
	}
	if snap.PlayerX != 50 || snap.PlayerY != 50 {
		t.Errorf("player = (%d, %d), expected default (50, 50)", snap.PlayerX, snap.PlayerY)
	}
	assertPairing(t, g)
}

func TestReturnToBaseWhileIdleIsNoop(t *testing.T) {
	g := newTestGame(t)

	res := frame(g, RequestReturnToBase{})
	if res.Transition == nil || res.Transition.From != ScreenIdle || res.Transition.To != ScreenIdle {
		t.Errorf("Transition = %+v, expected Idle -> Idle", res.Transition)
	}
	if g.Screen() != ScreenIdle {
		t.Errorf("Screen = %v, expected Idle", g.Screen())
	}
	assertPairing(t, g)
}

func TestReembarkRegeneratesSession(t *testing.T) {
	g := newTestGame(t)
	loc := embark10(0)
	frame(g, RequestEmbark{Location: loc})
	frame(g, KeyAction{Direction: DirRight})
	frame(g, KeyAction{Direction: DirDown})

	if g.session.PlayerX != 6 || g.session.PlayerY != 6 {
		t.Fatalf("player = (%d, %d), expected (6, 6)", g.session.PlayerX, g.session.PlayerY)
	}
	oldMap := g.session.TileMap

	res := frame(g, RequestEmbark{Location: loc})
	if res.Transition == nil || res.Transition.From != ScreenEmbark || res.Transition.To != ScreenEmbark {
		t.Fatalf("Transition = %+v, expected Embark -> Embark", res.Transition)
	}
	if g.session.PlayerX != 5 || g.session.PlayerY != 5 {
		t.Errorf("player = (%d, %d), expected reset to (5, 5)", g.session.PlayerX, g.session.PlayerY)
	}
	if g.session.TileMap == oldMap {
		t.Error("re-embark should install a freshly generated tilemap")
	}
	if !g.session.TileMap.Equal(*oldMap) {
		t.Error("regenerated tilemap should match for identical params")
	}
}

func TestLastStagedTransitionWins(t *testing.T) {
	g := newTestGame(t)

	res := frame(g,
		RequestEmbark{Location: embark10(1)},
		RequestReturnToBase{},
		RequestEmbark{Location: embark10(2)},
	)

	if res.Transition == nil {
		t.Fatal("expected a committed transition")
	}
	if g.Location() != embark10(2) {
		t.Errorf("Location = %v, expected the last request %v", g.Location(), embark10(2))
	}

	frame(g, RequestEmbark{Location: embark10(3)}, RequestReturnToBase{})
	if g.Screen() != ScreenIdle {
		t.Errorf("Screen = %v, expected Idle from the last request", g.Screen())
	}
	if _, staged := g.Staged(); staged {
		t.Error("staged transition should be cleared after reconciliation")
	}
	assertPairing(t, g)
}

func TestStagingDoesNotCommitBeforeReconcile(t *testing.T) {
	g := newTestGame(t)
	var q EventQueue
	q.Push(RequestEmbark{Location: embark10(0)})

	g.ProcessEvents(&q)

	if g.Screen() != ScreenIdle {
		t.Error("processing events must not change the screen")
	}
	if to, ok := g.Staged(); !ok || to != ScreenEmbark {
		t.Errorf("Staged() = (%v, %v), expected (Embark, true)", to, ok)
	}
	if !g.Snapshot().Staged {
		t.Error("Snapshot().Staged should be true")
	}

	if tr := g.Reconcile(); tr == nil || tr.To != ScreenEmbark {
		t.Errorf("Reconcile() = %+v, expected Embark", tr)
	}
	if tr := g.Reconcile(); tr != nil {
		t.Errorf("second Reconcile() = %+v, expected nil", tr)
	}
}

func TestInvalidEmbarkRequestsDropped(t *testing.T) {
	var buf bytes.Buffer
	g, err := New(config.Default(), t0, WithLogger(log.New(&buf)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	res := frame(g,
		RequestEmbark{Location: world.AtBase()},
		RequestEmbark{Location: world.EmbarkAt(world.EmbarkParams{Width: 1, Height: 10})},
	)

	if res.Transition != nil {
		t.Errorf("Transition = %+v, expected none", *res.Transition)
	}
	if g.Screen() != ScreenIdle {
		t.Errorf("Screen = %v, expected Idle", g.Screen())
	}
	out := buf.String()
	if !strings.Contains(out, "non-embark location") || !strings.Contains(out, "degenerate dimensions") {
		t.Errorf("expected both rejections to be logged, got:\n%s", out)
	}
}

func TestOutOfRangeEmbarkDimensionsDropped(t *testing.T) {
	tests := []struct {
		name   string
		params world.EmbarkParams
	}{
		{"infinite", world.EmbarkParams{Width: math.Inf(1), Height: math.Inf(1)}},
		{"infinite height", world.EmbarkParams{Width: 10, Height: math.Inf(1)}},
		{"NaN", world.EmbarkParams{Width: math.NaN(), Height: 10}},
		{"too many tiles", world.EmbarkParams{Width: 1e10, Height: 1e10}},
		{"just over the limit", world.EmbarkParams{Width: 4097, Height: 4096}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t)

			res := frame(g, RequestEmbark{Location: world.EmbarkAt(tc.params)})
			if res.Transition != nil {
				t.Errorf("Transition = %+v, expected none", *res.Transition)
			}
			if g.Screen() != ScreenIdle {
				t.Fatalf("Screen = %v, expected Idle", g.Screen())
			}

			// Movement afterwards is a harmless no-op at base
			frame(g, KeyAction{Direction: DirLeft})
			if g.Screen() != ScreenIdle {
				t.Errorf("Screen = %v after a step, expected Idle", g.Screen())
			}
		})
	}
}

func TestPlayerOffMapViolatesInvariants(t *testing.T) {
	g := newTestGame(t)
	frame(g, RequestEmbark{Location: embark10(1)})
	if g.Screen() != ScreenEmbark {
		t.Fatalf("Screen = %v, expected Embark", g.Screen())
	}
	g.checkInvariants()
	g.session.PlayerX = -1

	defer func() {
		if recover() == nil {
			t.Error("an embark session with the player off the map should panic")
		}
	}()
	g.checkInvariants()
}

func TestCommitWithBaseLocationPanics(t *testing.T) {
	g := newTestGame(t)
	// Bypass event validation to reach the commit point directly
	g.stage(transition{to: ScreenEmbark, location: world.AtBase()})

	defer func() {
		if recover() == nil {
			t.Error("committing an embark to AtBase should panic")
		}
	}()
	g.Reconcile()
}

func TestEventsProcessedInArrivalOrder(t *testing.T) {
	g := newTestGame(t)

	// The second survey sees the energy already spent by the first
	frame(g,
		ResizeViewport{Width: 800, Height: 600},
		SurveySurroundings{},
		SurveySurroundings{},
		ResizeViewport{Width: 1024, Height: 768},
	)

	snap := g.Snapshot()
	if snap.ViewportW != 1024 || snap.ViewportH != 768 {
		t.Errorf("viewport = %vx%v, expected the later 1024x768", snap.ViewportW, snap.ViewportH)
	}
	if len(snap.Scouted) != 1 {
		t.Errorf("len(Scouted) = %d, expected 1", len(snap.Scouted))
	}

	// A step queued with the embark request belongs to the discarded session
	frame(g, RequestEmbark{Location: embark10(0)}, KeyAction{Direction: DirUp})
	if g.session.PlayerY != 5 {
		t.Errorf("player y = %d, expected 5", g.session.PlayerY)
	}

	frame(g, KeyAction{Direction: DirUp})
	if g.session.PlayerY != 4 {
		t.Errorf("player y = %d, expected 4", g.session.PlayerY)
	}
}

func TestEventQueueFIFO(t *testing.T) {
	var q EventQueue
	q.Push(Quit{}, SurveySurroundings{})
	q.Push(BuyCircle{Amount: 1})

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", q.Len())
	}

	expected := []string{"quit", "survey_surroundings", "buy_circle"}
	for _, kind := range expected {
		ev, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() returned nothing, expected %s", kind)
		}
		if ev.Kind() != kind {
			t.Errorf("Pop() = %s, expected %s", ev.Kind(), kind)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() on an empty queue should report false")
	}
}

type mysteryEvent struct{}

func (mysteryEvent) Kind() string { return "mystery" }

func TestUnknownEventsLoggedAndDropped(t *testing.T) {
	var buf bytes.Buffer
	g, err := New(config.Default(), t0, WithLogger(log.New(&buf)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// A typed nil pointer would panic if its value-receiver Kind were called
	var nilMystery *mysteryEvent
	res := frame(g, mysteryEvent{}, nil, nilMystery, KeyAction{Direction: Direction(99)}, SurveySurroundings{})

	if res.Events != 5 {
		t.Errorf("Events = %d, expected 5", res.Events)
	}
	if n := len(g.Snapshot().Scouted); n != 1 {
		t.Errorf("events after unknown ones should still apply, len(Scouted) = %d", n)
	}

	out := buf.String()
	for _, want := range []string{"dropping unknown event", "game.mysteryEvent", "*game.mysteryEvent", "dropping nil event", "dropping unhandled direction"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestQuitAndResize(t *testing.T) {
	g := newTestGame(t)

	res := frame(g, ResizeViewport{Width: 0, Height: 10}, Quit{})
	if !res.ExitRequested || !g.ExitRequested() {
		t.Error("Quit should set ExitRequested")
	}
	snap := g.Snapshot()
	if snap.ViewportW != 1920 || snap.ViewportH != 1080 {
		t.Errorf("invalid resize should be dropped, viewport = %vx%v", snap.ViewportW, snap.ViewportH)
	}
}

func TestKeyActionAtBaseIsConsumed(t *testing.T) {
	g := newTestGame(t)

	res := frame(g, KeyAction{Direction: DirLeft}, KeyAction{Direction: DirDown})
	if res.Moves != (MoveResult{}) {
		t.Errorf("Moves = %+v, expected none at base", res.Moves)
	}
	if g.session.PendingDX != 0 || g.session.PendingDY != 0 {
		t.Error("pending steps should be cleared at base")
	}

	// Stale steps must not leak into the next embark
	frame(g, RequestEmbark{Location: embark10(0)})
	if g.session.PlayerX != 5 || g.session.PlayerY != 5 {
		t.Errorf("player = (%d, %d), expected (5, 5)", g.session.PlayerX, g.session.PlayerY)
	}
}

func TestDiagonalMovement(t *testing.T) {
	tests := []struct {
		name         string
		startX       int
		startY       int
		dirs         []Direction
		wantX, wantY int
		wantMoved    int
		wantBlocked  int
	}{
		{"open diagonal", 5, 5, []Direction{DirLeft, DirUp}, 4, 4, 2, 0},
		{"x blocked", 1, 5, []Direction{DirLeft, DirUp}, 1, 4, 1, 1},
		{"y blocked", 5, 8, []Direction{DirRight, DirDown}, 6, 8, 1, 1},
		{"corner", 1, 1, []Direction{DirLeft, DirUp}, 1, 1, 0, 2},
		{"later key overrides same axis", 5, 5, []Direction{DirLeft, DirRight}, 6, 5, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t)
			frame(g, RequestEmbark{Location: embark10(0)})
			g.session.PlayerX, g.session.PlayerY = tc.startX, tc.startY

			events := make([]Event, 0, len(tc.dirs))
			for _, d := range tc.dirs {
				events = append(events, KeyAction{Direction: d})
			}
			res := frame(g, events...)

			if g.session.PlayerX != tc.wantX || g.session.PlayerY != tc.wantY {
				t.Errorf("player = (%d, %d), expected (%d, %d)",
					g.session.PlayerX, g.session.PlayerY, tc.wantX, tc.wantY)
			}
			if res.Moves.Moved != tc.wantMoved || res.Moves.Blocked != tc.wantBlocked {
				t.Errorf("Moves = %+v, expected moved=%d blocked=%d", res.Moves, tc.wantMoved, tc.wantBlocked)
			}
		})
	}
}

func TestWallRejectionClearsPending(t *testing.T) {
	g := newTestGame(t)
	frame(g, RequestEmbark{Location: embark10(0)})
	g.session.PlayerX, g.session.PlayerY = 1, 1

	frame(g, KeyAction{Direction: DirUp})
	if g.session.PlayerX != 1 || g.session.PlayerY != 1 {
		t.Errorf("player = (%d, %d), expected unchanged (1, 1)", g.session.PlayerX, g.session.PlayerY)
	}
	if g.session.PendingDY != 0 {
		t.Error("rejected move should clear the pending step")
	}

	// No retry on the following frame
	res := frame(g)
	if res.Moves != (MoveResult{}) {
		t.Errorf("Moves = %+v, expected no retry", res.Moves)
	}
}

func TestMovementOffMapPanics(t *testing.T) {
	g := newTestGame(t)
	frame(g, RequestEmbark{Location: embark10(0)})
	g.session.PlayerX = 42

	defer func() {
		if recover() == nil {
			t.Error("moving from outside the map should panic")
		}
	}()
	frame(g, KeyAction{Direction: DirLeft})
}

func TestPairingInvariantAcrossRandomFrames(t *testing.T) {
	g := newTestGame(t)
	var q EventQueue

	script := []Event{
		SurveySurroundings{},
		RequestEmbark{Location: embark10(0)},
		KeyAction{Direction: DirLeft},
		RequestReturnToBase{},
		RequestEmbark{Location: world.AtBase()},
		RequestEmbark{Location: world.EmbarkAt(world.DefaultEmbarkParams())},
		KeyAction{Direction: DirDown},
		KeyAction{Direction: DirRight},
		RequestEmbark{Location: embark10(4)},
		RequestReturnToBase{},
		Quit{},
	}

	now := t0
	for i, ev := range script {
		q.Push(ev)
		now = now.Add(400 * time.Millisecond)
		g.Frame(now, &q)
		snap := g.Snapshot()
		if snap.Screen == ScreenEmbark && (snap.TileMap == nil || snap.Location.IsBase()) {
			t.Fatalf("frame %d: pairing invariant broken: %+v", i, snap)
		}
		if snap.TileMap != nil && !snap.TileMap.InBounds(snap.PlayerX, snap.PlayerY) {
			t.Fatalf("frame %d: player off map", i)
		}
		if snap.Frame != uint64(i+1) {
			t.Errorf("frame %d: Frame = %d", i, snap.Frame)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newTestGame(t)
	frame(g, SurveySurroundings{}, RequestEmbark{Location: embark10(0)})

	snap := g.Snapshot()
	snap.TileMap.Tiles[0] = world.TileEmpty
	snap.Scouted[0] = world.AtBase()
	snap.Resources[0].Cur = 999

	again := g.Snapshot()
	if again.TileMap.Tiles[0] != world.TileWall {
		t.Error("mutating a snapshot tilemap changed the game")
	}
	if again.Scouted[0] == world.AtBase() {
		t.Error("mutating snapshot scouted locations changed the game")
	}
	if again.Resources[0].Cur == 999 {
		t.Error("mutating snapshot resources changed the game")
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		d      Direction
		dx, dy Step
		ok     bool
	}{
		{DirUp, 0, -1, true},
		{DirDown, 0, 1, true},
		{DirLeft, -1, 0, true},
		{DirRight, 1, 0, true},
		{DirNone, 0, 0, false},
		{Direction(42), 0, 0, false},
	}

	for _, tc := range tests {
		dx, dy, ok := tc.d.Delta()
		if dx != tc.dx || dy != tc.dy || ok != tc.ok {
			t.Errorf("%v.Delta() = (%d, %d, %v), expected (%d, %d, %v)", tc.d, dx, dy, ok, tc.dx, tc.dy, tc.ok)
		}
	}
}
