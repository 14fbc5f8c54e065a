package game

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vovakirdan/tui-outpost/internal/world"
)

// Expedition summarizes one embark, from commit to departure.
type Expedition struct {
	ID        string
	Params    world.EmbarkParams
	Steps     int // Moves that succeeded
	Bumps     int // Moves rejected by walls
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the expedition lasted.
func (e Expedition) Duration() time.Duration {
	return e.EndedAt.Sub(e.StartedAt)
}

// ExpeditionSaver persists finished expeditions.
type ExpeditionSaver interface {
	SaveExpedition(e Expedition) error
}

// ExpeditionTracker folds frame results into expedition records.
type ExpeditionTracker struct {
	current *Expedition
	newID   func(time.Time) string
}

// NewExpeditionTracker creates a tracker that names expeditions with ULIDs.
func NewExpeditionTracker() *ExpeditionTracker {
	return &ExpeditionTracker{newID: newULID}
}

func newULID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// Observe records one frame. It returns the expedition that the frame
// ended, if any.
func (t *ExpeditionTracker) Observe(now time.Time, r FrameResult) *Expedition {
	var finished *Expedition

	if tr := r.Transition; tr != nil {
		if tr.Leaving() {
			finished = t.Finish(now)
		}
		if tr.Entering() {
			params, _ := tr.Location.Embark()
			t.current = &Expedition{
				ID:        t.newID(now),
				Params:    params,
				StartedAt: now,
			}
		}
	}

	if t.current != nil {
		t.current.Steps += r.Moves.Moved
		t.current.Bumps += r.Moves.Blocked
	}

	return finished
}

// Finish ends the running expedition, if any, and returns it.
func (t *ExpeditionTracker) Finish(now time.Time) *Expedition {
	if t.current == nil {
		return nil
	}
	e := *t.current
	e.EndedAt = now
	t.current = nil
	return &e
}

// Current returns a copy of the running expedition.
func (t *ExpeditionTracker) Current() (Expedition, bool) {
	if t.current == nil {
		return Expedition{}, false
	}
	return *t.current, true
}
