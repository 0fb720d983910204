package scrollspy

import (
	"sync"
	"time"
)

// DefaultInterval spaces out recomputes triggered by Observe. It
// approximates one frame at 60Hz, the cadence the client runtime gets
// from requestAnimationFrame.
const DefaultInterval = 16 * time.Millisecond

// Tracker owns the active-section state for one mounted page view.
// Scroll observations are coalesced: at most one recompute is pending at
// a time, and while one is pending newer snapshots replace the older one,
// so a burst of events costs a single scan with the freshest measurements.
//
// A tracker built with no anchor ids is inert: it never measures, never
// fires callbacks, and reports no active anchor.
type Tracker struct {
	// Interval is the minimum spacing between Observe-triggered
	// recomputes. Zero means DefaultInterval.
	Interval time.Duration

	// OnChange fires whenever the active anchor changes, including the
	// change Mount's initial computation may produce. OnMissing fires
	// once per scan for each id that had no element to measure. Both
	// must be set before the first Mount or Observe.
	OnChange  func(id string)
	OnMissing func(id string)

	ids []string

	mu      sync.Mutex
	active  string
	pending Viewport
	timer   *time.Timer
	stopped bool
}

// NewTracker returns a tracker for the given anchor ids in document
// order. The active anchor starts as the first id, before any
// measurement happens.
func NewTracker(ids []string) *Tracker {
	t := &Tracker{ids: append([]string(nil), ids...)}
	if len(t.ids) > 0 {
		t.active = t.ids[0]
	}
	return t
}

// Active reports the current active anchor. ok is false when the tracker
// has no anchors.
func (t *Tracker) Active() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.ids) == 0 {
		return "", false
	}
	return t.active, true
}

// Mount runs the initial computation for a freshly attached viewport,
// synchronously. Pages opened through fragment links arrive already
// scrolled, so the first answer cannot wait for a scroll event.
func (t *Tracker) Mount(v Viewport) {
	if len(t.ids) == 0 {
		return
	}
	t.recompute(v)
}

// Observe feeds a viewport snapshot into the coalescing window. If no
// recompute is pending one is scheduled after Interval; otherwise the
// snapshot replaces the pending one and the already-armed timer keeps
// its deadline. Intermediate snapshots are dropped on purpose.
func (t *Tracker) Observe(v Viewport) {
	if len(t.ids) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending = v
	if t.timer == nil {
		t.timer = time.AfterFunc(t.interval(), t.fire)
	}
}

// Unmount detaches the tracker. Pending work is discarded and later
// Mount/Observe calls become no-ops. Safe to call more than once.
func (t *Tracker) Unmount() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.pending = nil
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Tracker) interval() time.Duration {
	if t.Interval > 0 {
		return t.Interval
	}
	return DefaultInterval
}

func (t *Tracker) fire() {
	t.mu.Lock()
	v := t.pending
	t.pending = nil
	t.timer = nil
	stopped := t.stopped
	t.mu.Unlock()

	if stopped || v == nil {
		return
	}
	t.recompute(v)
}

func (t *Tracker) recompute(v Viewport) {
	active, missing := scan(v, t.ids)

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	changed := active != t.active
	t.active = active
	t.mu.Unlock()

	if t.OnMissing != nil {
		for _, id := range missing {
			t.OnMissing(id)
		}
	}
	if changed && t.OnChange != nil {
		t.OnChange(active)
	}
}
