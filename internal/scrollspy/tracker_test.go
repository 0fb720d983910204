package scrollspy

import (
	"testing"
	"time"
)

func TestTrackerInitialState(t *testing.T) {
	tr := NewTracker([]string{"install", "usage"})
	got, ok := tr.Active()
	if !ok {
		t.Fatal("Active ok = false before mount, want true")
	}
	if got != "install" {
		t.Errorf("initial active = %q, want first anchor %q", got, "install")
	}
}

func TestTrackerMount(t *testing.T) {
	tr := NewTracker([]string{"install", "usage", "faq"})

	var changes []string
	tr.OnChange = func(id string) { changes = append(changes, id) }

	// Page loaded via a fragment link, already scrolled past "usage".
	tr.Mount(Snapshot{"install": -400, "usage": -30, "faq": 200})

	got, _ := tr.Active()
	if got != "usage" {
		t.Errorf("active after mount = %q, want %q", got, "usage")
	}
	if len(changes) != 1 || changes[0] != "usage" {
		t.Errorf("changes = %v, want [usage]", changes)
	}

	// Mounting at the top produces no change event: the initial state
	// already points at the first anchor.
	tr2 := NewTracker([]string{"install", "usage"})
	fired := false
	tr2.OnChange = func(string) { fired = true }
	tr2.Mount(Snapshot{"install": 80, "usage": 600})
	if fired {
		t.Error("OnChange fired on mount with nothing scrolled past")
	}
}

func TestTrackerObserveCoalesces(t *testing.T) {
	tr := NewTracker([]string{"install", "usage", "faq"})
	tr.Interval = 100 * time.Millisecond

	changes := make(chan string, 8)
	tr.OnChange = func(id string) { changes <- id }

	tr.Mount(Snapshot{"install": 10 + Threshold, "usage": 500, "faq": 900})

	// Two observations inside one interval: the first would activate
	// "usage", the second "faq". Only the newest may be applied.
	tr.Observe(Snapshot{"install": -500, "usage": -10, "faq": 400})
	tr.Observe(Snapshot{"install": -900, "usage": -400, "faq": -30})

	select {
	case id := <-changes:
		if id != "faq" {
			t.Errorf("coalesced change = %q, want %q (newest snapshot wins)", id, "faq")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change event after Observe")
	}

	// The dropped intermediate snapshot must not surface later.
	select {
	case id := <-changes:
		t.Errorf("unexpected second change event %q", id)
	case <-time.After(100 * time.Millisecond):
	}

	got, _ := tr.Active()
	if got != "faq" {
		t.Errorf("active = %q, want %q", got, "faq")
	}
}

func TestTrackerUnmount(t *testing.T) {
	tr := NewTracker([]string{"install", "usage"})
	tr.Interval = 5 * time.Millisecond

	changes := make(chan string, 8)
	tr.OnChange = func(id string) { changes <- id }

	tr.Mount(Snapshot{"install": 100, "usage": 600})
	tr.Unmount()
	tr.Unmount() // teardown is idempotent

	tr.Observe(Snapshot{"install": -500, "usage": -100})
	select {
	case id := <-changes:
		t.Errorf("change event %q after unmount", id)
	case <-time.After(100 * time.Millisecond):
	}

	if got, _ := tr.Active(); got != "install" {
		t.Errorf("active after unmount = %q, want untouched %q", got, "install")
	}
}

func TestTrackerUnmountDiscardsPending(t *testing.T) {
	tr := NewTracker([]string{"install", "usage"})
	tr.Interval = 30 * time.Millisecond

	changes := make(chan string, 8)
	tr.OnChange = func(id string) { changes <- id }

	tr.Observe(Snapshot{"install": -500, "usage": -100})
	tr.Unmount()

	select {
	case id := <-changes:
		t.Errorf("pending observation fired %q after unmount", id)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestTrackerEmptyIsInert(t *testing.T) {
	tr := NewTracker(nil)

	fired := false
	tr.OnChange = func(string) { fired = true }
	tr.OnMissing = func(string) { fired = true }

	if _, ok := tr.Active(); ok {
		t.Error("empty tracker reports an active anchor")
	}

	tr.Mount(Snapshot{"anything": -100})
	tr.Observe(Snapshot{"anything": -100})
	time.Sleep(50 * time.Millisecond)

	if fired {
		t.Error("empty tracker fired a callback")
	}
	if _, ok := tr.Active(); ok {
		t.Error("empty tracker reports an active anchor after observation")
	}
}

func TestTrackerOnMissing(t *testing.T) {
	tr := NewTracker([]string{"install", "ghost", "usage"})

	var missing []string
	tr.OnMissing = func(id string) { missing = append(missing, id) }

	tr.Mount(Snapshot{"install": -50, "usage": 300})

	if len(missing) != 1 || missing[0] != "ghost" {
		t.Errorf("missing = %v, want [ghost]", missing)
	}
	if got, _ := tr.Active(); got != "install" {
		t.Errorf("active = %q, want %q (missing anchors are skipped)", got, "install")
	}
}
