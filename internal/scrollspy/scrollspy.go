// Package scrollspy computes which section of a page is currently in
// view. The algorithm is shared by the dev server (tracking live preview
// sessions over the websocket channel) and mirrored by the client
// runtime emitted into script.js; both operate on the same anchor ids in
// the same document order, so they agree on the answer.
package scrollspy

// Threshold is the distance in pixels below the viewport top at which a
// section heading counts as passed. A heading whose top sits exactly at
// the threshold has not passed it yet.
const Threshold = 26

// Viewport is the measurement surface the tracker reads. ElementTop
// reports an element's top edge relative to the viewport's top, in
// pixels; ok is false when no element with that id exists.
type Viewport interface {
	ElementTop(id string) (top float64, ok bool)
}

// Snapshot is an immutable Viewport captured at a single instant, keyed
// by element id. Ids absent from the map report no element.
type Snapshot map[string]float64

// ElementTop implements Viewport.
func (s Snapshot) ElementTop(id string) (float64, bool) {
	top, ok := s[id]
	return top, ok
}

// Resolve returns the anchor to highlight for the given viewport: the
// last id in document order whose top has crossed the threshold,
// defaulting to the first id when none has. Ids without a matching
// element are skipped. ok is false only when ids is empty.
func Resolve(v Viewport, ids []string) (string, bool) {
	if len(ids) == 0 {
		return "", false
	}
	active, _ := scan(v, ids)
	return active, true
}

// scan walks ids in document order, keeping the last one past the
// threshold and collecting ids that had no element to measure.
func scan(v Viewport, ids []string) (active string, missing []string) {
	active = ids[0]
	for _, id := range ids {
		top, ok := v.ElementTop(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		if top-Threshold < 0 {
			active = id
		}
	}
	return active, missing
}
