package verdict

import "time"

const (
	// RevealDelay is the pause before the first character appears.
	RevealDelay = 200 * time.Millisecond

	// RevealInterval is the fixed delay between characters.
	RevealInterval = 35 * time.Millisecond
)

// Reveal is the typewriter state for one rationale string. A new result
// replaces the whole Reveal; the generation counter lets the owner drop ticks
// that belong to a replaced reveal instead of letting two timers fight over
// the same text.
type Reveal struct {
	text       []rune
	shown      int
	started    bool
	generation int
}

// NewReveal starts a reveal for text, taking over from prev (if any) by
// bumping the generation so prev's pending ticks are ignored.
func NewReveal(text string, prev *Reveal) *Reveal {
	gen := 1
	if prev != nil {
		gen = prev.generation + 1
	}
	return &Reveal{text: []rune(text), generation: gen}
}

// Generation identifies this reveal's timer ticks.
func (r *Reveal) Generation() int { return r.generation }

// NextInterval returns how long to wait before the next Advance call: the
// initial pause before anything is shown, the per-character interval after.
func (r *Reveal) NextInterval() time.Duration {
	if !r.started {
		return RevealDelay
	}
	return RevealInterval
}

// Advance shows one more character and reports whether more remain.
func (r *Reveal) Advance() bool {
	r.started = true
	if r.shown < len(r.text) {
		r.shown++
	}
	return r.shown < len(r.text)
}

// Visible returns the currently revealed prefix.
func (r *Reveal) Visible() string {
	return string(r.text[:r.shown])
}

// Done reports whether the full text is visible.
func (r *Reveal) Done() bool {
	return r.shown >= len(r.text)
}

// Skip reveals the whole text at once.
func (r *Reveal) Skip() {
	r.started = true
	r.shown = len(r.text)
}
