package hero

import "time"

// Timer durations for the carousel. The state machine itself is untimed;
// the front end schedules ticks with these values and feeds the resulting
// events back in, which keeps every transition testable without a clock.
const (
	// AdvanceInterval is the auto-advance period.
	AdvanceInterval = 7 * time.Second

	// ResumeDelay is the cool-down after a manual selection before
	// auto-advance restarts.
	ResumeDelay = 3500 * time.Millisecond
)

// Phase is the carousel's timer state.
type Phase int

const (
	// PhaseIdle: one slide or none, nothing to rotate.
	PhaseIdle Phase = iota

	// PhaseRunning: auto-advance ticks are honored.
	PhaseRunning

	// PhaseCooldown: a manual selection paused auto-advance; ticks are
	// ignored until Resume.
	PhaseCooldown
)

// Carousel is the rotation state machine for an infinite-loop slide strip.
// With N real slides the rendered strip is [clone(last), 0..N-1,
// clone(first)] and the internal index walks [0, N+1]; reaching a clone
// snaps back to the matching real slide without an animated transition.
type Carousel struct {
	n     int
	index int
	phase Phase
}

// NewCarousel creates a carousel over n real slides.
func NewCarousel(n int) *Carousel {
	c := &Carousel{n: n}
	if n > 1 {
		c.index = 1
		c.phase = PhaseRunning
	}
	return c
}

// Len returns the number of real slides.
func (c *Carousel) Len() int { return c.n }

// Index returns the internal clone-padded index.
func (c *Carousel) Index() int { return c.index }

// Phase returns the current timer phase.
func (c *Carousel) Phase() Phase { return c.phase }

// Advance moves one slide forward on an auto-advance tick. Ticks arriving
// while paused or idle are ignored.
func (c *Carousel) Advance() {
	if c.phase != PhaseRunning {
		return
	}
	c.index++
}

// TransitionEnd settles the index after a slide transition has finished.
// It reports whether the index was snapped across a clone boundary, in
// which case the move must render without animation.
func (c *Carousel) TransitionEnd() bool {
	if c.n <= 1 {
		return false
	}
	switch {
	case c.index <= 0:
		c.index = c.n
		return true
	case c.index >= c.n+1:
		c.index = 1
		return true
	}
	return false
}

// Select jumps to real slide k (0-based) from a manual interaction and
// pauses auto-advance; the front end schedules Resume after ResumeDelay.
func (c *Carousel) Select(k int) {
	if c.n <= 1 || k < 0 || k >= c.n {
		return
	}
	c.index = k + 1
	c.phase = PhaseCooldown
}

// Resume restarts auto-advance after the cool-down. A resume that arrives
// after another manual selection restarted the cool-down is still correct:
// the phase simply returns to running.
func (c *Carousel) Resume() {
	if c.phase == PhaseCooldown {
		c.phase = PhaseRunning
	}
}

// ActiveDot maps the internal index to the visible dot position in
// [0, N-1]: the leading clone shows the last dot, the trailing clone the
// first.
func (c *Carousel) ActiveDot() int {
	if c.n <= 1 {
		return 0
	}
	switch {
	case c.index <= 0:
		return c.n - 1
	case c.index >= c.n+1:
		return 0
	}
	return c.index - 1
}
