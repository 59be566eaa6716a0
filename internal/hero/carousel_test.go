package hero

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCarouselStartsRunning(t *testing.T) {
	c := NewCarousel(4)
	require.Equal(t, PhaseRunning, c.Phase())
	require.Equal(t, 1, c.Index())
	require.Equal(t, 0, c.ActiveDot())
}

func TestCarouselSingleSlideIsIdle(t *testing.T) {
	c := NewCarousel(1)
	require.Equal(t, PhaseIdle, c.Phase())

	c.Advance()
	require.Equal(t, 0, c.Index())
	require.Equal(t, 0, c.ActiveDot())
}

func TestCarouselAdvanceWalksSlides(t *testing.T) {
	c := NewCarousel(3)

	c.Advance()
	require.False(t, c.TransitionEnd())
	require.Equal(t, 1, c.ActiveDot())

	c.Advance()
	require.False(t, c.TransitionEnd())
	require.Equal(t, 2, c.ActiveDot())
}

func TestCarouselWrapsThroughClone(t *testing.T) {
	c := NewCarousel(3)

	// Advance past the last real slide onto the trailing clone.
	c.Advance()
	c.TransitionEnd()
	c.Advance()
	c.TransitionEnd()
	c.Advance()
	require.Equal(t, 4, c.Index())

	// While on the clone the first dot is already active.
	require.Equal(t, 0, c.ActiveDot())

	// The transition end snaps silently back to the first real slide.
	require.True(t, c.TransitionEnd())
	require.Equal(t, 1, c.Index())
	require.Equal(t, 0, c.ActiveDot())
}

func TestCarouselSelectPausesAutoAdvance(t *testing.T) {
	c := NewCarousel(4)

	c.Select(2)
	require.Equal(t, PhaseCooldown, c.Phase())
	require.Equal(t, 3, c.Index())
	require.Equal(t, 2, c.ActiveDot())

	// Ticks during the cool-down are ignored.
	c.Advance()
	require.Equal(t, 3, c.Index())

	c.Resume()
	require.Equal(t, PhaseRunning, c.Phase())
	c.Advance()
	require.Equal(t, 4, c.Index())
}

func TestCarouselSelectOutOfRangeIgnored(t *testing.T) {
	c := NewCarousel(3)

	c.Select(-1)
	require.Equal(t, PhaseRunning, c.Phase())
	c.Select(3)
	require.Equal(t, PhaseRunning, c.Phase())
	require.Equal(t, 1, c.Index())
}

func TestCarouselResumeOutsideCooldownIsNoOp(t *testing.T) {
	c := NewCarousel(3)
	c.Resume()
	require.Equal(t, PhaseRunning, c.Phase())

	idle := NewCarousel(1)
	idle.Resume()
	require.Equal(t, PhaseIdle, idle.Phase())
}

func TestCarouselActiveDotMapping(t *testing.T) {
	tests := []struct {
		name  string
		index int
		dot   int
	}{
		{"leading clone shows last dot", 0, 3},
		{"first real slide", 1, 0},
		{"middle slide", 3, 2},
		{"last real slide", 4, 3},
		{"trailing clone shows first dot", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCarousel(4)
			c.index = tt.index
			require.Equal(t, tt.dot, c.ActiveDot())
		})
	}
}

func TestCarouselEmptyIsInert(t *testing.T) {
	c := NewCarousel(0)
	require.Equal(t, PhaseIdle, c.Phase())
	c.Advance()
	require.False(t, c.TransitionEnd())
	require.Equal(t, 0, c.ActiveDot())
}
