package hero

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okonma/arc/internal/domain"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	return NewComposer(newTestRotation(t))
}

func TestComposeOnePerCategory(t *testing.T) {
	c := newTestComposer(t)

	priority := []CategorySource{
		{Label: domain.CategoryAiringToday, RotationKey: "today", Candidates: []*domain.Media{media(1, "A"), media(2, "B")}},
		{Label: domain.CategoryAiringTomorrow, RotationKey: "tomorrow", Candidates: []*domain.Media{media(3, "C")}},
		{Label: domain.CategoryTopSeason, RotationKey: "top", Candidates: []*domain.Media{media(4, "D")}},
	}
	fallback := CategorySource{Label: domain.CategoryTrending, Candidates: []*domain.Media{media(5, "E"), media(6, "F"), media(7, "G")}}

	slides := c.Compose(priority, fallback, 5)
	require.Len(t, slides, 5)

	require.Equal(t, domain.CategoryAiringToday, slides[0].Category)
	require.Equal(t, 1, slides[0].Media.ID)
	require.Equal(t, domain.CategoryAiringTomorrow, slides[1].Category)
	require.Equal(t, domain.CategoryTopSeason, slides[2].Category)

	// Backfill from the fallback pool.
	require.Equal(t, domain.CategoryTrending, slides[3].Category)
	require.Equal(t, 5, slides[3].Media.ID)
	require.Equal(t, 6, slides[4].Media.ID)
}

func TestComposeHigherPriorityClaimsDuplicates(t *testing.T) {
	c := newTestComposer(t)

	shared := media(42, "Shared")
	priority := []CategorySource{
		{Label: domain.CategoryAiringToday, RotationKey: "today", Candidates: []*domain.Media{shared}},
		{Label: domain.CategoryTopSeason, RotationKey: "top", Candidates: []*domain.Media{shared, media(2, "B")}},
	}
	fallback := CategorySource{Label: domain.CategoryTrending, Candidates: []*domain.Media{shared}}

	slides := c.Compose(priority, fallback, 5)
	require.Len(t, slides, 2)

	require.Equal(t, 42, slides[0].Media.ID)
	require.Equal(t, domain.CategoryAiringToday, slides[0].Category)

	// The lower-priority category never sees the claimed id.
	require.Equal(t, 2, slides[1].Media.ID)
	require.Equal(t, domain.CategoryTopSeason, slides[1].Category)
}

func TestComposeStopsAtTargetSize(t *testing.T) {
	c := newTestComposer(t)

	fallback := CategorySource{Label: domain.CategoryTrending, Candidates: []*domain.Media{
		media(1, "A"), media(2, "B"), media(3, "C"), media(4, "D"),
	}}

	slides := c.Compose(nil, fallback, 3)
	require.Len(t, slides, 3)
	for i, slide := range slides {
		require.Equal(t, i+1, slide.Media.ID)
		require.Equal(t, domain.CategoryTrending, slide.Category)
	}
}

func TestComposeEmptyCategoriesSkipped(t *testing.T) {
	c := newTestComposer(t)

	priority := []CategorySource{
		{Label: domain.CategoryAiringToday, RotationKey: "today"},
		{Label: domain.CategoryTopSeason, RotationKey: "top", Candidates: []*domain.Media{media(1, "A")}},
	}
	fallback := CategorySource{Label: domain.CategoryTrending}

	slides := c.Compose(priority, fallback, 5)
	require.Len(t, slides, 1)
	require.Equal(t, domain.CategoryTopSeason, slides[0].Category)
}

func TestComposeFallbackOnlySlate(t *testing.T) {
	// No priority categories at all: the slate is the first fallback entries.
	c := newTestComposer(t)

	fallback := CategorySource{Label: domain.CategoryTrending, Candidates: []*domain.Media{media(1, "A"), media(2, "B")}}

	slides := c.Compose(nil, fallback, 5)
	require.Len(t, slides, 2)
	require.Equal(t, 1, slides[0].Media.ID)
	require.Equal(t, 2, slides[1].Media.ID)
}

func TestComposeNothingAnywhere(t *testing.T) {
	c := newTestComposer(t)
	slides := c.Compose(nil, CategorySource{Label: domain.CategoryTrending}, 5)
	require.Empty(t, slides)
}

func TestComposeRotatesAcrossCalls(t *testing.T) {
	c := newTestComposer(t)

	priority := []CategorySource{
		{Label: domain.CategoryAiringToday, RotationKey: "today", Candidates: []*domain.Media{media(1, "A"), media(2, "B")}},
	}
	fallback := CategorySource{Label: domain.CategoryTrending}

	first := c.Compose(priority, fallback, 1)
	second := c.Compose(priority, fallback, 1)

	require.Equal(t, 1, first[0].Media.ID)
	require.Equal(t, 2, second[0].Media.ID)
}
