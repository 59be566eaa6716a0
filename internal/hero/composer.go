package hero

import (
	"github.com/okonma/arc/internal/domain"
)

// DefaultSlateSize is the target number of hero slides.
const DefaultSlateSize = 5

// CategorySource is one weighted candidate pool for the hero slate.
type CategorySource struct {
	Label       domain.CategoryLabel
	RotationKey string
	Candidates  []*domain.Media
}

// Composer assembles the hero slate from category sources.
type Composer struct {
	rotation *Rotation
}

// NewComposer creates a composer over rotation.
func NewComposer(rotation *Rotation) *Composer {
	return &Composer{rotation: rotation}
}

// Compose picks at most one slide per priority category (in the given
// order), then backfills from the fallback pool up to targetSize. A media id
// never appears twice in the slate: higher-priority categories claim items
// before lower-priority ones see them.
//
// When nothing at all was selected, the first targetSize fallback candidates
// are returned unconditionally so the slate is never empty while any data
// exists.
func (c *Composer) Compose(priority []CategorySource, fallback CategorySource, targetSize int) []domain.HeroSlide {
	if targetSize <= 0 {
		targetSize = DefaultSlateSize
	}

	slides := make([]domain.HeroSlide, 0, targetSize)
	selected := make(map[int]struct{})

	add := func(m *domain.Media, label domain.CategoryLabel) {
		if m == nil {
			return
		}
		if _, dup := selected[m.ID]; dup {
			return
		}
		slides = append(slides, domain.HeroSlide{Media: m, Category: label})
		selected[m.ID] = struct{}{}
	}

	for _, src := range priority {
		available := excludeIDs(src.Candidates, selected)
		if len(available) == 0 {
			continue
		}
		add(c.rotation.SelectNext(src.RotationKey, available), src.Label)
	}

	for _, m := range excludeIDs(fallback.Candidates, selected) {
		if len(slides) >= targetSize {
			break
		}
		add(m, fallback.Label)
	}

	if len(slides) == 0 {
		for i := 0; i < len(fallback.Candidates) && i < targetSize; i++ {
			slides = append(slides, domain.HeroSlide{Media: fallback.Candidates[i], Category: fallback.Label})
		}
	}

	return slides
}

func excludeIDs(candidates []*domain.Media, selected map[int]struct{}) []*domain.Media {
	if len(selected) == 0 {
		return candidates
	}
	out := make([]*domain.Media, 0, len(candidates))
	for _, m := range candidates {
		if _, ok := selected[m.ID]; !ok {
			out = append(out, m)
		}
	}
	return out
}
