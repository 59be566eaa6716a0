// Package hero selects and rotates the featured content shown at the top of
// the home view: a persisted unique-cycling selector per category, a slate
// composer that de-duplicates across categories, and the carousel state
// machine that the front end drives with its timers.
package hero

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"time"

	"github.com/okonma/arc/internal/domain"
)

// RotationPrefix namespaces rotation state inside the shared storage
// substrate, away from the TTL cache's keys.
const RotationPrefix = "hero_shown_"

// Rotation cycles through candidate pools without repeats, persisting the
// set of already-shown ids per rotation key.
type Rotation struct {
	storage domain.Storage
	logger  *slog.Logger
	rand    *rand.Rand
}

// NewRotation creates a rotation tracker over storage.
func NewRotation(storage domain.Storage, logger *slog.Logger) *Rotation {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rotation{
		storage: storage,
		logger:  logger,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand overrides the degraded-mode random source. Tests only.
func (r *Rotation) SetRand(rng *rand.Rand) { r.rand = rng }

// SelectNext picks the first candidate (in input order) not yet shown under
// rotationKey, records it, and returns it. When every candidate has been
// shown the persisted set is cleared and the cycle starts over. Returns nil
// only for an empty candidate pool.
//
// When the storage substrate fails the selection degrades to a uniformly
// random candidate instead of failing the caller; the shown set is simply
// not advanced for that pass.
func (r *Rotation) SelectNext(rotationKey string, candidates []*domain.Media) *domain.Media {
	if len(candidates) == 0 {
		return nil
	}

	key := RotationPrefix + rotationKey

	stored, found, err := r.storage.Get(key)
	if err != nil {
		r.logger.Warn("rotation state read failed", "key", key, "error", err)
		return r.randomCandidate(candidates)
	}

	var shownIDs []int
	if found {
		if err := json.Unmarshal([]byte(stored), &shownIDs); err != nil {
			// Unreadable state is discarded rather than poisoning the cycle.
			r.logger.Warn("rotation state malformed", "key", key, "error", err)
			shownIDs = nil
		}
	}

	unseen := filterUnseen(candidates, shownIDs)
	if len(unseen) == 0 {
		// Every candidate has been shown: full reset, not a reshuffle.
		shownIDs = nil
		if err := r.storage.Remove(key); err != nil {
			r.logger.Warn("rotation state reset failed", "key", key, "error", err)
			return r.randomCandidate(candidates)
		}
		unseen = candidates
	}

	selected := unseen[0]
	shownIDs = append(shownIDs, selected.ID)

	data, err := json.Marshal(shownIDs)
	if err == nil {
		err = r.storage.Set(key, string(data))
	}
	if err != nil {
		r.logger.Warn("rotation state write failed", "key", key, "error", err)
		return r.randomCandidate(candidates)
	}

	return selected
}

func (r *Rotation) randomCandidate(candidates []*domain.Media) *domain.Media {
	return candidates[r.rand.Intn(len(candidates))]
}

func filterUnseen(candidates []*domain.Media, shownIDs []int) []*domain.Media {
	if len(shownIDs) == 0 {
		return candidates
	}
	shown := make(map[int]struct{}, len(shownIDs))
	for _, id := range shownIDs {
		shown[id] = struct{}{}
	}
	unseen := make([]*domain.Media, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := shown[c.ID]; !ok {
			unseen = append(unseen, c)
		}
	}
	return unseen
}
