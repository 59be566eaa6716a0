package hero

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okonma/arc/internal/domain"
	"github.com/okonma/arc/internal/log"
	"github.com/okonma/arc/internal/store"
)

func media(id int, title string) *domain.Media {
	return &domain.Media{ID: id, Title: domain.Title{English: title}}
}

func newTestRotation(t *testing.T) *Rotation {
	t.Helper()
	s, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewRotation(s, log.NullLogger())
}

func TestRotationCyclesWithoutRepeats(t *testing.T) {
	r := newTestRotation(t)
	pool := []*domain.Media{media(1, "A"), media(2, "B"), media(3, "C")}

	require.Equal(t, 1, r.SelectNext("key", pool).ID)
	require.Equal(t, 2, r.SelectNext("key", pool).ID)
	require.Equal(t, 3, r.SelectNext("key", pool).ID)

	// Pool exhausted: the cycle resets and starts over from the front.
	require.Equal(t, 1, r.SelectNext("key", pool).ID)
	require.Equal(t, 2, r.SelectNext("key", pool).ID)
}

func TestRotationKeysAreIndependent(t *testing.T) {
	r := newTestRotation(t)
	pool := []*domain.Media{media(1, "A"), media(2, "B")}

	require.Equal(t, 1, r.SelectNext("one", pool).ID)
	require.Equal(t, 1, r.SelectNext("two", pool).ID)
	require.Equal(t, 2, r.SelectNext("one", pool).ID)
}

func TestRotationEmptyPool(t *testing.T) {
	r := newTestRotation(t)
	require.Nil(t, r.SelectNext("key", nil))
}

func TestRotationPoolShrinks(t *testing.T) {
	r := newTestRotation(t)
	pool := []*domain.Media{media(1, "A"), media(2, "B"), media(3, "C")}

	require.Equal(t, 1, r.SelectNext("key", pool).ID)
	require.Equal(t, 2, r.SelectNext("key", pool).ID)

	// The pool loses its remaining unseen entry: everything left has been
	// shown, so the cycle resets against the new pool.
	shrunk := []*domain.Media{media(1, "A"), media(2, "B")}
	require.Equal(t, 1, r.SelectNext("key", shrunk).ID)
}

func TestRotationPoolGrows(t *testing.T) {
	r := newTestRotation(t)
	pool := []*domain.Media{media(1, "A")}

	require.Equal(t, 1, r.SelectNext("key", pool).ID)

	grown := []*domain.Media{media(1, "A"), media(2, "B")}
	require.Equal(t, 2, r.SelectNext("key", grown).ID)
}

func TestRotationMalformedStateResetsCycle(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	r := NewRotation(s, log.NullLogger())

	require.NoError(t, s.Set(RotationPrefix+"key", "not json"))

	pool := []*domain.Media{media(1, "A"), media(2, "B")}
	require.Equal(t, 1, r.SelectNext("key", pool).ID)
	require.Equal(t, 2, r.SelectNext("key", pool).ID)
}

type failingStorage struct{}

func (failingStorage) Get(string) (string, bool, error) { return "", false, errors.New("io error") }
func (failingStorage) Set(string, string) error         { return errors.New("io error") }
func (failingStorage) Remove(string) error              { return errors.New("io error") }
func (failingStorage) Close() error                     { return nil }

func TestRotationStorageFailureFallsBackToRandom(t *testing.T) {
	r := NewRotation(failingStorage{}, log.NullLogger())
	r.SetRand(rand.New(rand.NewSource(1)))

	pool := []*domain.Media{media(1, "A"), media(2, "B"), media(3, "C")}
	ids := map[int]bool{1: true, 2: true, 3: true}

	for i := 0; i < 10; i++ {
		got := r.SelectNext("key", pool)
		require.NotNil(t, got)
		require.True(t, ids[got.ID])
	}
}

func TestRotationWriteFailureStillSelects(t *testing.T) {
	// A pool of one: even the degraded random path must return that entry.
	r := NewRotation(failingStorage{}, log.NullLogger())
	pool := []*domain.Media{media(7, "Solo")}

	require.Equal(t, 7, r.SelectNext("key", pool).ID)
}
