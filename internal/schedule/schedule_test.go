package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/okonma/arc/internal/domain"
)

func airingIn(id int, until time.Duration) *domain.Media {
	return &domain.Media{
		ID:                id,
		NextAiringEpisode: &domain.NextAiringEpisode{Episode: 1, TimeUntilAiring: int(until.Seconds())},
	}
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		month time.Month
		want  domain.Season
	}{
		{time.January, domain.SeasonWinter},
		{time.March, domain.SeasonWinter},
		{time.April, domain.SeasonSpring},
		{time.June, domain.SeasonSpring},
		{time.July, domain.SeasonSummer},
		{time.September, domain.SeasonSummer},
		{time.October, domain.SeasonFall},
		{time.December, domain.SeasonFall},
	}

	for _, tt := range tests {
		at := time.Date(2026, tt.month, 15, 0, 0, 0, 0, time.UTC)
		got := CurrentSeason(at)
		require.Equal(t, tt.want, got.Season, "month %s", tt.month)
		require.Equal(t, 2026, got.Year)
	}
}

func TestNextSeason(t *testing.T) {
	tests := []struct {
		current domain.SeasonYear
		want    domain.SeasonYear
	}{
		{domain.SeasonYear{Season: domain.SeasonWinter, Year: 2026}, domain.SeasonYear{Season: domain.SeasonSpring, Year: 2026}},
		{domain.SeasonYear{Season: domain.SeasonSpring, Year: 2026}, domain.SeasonYear{Season: domain.SeasonSummer, Year: 2026}},
		{domain.SeasonYear{Season: domain.SeasonSummer, Year: 2026}, domain.SeasonYear{Season: domain.SeasonFall, Year: 2026}},
		{domain.SeasonYear{Season: domain.SeasonFall, Year: 2026}, domain.SeasonYear{Season: domain.SeasonWinter, Year: 2027}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, NextSeason(tt.current))
	}
}

func TestAiringSoonFiltersAndSorts(t *testing.T) {
	media := []*domain.Media{
		airingIn(1, 10*time.Hour),
		{ID: 2}, // no scheduled episode
		airingIn(3, 2*time.Hour),
		airingIn(4, 30*time.Hour),
	}

	got := AiringSoon(media)
	require.Len(t, got, 3)
	require.Equal(t, 3, got[0].ID)
	require.Equal(t, 1, got[1].ID)
	require.Equal(t, 4, got[2].ID)
}

func TestAiringSoonIsStableOnTies(t *testing.T) {
	media := []*domain.Media{
		airingIn(1, time.Hour),
		airingIn(2, time.Hour),
		airingIn(3, time.Hour),
	}

	got := AiringSoon(media)
	require.Equal(t, []int{1, 2, 3}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestAiringTodayAndTomorrow(t *testing.T) {
	airing := AiringSoon([]*domain.Media{
		airingIn(1, 2*time.Hour),
		airingIn(2, 23*time.Hour),
		airingIn(3, 25*time.Hour),
		airingIn(4, 47*time.Hour),
		airingIn(5, 49*time.Hour),
	})

	today := AiringToday(airing)
	require.Len(t, today, 2)
	require.Equal(t, 1, today[0].ID)
	require.Equal(t, 2, today[1].ID)

	tomorrow := AiringTomorrow(airing)
	require.Len(t, tomorrow, 2)
	require.Equal(t, 3, tomorrow[0].ID)
	require.Equal(t, 4, tomorrow[1].ID)
}

func TestStreamingNowDeduplicatesByMedia(t *testing.T) {
	show := &domain.Media{ID: 1}
	other := &domain.Media{ID: 2}

	schedules := []*domain.AiringSchedule{
		{ID: 10, Episode: 5, Media: show},
		{ID: 11, Episode: 4, Media: show},
		{ID: 12, Episode: 1, Media: other},
		{ID: 13, Media: nil},
	}

	got := StreamingNow(schedules)
	require.Len(t, got, 2)
	require.Equal(t, 10, got[0].ID)
	require.Equal(t, 12, got[1].ID)
}

func TestExcludeIDs(t *testing.T) {
	media := []*domain.Media{{ID: 1}, {ID: 2}, {ID: 3}}
	got := ExcludeIDs(media, map[int]struct{}{2: {}})
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].ID)
	require.Equal(t, 3, got[1].ID)
}

func TestSplitTop(t *testing.T) {
	media := []*domain.Media{{ID: 1}, {ID: 2}, {ID: 3}}

	top, rest := SplitTop(media, 2)
	require.Len(t, top, 2)
	require.Len(t, rest, 1)
	require.Equal(t, 3, rest[0].ID)

	top, rest = SplitTop(media, 5)
	require.Len(t, top, 3)
	require.Nil(t, rest)
}
