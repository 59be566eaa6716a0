// Package schedule shapes raw AniList results into the home and schedule
// view sections: season boundaries, airing-day partitions, and the
// streaming-now de-duplication.
package schedule

import (
	"sort"
	"time"

	"github.com/okonma/arc/internal/domain"
)

const day = 24 * time.Hour

// CurrentSeason returns the broadcast season containing t.
func CurrentSeason(t time.Time) domain.SeasonYear {
	year := t.Year()
	switch t.Month() {
	case time.January, time.February, time.March:
		return domain.SeasonYear{Season: domain.SeasonWinter, Year: year}
	case time.April, time.May, time.June:
		return domain.SeasonYear{Season: domain.SeasonSpring, Year: year}
	case time.July, time.August, time.September:
		return domain.SeasonYear{Season: domain.SeasonSummer, Year: year}
	default:
		return domain.SeasonYear{Season: domain.SeasonFall, Year: year}
	}
}

// NextSeason returns the season after current.
func NextSeason(current domain.SeasonYear) domain.SeasonYear {
	switch current.Season {
	case domain.SeasonWinter:
		return domain.SeasonYear{Season: domain.SeasonSpring, Year: current.Year}
	case domain.SeasonSpring:
		return domain.SeasonYear{Season: domain.SeasonSummer, Year: current.Year}
	case domain.SeasonSummer:
		return domain.SeasonYear{Season: domain.SeasonFall, Year: current.Year}
	default:
		return domain.SeasonYear{Season: domain.SeasonWinter, Year: current.Year + 1}
	}
}

// AiringSoon keeps entries with a scheduled next episode, ordered soonest
// first. The sort is stable so entries airing at the same time keep their
// popularity order.
func AiringSoon(media []*domain.Media) []*domain.Media {
	out := make([]*domain.Media, 0, len(media))
	for _, m := range media {
		if m.NextAiringEpisode != nil && m.NextAiringEpisode.TimeUntilAiring > 0 {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextAiringEpisode.TimeUntilAiring < out[j].NextAiringEpisode.TimeUntilAiring
	})
	return out
}

// AiringToday keeps entries airing within 24 hours. Input is assumed to be
// AiringSoon output.
func AiringToday(airing []*domain.Media) []*domain.Media {
	return airingBetween(airing, 0, day)
}

// AiringTomorrow keeps entries airing between 24 and 48 hours out.
func AiringTomorrow(airing []*domain.Media) []*domain.Media {
	return airingBetween(airing, day, 2*day)
}

func airingBetween(airing []*domain.Media, min, max time.Duration) []*domain.Media {
	out := make([]*domain.Media, 0, len(airing))
	for _, m := range airing {
		until := m.TimeUntilAiring()
		if until >= min && until < max {
			out = append(out, m)
		}
	}
	return out
}

// StreamingNow de-duplicates recently aired schedule entries by media id,
// keeping the first (most recent) entry per show.
func StreamingNow(schedules []*domain.AiringSchedule) []*domain.AiringSchedule {
	seen := make(map[int]struct{}, len(schedules))
	out := make([]*domain.AiringSchedule, 0, len(schedules))
	for _, s := range schedules {
		if s.Media == nil {
			continue
		}
		if _, ok := seen[s.Media.ID]; ok {
			continue
		}
		seen[s.Media.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ExcludeIDs filters out media whose id is in ids, used to keep the trending
// rail from repeating the hero slate.
func ExcludeIDs(media []*domain.Media, ids map[int]struct{}) []*domain.Media {
	out := make([]*domain.Media, 0, len(media))
	for _, m := range media {
		if _, ok := ids[m.ID]; !ok {
			out = append(out, m)
		}
	}
	return out
}

// SplitTop splits media into its first n entries and the rest.
func SplitTop(media []*domain.Media, n int) (top, rest []*domain.Media) {
	if len(media) <= n {
		return media, nil
	}
	return media[:n], media[n:]
}
