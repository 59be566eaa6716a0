package anilist

import (
	"context"

	"github.com/okonma/arc/internal/domain"
)

// listMediaFragment carries the fields the discovery rails and hero slate
// consume for each entry.
const listMediaFragment = `
fragment listMedia on Media {
  id
  title {
    romaji
    english
    native
  }
  description(asHtml: false)
  genres
  bannerImage
  coverImage {
    extraLarge
    large
    color
  }
  averageScore
  season
  seasonYear
  status
  format
  externalLinks {
    id
    site
  }
  studios(isMain: true) {
    edges {
      node {
        name
      }
    }
  }
  nextAiringEpisode {
    timeUntilAiring
    episode
  }
}
`

// QueryTrending returns trending anime.
const QueryTrending = listMediaFragment + `
query ($perPage: Int) {
  Page(perPage: $perPage) {
    media(type: ANIME, sort: TRENDING_DESC) {
      ...listMedia
    }
  }
}
`

// QueryPopularSeason returns the most popular anime of a season.
const QueryPopularSeason = listMediaFragment + `
query ($perPage: Int, $season: MediaSeason, $seasonYear: Int) {
  Page(perPage: $perPage) {
    media(type: ANIME, season: $season, seasonYear: $seasonYear, sort: POPULARITY_DESC) {
      ...listMedia
    }
  }
}
`

// QueryNextSeason returns upcoming anime of the following season.
const QueryNextSeason = listMediaFragment + `
query ($perPage: Int, $season: MediaSeason, $seasonYear: Int) {
  Page(perPage: $perPage) {
    media(type: ANIME, season: $season, seasonYear: $seasonYear, sort: POPULARITY_DESC, status: NOT_YET_RELEASED) {
      ...listMedia
    }
  }
}
`

// QueryAllTimePopular returns the all-time most popular anime.
const QueryAllTimePopular = listMediaFragment + `
query ($perPage: Int) {
  Page(perPage: $perPage) {
    media(type: ANIME, sort: POPULARITY_DESC) {
      ...listMedia
    }
  }
}
`

// QueryReleasing returns currently releasing anime, used to derive the
// airing-today and airing-tomorrow rails.
const QueryReleasing = listMediaFragment + `
query ($perPage: Int) {
  Page(perPage: $perPage) {
    media(type: ANIME, status: RELEASING, sort: POPULARITY_DESC) {
      ...listMedia
    }
  }
}
`

// QueryRecentlyAired returns airing schedule entries inside a time window.
const QueryRecentlyAired = listMediaFragment + `
query ($perPage: Int, $airingAt_greater: Int, $airingAt_lesser: Int) {
  Page(perPage: $perPage) {
    airingSchedules(airingAt_greater: $airingAt_greater, airingAt_lesser: $airingAt_lesser, sort: TIME_DESC) {
      id
      airingAt
      episode
      media {
        ...listMedia
      }
    }
  }
}
`

// QuerySearch searches anime by free text with optional filters.
const QuerySearch = listMediaFragment + `
query ($search: String, $perPage: Int, $genre: String, $season: MediaSeason, $seasonYear: Int, $format: MediaFormat) {
  Page(perPage: $perPage) {
    media(type: ANIME, search: $search, genre: $genre, season: $season, seasonYear: $seasonYear, format: $format, sort: SEARCH_MATCH) {
      ...listMedia
    }
  }
}
`

// QueryDetail returns one media entry with its relation graph, used by the
// detail view and the artwork id mapping.
const QueryDetail = listMediaFragment + `
query ($id: Int) {
  Media(id: $id, type: ANIME) {
    ...listMedia
    episodes
    relations {
      edges {
        relationType(version: 2)
        node {
          ...listMedia
        }
      }
    }
  }
}
`

// Per-query variable structs. Each query gets an explicit parameter type so a
// misspelled variable name is a compile error, not a silently empty filter.

type PageVars struct {
	PerPage int `json:"perPage"`
}

type SeasonPageVars struct {
	PerPage    int           `json:"perPage"`
	Season     domain.Season `json:"season"`
	SeasonYear int           `json:"seasonYear"`
}

type AiringRangeVars struct {
	PerPage         int   `json:"perPage"`
	AiringAtGreater int64 `json:"airingAt_greater"`
	AiringAtLesser  int64 `json:"airingAt_lesser"`
}

type SearchVars struct {
	Search     string        `json:"search,omitempty"`
	PerPage    int           `json:"perPage"`
	Genre      string        `json:"genre,omitempty"`
	Season     domain.Season `json:"season,omitempty"`
	SeasonYear int           `json:"seasonYear,omitempty"`
	Format     string        `json:"format,omitempty"`
}

type MediaVars struct {
	ID int `json:"id"`
}

type pageEnvelope[T any] struct {
	Page T `json:"Page"`
}

// FetchPage runs a page-of-media query and returns the page.
func (c *Client) FetchPage(ctx context.Context, query string, vars any) (*domain.MediaPage, error) {
	var env pageEnvelope[domain.MediaPage]
	if err := c.Do(ctx, query, vars, &env); err != nil {
		return nil, err
	}
	return &env.Page, nil
}

// FetchAiringPage runs an airing-schedule query and returns the page.
func (c *Client) FetchAiringPage(ctx context.Context, query string, vars any) (*domain.AiringSchedulePage, error) {
	var env pageEnvelope[domain.AiringSchedulePage]
	if err := c.Do(ctx, query, vars, &env); err != nil {
		return nil, err
	}
	return &env.Page, nil
}

// FetchDetail returns one media entry by id.
func (c *Client) FetchDetail(ctx context.Context, id int) (*domain.Media, error) {
	var env struct {
		Media *domain.Media `json:"Media"`
	}
	if err := c.Do(ctx, QueryDetail, MediaVars{ID: id}, &env); err != nil {
		return nil, err
	}
	if env.Media == nil {
		return nil, domain.ErrNotFound
	}
	return env.Media, nil
}
