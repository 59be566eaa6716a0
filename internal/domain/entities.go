package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Season identifies an anime broadcast season.
type Season string

const (
	SeasonWinter Season = "WINTER"
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonFall   Season = "FALL"
)

// SeasonYear pairs a season with its calendar year.
type SeasonYear struct {
	Season Season
	Year   int
}

func (s SeasonYear) String() string {
	return fmt.Sprintf("%s %d", s.Season, s.Year)
}

// MediaFormat identifies the release format of a media entry.
type MediaFormat string

const (
	FormatTV      MediaFormat = "TV"
	FormatMovie   MediaFormat = "MOVIE"
	FormatOVA     MediaFormat = "OVA"
	FormatONA     MediaFormat = "ONA"
	FormatManga   MediaFormat = "MANGA"
	FormatNovel   MediaFormat = "NOVEL"
	FormatOneShot MediaFormat = "ONE_SHOT"
)

// Title holds the title variants AniList provides for a media entry.
type Title struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

// Preferred returns the English title when available, otherwise romaji.
func (t Title) Preferred() string {
	if t.English != "" {
		return t.English
	}
	return t.Romaji
}

// CoverImage holds cover art URLs and the dominant color.
type CoverImage struct {
	ExtraLarge string `json:"extraLarge"`
	Large      string `json:"large"`
	Color      string `json:"color"`
}

// NextAiringEpisode describes the next scheduled episode of a releasing show.
type NextAiringEpisode struct {
	Episode         int `json:"episode"`
	TimeUntilAiring int `json:"timeUntilAiring"` // seconds
}

// ExternalLink is a link to an external site (streaming, database, social).
type ExternalLink struct {
	ID   int    `json:"id"`
	Site string `json:"site"`
}

// StudioEdge wraps a studio node in AniList's connection shape.
type StudioEdge struct {
	Node struct {
		Name string `json:"name"`
	} `json:"node"`
}

// StudioConnection holds main-studio edges.
type StudioConnection struct {
	Edges []StudioEdge `json:"edges"`
}

// RelationEdge links a media entry to a related entry (prequel, sequel, ...).
type RelationEdge struct {
	RelationType string `json:"relationType"`
	Node         *Media `json:"node"`
}

// RelationConnection holds relation edges.
type RelationConnection struct {
	Edges []RelationEdge `json:"edges"`
}

// Media is one AniList media entry as consumed by the discovery views.
type Media struct {
	ID                int                 `json:"id"`
	Title             Title               `json:"title"`
	Description       string              `json:"description"`
	Genres            []string            `json:"genres"`
	BannerImage       string              `json:"bannerImage"`
	CoverImage        CoverImage          `json:"coverImage"`
	AverageScore      int                 `json:"averageScore"`
	Season            Season              `json:"season"`
	SeasonYear        int                 `json:"seasonYear"`
	Status            string              `json:"status"`
	Format            MediaFormat         `json:"format"`
	Episodes          int                 `json:"episodes"`
	NextAiringEpisode *NextAiringEpisode  `json:"nextAiringEpisode"`
	ExternalLinks     []ExternalLink      `json:"externalLinks"`
	Studios           StudioConnection    `json:"studios"`
	Relations         *RelationConnection `json:"relations"`
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainDescription returns the description with markup stripped.
func (m *Media) PlainDescription() string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(m.Description, ""))
}

// IsReadable reports whether the entry is read rather than watched.
func (m *Media) IsReadable() bool {
	switch m.Format {
	case FormatManga, FormatNovel, FormatOneShot:
		return true
	}
	return false
}

// MainStudio returns the name of the main studio, or "".
func (m *Media) MainStudio() string {
	if len(m.Studios.Edges) == 0 {
		return ""
	}
	return m.Studios.Edges[0].Node.Name
}

// ExternalSiteID returns the id of the external link matching site
// (case-insensitive), or 0 when absent.
func (m *Media) ExternalSiteID(site string) int {
	for _, link := range m.ExternalLinks {
		if strings.EqualFold(link.Site, site) {
			return link.ID
		}
	}
	return 0
}

// TimeUntilAiring returns the delay until the next episode, or 0 when the
// entry has no scheduled episode.
func (m *Media) TimeUntilAiring() time.Duration {
	if m.NextAiringEpisode == nil {
		return 0
	}
	return time.Duration(m.NextAiringEpisode.TimeUntilAiring) * time.Second
}

// AiringSchedule is one entry of AniList's airing schedule feed.
type AiringSchedule struct {
	ID       int    `json:"id"`
	AiringAt int64  `json:"airingAt"`
	Episode  int    `json:"episode"`
	Media    *Media `json:"media"`
}

// MediaPage is one page of media results.
type MediaPage struct {
	Media []*Media `json:"media"`
}

// AiringSchedulePage is one page of airing schedule results.
type AiringSchedulePage struct {
	AiringSchedules []*AiringSchedule `json:"airingSchedules"`
}

// CategoryLabel names a hero slate category as shown to the user.
type CategoryLabel string

const (
	CategoryAiringToday    CategoryLabel = "Airing Today"
	CategoryAiringTomorrow CategoryLabel = "Airing Tomorrow"
	CategoryTopSeason      CategoryLabel = "Top This Season"
	CategoryUpcoming       CategoryLabel = "Upcoming Anime"
	CategoryAllTimePopular CategoryLabel = "All-Time Popular"
	CategoryTrending       CategoryLabel = "Trending Now"
)

// HeroSlide is one composed hero slate entry. Slides are rebuilt on every
// composition pass and never persisted.
type HeroSlide struct {
	Media    *Media
	Category CategoryLabel
}
