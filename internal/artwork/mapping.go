package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/okonma/arc/internal/cache"
	"github.com/okonma/arc/internal/domain"
)

// Mapper resolves an AniList entry to a TVDB series id. It prefers explicit
// external links anywhere in the entry's prequel/parent chain, and falls
// back to a TVDB title search with the root entry's cleaned title. The root
// is what image databases index, not the per-cour AniList entries.
type Mapper struct {
	tvdbEndpoint string
	tvdbKey      string
	cache        *cache.Cache
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewMapper creates an id mapper using the TVDB search API.
func NewMapper(tvdbEndpoint, tvdbKey string, c *cache.Cache, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{
		tvdbEndpoint: tvdbEndpoint,
		tvdbKey:      tvdbKey,
		cache:        c,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SearchResult is one TVDB series search hit.
type SearchResult struct {
	TVDBID string `json:"tvdb_id"`
	Name   string `json:"name"`
	Year   string `json:"year"`
}

// TVDBID resolves media to a TVDB series id, 0 when no mapping exists.
// Results, including the absence of a mapping, are cached.
func (m *Mapper) TVDBID(ctx context.Context, media *domain.Media) (int, error) {
	cacheKey := fmt.Sprintf("mapping_anilist_%d_tvdbid", media.ID)
	if id, ok := cache.Get[int](m.cache, cacheKey); ok {
		return id, nil
	}

	chain := seriesChain(media)

	// Explicit TVDB links win, root first.
	for _, entry := range chain {
		if id := entry.ExternalSiteID("thetvdb"); id != 0 {
			m.cache.Set(cacheKey, id, 0)
			return id, nil
		}
	}

	root := chain[0]
	title := cleanTitle(root.Title.Preferred())
	if title == "" {
		m.cache.Set(cacheKey, 0, 0)
		return 0, nil
	}

	results, err := m.search(ctx, title)
	if err != nil {
		return 0, err
	}

	id := 0
	if best := bestMatch(results, root.SeasonYear); best != nil {
		id, _ = strconv.Atoi(best.TVDBID)
	}
	m.cache.Set(cacheKey, id, 0)
	return id, nil
}

func (m *Mapper) search(ctx context.Context, title string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("query", title)
	q.Set("type", "series")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.tvdbEndpoint+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+m.tvdbKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tvdb search failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []SearchResult `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse tvdb response: %w", err)
	}
	return envelope.Data, nil
}

// seriesChain walks PREQUEL/PARENT relations up to the root and returns the
// chain ordered root first.
func seriesChain(media *domain.Media) []*domain.Media {
	chain := []*domain.Media{media}
	current := media
	for current.Relations != nil {
		var parent *domain.Media
		for _, edge := range current.Relations.Edges {
			if edge.RelationType == "PREQUEL" || edge.RelationType == "PARENT" {
				parent = edge.Node
				break
			}
		}
		if parent == nil {
			break
		}
		chain = append([]*domain.Media{parent}, chain...)
		current = parent
	}
	return chain
}

// bestMatch prefers a result whose year matches the media's season year,
// else the first result.
func bestMatch(results []SearchResult, seasonYear int) *SearchResult {
	if len(results) == 0 {
		return nil
	}
	if seasonYear != 0 {
		want := strconv.Itoa(seasonYear)
		for i := range results {
			if results[i].Year == want {
				return &results[i]
			}
		}
	}
	return &results[0]
}

// Season/part suffixes that appear on AniList entries but not on the
// consolidated series records image databases index.
var titleSuffixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*-\s*Cour\s+\d+.*$`),
	regexp.MustCompile(`(?i)(\s*[:\-])\s*(The\s+)?(Final\s+)?Season.*$`),
	regexp.MustCompile(`(?i)(\s*[:\-])\s*Part\s+\d+.*$`),
	regexp.MustCompile(`(?i)(\s*[:\-])\s*(Season|Part|Cour)\s+\d+.*$`),
	regexp.MustCompile(`(?i)\s*\(TV\)`),
	regexp.MustCompile(`(?i)\s*:?\s*(1st|2nd|3rd|[4-9]th)\s+Season.*$`),
	regexp.MustCompile(`(?i)\s*:?\s*(First|Second|Third|Fourth|Fifth|Sixth|Seventh)\s+Season.*$`),
	regexp.MustCompile(`\s+(II|III|IV|V|VI|VII|VIII|IX|X)$`),
}

func cleanTitle(title string) string {
	for _, pattern := range titleSuffixPatterns {
		title = pattern.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}
