// Package search provides title search over media: a local fuzzy filter
// across everything already cached, and the remote AniList search query for
// everything else.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/okonma/arc/internal/anilist"
	"github.com/okonma/arc/internal/domain"
)

// Index implements fuzzy.Source over indexed media for zero-allocation
// matching.
type Index struct {
	items       []*domain.Media
	lowerTitles []string // Pre-computed lowercase titles
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.items) }

// Result is one local filter hit with match metadata for highlighting.
type Result struct {
	Media          *domain.Media
	MatchedIndexes []int // Character positions that matched
	Score          int
}

// Service handles local fuzzy filtering and remote search.
type Service struct {
	client *anilist.Client
	logger *slog.Logger

	mu      sync.RWMutex
	index   *Index
	indexed map[int]bool // ids already in the index
}

// NewService creates a search service.
func NewService(client *anilist.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:  client,
		logger:  logger,
		index:   &Index{},
		indexed: make(map[int]bool),
	}
}

// AddToIndex adds media to the local filter index, skipping duplicates.
func (s *Service) AddToIndex(media []*domain.Media) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range media {
		if m == nil || s.indexed[m.ID] {
			continue
		}
		s.indexed[m.ID] = true
		s.index.items = append(s.index.items, m)
		s.index.lowerTitles = append(s.index.lowerTitles, strings.ToLower(m.Title.Preferred()))
	}
}

// IndexSize returns the number of indexed titles.
func (s *Service) IndexSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Len()
}

// FilterLocal ranks indexed media against query.
func (s *Service) FilterLocal(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := fuzzy.FindFrom(query, s.index)
	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		results = append(results, Result{
			Media:          s.index.items[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		})
	}
	return results
}

// MatchesTitle reports whether query loosely matches any of the entry's
// title variants, used by list views for quick narrowing.
func MatchesTitle(query string, m *domain.Media) bool {
	if query == "" {
		return true
	}
	return lfuzzy.MatchNormalizedFold(query, m.Title.Romaji) ||
		lfuzzy.MatchNormalizedFold(query, m.Title.English) ||
		lfuzzy.MatchNormalizedFold(query, m.Title.Native)
}

// SearchRemote runs the AniList search query.
func (s *Service) SearchRemote(ctx context.Context, vars anilist.SearchVars) ([]*domain.Media, error) {
	if vars.PerPage <= 0 {
		vars.PerPage = 30
	}
	page, err := s.client.FetchPage(ctx, anilist.QuerySearch, vars)
	if err != nil {
		s.logger.Error("remote search failed", "search", vars.Search, "error", err)
		return nil, err
	}
	return page.Media, nil
}
