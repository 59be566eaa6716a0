package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/okonma/arc/internal/anilist"
	"github.com/okonma/arc/internal/artwork"
	"github.com/okonma/arc/internal/cache"
	"github.com/okonma/arc/internal/domain"
)

// Detail is one media entry expanded for the detail view.
type Detail struct {
	Media *domain.Media

	// Artwork is nil when no fanart assets exist; the view falls back to
	// the AniList cover image.
	Artwork *artwork.Data
}

// DetailService resolves the full record behind a single media entry:
// episodes, relations, and resolved artwork.
type DetailService struct {
	client  *anilist.Client
	cache   *cache.Cache
	artwork *artwork.Service
	logger  *slog.Logger
}

// NewDetailService creates the detail service.
func NewDetailService(client *anilist.Client, c *cache.Cache, art *artwork.Service, logger *slog.Logger) *DetailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailService{client: client, cache: c, artwork: art, logger: logger}
}

// Load returns the detail record for id. The media lookup shares the detail
// cache with list resolution, so opening an entry that a list already
// resolved costs no network call.
func (s *DetailService) Load(ctx context.Context, id int) (*Detail, error) {
	key := fmt.Sprintf("anilist_detail_%d", id)
	media, ok := cache.Get[*domain.Media](s.cache, key)
	if !ok {
		var err error
		media, err = s.client.FetchDetail(ctx, id)
		if err != nil {
			s.logger.Error("failed to load detail", "mediaID", id, "error", err)
			return nil, err
		}
		s.cache.Set(key, media, 0)
	}

	return &Detail{
		Media:   media,
		Artwork: s.artwork.ForMedia(ctx, media),
	}, nil
}
