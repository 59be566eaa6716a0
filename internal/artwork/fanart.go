// Package artwork resolves rich imagery (logos, posters, banners) for media
// entries: an AniList-to-TVDB id mapping step followed by a fanart.tv
// lookup. Every lookup result, including "nothing found", goes through the
// TTL cache so hero rotations do not hammer the image services.
package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/okonma/arc/internal/cache"
	"github.com/okonma/arc/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Images is the raw fanart.tv response subset the views consume.
type Images struct {
	TVPoster        []Image `json:"tvposter"`
	HDTVLogo        []Image `json:"hdtvlogo"`
	ShowBackground  []Image `json:"showbackground"`
	MoviePoster     []Image `json:"movieposter"`
	HDMovieLogo     []Image `json:"hdmovielogo"`
	MovieBackground []Image `json:"moviebackground"`
}

// Image is one fanart.tv asset.
type Image struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

// Data is the resolved artwork for one media entry.
type Data struct {
	PosterURL string `json:"posterUrl"`
	LogoURL   string `json:"logoUrl"`
	BannerURL string `json:"bannerUrl"`
}

// Service resolves artwork for media entries.
type Service struct {
	fanartEndpoint string
	fanartKey      string
	mapper         *Mapper
	cache          *cache.Cache
	httpClient     *http.Client
	logger         *slog.Logger
}

// NewService creates an artwork service.
func NewService(fanartEndpoint, fanartKey string, mapper *Mapper, c *cache.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fanartEndpoint: fanartEndpoint,
		fanartKey:      fanartKey,
		mapper:         mapper,
		cache:          c,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// fetchImages calls one fanart.tv endpoint, serving and filling the cache.
// A 404 is cached as an empty result so the miss is not retried every pass.
func (s *Service) fetchImages(ctx context.Context, endpoint string) (*Images, error) {
	cacheKey := "fanart_" + endpoint
	if images, ok := cache.Get[*Images](s.cache, cacheKey); ok {
		return images, nil
	}

	reqURL := fmt.Sprintf("%s/%s?api_key=%s", s.fanartEndpoint, endpoint, url.QueryEscape(s.fanartKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		s.cache.Set(cacheKey, (*Images)(nil), 0)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fanart request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var images Images
	if err := json.Unmarshal(body, &images); err != nil {
		return nil, fmt.Errorf("failed to parse fanart response: %w", err)
	}

	s.cache.Set(cacheKey, &images, 0)
	return &images, nil
}

// ForMedia resolves artwork for one media entry. A nil result means no
// artwork exists; failures also degrade to nil, since the views always have
// the AniList cover image to fall back on.
func (s *Service) ForMedia(ctx context.Context, media *domain.Media) *Data {
	if media == nil || media.ID == 0 {
		return nil
	}

	cacheKey := fmt.Sprintf("fanart_data_for_anilist_%d", media.ID)
	if data, ok := cache.Get[*Data](s.cache, cacheKey); ok {
		return data
	}

	var images *Images
	sourceIsTV := false

	tvdbID, err := s.mapper.TVDBID(ctx, media)
	if err != nil {
		s.logger.Warn("tvdb mapping failed", "mediaID", media.ID, "error", err)
		return nil
	}

	switch {
	case tvdbID != 0:
		images, err = s.fetchImages(ctx, fmt.Sprintf("tv/%d", tvdbID))
		sourceIsTV = true
	case media.Format == domain.FormatMovie:
		if tmdbID := media.ExternalSiteID("themoviedb"); tmdbID != 0 {
			images, err = s.fetchImages(ctx, fmt.Sprintf("movies/%d", tmdbID))
		}
	}
	if err != nil {
		s.logger.Warn("fanart lookup failed", "mediaID", media.ID, "error", err)
		return nil
	}

	data := buildData(images, sourceIsTV)
	s.cache.Set(cacheKey, data, 0)
	return data
}

func buildData(images *Images, sourceIsTV bool) *Data {
	if images == nil {
		return nil
	}
	var data Data
	if sourceIsTV {
		data.PosterURL = firstURL(images.TVPoster)
		data.LogoURL = firstURL(images.HDTVLogo)
		data.BannerURL = firstURL(images.ShowBackground)
	} else {
		data.PosterURL = firstURL(images.MoviePoster)
		data.LogoURL = firstURL(images.HDMovieLogo)
		data.BannerURL = firstURL(images.MovieBackground)
	}
	if data == (Data{}) {
		return nil
	}
	return &data
}

func firstURL(images []Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
