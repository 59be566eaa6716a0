// Package service assembles the discovery screens from the cached-query
// controllers and the hero pipeline.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/okonma/arc/internal/anilist"
	"github.com/okonma/arc/internal/cache"
	"github.com/okonma/arc/internal/domain"
	"github.com/okonma/arc/internal/hero"
	"github.com/okonma/arc/internal/query"
	"github.com/okonma/arc/internal/schedule"
)

// Per-rail page sizes.
const (
	trendingPerPage      = 20
	seasonPerPage        = 15
	releasingPerPage     = 50
	recentlyAiredPerPage = 25

	recentlyAiredWindow = 12 * time.Hour
)

// HomeData is everything the home view renders.
type HomeData struct {
	Hero           []domain.HeroSlide
	AiringToday    []*domain.Media
	StreamingNow   []*domain.AiringSchedule
	AiringTomorrow []*domain.Media
	Top5Season     []*domain.Media
	Trending       []*domain.Media
	PopularRest    []*domain.Media
	NextSeason     []*domain.Media
	AllTimePopular []*domain.Media

	CurrentSeason  domain.SeasonYear
	UpcomingSeason domain.SeasonYear

	// Err is set only when the initial trending load failed; every other
	// section degrades to empty silently.
	Err string
}

// HomeService owns one query controller per home rail and composes the hero
// slate from their results.
type HomeService struct {
	composer  *hero.Composer
	slateSize int
	logger    *slog.Logger

	currentSeason  domain.SeasonYear
	upcomingSeason domain.SeasonYear

	trending       *query.Controller[*domain.MediaPage]
	popularSeason  *query.Controller[*domain.MediaPage]
	nextSeason     *query.Controller[*domain.MediaPage]
	allTimePopular *query.Controller[*domain.MediaPage]
	releasing      *query.Controller[*domain.MediaPage]
	recentlyAired  *query.Controller[*domain.AiringSchedulePage]
}

// NewHomeService creates the home controllers. refreshInterval enables the
// background cache refresh on every rail when positive; slateSize sets the
// hero slate target, non-positive selecting the default.
func NewHomeService(c *cache.Cache, client *anilist.Client, rotation *hero.Rotation, refreshInterval time.Duration, slateSize int, logger *slog.Logger) *HomeService {
	if logger == nil {
		logger = slog.Default()
	}
	if slateSize <= 0 {
		slateSize = hero.DefaultSlateSize
	}

	now := time.Now()
	current := schedule.CurrentSeason(now)
	upcoming := schedule.NextSeason(current)
	airedSince := now.Add(-recentlyAiredWindow).Unix()
	airedUntil := now.Unix()

	opts := query.Options{RefreshInterval: refreshInterval, Logger: logger}

	pageController := func(resource, doc string, vars any) *query.Controller[*domain.MediaPage] {
		return query.NewController(c, query.Key(resource, vars), func(ctx context.Context) (*domain.MediaPage, error) {
			return client.FetchPage(ctx, doc, vars)
		}, opts)
	}

	airedVars := anilist.AiringRangeVars{PerPage: recentlyAiredPerPage, AiringAtGreater: airedSince, AiringAtLesser: airedUntil}

	return &HomeService{
		composer:       hero.NewComposer(rotation),
		slateSize:      slateSize,
		logger:         logger,
		currentSeason:  current,
		upcomingSeason: upcoming,

		trending:       pageController("trending", anilist.QueryTrending, anilist.PageVars{PerPage: trendingPerPage}),
		popularSeason:  pageController("popularSeason", anilist.QueryPopularSeason, anilist.SeasonPageVars{PerPage: seasonPerPage, Season: current.Season, SeasonYear: current.Year}),
		nextSeason:     pageController("nextSeason", anilist.QueryNextSeason, anilist.SeasonPageVars{PerPage: seasonPerPage, Season: upcoming.Season, SeasonYear: upcoming.Year}),
		allTimePopular: pageController("allTimePopular", anilist.QueryAllTimePopular, anilist.PageVars{PerPage: seasonPerPage}),
		releasing:      pageController("releasing", anilist.QueryReleasing, anilist.PageVars{PerPage: releasingPerPage}),
		recentlyAired: query.NewController(c, query.Key("recentlyAired", airedVars), func(ctx context.Context) (*domain.AiringSchedulePage, error) {
			return client.FetchAiringPage(ctx, anilist.QueryRecentlyAired, airedVars)
		}, opts),
	}
}

// HasWarmCache reports whether the trending rail can be served without a
// network call, which gates the startup splash.
func (s *HomeService) HasWarmCache(c *cache.Cache) bool {
	_, ok := cache.Get[*domain.MediaPage](c, s.trending.Key())
	return ok
}

// Load resolves every rail and shapes the home view data. Rails resolve
// concurrently; each one is cache-first with its own loading lifecycle.
func (s *HomeService) Load(ctx context.Context) *HomeData {
	var (
		wg             sync.WaitGroup
		trendingState  query.State[*domain.MediaPage]
		popularState   query.State[*domain.MediaPage]
		upcomingState  query.State[*domain.MediaPage]
		allTimeState   query.State[*domain.MediaPage]
		releasingState query.State[*domain.MediaPage]
		airedState     query.State[*domain.AiringSchedulePage]
	)

	resolve := func(dst *query.State[*domain.MediaPage], ctrl *query.Controller[*domain.MediaPage]) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			*dst = ctrl.Resolve(ctx)
		}()
	}

	resolve(&trendingState, s.trending)
	resolve(&popularState, s.popularSeason)
	resolve(&upcomingState, s.nextSeason)
	resolve(&allTimeState, s.allTimePopular)
	resolve(&releasingState, s.releasing)
	wg.Add(1)
	go func() {
		defer wg.Done()
		airedState = s.recentlyAired.Resolve(ctx)
	}()
	wg.Wait()

	data := &HomeData{
		CurrentSeason:  s.currentSeason,
		UpcomingSeason: s.upcomingSeason,
		Err:            trendingState.Err,
	}

	airing := schedule.AiringSoon(pageMedia(releasingState.Data))
	popular := pageMedia(popularState.Data)
	trending := pageMedia(trendingState.Data)

	data.Hero = s.composeHero(airing, popular, pageMedia(upcomingState.Data), pageMedia(allTimeState.Data), trending)

	data.AiringToday = schedule.AiringToday(airing)
	data.AiringTomorrow = schedule.AiringTomorrow(airing)
	if airedState.Data != nil {
		data.StreamingNow = schedule.StreamingNow(airedState.Data.AiringSchedules)
	}

	heroIDs := make(map[int]struct{}, len(data.Hero))
	for _, slide := range data.Hero {
		heroIDs[slide.Media.ID] = struct{}{}
	}
	data.Trending = schedule.ExcludeIDs(trending, heroIDs)

	data.Top5Season, data.PopularRest = schedule.SplitTop(popular, 5)
	data.NextSeason = pageMedia(upcomingState.Data)
	data.AllTimePopular = pageMedia(allTimeState.Data)

	return data
}

// composeHero builds the category sources in priority order and delegates to
// the composer. Top-this-season draws from the first 10 popular entries.
func (s *HomeService) composeHero(airing, popular, upcoming, allTime, trending []*domain.Media) []domain.HeroSlide {
	topSeason := popular
	if len(topSeason) > 10 {
		topSeason = topSeason[:10]
	}

	priority := []hero.CategorySource{
		{Label: domain.CategoryAiringToday, RotationKey: "airingToday", Candidates: schedule.AiringToday(airing)},
		{Label: domain.CategoryAiringTomorrow, RotationKey: "airingTomorrow", Candidates: schedule.AiringTomorrow(airing)},
		{Label: domain.CategoryTopSeason, RotationKey: "topSeason", Candidates: topSeason},
		{Label: domain.CategoryUpcoming, RotationKey: "upcoming", Candidates: upcoming},
		{Label: domain.CategoryAllTimePopular, RotationKey: "allTimePopular", Candidates: allTime},
	}
	fallback := hero.CategorySource{Label: domain.CategoryTrending, Candidates: trending}

	return s.composer.Compose(priority, fallback, s.slateSize)
}

// Close stops every controller's background refresh.
func (s *HomeService) Close() {
	s.trending.Close()
	s.popularSeason.Close()
	s.nextSeason.Close()
	s.allTimePopular.Close()
	s.releasing.Close()
	s.recentlyAired.Close()
}

func pageMedia(page *domain.MediaPage) []*domain.Media {
	if page == nil {
		return nil
	}
	return page.Media
}
