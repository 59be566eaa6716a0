package artwork

import (
	"context"
	"sync"

	"github.com/okonma/arc/internal/domain"
)

// Prefetch warms the artwork cache for a composed hero slate so slides
// render with their imagery already resolved. The handle's loading state
// stops updating once closed; lookups already in flight run to completion in
// the background and still land in the cache.
type Prefetch struct {
	mu      sync.Mutex
	loading bool
	closed  bool
}

// PrefetchSlate resolves artwork for every slide concurrently and returns a
// handle reporting completion.
func (s *Service) PrefetchSlate(slides []domain.HeroSlide) *Prefetch {
	p := &Prefetch{loading: len(slides) > 0}
	if len(slides) == 0 {
		return p
	}

	var wg sync.WaitGroup
	for _, slide := range slides {
		wg.Add(1)
		go func(media *domain.Media) {
			defer wg.Done()
			s.ForMedia(context.Background(), media)
		}(slide.Media)
	}

	go func() {
		wg.Wait()
		p.mu.Lock()
		if !p.closed {
			p.loading = false
		}
		p.mu.Unlock()
	}()

	return p
}

// Loading reports whether lookups are still outstanding. A closed handle
// always reports false, so pollers watching an abandoned prefetch terminate.
func (p *Prefetch) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	return p.loading
}

// Close settles the handle's loading state. In-flight lookups are not
// canceled; their results still warm the cache.
func (p *Prefetch) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}
