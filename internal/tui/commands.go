package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okonma/arc/internal/anilist"
	"github.com/okonma/arc/internal/artwork"
	"github.com/okonma/arc/internal/hero"
	"github.com/okonma/arc/internal/search"
	"github.com/okonma/arc/internal/service"
)

const statusLinger = 3 * time.Second

// LoadHomeCmd resolves every home rail and composes the hero slate.
func LoadHomeCmd(svc *service.HomeService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		return HomeLoadedMsg{Data: svc.Load(ctx)}
	}
}

// CarouselTickCmd schedules the next auto-advance tick.
func CarouselTickCmd(gen int) tea.Cmd {
	return tea.Tick(hero.AdvanceInterval, func(time.Time) tea.Msg {
		return CarouselTickMsg{Gen: gen}
	})
}

// CarouselResumeCmd schedules the post-interaction resume.
func CarouselResumeCmd(gen int) tea.Cmd {
	return tea.Tick(hero.ResumeDelay, func(time.Time) tea.Msg {
		return CarouselResumeMsg{Gen: gen}
	})
}

// PrefetchArtworkCmd waits for the hero artwork prefetch to settle.
func PrefetchArtworkCmd(prefetch *artwork.Prefetch) tea.Cmd {
	return func() tea.Msg {
		for prefetch.Loading() {
			time.Sleep(100 * time.Millisecond)
		}
		return ArtworkReadyMsg{}
	}
}

// SearchCmd runs a remote search.
func SearchCmd(svc *search.Service, queryText string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		results, err := svc.SearchRemote(ctx, anilist.SearchVars{Search: queryText})
		return SearchResultsMsg{Query: queryText, Results: results, Err: err}
	}
}

// LoadDetailCmd opens one media entry with its artwork resolved.
func LoadDetailCmd(svc *service.DetailService, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := svc.Load(ctx, id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}

// LoadMyListCmd loads the signed-in user's profile and lists.
func LoadMyListCmd(svc *service.MyListService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, err := svc.Load(ctx)
		return MyListLoadedMsg{Data: data, Err: err}
	}
}

// ToggleFavoriteCmd flips membership of a media entry in the favorites list.
func ToggleFavoriteCmd(svc *service.MyListService, mediaID int, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		added, err := svc.ToggleFavorite(ctx, mediaID)
		return ListToggledMsg{Title: title, Added: added, Err: err}
	}
}

// ClearStatusCmd clears the status line after a delay.
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(statusLinger, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
