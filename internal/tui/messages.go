package tui

import (
	"github.com/okonma/arc/internal/domain"
	"github.com/okonma/arc/internal/service"
)

// HomeLoadedMsg carries the resolved home view data.
type HomeLoadedMsg struct {
	Data *service.HomeData
}

// CarouselTickMsg is an auto-advance tick. Gen guards against stale tick
// chains surviving a manual interaction.
type CarouselTickMsg struct {
	Gen int
}

// CarouselResumeMsg restarts auto-advance after the manual cool-down.
type CarouselResumeMsg struct {
	Gen int
}

// ArtworkReadyMsg signals that the hero artwork prefetch finished.
type ArtworkReadyMsg struct{}

// SearchResultsMsg carries remote search results.
type SearchResultsMsg struct {
	Query   string
	Results []*domain.Media
	Err     error
}

// DetailLoadedMsg carries one opened media entry.
type DetailLoadedMsg struct {
	Detail *service.Detail
	Err    error
}

// MyListLoadedMsg carries the signed-in user's profile and lists.
type MyListLoadedMsg struct {
	Data *service.MyListData
	Err  error
}

// ListToggledMsg reports a favorites toggle.
type ListToggledMsg struct {
	Title string
	Added bool
	Err   error
}

// ClearStatusMsg clears the transient status line.
type ClearStatusMsg struct{}
