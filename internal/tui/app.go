// Package tui is the terminal front end: a home view with the rotating hero
// slate and discovery rails, plus search, my-list, schedule, and detail
// views.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okonma/arc/internal/artwork"
	"github.com/okonma/arc/internal/domain"
	"github.com/okonma/arc/internal/hero"
	"github.com/okonma/arc/internal/search"
	"github.com/okonma/arc/internal/service"
	"github.com/okonma/arc/internal/tui/styles"
)

// View identifies the active screen.
type View int

const (
	ViewHome View = iota
	ViewSearch
	ViewMyList
	ViewSchedule
	ViewDetail
)

// Model is the root bubbletea model.
type Model struct {
	homeSvc   *service.HomeService
	myListSvc *service.MyListService
	detailSvc *service.DetailService
	searchSvc *search.Service
	artSvc    *artwork.Service
	logger    *slog.Logger

	view   View
	width  int
	height int

	spinner spinner.Model
	input   textinput.Model

	// Home state
	home        *service.HomeData
	homeLoading bool
	warm        bool
	artLoading  bool
	carousel    *hero.Carousel
	prefetch    *artwork.Prefetch
	tickGen     int

	// Search state
	results  []*domain.Media
	cursor   int
	searched bool

	// My-list state
	myList        *service.MyListData
	myListLoading bool

	// Detail state
	detail        *service.Detail
	detailLoading bool
	returnView    View

	status string
	errMsg string
}

// NewModel creates the root model. warm suppresses the startup splash when
// the home rails are already cached.
func NewModel(homeSvc *service.HomeService, myListSvc *service.MyListService, detailSvc *service.DetailService, searchSvc *search.Service, artSvc *artwork.Service, warm bool, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	input := textinput.New()
	input.Placeholder = "Search anime..."
	input.CharLimit = 100

	return Model{
		homeSvc:     homeSvc,
		myListSvc:   myListSvc,
		detailSvc:   detailSvc,
		searchSvc:   searchSvc,
		artSvc:      artSvc,
		logger:      logger,
		spinner:     sp,
		input:       input,
		homeLoading: true,
		warm:        warm,
		carousel:    hero.NewCarousel(0),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, LoadHomeCmd(m.homeSvc))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.homeLoading && !m.myListLoading && !m.detailLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case HomeLoadedMsg:
		return m.handleHomeLoaded(msg)

	case CarouselTickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		m.carousel.Advance()
		m.carousel.TransitionEnd()
		if m.carousel.Phase() == hero.PhaseRunning {
			return m, CarouselTickCmd(m.tickGen)
		}
		return m, nil

	case CarouselResumeMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		m.carousel.Resume()
		return m, CarouselTickCmd(m.tickGen)

	case ArtworkReadyMsg:
		m.artLoading = false
		return m, nil

	case SearchResultsMsg:
		m.searched = true
		m.cursor = 0
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			m.results = nil
			return m, nil
		}
		m.errMsg = ""
		m.results = msg.Results
		m.searchSvc.AddToIndex(msg.Results)
		return m, nil

	case DetailLoadedMsg:
		m.detailLoading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.detail = msg.Detail
		return m, nil

	case MyListLoadedMsg:
		m.myListLoading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.myList = msg.Data
		return m, nil

	case ListToggledMsg:
		if msg.Err != nil {
			m.status = styles.Error.Render("Could not update list: " + msg.Err.Error())
		} else if msg.Added {
			m.status = "Added " + msg.Title + " to Favorites"
		} else {
			m.status = "Removed " + msg.Title + " from Favorites"
		}
		return m, ClearStatusCmd()

	case ClearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleHomeLoaded(msg HomeLoadedMsg) (tea.Model, tea.Cmd) {
	m.homeLoading = false
	m.home = msg.Data
	m.errMsg = msg.Data.Err

	// Seed the local fuzzy index with everything the home view fetched.
	m.searchSvc.AddToIndex(msg.Data.Trending)
	m.searchSvc.AddToIndex(msg.Data.Top5Season)
	m.searchSvc.AddToIndex(msg.Data.PopularRest)
	m.searchSvc.AddToIndex(msg.Data.NextSeason)
	m.searchSvc.AddToIndex(msg.Data.AllTimePopular)

	if m.prefetch != nil {
		m.prefetch.Close()
	}

	m.carousel = hero.NewCarousel(len(msg.Data.Hero))
	m.tickGen++

	cmds := []tea.Cmd{}
	if len(msg.Data.Hero) > 0 {
		m.artLoading = true
		m.prefetch = m.artSvc.PrefetchSlate(msg.Data.Hero)
		cmds = append(cmds, PrefetchArtworkCmd(m.prefetch))
	}
	if m.carousel.Phase() == hero.PhaseRunning {
		cmds = append(cmds, CarouselTickCmd(m.tickGen))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The text input swallows everything except navigation keys while
	// focused, whether it holds a search query or a my-list filter.
	if m.input.Focused() {
		switch msg.String() {
		case "ctrl+c":
			if m.prefetch != nil {
				m.prefetch.Close()
			}
			return m, tea.Quit
		case "esc":
			m.input.Blur()
			if m.view == ViewMyList {
				m.input.SetValue("")
			}
			return m, nil
		case "enter":
			if m.view == ViewMyList {
				m.input.Blur()
				return m, nil
			}
			queryText := m.input.Value()
			if queryText == "" {
				return m, nil
			}
			m.input.Blur()
			return m, SearchCmd(m.searchSvc, queryText)
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if m.prefetch != nil {
			m.prefetch.Close()
		}
		return m, tea.Quit

	case "esc":
		if m.view == ViewDetail {
			m.view = m.returnView
			return m, nil
		}
		m.view = ViewHome
		return m, nil

	case "enter":
		return m.openDetail()

	case "/":
		// On the my-list view the input narrows the lists in place; on
		// every other view it opens the search screen.
		if m.view == ViewMyList {
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		}
		m.view = ViewSearch
		m.input.Focus()
		return m, textinput.Blink

	case "l":
		m.view = ViewMyList
		if m.myListSvc.SignedIn() {
			m.myListLoading = true
			return m, tea.Batch(m.spinner.Tick, LoadMyListCmd(m.myListSvc))
		}
		return m, nil

	case "s":
		m.view = ViewSchedule
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if m.view != ViewHome {
			return m, nil
		}
		k := int(msg.String()[0] - '1')
		if k >= m.carousel.Len() {
			return m, nil
		}
		// Manual navigation: stop the tick chain, jump, resume later.
		m.carousel.Select(k)
		m.tickGen++
		return m, CarouselResumeCmd(m.tickGen)

	case "up", "k":
		if m.view == ViewSearch && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.view == ViewSearch && m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil

	case "f":
		return m.toggleFavorite()
	}

	return m, nil
}

// openDetail opens the detail view for the active hero slide or the
// highlighted search result.
func (m Model) openDetail() (tea.Model, tea.Cmd) {
	var id int
	switch m.view {
	case ViewHome:
		if m.home == nil || len(m.home.Hero) == 0 {
			return m, nil
		}
		dot := m.carousel.ActiveDot()
		if dot >= len(m.home.Hero) {
			dot = 0
		}
		id = m.home.Hero[dot].Media.ID
	case ViewSearch:
		if !m.searched || m.cursor >= len(m.results) {
			return m, nil
		}
		id = m.results[m.cursor].ID
	default:
		return m, nil
	}

	m.returnView = m.view
	m.view = ViewDetail
	m.detail = nil
	m.detailLoading = true
	return m, tea.Batch(m.spinner.Tick, LoadDetailCmd(m.detailSvc, id))
}

// toggleFavorite flips the highlighted search result's membership in the
// favorites list.
func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	if m.view != ViewSearch || m.cursor >= len(m.results) {
		return m, nil
	}
	if !m.myListSvc.SignedIn() {
		m.status = "Sign in to manage lists (arc -login)"
		return m, ClearStatusCmd()
	}

	selected := m.results[m.cursor]
	return m, ToggleFavoriteCmd(m.myListSvc, selected.ID, selected.Title.Preferred())
}

func (m Model) View() string {
	header := m.renderTabs()

	var body string
	switch m.view {
	case ViewHome:
		body = m.renderHome()
	case ViewSearch:
		body = m.renderSearch()
	case ViewMyList:
		body = m.renderMyList()
	case ViewSchedule:
		body = m.renderSchedule()
	case ViewDetail:
		body = m.renderDetail()
	}

	sections := []string{header, body}
	if m.status != "" {
		sections = append(sections, styles.Status.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	tabs := []struct {
		label string
		view  View
	}{
		{"Home", ViewHome},
		{"Search /", ViewSearch},
		{"My List l", ViewMyList},
		{"Schedule s", ViewSchedule},
	}

	active := m.view
	if active == ViewDetail {
		active = m.returnView
	}

	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.view == active {
			rendered = append(rendered, styles.TabActive.Render(t.label))
		} else {
			rendered = append(rendered, styles.Tab.Render(t.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
