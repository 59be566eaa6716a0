package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/okonma/arc/internal/domain"
	"github.com/okonma/arc/internal/tui/styles"
)

const (
	descriptionLimit = 280
	railItemLimit    = 6
)

func (m Model) renderHome() string {
	if m.homeLoading {
		// A warm cache resolves almost immediately; no splash.
		if m.warm {
			return ""
		}
		return fmt.Sprintf("\n  %s Loading anime...\n", m.spinner.View())
	}
	if m.home == nil {
		return "\n  No data.\n"
	}

	sections := []string{m.renderHeroSlide()}

	if m.errMsg != "" {
		sections = append(sections, styles.Error.Render("  "+m.errMsg))
	}

	sections = append(sections,
		m.renderRail("Airing Today", m.home.AiringToday),
		m.renderRail("Streaming Now", streamingMedia(m.home.StreamingNow)),
		m.renderRail("Airing Tomorrow", m.home.AiringTomorrow),
		m.renderRail(fmt.Sprintf("Top This Season (%s)", m.home.CurrentSeason), m.home.Top5Season),
		m.renderRail("Trending Now", m.home.Trending),
		m.renderRail(fmt.Sprintf("Popular This Season (%s)", m.home.CurrentSeason), m.home.PopularRest),
		m.renderRail(fmt.Sprintf("Upcoming (%s)", m.home.UpcomingSeason), m.home.NextSeason),
		m.renderRail("All-Time Popular", m.home.AllTimePopular),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeroSlide renders the active hero slate entry with its category
// label, metadata line, and the dot strip.
func (m Model) renderHeroSlide() string {
	slides := m.home.Hero
	if len(slides) == 0 {
		return styles.Info.Render("\n  Nothing to feature right now.\n")
	}

	dot := m.carousel.ActiveDot()
	if dot >= len(slides) {
		dot = 0
	}
	slide := slides[dot]
	media := slide.Media

	lines := []string{
		styles.Category.Render(strings.ToUpper(string(slide.Category))),
		styles.Title.Render(media.Title.Preferred()),
		m.heroInfoLine(media),
	}

	if countdown := heroCountdown(media); countdown != "" {
		lines = append(lines, styles.Info.Render(countdown))
	}

	if desc := media.PlainDescription(); desc != "" {
		lines = append(lines, "", styles.Description.Render(truncate(desc, descriptionLimit)))
	}

	if m.artLoading {
		lines = append(lines, "", styles.Info.Render("fetching artwork..."))
	}

	lines = append(lines, "", m.renderDots(len(slides), dot))

	width := m.width - 8
	if width < 40 {
		width = 40
	}
	return styles.Hero.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) heroInfoLine(media *domain.Media) string {
	parts := []string{}
	if media.AverageScore > 0 {
		parts = append(parts, styles.Score.Render(fmt.Sprintf("%d%%", media.AverageScore)))
	}
	if media.SeasonYear > 0 {
		parts = append(parts, styles.Info.Render(fmt.Sprintf("%s %d", media.Season, media.SeasonYear)))
	}
	if media.Format != "" {
		parts = append(parts, styles.Info.Render(string(media.Format)))
	}
	if studio := media.MainStudio(); studio != "" {
		parts = append(parts, styles.Info.Render(studio))
	}
	return strings.Join(parts, styles.Info.Render(" · "))
}

// heroCountdown formats the next-episode delay for releasing entries.
func heroCountdown(media *domain.Media) string {
	next := media.NextAiringEpisode
	if next == nil {
		return ""
	}
	return fmt.Sprintf("Episode %d in %s", next.Episode, formatDelay(media.TimeUntilAiring()))
}

func formatDelay(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
	days := int(d.Hours()) / 24
	return fmt.Sprintf("%dd %dh", days, int(d.Hours())%24)
}

func (m Model) renderDots(n, active int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == active {
			b.WriteString(styles.DotActive.Render("●"))
		} else {
			b.WriteString(styles.DotInactive.Render("○"))
		}
	}
	b.WriteString(styles.Info.Render(fmt.Sprintf("  %d/%d", active+1, n)))
	return b.String()
}

// renderRail renders one discovery row as a title line plus a single line of
// entries. Empty rails are omitted entirely.
func (m Model) renderRail(label string, entries []*domain.Media) string {
	if len(entries) == 0 {
		return ""
	}

	limit := railItemLimit
	if limit > len(entries) {
		limit = len(entries)
	}

	items := make([]string, 0, limit)
	for _, media := range entries[:limit] {
		items = append(items, styles.RailItem.Render(truncate(media.Title.Preferred(), 28)))
	}

	line := "  " + strings.Join(items, styles.Info.Render("  •  "))
	if len(entries) > limit {
		line += styles.Info.Render(fmt.Sprintf("  (+%d more)", len(entries)-limit))
	}

	return styles.RailTitle.Render("  "+label) + "\n" + line
}

func streamingMedia(schedules []*domain.AiringSchedule) []*domain.Media {
	out := make([]*domain.Media, 0, len(schedules))
	for _, s := range schedules {
		if s.Media != nil {
			out = append(out, s.Media)
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndex(s[:max], " ")
	if cut < max/2 {
		cut = max
	}
	return s[:cut] + "…"
}
