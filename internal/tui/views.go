package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/okonma/arc/internal/domain"
	"github.com/okonma/arc/internal/search"
	"github.com/okonma/arc/internal/tui/styles"
)

func (m Model) renderSearch() string {
	lines := []string{"", "  " + m.input.View(), ""}

	if m.searched && m.errMsg != "" {
		lines = append(lines, styles.Error.Render("  "+m.errMsg))
		return strings.Join(lines, "\n")
	}

	// While typing, narrow everything already indexed; enter runs the
	// remote search for anything the index does not know about.
	if !m.searched {
		if query := strings.TrimSpace(m.input.Value()); query != "" {
			matches := m.searchSvc.FilterLocal(query)
			if len(matches) > 0 {
				lines = append(lines, styles.Info.Render("  In your library:"))
				for i, match := range matches {
					if i >= 8 {
						break
					}
					row := fmt.Sprintf("  %s  %s", truncate(match.Media.Title.Preferred(), 44), resultInfo(match.Media))
					lines = append(lines, styles.RailItem.Render(row))
				}
				lines = append(lines, "")
			}
		}
		lines = append(lines, styles.Info.Render("  Type a title and press enter."))
		lines = append(lines, styles.Info.Render(fmt.Sprintf("  %d titles indexed locally", m.searchSvc.IndexSize())))
		return strings.Join(lines, "\n")
	}

	if len(m.results) == 0 {
		lines = append(lines, styles.Info.Render("  No results."))
		return strings.Join(lines, "\n")
	}

	for i, media := range m.results {
		row := fmt.Sprintf("%s  %s", truncate(media.Title.Preferred(), 44), resultInfo(media))
		if i == m.cursor {
			lines = append(lines, styles.RailItemSelected.Render("  "+row))
		} else {
			lines = append(lines, styles.RailItem.Render("  "+row))
		}
	}

	lines = append(lines, "", styles.Info.Render("  j/k move · enter details · f toggle favorite · esc home"))
	return strings.Join(lines, "\n")
}

func resultInfo(media *domain.Media) string {
	parts := []string{}
	if media.Format != "" {
		parts = append(parts, string(media.Format))
	}
	if media.SeasonYear > 0 {
		parts = append(parts, fmt.Sprintf("%d", media.SeasonYear))
	}
	if media.AverageScore > 0 {
		parts = append(parts, fmt.Sprintf("%d%%", media.AverageScore))
	}
	return styles.Info.Render(strings.Join(parts, " · "))
}

func (m Model) renderMyList() string {
	if !m.myListSvc.SignedIn() {
		return styles.Info.Render("\n  Not signed in. Run arc -login to connect your account.\n")
	}
	if m.myListLoading {
		return fmt.Sprintf("\n  %s Loading your lists...\n", m.spinner.View())
	}
	if m.errMsg != "" {
		return styles.Error.Render("\n  " + m.errMsg + "\n")
	}
	if m.myList == nil || len(m.myList.Lists) == 0 {
		return styles.Info.Render("\n  No lists yet.\n")
	}

	sections := []string{}
	if p := m.myList.Profile; p != nil {
		header := p.DisplayName
		if header == "" {
			header = p.Username
		}
		if p.Username != "" {
			header += styles.Info.Render("  @" + p.Username)
		}
		sections = append(sections, styles.Title.Render("  "+header))
	}

	filter := strings.TrimSpace(m.input.Value())
	if m.view == ViewMyList && (m.input.Focused() || filter != "") {
		sections = append(sections, "  "+m.input.View())
	}

	for _, ul := range m.myList.Lists {
		entries := filterByTitle(ul.Media, filter)
		if filter != "" && len(entries) == 0 {
			continue
		}
		sections = append(sections, styles.RailTitle.Render(fmt.Sprintf("  %s (%d)", ul.List.Name, len(entries))))
		if len(entries) == 0 {
			sections = append(sections, styles.Info.Render("    empty"))
			continue
		}
		for _, media := range entries {
			sections = append(sections, styles.RailItem.Render("    "+truncate(media.Title.Preferred(), 48))+"  "+resultInfo(media))
		}
	}
	if len(sections) == 0 {
		return styles.Info.Render("\n  Nothing matches.\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// filterByTitle narrows entries to those loosely matching the filter text.
func filterByTitle(entries []*domain.Media, filter string) []*domain.Media {
	if filter == "" {
		return entries
	}
	out := make([]*domain.Media, 0, len(entries))
	for _, media := range entries {
		if search.MatchesTitle(filter, media) {
			out = append(out, media)
		}
	}
	return out
}

func (m Model) renderSchedule() string {
	if m.homeLoading {
		return fmt.Sprintf("\n  %s Loading schedule...\n", m.spinner.View())
	}
	if m.home == nil {
		return styles.Info.Render("\n  No schedule data.\n")
	}

	sections := []string{
		m.renderScheduleGroup("Airing Today", m.home.AiringToday),
		m.renderScheduleGroup("Airing Tomorrow", m.home.AiringTomorrow),
		m.renderRecentlyAired(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderScheduleGroup(label string, entries []*domain.Media) string {
	lines := []string{styles.RailTitle.Render("  " + label)}
	if len(entries) == 0 {
		lines = append(lines, styles.Info.Render("    nothing scheduled"))
		return strings.Join(lines, "\n")
	}
	for _, media := range entries {
		row := "    " + truncate(media.Title.Preferred(), 44)
		if next := media.NextAiringEpisode; next != nil {
			row += styles.Info.Render(fmt.Sprintf("  ep %d in %s", next.Episode, formatDelay(media.TimeUntilAiring())))
		}
		lines = append(lines, styles.RailItem.Render(row))
	}
	return strings.Join(lines, "\n")
}

// renderRecentlyAired lists episodes that aired in the last half day.
func (m Model) renderRecentlyAired() string {
	lines := []string{styles.RailTitle.Render("  Streaming Now")}
	if len(m.home.StreamingNow) == 0 {
		lines = append(lines, styles.Info.Render("    nothing aired recently"))
		return strings.Join(lines, "\n")
	}
	for _, entry := range m.home.StreamingNow {
		if entry.Media == nil {
			continue
		}
		aired := time.Since(time.Unix(entry.AiringAt, 0))
		row := "    " + truncate(entry.Media.Title.Preferred(), 44)
		row += styles.Info.Render(fmt.Sprintf("  ep %d aired %s ago", entry.Episode, formatDelay(aired)))
		lines = append(lines, styles.RailItem.Render(row))
	}
	return strings.Join(lines, "\n")
}
