package tui

import (
	"fmt"
	"strings"

	"github.com/okonma/arc/internal/tui/styles"
)

// renderDetail renders the opened media entry: full metadata, description,
// resolved artwork links, and related entries.
func (m Model) renderDetail() string {
	if m.detailLoading {
		return fmt.Sprintf("\n  %s Loading details...\n", m.spinner.View())
	}
	if m.errMsg != "" {
		return styles.Error.Render("\n  " + m.errMsg + "\n")
	}
	if m.detail == nil || m.detail.Media == nil {
		return styles.Info.Render("\n  Nothing to show.\n")
	}

	media := m.detail.Media

	lines := []string{
		"",
		"  " + styles.Title.Render(media.Title.Preferred()),
		"  " + m.heroInfoLine(media),
	}

	if media.Episodes > 0 {
		unit := "episodes"
		if media.IsReadable() {
			unit = "chapters"
		}
		lines = append(lines, "  "+styles.Info.Render(fmt.Sprintf("%d %s", media.Episodes, unit)))
	}
	if countdown := heroCountdown(media); countdown != "" {
		lines = append(lines, "  "+styles.Info.Render(countdown))
	}
	if len(media.Genres) > 0 {
		lines = append(lines, "  "+styles.Info.Render(strings.Join(media.Genres, " · ")))
	}

	if desc := media.PlainDescription(); desc != "" {
		lines = append(lines, "", "  "+styles.Description.Render(desc))
	}

	if art := m.detail.Artwork; art != nil {
		lines = append(lines, "", "  "+styles.RailTitle.Render("Artwork"))
		for _, entry := range []struct{ label, url string }{
			{"poster", art.PosterURL},
			{"logo", art.LogoURL},
			{"banner", art.BannerURL},
		} {
			if entry.url != "" {
				lines = append(lines, "    "+styles.Info.Render(entry.label+"  ")+styles.RailItem.Render(entry.url))
			}
		}
	} else if media.CoverImage.ExtraLarge != "" {
		lines = append(lines, "", "  "+styles.Info.Render("cover  ")+styles.RailItem.Render(media.CoverImage.ExtraLarge))
	}

	if media.Relations != nil && len(media.Relations.Edges) > 0 {
		lines = append(lines, "", "  "+styles.RailTitle.Render("Related"))
		for _, edge := range media.Relations.Edges {
			if edge.Node == nil {
				continue
			}
			row := "    " + truncate(edge.Node.Title.Preferred(), 44)
			row += styles.Info.Render("  " + strings.ToLower(edge.RelationType))
			lines = append(lines, styles.RailItem.Render(row))
		}
	}

	lines = append(lines, "", styles.Info.Render("  esc back"))
	return strings.Join(lines, "\n")
}
