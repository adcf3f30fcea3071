package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"

	contentdomain "github.com/Checo3x/Washington-Commanders-Hub/internal/domain/content"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/domain/schedule"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/domain/standings"
)

// Display literals. The page is Spanish-only.
const (
	DateUnavailable = "Date N/A"
	PendingStatus   = "Pendiente"
	UntitledArticle = "Sin título"
	MissingSummary  = "Sin descripción"
	NullRouteLink   = "#"
	LoadingMessage  = "Cargando..."
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// KickoffDate formats an event date for display. A nil kickoff renders the
// fixed unavailable literal instead of failing the line.
func KickoffDate(at *time.Time) string {
	if at == nil {
		return DateUnavailable
	}
	local := at.UTC()
	return fmt.Sprintf("%d de %s de %d", local.Day(), spanishMonths[local.Month()-1], local.Year())
}

// Schedule renders the full schedule list. Events without a resolvable
// matchup degrade to a one-line entry with name and date only.
func Schedule(events []schedule.Event) string {
	if len(events) == 0 {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(`<ul class="schedule-list">`)
	rendered := 0
	for _, event := range events {
		line := scheduleLine(event)
		if line == "" {
			continue
		}
		rendered++
		_, _ = buf.WriteString(line)
	}
	_, _ = buf.WriteString(`</ul>`)

	if rendered == 0 {
		return ""
	}
	return buf.String()
}

func scheduleLine(event schedule.Event) string {
	date := KickoffDate(event.KickoffAt)

	if !event.Complete() {
		name := strings.TrimSpace(event.Name)
		if name == "" && event.KickoffAt == nil {
			return ""
		}
		if name == "" {
			name = PendingStatus
		}
		return fmt.Sprintf(`<li class="schedule-item schedule-item-fallback">%s (%s)</li>`,
			html.EscapeString(name), html.EscapeString(date))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(`<li class="schedule-item"><span class="schedule-date">`)
	_, _ = buf.WriteString(html.EscapeString(date))
	_, _ = buf.WriteString(`</span> `)
	_, _ = buf.WriteString(teamSpan(event.Away))
	_, _ = buf.WriteString(` @ `)
	_, _ = buf.WriteString(teamSpan(event.Home))
	_, _ = buf.WriteString(` <span class="schedule-status">`)
	_, _ = buf.WriteString(html.EscapeString(statusText(event.Status)))
	_, _ = buf.WriteString(`</span></li>`)
	return buf.String()
}

func teamSpan(team schedule.TeamRef) string {
	name := team.DisplayName
	if name == "" {
		name = team.Abbreviation
	}

	logo := ""
	if team.LogoURL != "" {
		logo = fmt.Sprintf(`<img class="team-logo" src="%s" alt="%s">`,
			html.EscapeString(team.LogoURL), html.EscapeString(name))
	}
	return fmt.Sprintf(`<span class="team">%s%s</span>`, logo, html.EscapeString(team.Abbreviation))
}

func statusText(status schedule.Status) string {
	if status.Kind == schedule.StatusCompleted {
		home := status.HomeScore
		if home == "" {
			home = "0"
		}
		away := status.AwayScore
		if away == "" {
			away = "0"
		}
		return home + " - " + away
	}
	if strings.TrimSpace(status.Description) != "" {
		return status.Description
	}
	return PendingStatus
}

// Standings renders the tracked team record line, e.g. "11V - 5D - 1E".
func Standings(teamName string, record standings.Record) string {
	return fmt.Sprintf(`<p class="standings-record"><strong>%s</strong>: %dV - %dD - %dE</p>`,
		html.EscapeString(teamName), record.Wins, record.Losses, record.Ties)
}

// Articles renders the editorial card list.
func Articles(items []contentdomain.Article) string {
	if len(items) == 0 {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(`<div class="card-list">`)
	for _, item := range items {
		_, _ = buf.WriteString(`<article class="card"><h3><a href="`)
		_, _ = buf.WriteString(html.EscapeString(item.Link))
		_, _ = buf.WriteString(`">`)
		_, _ = buf.WriteString(html.EscapeString(item.Title))
		_, _ = buf.WriteString(`</a></h3><p>`)
		_, _ = buf.WriteString(html.EscapeString(item.Summary))
		_, _ = buf.WriteString(`</p></article>`)
	}
	_, _ = buf.WriteString(`</div>`)
	return buf.String()
}

// Podcasts renders the playable episode cards. Items reaching this point
// always carry an audio URL.
func Podcasts(items []contentdomain.Podcast) string {
	if len(items) == 0 {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(`<div class="card-list">`)
	for _, item := range items {
		_, _ = buf.WriteString(`<article class="card card-podcast"><h3>`)
		_, _ = buf.WriteString(html.EscapeString(item.Title))
		_, _ = buf.WriteString(`</h3><p>`)
		_, _ = buf.WriteString(html.EscapeString(item.Description))
		_, _ = buf.WriteString(`</p><audio controls src="`)
		_, _ = buf.WriteString(html.EscapeString(item.AudioURL))
		_, _ = buf.WriteString(`"></audio></article>`)
	}
	_, _ = buf.WriteString(`</div>`)
	return buf.String()
}
