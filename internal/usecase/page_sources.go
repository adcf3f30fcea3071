package usecase

import "strings"

// Cache keys double as the refresh-job source identifiers.
const (
	KeySchedule  = "schedule"
	KeyStandings = "standings"
	KeyArticles  = "articles"
	KeyPodcasts  = "podcasts"
)

// BuildSources returns the four immutable page source descriptors. All four
// fetch through the service's own proxy routes so the engine sees exactly
// what a page client would.
func BuildSources(baseURL, trackedTeamID, trackedTeamName string) []Source {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")

	return []Source{
		{
			URL:          baseURL + "/events",
			CacheKey:     KeySchedule,
			SectionID:    SectionSchedule,
			EmptyMessage: "No hay partidos programados.",
			Transform:    NewScheduleTransform(),
		},
		{
			URL:          baseURL + "/standings",
			CacheKey:     KeyStandings,
			SectionID:    SectionStandings,
			EmptyMessage: "Clasificación no disponible.",
			Transform:    NewStandingsTransform(trackedTeamID, trackedTeamName),
		},
		{
			URL:          baseURL + "/content",
			CacheKey:     KeyArticles,
			SectionID:    SectionArticles,
			EmptyMessage: "No hay noticias disponibles.",
			Transform:    NewArticlesTransform(),
		},
		{
			URL:          baseURL + "/content",
			CacheKey:     KeyPodcasts,
			SectionID:    SectionPodcasts,
			EmptyMessage: "No hay podcasts disponibles.",
			Transform:    NewPodcastsTransform(),
		},
	}
}
