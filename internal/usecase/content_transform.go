package usecase

import (
	contentdomain "github.com/Checo3x/Washington-Commanders-Hub/internal/domain/content"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/render"
)

// NewArticlesTransform maps the content document's articles list into cards.
// Every field is defaulted; articles are never skipped.
func NewArticlesTransform() func(map[string]any) (Fragment, error) {
	return func(payload map[string]any) (Fragment, error) {
		items := getList(payload, "articles")
		if len(items) == 0 {
			return Fragment{}, nil
		}

		articles := make([]contentdomain.Article, 0, len(items))
		for _, item := range items {
			raw := asMap(item)
			if raw == nil {
				continue
			}
			articles = append(articles, contentdomain.Article{
				Title:   firstNonEmpty(getString(raw, "title"), render.UntitledArticle),
				Summary: firstNonEmpty(getString(raw, "summary"), getString(raw, "description"), render.MissingSummary),
				Link:    firstNonEmpty(getString(raw, "link"), getString(raw, "url"), render.NullRouteLink),
			})
		}
		if len(articles) == 0 {
			return Fragment{}, nil
		}

		return Fragment{HTML: render.Articles(articles)}, nil
	}
}

// NewPodcastsTransform maps the podcasts list into playable cards. Items
// without an audio source are silently skipped, never rendered broken; an
// all-skipped list is the empty signal, not an error.
func NewPodcastsTransform() func(map[string]any) (Fragment, error) {
	return func(payload map[string]any) (Fragment, error) {
		items := getList(payload, "podcasts")
		if len(items) == 0 {
			return Fragment{}, nil
		}

		podcasts := make([]contentdomain.Podcast, 0, len(items))
		for _, item := range items {
			raw := asMap(item)
			if raw == nil {
				continue
			}
			audio := firstNonEmpty(getString(raw, "audioUrl"), getString(raw, "audio"), getString(raw, "url"))
			if audio == "" {
				continue
			}
			podcasts = append(podcasts, contentdomain.Podcast{
				Title:       firstNonEmpty(getString(raw, "title"), render.UntitledArticle),
				Description: firstNonEmpty(getString(raw, "description"), render.MissingSummary),
				AudioURL:    audio,
			})
		}
		if len(podcasts) == 0 {
			return Fragment{}, nil
		}

		return Fragment{HTML: render.Podcasts(podcasts)}, nil
	}
}
