package usecase

import (
	"time"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/domain/schedule"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/render"
)

// NewScheduleTransform normalizes the upstream scoreboard payload into the
// schedule fragment. Incomplete events degrade to a fallback line; only
// entries that are not event objects at all are dropped.
func NewScheduleTransform() func(map[string]any) (Fragment, error) {
	return func(payload map[string]any) (Fragment, error) {
		items := getList(payload, "events")
		if len(items) == 0 {
			return Fragment{}, nil
		}

		events := make([]schedule.Event, 0, len(items))
		for _, item := range items {
			raw := asMap(item)
			if raw == nil {
				continue
			}
			events = append(events, normalizeEvent(raw))
		}
		if len(events) == 0 {
			return Fragment{}, nil
		}

		return Fragment{HTML: render.Schedule(events)}, nil
	}
}

func normalizeEvent(raw map[string]any) schedule.Event {
	event := schedule.Event{
		Name:      firstNonEmpty(getString(raw, "name"), getString(raw, "shortName")),
		KickoffAt: parseEventDate(getString(raw, "date")),
	}

	competition := firstCompetition(raw)
	if competition == nil {
		return event
	}

	competitors := getList(competition, "competitors")
	if len(competitors) < 2 {
		return event
	}

	for _, item := range competitors {
		competitor := asMap(item)
		if competitor == nil {
			continue
		}
		team, ok := normalizeTeam(competitor)
		if !ok {
			continue
		}
		switch getString(competitor, "homeAway") {
		case "home":
			event.Home = team
			event.Status.HomeScore = scoreText(competitor["score"])
		case "away":
			event.Away = team
			event.Status.AwayScore = scoreText(competitor["score"])
		}
	}

	if !event.Complete() {
		// One side unresolvable: drop to the name-and-date fallback line.
		event.Home = schedule.TeamRef{}
		event.Away = schedule.TeamRef{}
		event.Status = schedule.Status{}
		return event
	}

	statusType := getMap(getMap(competition, "status"), "type")
	if getBool(statusType, "completed") {
		event.Status.Kind = schedule.StatusCompleted
	} else {
		event.Status.Kind = schedule.StatusScheduled
		event.Status.Description = firstNonEmpty(
			getString(statusType, "description"),
			getString(statusType, "shortDetail"),
		)
		event.Status.HomeScore = ""
		event.Status.AwayScore = ""
	}
	return event
}

func firstCompetition(raw map[string]any) map[string]any {
	for _, item := range getList(raw, "competitions") {
		if competition := asMap(item); competition != nil {
			return competition
		}
	}
	return nil
}

func normalizeTeam(competitor map[string]any) (schedule.TeamRef, bool) {
	team := getMap(competitor, "team")
	if team == nil {
		return schedule.TeamRef{}, false
	}

	ref := schedule.TeamRef{
		DisplayName:  firstNonEmpty(getString(team, "displayName"), getString(team, "shortDisplayName")),
		Abbreviation: getString(team, "abbreviation"),
		LogoURL:      getString(team, "logo"),
	}
	if ref.Abbreviation == "" {
		return schedule.TeamRef{}, false
	}
	if ref.DisplayName == "" {
		ref.DisplayName = ref.Abbreviation
	}
	return ref, true
}

func parseEventDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	layouts := []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02T15:04:05Z07:00"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			value := parsed.UTC()
			return &value
		}
	}
	return nil
}
