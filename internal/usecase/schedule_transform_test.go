package usecase

import (
	"strings"
	"testing"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/render"
)

func competitorPayload(side, abbr, name, score string) map[string]any {
	return map[string]any{
		"homeAway": side,
		"score":    score,
		"team": map[string]any{
			"displayName":  name,
			"abbreviation": abbr,
			"logo":         "https://cdn.example/" + strings.ToLower(abbr) + ".png",
		},
	}
}

func completedEventPayload() map[string]any {
	return map[string]any{
		"name": "New York Giants at Washington Commanders",
		"date": "2025-09-07T17:00Z",
		"competitions": []any{
			map[string]any{
				"competitors": []any{
					competitorPayload("home", "WSH", "Washington Commanders", "21"),
					competitorPayload("away", "NYG", "New York Giants", "18"),
				},
				"status": map[string]any{
					"type": map[string]any{"completed": true},
				},
			},
		},
	}
}

func TestScheduleTransform_CompletedEvent(t *testing.T) {
	t.Parallel()

	transform := NewScheduleTransform()
	fragment, err := transform(map[string]any{"events": []any{completedEventPayload()}})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !strings.Contains(fragment.HTML, "21 - 18") {
		t.Fatalf("missing final score: %q", fragment.HTML)
	}
	if !strings.Contains(fragment.HTML, "WSH") || !strings.Contains(fragment.HTML, "NYG") {
		t.Fatalf("missing abbreviations: %q", fragment.HTML)
	}
}

func TestScheduleTransform_ScheduledEventShowsDescriptionOrPending(t *testing.T) {
	t.Parallel()

	transform := NewScheduleTransform()

	event := completedEventPayload()
	event["competitions"].([]any)[0].(map[string]any)["status"] = map[string]any{
		"type": map[string]any{"completed": false, "description": "Scheduled"},
	}
	fragment, err := transform(map[string]any{"events": []any{event}})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !strings.Contains(fragment.HTML, "Scheduled") {
		t.Fatalf("missing status description: %q", fragment.HTML)
	}

	event = completedEventPayload()
	event["competitions"].([]any)[0].(map[string]any)["status"] = map[string]any{
		"type": map[string]any{"completed": false},
	}
	fragment, err = transform(map[string]any{"events": []any{event}})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !strings.Contains(fragment.HTML, render.PendingStatus) {
		t.Fatalf("missing pending literal: %q", fragment.HTML)
	}
}

func TestScheduleTransform_IncompleteEventsDegradeNotVanish(t *testing.T) {
	t.Parallel()

	transform := NewScheduleTransform()
	payload := map[string]any{
		"events": []any{
			completedEventPayload(),
			map[string]any{"name": "Hall of Fame Game", "date": "2025-07-31T00:00Z"},
			map[string]any{
				"name": "Single competitor game",
				"date": "2025-08-09T17:00Z",
				"competitions": []any{
					map[string]any{
						"competitors": []any{
							competitorPayload("home", "WSH", "Washington Commanders", "0"),
						},
					},
				},
			},
			"not an event object",
		},
	}

	fragment, err := transform(payload)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	// Three event objects survive: one full line plus two fallbacks. The
	// non-object entry is the only one dropped.
	if got := strings.Count(fragment.HTML, "<li"); got != 3 {
		t.Fatalf("rendered %d lines, want 3: %q", got, fragment.HTML)
	}
	if got := strings.Count(fragment.HTML, "schedule-item-fallback"); got != 2 {
		t.Fatalf("rendered %d fallback lines, want 2: %q", got, fragment.HTML)
	}
}

func TestScheduleTransform_UnparsableDateRendersLiteral(t *testing.T) {
	t.Parallel()

	transform := NewScheduleTransform()
	payload := map[string]any{
		"events": []any{
			map[string]any{"name": "Preseason opener", "date": "next sunday"},
		},
	}

	fragment, err := transform(payload)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !strings.Contains(fragment.HTML, render.DateUnavailable) {
		t.Fatalf("missing date literal: %q", fragment.HTML)
	}
}

func TestScheduleTransform_MissingEventsIsEmptySignal(t *testing.T) {
	t.Parallel()

	transform := NewScheduleTransform()
	for name, payload := range map[string]map[string]any{
		"absent":     {},
		"empty list": {"events": []any{}},
		"wrong type": {"events": "not a list"},
	} {
		fragment, err := transform(payload)
		if err != nil {
			t.Fatalf("%s: transform: %v", name, err)
		}
		if !fragment.Empty() {
			t.Fatalf("%s: want empty signal, got %q", name, fragment.HTML)
		}
	}
}
