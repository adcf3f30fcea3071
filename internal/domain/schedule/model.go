package schedule

import "time"

// TeamRef identifies one side of a matchup as shown on the page.
type TeamRef struct {
	DisplayName  string
	Abbreviation string
	LogoURL      string
}

type StatusKind string

const (
	StatusCompleted StatusKind = "completed"
	StatusScheduled StatusKind = "scheduled"
)

// Status is either a final score or a pre-game description.
type Status struct {
	Kind        StatusKind
	HomeScore   string
	AwayScore   string
	Description string
}

// Event is one schedule entry after normalization. KickoffAt is nil when the
// upstream date could not be parsed; the renderer degrades instead of failing.
type Event struct {
	Name      string
	KickoffAt *time.Time
	Home      TeamRef
	Away      TeamRef
	Status    Status
}

// Complete reports whether both sides carry a resolvable team identity.
func (e Event) Complete() bool {
	return e.Home.Abbreviation != "" && e.Away.Abbreviation != ""
}
