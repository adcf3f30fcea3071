package usecase

import (
	"sync"
	"time"
)

const (
	SectionSchedule  = "schedule-section"
	SectionStandings = "standings-section"
	SectionArticles  = "articles-section"
	SectionPodcasts  = "podcasts-section"
)

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseEmpty   Phase = "empty"
	PhaseError   Phase = "error"
)

// SectionState is the published state of one page section. Mutated only by
// the engine; each section is driven by exactly one source.
type SectionState struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Phase     Phase     `json:"phase"`
	HTML      string    `json:"html,omitempty"`
	Message   string    `json:"message,omitempty"`
	FromCache bool      `json:"fromCache"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SectionRegistry holds the display targets. All four sections exist from
// startup; running a source against an unknown id is rejected before any
// state mutation.
type SectionRegistry struct {
	mu     sync.RWMutex
	states map[string]*SectionState
	order  []string
}

func NewSectionRegistry() *SectionRegistry {
	registry := &SectionRegistry{
		states: make(map[string]*SectionState, 4),
		order:  []string{SectionSchedule, SectionStandings, SectionArticles, SectionPodcasts},
	}
	titles := map[string]string{
		SectionSchedule:  "Calendario",
		SectionStandings: "Clasificación",
		SectionArticles:  "Noticias",
		SectionPodcasts:  "Podcasts",
	}
	for _, id := range registry.order {
		registry.states[id] = &SectionState{
			ID:    id,
			Title: titles[id],
			Phase: PhaseLoading,
		}
	}
	return registry
}

func (r *SectionRegistry) Has(id string) bool {
	r.mu.RLock()
	_, ok := r.states[id]
	r.mu.RUnlock()
	return ok
}

func (r *SectionRegistry) SetLoading(id string) {
	r.update(id, func(state *SectionState) {
		state.Phase = PhaseLoading
		state.Message = ""
	})
}

func (r *SectionRegistry) SetReady(id, html string, fromCache bool) {
	r.update(id, func(state *SectionState) {
		state.Phase = PhaseReady
		state.HTML = html
		state.Message = ""
		state.FromCache = fromCache
	})
}

func (r *SectionRegistry) SetEmpty(id, message string) {
	r.update(id, func(state *SectionState) {
		state.Phase = PhaseEmpty
		state.HTML = ""
		state.Message = message
		state.FromCache = false
	})
}

func (r *SectionRegistry) SetError(id, message string) {
	r.update(id, func(state *SectionState) {
		state.Phase = PhaseError
		state.Message = message
		state.FromCache = false
	})
}

func (r *SectionRegistry) update(id string, apply func(*SectionState)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.states[id]
	if !ok {
		return
	}
	apply(state)
	state.UpdatedAt = time.Now().UTC()
}

// Snapshot returns the sections in display order.
func (r *SectionRegistry) Snapshot() []SectionState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]SectionState, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.states[id])
	}
	return out
}
