package standings

type SourceKind string

const (
	// SourceSummary means the record came from a compact "W-L" or "W-L-T" string.
	SourceSummary SourceKind = "summary"
	// SourceStats means the record was assembled from a named statistics list.
	SourceStats SourceKind = "stats"
)

// Record is the tracked team's season record. At most one instance exists per
// render cycle.
type Record struct {
	Wins   uint
	Losses uint
	Ties   uint
	Source SourceKind
}
