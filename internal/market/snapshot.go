package market

import "time"

// Source tells report consumers whether a snapshot was built from live
// collection or from the synthetic fallback dataset. It is the only
// observable signal of degraded quality.
type Source string

const (
	SourceLive      Source = "live"
	SourceSynthetic Source = "synthetic"
)

// Snapshot is the aggregated, ranked, insight-annotated output of one
// pipeline run. It is built fresh per run, never mutated afterwards, and
// never persisted.
type Snapshot struct {
	TotalJobs   int
	Companies   []CompanyAggregate
	Tags        []TagAggregate
	Insights    []string
	Source      Source
	GeneratedAt time.Time
}
