package ai

import (
	"context"

	"github.com/seojinp/wanted-radar/internal/market"
)

// Summarizer produces a one-line natural-language summary of a market
// snapshot. Providers live in subpackages; gemini is the only one today.
type Summarizer interface {
	Summarize(ctx context.Context, snapshot *market.Snapshot) (string, error)
}
