package market

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/seojinp/wanted-radar/internal/wanted"
)

const defaultCollectTimeout = 60 * time.Second

// Collector is one live collection session. Implementations own whatever
// network state the run needs and release it in Close.
type Collector interface {
	Collect(ctx context.Context, maxItems int) ([]wanted.RawPosting, error)
	Close() error
}

// CollectorFactory opens a fresh collection session. The pipeline calls it
// once per run so concurrent runs never share a session.
type CollectorFactory func() Collector

// Summarizer produces one extra natural-language line for a snapshot, e.g.
// via a language model. Optional; failures are absorbed.
type Summarizer interface {
	Summarize(ctx context.Context, snapshot *Snapshot) (string, error)
}

// RunOptions control one pipeline invocation.
type RunOptions struct {
	// ForceLive attempts live collection. When false the synthetic snapshot
	// is returned outright, trading freshness for latency.
	ForceLive bool
	// MaxItems overrides the collection cap when positive.
	MaxItems int
}

// PipelineConfig carries the static settings of the pipeline.
type PipelineConfig struct {
	MaxItems       int
	CollectTimeout time.Duration
}

// PipelineDeps aggregates the pipeline's collaborators.
type PipelineDeps struct {
	NewCollector CollectorFactory
	Parser       *Parser
	Aggregator   *Aggregator
	Validator    *Validator
	Summarizer   Summarizer
	Logger       *zap.Logger
}

// Pipeline sequences collection, parsing, aggregation and insight generation
// and applies the fallback policy. A run never surfaces a collection or
// parsing failure to the caller: it always terminates in a usable snapshot,
// with Snapshot.Source as the only signal of degraded quality.
type Pipeline struct {
	cfg  PipelineConfig
	deps PipelineDeps
}

func NewPipeline(cfg PipelineConfig, deps PipelineDeps) *Pipeline {
	if cfg.CollectTimeout <= 0 {
		cfg.CollectTimeout = defaultCollectTimeout
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, deps: deps}
}

// Run executes one pipeline invocation and always returns a snapshot.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) *Snapshot {
	logger := p.deps.Logger

	if !opts.ForceLive {
		logger.Info("live collection not requested, serving synthetic snapshot")
		return SyntheticSnapshot(time.Now())
	}

	postings, ok := p.collect(ctx, opts)
	if !ok {
		return SyntheticSnapshot(time.Now())
	}

	parsed := make([]ParsedPosting, 0, len(postings))
	for _, raw := range postings {
		parsed = append(parsed, p.deps.Parser.Parse(raw))
	}

	companies, tags := p.deps.Aggregator.Aggregate(parsed)
	if len(companies) == 0 && len(tags) == 0 {
		logger.Warn("no company or tag signal after aggregation, falling back",
			zap.Int("postings", len(parsed)),
		)
		return SyntheticSnapshot(time.Now())
	}

	snapshot := &Snapshot{
		TotalJobs:   len(parsed),
		Companies:   companies,
		Tags:        tags,
		Insights:    GenerateInsights(parsed, companies, tags, p.deps.Validator),
		Source:      SourceLive,
		GeneratedAt: time.Now(),
	}

	p.appendSummary(ctx, snapshot)

	logger.Info("pipeline finished",
		zap.Int("total_jobs", snapshot.TotalJobs),
		zap.Int("companies", len(snapshot.Companies)),
		zap.Int("tags", len(snapshot.Tags)),
		zap.String("source", string(snapshot.Source)),
	)

	return snapshot
}

// RunAsync executes Run on a background goroutine and hands the snapshot to
// deliver. Collection takes several seconds; the trigger path should not
// block on it.
func (p *Pipeline) RunAsync(ctx context.Context, opts RunOptions, deliver func(*Snapshot)) {
	go func() {
		deliver(p.Run(ctx, opts))
	}()
}

// collect opens a fresh session, gathers raw postings under a bounded
// timeout, and guarantees session teardown. The second return value is false
// whenever the fallback path must be taken.
func (p *Pipeline) collect(ctx context.Context, opts RunOptions) ([]wanted.RawPosting, bool) {
	logger := p.deps.Logger

	maxItems := opts.MaxItems
	if maxItems <= 0 {
		maxItems = p.cfg.MaxItems
	}

	collector := p.deps.NewCollector()
	defer func() {
		if err := collector.Close(); err != nil {
			logger.Warn("closing collector session", zap.Error(err))
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, p.cfg.CollectTimeout)
	defer cancel()

	postings, err := collector.Collect(cctx, maxItems)
	if err != nil {
		logger.Warn("collection failed, falling back to synthetic data", zap.Error(err))
		return nil, false
	}

	if len(postings) == 0 {
		logger.Warn("collection returned no postings, falling back to synthetic data")
		return nil, false
	}

	return postings, true
}

// appendSummary asks the optional summarizer for one extra insight line. The
// rule-based insights are trimmed to leave room so the snapshot never carries
// more than maxInsights lines.
func (p *Pipeline) appendSummary(ctx context.Context, snapshot *Snapshot) {
	if p.deps.Summarizer == nil {
		return
	}

	line, err := p.deps.Summarizer.Summarize(ctx, snapshot)
	if err != nil {
		p.deps.Logger.Warn("snapshot summary generation failed", zap.Error(err))
		return
	}
	if line == "" {
		return
	}

	if len(snapshot.Insights) >= maxInsights {
		snapshot.Insights = snapshot.Insights[:maxInsights-1]
	}
	snapshot.Insights = append(snapshot.Insights, line)
}
