package wanted

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiPathTemplate = "/api/v4/jobs?country=kr&tag_type_ids=%d&job_sort=job.latest_order&limit=%d&offset=%d"
	apiPageSize     = 20
)

// APISession collects postings through the public JSON feed instead of the
// rendered page. The feed exposes company, position and location as discrete
// fields; they are folded back into one text block so the downstream parser
// treats both collectors identically.
type APISession struct {
	cfg     SessionConfig
	hc      *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewAPISession(cfg SessionConfig, logger *zap.Logger) *APISession {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = listingURL
	}
	if cfg.Category == 0 {
		cfg.Category = defaultCategory
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultHTTPTimeout
	}

	return &APISession{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  logger,
	}
}

type apiJob struct {
	ID      int    `json:"id"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
	Position string `json:"position"`
	Address  *struct {
		Location string `json:"location"`
	} `json:"address"`
}

// The feed's item schema drifts now and then, so pages are decoded loosely
// first and mapped onto apiJob afterwards.
type apiPage struct {
	Data  []any `json:"data"`
	Total int   `json:"total"`
}

func decodeJobs(items []any) ([]apiJob, error) {
	var jobs []apiJob

	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &jobs,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, err
	}

	return jobs, nil
}

// Collect walks the feed page by page until it runs dry, the reported total
// is reached, or maxItems postings are gathered.
func (s *APISession) Collect(ctx context.Context, maxItems int) ([]RawPosting, error) {
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}

	var postings []RawPosting

	for offset := 0; len(postings) < maxItems; offset += apiPageSize {
		page, url, err := s.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}

		if len(page.Data) == 0 {
			break
		}

		jobs, err := decodeJobs(page.Data)
		if err != nil {
			return nil, &CollectionError{Op: "decode feed items", URL: url, Err: err}
		}

		s.logger.Debug("fetched feed page",
			zap.String("url", url),
			zap.Int("jobs", len(jobs)),
			zap.Int("total", page.Total),
		)

		for _, job := range jobs {
			location := ""
			if job.Address != nil {
				location = job.Address.Location
			}

			text := fmt.Sprintf("%s\n%s\n%s", job.Position, job.Company.Name, location)
			postings = append(postings, RawPosting{Text: text, Index: len(postings)})
			if len(postings) == maxItems {
				break
			}
		}

		if offset+apiPageSize >= page.Total {
			break
		}
	}

	if len(postings) == 0 {
		s.logger.Warn("job feed returned no postings")
		return nil, nil
	}

	s.logger.Info("collected postings from feed", zap.Int("count", len(postings)))

	return postings, nil
}

func (s *APISession) fetchPage(ctx context.Context, offset int) (*apiPage, string, error) {
	url := s.cfg.BaseURL + fmt.Sprintf(apiPathTemplate, s.cfg.Category, apiPageSize, offset)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, url, &CollectionError{Op: "rate wait", URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, url, &CollectionError{Op: "build request", URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, url, &CollectionError{Op: "get", URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, url, &CollectionError{Op: "get", URL: url, Err: fmt.Errorf("bad status: %s", resp.Status)}
	}

	var page apiPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, url, &CollectionError{Op: "decode feed", URL: url, Err: err}
	}

	return &page, url, nil
}

// Close releases the session's network resources.
func (s *APISession) Close() error {
	s.hc.CloseIdleConnections()
	return nil
}
