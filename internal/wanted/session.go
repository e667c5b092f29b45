package wanted

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/seojinp/wanted-radar/internal/utils"
)

const (
	listingURL = "https://www.wanted.co.kr"
	// listingPathTemplate points at the developer category listing; the
	// category id parameterizes the job family (518 = development).
	listingPathTemplate = "/wdlist/%d?country=kr&job_sort=job.latest_order&years=-1&locations=all"

	defaultCategory = 518
	defaultMaxItems = 20

	// postingLinkSelector matches posting cards structurally by their URL
	// shape. Text-based selectors broke repeatedly as the page markup churned.
	postingLinkSelector = "a[href*='/wd/']"

	// Cards shorter than this carry no parsable signal.
	minPostingTextRunes = 10

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	defaultSettleDelay = 5 * time.Second
	defaultHTTPTimeout = 20 * time.Second
)

// SessionConfig tunes one scraping session.
type SessionConfig struct {
	// BaseURL overrides the listing host, primarily for tests.
	BaseURL           string
	Category          int
	SettleDelay       time.Duration
	RequestsPerSecond float64
	Timeout           time.Duration
}

// Session is a single-use scraping session against the listing page. Every
// pipeline invocation gets its own Session so concurrent runs never share
// cookies or navigation state; Close must be called on every path.
type Session struct {
	cfg     SessionConfig
	hc      *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewSession(cfg SessionConfig, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = listingURL
	}
	if cfg.Category == 0 {
		cfg.Category = defaultCategory
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = defaultSettleDelay
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultHTTPTimeout
	}

	jar, _ := cookiejar.New(nil)

	return &Session{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout, Jar: jar},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  logger,
	}
}

// Collect loads the listing page, waits for it to settle, and returns up to
// maxItems raw postings. A page that loads but matches no posting links is an
// empty result, not an error; the distinction survives only in the log.
func (s *Session) Collect(ctx context.Context, maxItems int) ([]RawPosting, error) {
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}

	url := s.cfg.BaseURL + fmt.Sprintf(listingPathTemplate, s.cfg.Category)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &CollectionError{Op: "rate wait", URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &CollectionError{Op: "build request", URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	s.logger.Debug("loading listing page", zap.String("url", url))

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, &CollectionError{Op: "get", URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &CollectionError{Op: "get", URL: url, Err: fmt.Errorf("bad status: %s", resp.Status)}
	}

	// The page renders its cards dynamically and offers no completion
	// signal, so a bounded delay has to stand in for one.
	if err := utils.WaitFor(ctx, s.cfg.SettleDelay); err != nil {
		return nil, &CollectionError{Op: "settle wait", URL: url, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &CollectionError{Op: "parse page", URL: url, Err: err}
	}

	var postings []RawPosting
	doc.Find(postingLinkSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := visibleLines(sel)
		if utf8.RuneCountInString(text) < minPostingTextRunes {
			return true
		}

		postings = append(postings, RawPosting{Text: text, Index: len(postings)})
		return len(postings) < maxItems
	})

	if len(postings) == 0 {
		s.logger.Warn("listing page loaded but no posting links matched",
			zap.String("url", url),
			zap.String("selector", postingLinkSelector),
		)
		return nil, nil
	}

	s.logger.Info("collected postings", zap.String("url", url), zap.Int("count", len(postings)))

	return postings, nil
}

// Close releases the session's network resources. Safe to call on error paths.
func (s *Session) Close() error {
	s.hc.CloseIdleConnections()
	return nil
}

// visibleLines approximates the rendered text of a card: every text node
// becomes its own line, matching how the browser breaks card fields across
// block elements.
func visibleLines(sel *goquery.Selection) string {
	var lines []string

	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, child *goquery.Selection) {
			if goquery.NodeName(child) == "#text" {
				if text := strings.TrimSpace(child.Text()); text != "" {
					lines = append(lines, text)
				}
				return
			}
			walk(child)
		})
	}
	walk(sel)

	return strings.Join(lines, "\n")
}
