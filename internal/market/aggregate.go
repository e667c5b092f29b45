package market

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	maxCompanies       = 6
	maxTags            = 5
	maxTopPositions    = 3
	maxPositionListLen = 100

	// growthCapPercent bounds the derived growth figure. The figure is a
	// display value computed from occurrence counts, not a measured trend.
	growthCapPercent    = 30
	growthPerOccurrence = 10
)

// CompanyAggregate summarizes one company's presence in a collection run.
// TopPositions is never empty; it falls back to the generic placeholder when
// no informative title survives filtering.
type CompanyAggregate struct {
	Name         string
	PostingCount int
	TopPositions []string
}

// TagAggregate summarizes one validated technology tag across all postings.
type TagAggregate struct {
	Name            string
	OccurrenceCount int
	Growth          string
	CompaniesUsing  int
}

// positionPollution marks position strings carrying reward copy, location
// fragments or recruiting boilerplate instead of an actual title.
var positionPollution = []string{
	rewardMarker, bonusAmount, "서울", "경기", "판교", "근무지", "신입", "경력", "채용",
}

// specificityMarkers promote a position title to the specific tier: it names
// a concrete role or stack rather than just "developer".
var specificityMarkers = []string{
	"프론트엔드", "백엔드", "풀스택", "모바일", "frontend", "backend", "fullstack",
	"react", "vue", "angular", "java", "python", "ios", "android", "devops",
	"데이터", "ml", "ai", "머신러닝", "인공지능", "software", "senior", "junior",
}

// Aggregator folds parsed postings into ranked company and tag statistics.
type Aggregator struct {
	validator *Validator
	logger    *zap.Logger
}

func NewAggregator(validator *Validator, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{validator: validator, logger: logger}
}

// Aggregate groups postings by company and by tag and ranks each group.
// Empty input yields empty aggregates; the fallback decision belongs to the
// pipeline, not here.
func (a *Aggregator) Aggregate(postings []ParsedPosting) ([]CompanyAggregate, []TagAggregate) {
	companies := a.aggregateCompanies(postings)
	tags := a.aggregateTags(postings)

	a.logger.Debug("aggregation finished",
		zap.Int("postings", len(postings)),
		zap.Int("companies", len(companies)),
		zap.Int("tags", len(tags)),
	)

	return companies, tags
}

func (a *Aggregator) aggregateCompanies(postings []ParsedPosting) []CompanyAggregate {
	counts := make(map[string]int)
	var order []string

	for _, p := range postings {
		if p.Company == CompanyPlaceholder {
			continue
		}
		if _, ok := counts[p.Company]; !ok {
			order = append(order, p.Company)
		}
		counts[p.Company]++
	}

	// Stable sort keeps first-seen order for equal counts, so identical
	// input always produces identical rankings.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxCompanies {
		order = order[:maxCompanies]
	}

	out := make([]CompanyAggregate, 0, len(order))
	for _, name := range order {
		out = append(out, CompanyAggregate{
			Name:         name,
			PostingCount: counts[name],
			TopPositions: a.topPositions(name, postings),
		})
	}
	return out
}

// topPositions resolves up to three representative titles for a company.
// Titles naming a concrete role or stack outrank everything else, so the
// generic placeholder cannot crowd out informative titles; it is used only
// when nothing else survives.
func (a *Aggregator) topPositions(company string, postings []ParsedPosting) []string {
	var informative, generic []string

	for _, p := range postings {
		if p.Company != company {
			continue
		}
		pos := p.Position
		if pos == "" || utf8.RuneCountInString(pos) >= maxPositionListLen {
			continue
		}
		if containsAny(strings.ToLower(pos), positionPollution) {
			continue
		}
		if pos == PositionPlaceholder {
			generic = append(generic, pos)
			continue
		}
		informative = append(informative, pos)
	}

	if len(informative) == 0 {
		informative = generic
	}

	top := SelectRanked(informative, positionTier, maxTopPositions)
	if len(top) == 0 {
		top = []string{PositionPlaceholder}
	}
	return top
}

// positionTier classifies a title for ranked-bucket selection: 0 for titles
// with a specificity marker, 2 for the bare placeholder, 1 for the rest.
func positionTier(position string) int {
	if position == PositionPlaceholder {
		return 2
	}
	if containsAny(strings.ToLower(position), specificityMarkers) {
		return 0
	}
	return 1
}

func (a *Aggregator) aggregateTags(postings []ParsedPosting) []TagAggregate {
	counts := make(map[string]int)
	companies := make(map[string]map[string]struct{})
	var order []string

	for _, p := range postings {
		for _, tag := range p.Tags {
			if !a.validator.IsValid(tag) {
				continue
			}
			if _, ok := counts[tag]; !ok {
				order = append(order, tag)
				companies[tag] = make(map[string]struct{})
			}
			counts[tag]++
			companies[tag][p.Company] = struct{}{}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxTags {
		order = order[:maxTags]
	}

	out := make([]TagAggregate, 0, len(order))
	for _, name := range order {
		out = append(out, TagAggregate{
			Name:            name,
			OccurrenceCount: counts[name],
			Growth:          growthEstimate(counts[name]),
			CompaniesUsing:  len(companies[name]),
		})
	}
	return out
}

func growthEstimate(count int) string {
	growth := count * growthPerOccurrence
	if growth > growthCapPercent {
		growth = growthCapPercent
	}
	return fmt.Sprintf("+%d%%", growth)
}
