package market

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxInsights = 4

	// Postings above this count are read as an active market.
	activeMarketThreshold = 10

	maxInsightPositionRunes = 50
)

var genericInsights = []string{
	"현재 IT 채용 시장이 활발합니다",
	"다양한 기술스택에 대한 수요가 증가하고 있습니다",
	"개발자 채용 경쟁이 치열해지고 있습니다",
}

const genericTagInsight = "JavaScript, Python, React 등의 기술이 주요 트렌드입니다"

// GenerateInsights derives up to four natural-language sentences from the
// aggregates: leading company, leading technology, leading position, and
// overall market activity. Each step is independent; one producing nothing
// never suppresses the others, and an entirely empty result falls back to a
// fixed generic set.
func GenerateInsights(postings []ParsedPosting, companies []CompanyAggregate, tags []TagAggregate, validator *Validator) []string {
	insights := make([]string, 0, maxInsights)

	if len(companies) > 0 {
		top := companies[0]
		insights = append(insights, fmt.Sprintf("%s가 %d개 공고로 가장 활발히 채용 중입니다", top.Name, top.PostingCount))
	}

	if len(tags) > 0 {
		// Re-validate so aggregates built elsewhere without pre-filtering
		// still cannot surface noise here.
		if tag, ok := topValidTag(tags, validator); ok {
			insights = append(insights, fmt.Sprintf("%s이 %d개 공고에서 요구되며 가장 수요가 높습니다", tag.Name, tag.OccurrenceCount))
		} else {
			insights = append(insights, genericTagInsight)
		}
	}

	if position, ok := topPosition(postings); ok {
		insights = append(insights, fmt.Sprintf("현재 %s 포지션 수요가 가장 높습니다", position))
	}

	if len(postings) > activeMarketThreshold {
		insights = append(insights, "IT 채용 시장이 활발하게 움직이고 있습니다")
	}

	if len(insights) == 0 {
		return append([]string(nil), genericInsights...)
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func topValidTag(tags []TagAggregate, validator *Validator) (TagAggregate, bool) {
	for _, tag := range tags {
		if validator.IsValid(tag.Name) {
			return tag, true
		}
	}
	return TagAggregate{}, false
}

// topPosition picks the most frequent position string, ignoring reward copy
// and over-length strings. First-seen order breaks ties.
func topPosition(postings []ParsedPosting) (string, bool) {
	counts := make(map[string]int)
	var order []string

	for _, p := range postings {
		pos := p.Position
		if pos == "" || utf8.RuneCountInString(pos) >= maxInsightPositionRunes {
			continue
		}
		if strings.Contains(pos, rewardMarker) {
			continue
		}
		if _, ok := counts[pos]; !ok {
			order = append(order, pos)
		}
		counts[pos]++
	}

	best := ""
	for _, pos := range order {
		if best == "" || counts[pos] > counts[best] {
			best = pos
		}
	}
	return best, best != ""
}
