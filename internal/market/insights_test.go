package market

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestGenerateInsights(t *testing.T) {
	t.Parallel()

	validator := NewValidator(DefaultVocabulary())

	postings := []ParsedPosting{
		{Company: "Acme", Position: "백엔드 개발자"},
		{Company: "Acme", Position: "백엔드 개발자"},
		{Company: "Beta", Position: "프론트엔드 개발자"},
	}
	companies := []CompanyAggregate{
		{Name: "Acme", PostingCount: 2, TopPositions: []string{"백엔드 개발자"}},
		{Name: "Beta", PostingCount: 1, TopPositions: []string{"프론트엔드 개발자"}},
	}
	tags := []TagAggregate{
		{Name: "React", OccurrenceCount: 6, Growth: "+30%", CompaniesUsing: 2},
	}

	insights := GenerateInsights(postings, companies, tags, validator)

	want := []string{
		"Acme가 2개 공고로 가장 활발히 채용 중입니다",
		"React이 6개 공고에서 요구되며 가장 수요가 높습니다",
		"현재 백엔드 개발자 포지션 수요가 가장 높습니다",
	}
	if !reflect.DeepEqual(insights, want) {
		t.Fatalf("unexpected insights:\n got %v\nwant %v", insights, want)
	}
}

func TestGenerateInsightsActiveMarket(t *testing.T) {
	t.Parallel()

	validator := NewValidator(DefaultVocabulary())

	var postings []ParsedPosting
	for i := 0; i < 12; i++ {
		postings = append(postings, ParsedPosting{
			Company:  fmt.Sprintf("회사%d", i),
			Position: "백엔드 개발자",
		})
	}
	companies := []CompanyAggregate{{Name: "회사0", PostingCount: 1}}
	tags := []TagAggregate{{Name: "Python", OccurrenceCount: 3}}

	insights := GenerateInsights(postings, companies, tags, validator)

	if len(insights) != maxInsights {
		t.Fatalf("expected %d insights, got %d: %v", maxInsights, len(insights), insights)
	}
	last := insights[len(insights)-1]
	if last != "IT 채용 시장이 활발하게 움직이고 있습니다" {
		t.Fatalf("expected active market insight last, got %q", last)
	}
}

func TestGenerateInsightsInvalidTopTag(t *testing.T) {
	t.Parallel()

	validator := NewValidator(DefaultVocabulary())

	tags := []TagAggregate{{Name: "서울", OccurrenceCount: 9}}

	insights := GenerateInsights(nil, nil, tags, validator)

	if len(insights) != 1 || insights[0] != genericTagInsight {
		t.Fatalf("expected generic tag insight, got %v", insights)
	}
}

func TestGenerateInsightsEmptyInput(t *testing.T) {
	t.Parallel()

	validator := NewValidator(DefaultVocabulary())

	insights := GenerateInsights(nil, nil, nil, validator)

	if !reflect.DeepEqual(insights, genericInsights) {
		t.Fatalf("expected generic insights, got %v", insights)
	}
}

func TestTopPositionIgnoresRewardCopy(t *testing.T) {
	t.Parallel()

	postings := []ParsedPosting{
		{Position: "합격보상금 100만원"},
		{Position: "합격보상금 100만원"},
		{Position: "데이터 엔지니어"},
	}

	position, ok := topPosition(postings)
	if !ok || position != "데이터 엔지니어" {
		t.Fatalf("expected 데이터 엔지니어, got %q (ok=%v)", position, ok)
	}
}

func TestTopPositionOverlongTitleSkipped(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("가", maxInsightPositionRunes)
	postings := []ParsedPosting{{Position: long}}

	if _, ok := topPosition(postings); ok {
		t.Fatalf("expected no position from over-length titles")
	}
}
