package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/seojinp/wanted-radar/internal/market"
)

func TestRenderReportLive(t *testing.T) {
	t.Parallel()

	snapshot := &market.Snapshot{
		TotalJobs: 14,
		Companies: []market.CompanyAggregate{
			{Name: "Acme Corp", PostingCount: 5, TopPositions: []string{"백엔드 개발자", "데이터 엔지니어"}},
		},
		Tags: []market.TagAggregate{
			{Name: "Python", OccurrenceCount: 7, Growth: "+30%", CompaniesUsing: 3},
		},
		Insights:    []string{"Acme Corp가 5개 공고로 가장 활발히 채용 중입니다"},
		Source:      market.SourceLive,
		GeneratedAt: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	report := RenderReport(snapshot)

	for _, part := range []string{
		"실시간 데이터",
		"총 공고 수: 14개",
		"2025-06-01 09:30",
		"Acme Corp — 5개 공고",
		"백엔드 개발자, 데이터 엔지니어",
		"Python (+30%) — 3개 기업에서 채용 중",
		"Acme Corp가 5개 공고로 가장 활발히 채용 중입니다",
	} {
		if !strings.Contains(report, part) {
			t.Fatalf("expected %q in report:\n%s", part, report)
		}
	}
}

func TestRenderReportSynthetic(t *testing.T) {
	t.Parallel()

	report := RenderReport(market.SyntheticSnapshot(time.Now()))

	if !strings.Contains(report, "Demo 데이터") {
		t.Fatalf("expected the synthetic source label in report:\n%s", report)
	}
	if strings.Contains(report, "실시간 데이터") {
		t.Fatalf("synthetic report must not claim live data:\n%s", report)
	}
}

func TestRenderReportOmitsEmptySections(t *testing.T) {
	t.Parallel()

	snapshot := &market.Snapshot{
		TotalJobs:   0,
		Source:      market.SourceLive,
		GeneratedAt: time.Now(),
	}

	report := RenderReport(snapshot)

	if strings.Contains(report, "주요 기업") || strings.Contains(report, "기술스택") {
		t.Fatalf("expected empty sections to be omitted:\n%s", report)
	}
}
