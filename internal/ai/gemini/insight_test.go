package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/seojinp/wanted-radar/internal/market"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testSnapshot() *market.Snapshot {
	return &market.Snapshot{
		TotalJobs: 12,
		Companies: []market.CompanyAggregate{
			{Name: "Acme Corp", PostingCount: 5, TopPositions: []string{"백엔드 개발자"}},
		},
		Tags: []market.TagAggregate{
			{Name: "Python", OccurrenceCount: 7, Growth: "+30%", CompaniesUsing: 3},
		},
		Source:      market.SourceLive,
		GeneratedAt: time.Now(),
	}
}

func TestInsightWriterSummarize(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "백엔드 중심으로 채용이 몰리고 있습니다"}
	writer := NewInsightWriter(stub, nil, 0)

	line, err := writer.Summarize(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "백엔드 중심으로 채용이 몰리고 있습니다" {
		t.Fatalf("unexpected summary: %q", line)
	}

	if !strings.Contains(stub.lastPrompt, "Acme Corp") {
		t.Fatalf("expected company data in the prompt")
	}
	if !strings.Contains(stub.lastPrompt, "Python") {
		t.Fatalf("expected tag data in the prompt")
	}
	if strings.Contains(stub.lastPrompt, "{{SNAPSHOT_JSON}}") {
		t.Fatalf("placeholder was not substituted")
	}
}

func TestInsightWriterSanitizesOutput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "fenced block",
			response: "```\n토스가 채용을 주도하고 있습니다\n```",
			want:     "토스가 채용을 주도하고 있습니다",
		},
		{
			name:     "quoted line",
			response: `"시장이 활발합니다"`,
			want:     "시장이 활발합니다",
		},
		{
			name:     "leading blank lines",
			response: "\n\n첫 번째 문장만 사용합니다\n두 번째 문장은 버려집니다",
			want:     "첫 번째 문장만 사용합니다",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			writer := NewInsightWriter(&stubGenerator{response: tc.response}, nil, 0)

			line, err := writer.Summarize(context.Background(), testSnapshot())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if line != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, line)
			}
		})
	}
}

func TestInsightWriterTruncatesLongOutput(t *testing.T) {
	t.Parallel()

	writer := NewInsightWriter(&stubGenerator{response: strings.Repeat("가", 500)}, nil, 0)

	line, err := writer.Summarize(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len([]rune(line)); got != maxSummaryRunes {
		t.Fatalf("expected %d runes, got %d", maxSummaryRunes, got)
	}
}

func TestInsightWriterGeneratorError(t *testing.T) {
	t.Parallel()

	writer := NewInsightWriter(&stubGenerator{err: errors.New("quota exceeded")}, nil, 0)

	if _, err := writer.Summarize(context.Background(), testSnapshot()); err == nil {
		t.Fatalf("expected the generator error to surface")
	}
}

func TestInsightWriterEmptyResponse(t *testing.T) {
	t.Parallel()

	writer := NewInsightWriter(&stubGenerator{response: "\n\n"}, nil, 0)

	if _, err := writer.Summarize(context.Background(), testSnapshot()); err == nil {
		t.Fatalf("expected an error for an empty model response")
	}
}

func TestInsightWriterNilSnapshot(t *testing.T) {
	t.Parallel()

	writer := NewInsightWriter(&stubGenerator{response: "요약"}, nil, 0)

	if _, err := writer.Summarize(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for a nil snapshot")
	}
}
