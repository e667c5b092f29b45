package cmd

import (
	"fmt"
	"strings"

	"github.com/seojinp/wanted-radar/internal/market"
)

// RenderReport converts a snapshot into the human-readable text report. The
// pipeline itself knows nothing about this format; any other renderer could
// consume the same snapshot.
func RenderReport(snapshot *market.Snapshot) string {
	var b strings.Builder

	sourceLabel := "실시간 데이터"
	if snapshot.Source == market.SourceSynthetic {
		sourceLabel = "Demo 데이터"
	}

	fmt.Fprintf(&b, "📊 채용 시장 인텔리전스 (%s)\n\n", sourceLabel)
	fmt.Fprintf(&b, "전체 시장 현황\n")
	fmt.Fprintf(&b, "• 총 공고 수: %d개\n", snapshot.TotalJobs)
	fmt.Fprintf(&b, "• 생성 시각: %s\n\n", snapshot.GeneratedAt.Format("2006-01-02 15:04"))

	if len(snapshot.Companies) > 0 {
		fmt.Fprintf(&b, "🏢 주요 기업 채용 현황\n")
		for _, company := range snapshot.Companies {
			fmt.Fprintf(&b, "• %s — %d개 공고 | 인기 포지션: %s\n",
				company.Name, company.PostingCount, strings.Join(company.TopPositions, ", "))
		}
		b.WriteString("\n")
	}

	if len(snapshot.Tags) > 0 {
		fmt.Fprintf(&b, "🔥 급상승 기술스택 TOP %d\n", len(snapshot.Tags))
		for i, tag := range snapshot.Tags {
			fmt.Fprintf(&b, "%d. %s (%s) — %d개 기업에서 채용 중\n",
				i+1, tag.Name, tag.Growth, tag.CompaniesUsing)
		}
		b.WriteString("\n")
	}

	if len(snapshot.Insights) > 0 {
		fmt.Fprintf(&b, "💡 시장 인사이트\n")
		for _, insight := range snapshot.Insights {
			fmt.Fprintf(&b, "• %s\n", insight)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
