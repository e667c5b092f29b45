package market

import "time"

// SyntheticSnapshot returns the fixed fallback dataset used whenever live
// collection fails or yields no signal. It mirrors the shape of a live
// snapshot exactly so report rendering never needs to care which it got.
func SyntheticSnapshot(now time.Time) *Snapshot {
	return &Snapshot{
		TotalJobs: 1247,
		Companies: []CompanyAggregate{
			{Name: "토스", PostingCount: 31, TopPositions: []string{"풀스택 개발자", "보안 엔지니어", "프로덕트 매니저"}},
			{Name: "쿠팡", PostingCount: 27, TopPositions: []string{"데이터 엔지니어", "ML 엔지니어", "시스템 엔지니어"}},
			{Name: "삼성전자", PostingCount: 23, TopPositions: []string{"클라우드 엔지니어", "AI 연구원", "백엔드 개발자"}},
			{Name: "배달의민족", PostingCount: 19, TopPositions: []string{"백엔드 개발자", "안드로이드 개발자", "QA 엔지니어"}},
			{Name: "네이버", PostingCount: 18, TopPositions: []string{"프론트엔드 개발자", "데이터 사이언티스트", "UX 디자이너"}},
			{Name: "카카오", PostingCount: 15, TopPositions: []string{"iOS 개발자", "게임 개발자", "DevOps 엔지니어"}},
		},
		Tags: []TagAggregate{
			{Name: "Kubernetes", OccurrenceCount: 25, Growth: "+25%", CompaniesUsing: 8},
			{Name: "Aws", OccurrenceCount: 20, Growth: "+20%", CompaniesUsing: 10},
			{Name: "Typescript", OccurrenceCount: 18, Growth: "+18%", CompaniesUsing: 9},
			{Name: "React", OccurrenceCount: 15, Growth: "+15%", CompaniesUsing: 12},
			{Name: "Python", OccurrenceCount: 12, Growth: "+12%", CompaniesUsing: 15},
		},
		Insights: []string{
			"토스가 대규모 채용 중! 핀테크 분야 경쟁 심화 예상",
			"DevOps/클라우드 엔지니어 수요가 전 업계에서 급증",
			"평균 연봉이 전월 대비 7% 상승, 인재 확보 경쟁 치열",
		},
		Source:      SourceSynthetic,
		GeneratedAt: now,
	}
}
