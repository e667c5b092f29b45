package market

import (
	"reflect"
	"testing"
)

func TestValidatorIsValid(t *testing.T) {
	t.Parallel()

	validator := NewValidator(DefaultVocabulary())

	cases := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"known technology", "Python", true},
		{"technology inside longer phrase", "Python 백엔드", true},
		{"deny term wins over allow term", "서울 Python", false},
		{"recruiting noise", "경력 3년 이상", false},
		{"too short", "r", false},
		{"too long", "aws aws aws aws aws aws aws aws aws aws aws", false},
		{"unknown term", "foobar", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := validator.IsValid(tc.candidate); got != tc.want {
				t.Fatalf("IsValid(%q) = %v, want %v", tc.candidate, got, tc.want)
			}
		})
	}
}

func TestExtractTags(t *testing.T) {
	t.Parallel()

	validator := NewValidator(DefaultVocabulary())

	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "mixed korean text",
			text: "Python: 90%, AWS 사용",
			want: []string{"Aws", "Python"},
		},
		{
			name: "term embedded in longer token is not matched",
			text: "javascript 전문가",
			want: []string{"Javascript"},
		},
		{
			name: "repeats contribute once",
			text: "react react react",
			want: []string{"React"},
		},
		{
			name: "punctuated terms",
			text: "next.js와 react-native 경험",
			want: []string{"Next.Js", "React", "React-Native"},
		},
		{
			name: "no technologies",
			text: "좋은 회사에서 함께할 분을 찾습니다",
			want: nil,
		},
		{
			name: "empty text",
			text: "   ",
			want: nil,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := validator.ExtractTags(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractTags(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestExtractTagsIsIdempotent(t *testing.T) {
	t.Parallel()

	validator := NewValidator(DefaultVocabulary())
	text := "Kubernetes, Docker, AWS 기반 인프라. Kubernetes 운영 경험 우대"

	first := validator.ExtractTags(text)
	second := validator.ExtractTags(text)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %v then %v", first, second)
	}
}

func TestContainsBounded(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		term string
		want bool
	}{
		{"we use go here", "go", true},
		{"golang shop", "go", false},
		{"django backend", "go", false},
		{"react/vue", "vue", true},
		{"c++ developer", "c++", true},
		{"", "go", false},
		{"anything", "", false},
	}

	for _, tc := range cases {
		if got := containsBounded(tc.text, tc.term); got != tc.want {
			t.Fatalf("containsBounded(%q, %q) = %v, want %v", tc.text, tc.term, got, tc.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"aws", "Aws"},
		{"next.js", "Next.Js"},
		{"react-native", "React-Native"},
		{"c++", "C++"},
		{"PYTHON", "Python"},
	}

	for _, tc := range cases {
		if got := titleCase(tc.in); got != tc.want {
			t.Fatalf("titleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
