package market

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	minTagRunes = 2
	maxTagRunes = 30
)

// Vocabulary holds the two fixed term sets driving tag classification: an
// allow-list of lower-cased technology identifiers and a deny-list of
// lower-cased noise terms (company names seen in listings, place names,
// recruiting vocabulary, bonus phrases). Both are treated as immutable
// configuration so the validator stays a pure predicate.
type Vocabulary struct {
	Allow []string
	Deny  []string
}

// DefaultVocabulary returns the built-in vocabulary tuned for the wanted.co.kr
// developer listing.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Allow: []string{
			// languages
			"python", "java", "javascript", "typescript", "kotlin", "swift", "go", "rust",
			"c++", "c#", "php", "ruby", "scala", "r", "dart", "objective-c",
			// web frontend
			"react", "vue", "angular", "svelte", "next.js", "nuxt.js", "gatsby",
			"jquery", "bootstrap", "tailwind", "sass", "less", "webpack", "vite",
			// backend frameworks
			"spring", "django", "flask", "fastapi", "express", "nest.js", "laravel",
			"rails", "asp.net", "gin", "echo", "fiber",
			// databases
			"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "oracle",
			"sqlite", "mariadb", "cassandra", "dynamodb", "neo4j", "influxdb",
			// cloud & infra
			"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "gitlab-ci",
			"github-actions", "terraform", "ansible", "vagrant", "nginx", "apache",
			// data & ml
			"tensorflow", "pytorch", "pandas", "numpy", "scikit-learn", "spark",
			"hadoop", "kafka", "airflow", "jupyter", "tableau", "power-bi",
			// mobile
			"android", "ios", "flutter", "react-native", "xamarin", "ionic",
			// tools
			"git", "jira", "confluence", "figma", "sketch", "linux", "ubuntu",
			"graphql", "grpc", "microservices", "serverless",
		},
		Deny: []string{
			// bonus / marketing phrases and companies known to pollute cards
			"합격보상금", "100만원", "보상금", "지란지교데이터", "위대한상상",
			"요기요", "바로고", "barogo", "원티드", "나니아랩스", "더블미디어",
			"이스트소프트", "estsoft", "여기어때컴퍼니", "엘박스", "칩스앤미디어",
			"메가스터디교육", "불마켓랩스",
			// place names
			"서울", "경기", "강남구", "서초구", "용산구", "강서구", "성남시", "판교",
			"부산", "대구", "인천", "광주", "대전", "울산", "세종",
			// recruiting vocabulary
			"신입", "경력", "년", "이상", "개발자", "engineer", "developer", "담당자",
			"근무지", "일본", "주식회사", "채용", "공고", "포지션", "업무", "담당",
			"관리", "운영", "기획", "설계", "분석", "구축", "유지보수",
		},
	}
}

// Validator decides whether a candidate string is a genuine technology
// identifier, and extracts the set of known technologies from free text.
// The deny-list always wins over the allow-list: fewer, more trustworthy tags.
type Validator struct {
	allow []string
	deny  []string
}

// NewValidator copies and lower-cases the vocabulary so later mutations of the
// caller's slices cannot change validation results.
func NewValidator(vocab Vocabulary) *Validator {
	return &Validator{
		allow: lowered(vocab.Allow),
		deny:  lowered(vocab.Deny),
	}
}

func lowered(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// IsValid reports whether candidate looks like a real technology identifier.
// A candidate passes only when its length is within bounds, no deny-list term
// occurs inside it, and at least one allow-list term occurs inside it.
func (v *Validator) IsValid(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	n := utf8.RuneCountInString(candidate)
	if n < minTagRunes || n > maxTagRunes {
		return false
	}

	lower := strings.ToLower(candidate)
	for _, term := range v.deny {
		if strings.Contains(lower, term) {
			return false
		}
	}

	for _, term := range v.allow {
		if strings.Contains(lower, term) {
			return true
		}
	}

	return false
}

// ExtractTags scans text for allow-list terms using boundary-aware matching
// and returns the title-cased set of found technologies, sorted. Each term
// contributes at most one entry no matter how often it repeats, so running
// ExtractTags twice over the same text yields the same set.
func (v *Validator) ExtractTags(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)
	found := make([]string, 0, 8)

	for _, term := range v.allow {
		if !containsBounded(lower, term) {
			continue
		}
		// Deny-list takes precedence even for allow-listed terms.
		if !v.IsValid(term) {
			continue
		}
		found = append(found, titleCase(term))
	}

	sort.Strings(found)
	return found
}

// containsBounded reports whether term occurs in text without being embedded
// inside a longer alphanumeric token. Terms may themselves contain
// punctuation (c++, next.js), so only the characters around the match are
// inspected.
func containsBounded(text, term string) bool {
	if term == "" {
		return false
	}

	for from := 0; ; {
		idx := strings.Index(text[from:], term)
		if idx < 0 {
			return false
		}

		start := from + idx
		end := start + len(term)

		before := byte(0)
		if start > 0 {
			before = text[start-1]
		}
		after := byte(0)
		if end < len(text) {
			after = text[end]
		}

		if !isAlphanumeric(before) && !isAlphanumeric(after) {
			return true
		}

		from = start + 1
		if from >= len(text) {
			return false
		}
	}
}

func isAlphanumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// titleCase upper-cases every letter that follows a non-letter, lower-casing
// the rest: "aws" -> "Aws", "next.js" -> "Next.Js", "react-native" -> "React-Native".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isLetter && !prevLetter && r >= 'a':
			b.WriteRune(r - 'a' + 'A')
		case isLetter && prevLetter && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}

	return b.String()
}
