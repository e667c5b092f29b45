package market

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/seojinp/wanted-radar/internal/wanted"
)

const (
	minCompanyRunes = 2
	maxCompanyRunes = 30

	minPositionRunes = 5
	maxPositionRunes = 80

	// rewardMarker flags the "hiring bonus" marketing copy wanted injects
	// into listing cards. Lines carrying it are never a company or position.
	rewardMarker = "합격보상금"
	bonusAmount  = "100만원"
)

// positionIndicators mark a line as a position title rather than a company
// name. A line containing any of these is disqualified as a company candidate
// and qualified as a position candidate.
var positionIndicators = []string{
	"developer", "개발자", "engineer", "엔지니어", "backend", "frontend",
	"fullstack", "react", "vue", "angular", "java", "python", "php",
	"javascript", "kotlin", "swift", "node", "spring", "django",
}

// Parser turns one raw listing text into a ParsedPosting. It never fails:
// when no line carries enough signal the fixed placeholders are used and the
// anomaly is only logged.
type Parser struct {
	validator *Validator
	logger    *zap.Logger
}

func NewParser(validator *Validator, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{validator: validator, logger: logger}
}

// Parse assigns company, position and technology tags to one raw posting.
// Specific position-indicating lines outrank generic ones, and reward
// marketing copy is excluded from both fields.
func (p *Parser) Parse(raw wanted.RawPosting) ParsedPosting {
	lines := splitLines(raw.Text)

	company := findCompany(lines)
	position := findPosition(lines)

	if company == "" {
		company = fallbackCompany(lines)
	}
	if position == "" {
		position = fallbackPosition(lines)
	}

	if company == CompanyPlaceholder || position == PositionPlaceholder {
		p.logger.Debug("posting parsed with placeholder fields",
			zap.Int("posting_index", raw.Index),
			zap.String("company", company),
			zap.String("position", position),
		)
	}

	return ParsedPosting{
		Company:  company,
		Position: position,
		Tags:     p.validator.ExtractTags(raw.Text),
	}
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// findCompany returns the first short line free of position indicators and
// reward copy. Company names on listing cards are usually brief.
func findCompany(lines []string) string {
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n < minCompanyRunes || n > maxCompanyRunes {
			continue
		}
		lower := strings.ToLower(line)
		if containsAny(lower, positionIndicators) {
			continue
		}
		if strings.Contains(lower, rewardMarker) || strings.Contains(lower, bonusAmount) {
			continue
		}
		return line
	}
	return ""
}

// findPosition returns the first line of plausible title length that carries
// a position indicator.
func findPosition(lines []string) string {
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n < minPositionRunes || n > maxPositionRunes {
			continue
		}
		if containsAny(strings.ToLower(line), positionIndicators) {
			return line
		}
	}
	return ""
}

// fallbackCompany takes the second-to-last line, where wanted cards usually
// put the company, unless it is reward copy.
func fallbackCompany(lines []string) string {
	if len(lines) >= 2 {
		candidate := lines[len(lines)-2]
		if !strings.Contains(candidate, rewardMarker) {
			return candidate
		}
	}
	return CompanyPlaceholder
}

// fallbackPosition takes the first of the leading lines that is not reward
// copy and long enough to be a title.
func fallbackPosition(lines []string) string {
	limit := len(lines)
	if limit > 3 {
		limit = 3
	}
	for _, line := range lines[:limit] {
		if strings.Contains(line, rewardMarker) {
			continue
		}
		if utf8.RuneCountInString(line) > minPositionRunes {
			return line
		}
	}
	return PositionPlaceholder
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
