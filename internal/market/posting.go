package market

// ParsedPosting is the best-effort interpretation of one raw listing text.
// Company and position are heuristic guesses and never guaranteed accurate.
// Tags holds the validated technology identifiers found in the text, each at
// most once, sorted.
type ParsedPosting struct {
	Company  string
	Position string
	Tags     []string
}

const (
	// CompanyPlaceholder is used when no line of the listing looks like a company name.
	CompanyPlaceholder = "알 수 없음"
	// PositionPlaceholder is used when no line of the listing looks like a position title.
	PositionPlaceholder = "개발자"
)
