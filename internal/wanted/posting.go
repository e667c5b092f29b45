package wanted

// RawPosting is one job listing as captured from the source: the visible text
// of the matched card plus its position on the page. It is handed to the
// parser once and never persisted.
type RawPosting struct {
	Text  string
	Index int
}
