package wanted

import "fmt"

// CollectionError reports a failed collection run: network or navigation
// failure, a bad HTTP status, or an unparseable page. A page that loads but
// exposes no posting elements is not a CollectionError; that case yields an
// empty result instead.
type CollectionError struct {
	Op  string
	URL string
	Err error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collecting postings: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}
