package market

import "sort"

// SelectRanked classifies items into ordered buckets and picks the top
// entries: items are grouped by the bucket index tierOf assigns them, buckets
// are concatenated in ascending index order, entries inside a bucket are
// ordered by frequency descending with first-seen order breaking ties, the
// concatenation is deduplicated, and the first limit entries are returned.
func SelectRanked(items []string, tierOf func(string) int, limit int) []string {
	if len(items) == 0 || limit <= 0 {
		return nil
	}

	type entry struct {
		value string
		tier  int
		count int
		seen  int
	}

	index := make(map[string]*entry, len(items))
	ordered := make([]*entry, 0, len(items))

	for i, item := range items {
		if e, ok := index[item]; ok {
			e.count++
			continue
		}
		e := &entry{value: item, tier: tierOf(item), count: 1, seen: i}
		index[item] = e
		ordered = append(ordered, e)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].tier != ordered[j].tier {
			return ordered[i].tier < ordered[j].tier
		}
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].seen < ordered[j].seen
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	out := make([]string, len(ordered))
	for i, e := range ordered {
		out[i] = e.value
	}
	return out
}
