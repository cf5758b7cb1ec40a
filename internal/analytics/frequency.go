package analytics

import "sort"

// counter counts string occurrences and remembers first-seen order so
// equal counts rank deterministically.
type counter struct {
	index  map[string]int
	keys   []string
	counts []int
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(items ...string) {
	for _, item := range items {
		i, ok := c.index[item]
		if !ok {
			i = len(c.keys)
			c.index[item] = i
			c.keys = append(c.keys, item)
			c.counts = append(c.counts, 0)
		}
		c.counts[i]++
	}
}

// top returns up to limit entries by descending count, ties in first-seen order.
// limit <= 0 returns everything.
func (c *counter) top(limit int) []MistakeFrequency {
	ranked := make([]MistakeFrequency, len(c.keys))
	for i, k := range c.keys {
		ranked[i] = MistakeFrequency{Concept: k, Frequency: c.counts[i]}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Frequency > ranked[j].Frequency
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// mostFrequent returns the top concepts only.
func mostFrequent(items []string, limit int) []string {
	c := newCounter()
	c.add(items...)

	ranked := c.top(limit)
	concepts := make([]string, len(ranked))
	for i, r := range ranked {
		concepts[i] = r.Concept
	}
	return concepts
}
