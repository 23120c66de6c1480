package itemstore

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/tatarubot/tataru/internal/domain"
)

const (
	// fuzzyCutoff is the minimum similarity a cached name must reach to
	// be considered a candidate.
	fuzzyCutoff = 0.6
	// fuzzyLimit caps the number of returned candidates.
	fuzzyLimit = 5
)

// FuzzyLookup ranks cached item names by similarity to the query and
// returns up to five candidates clearing the 0.6 cutoff, most similar
// first. It never touches the remote directory: this is the recovery
// path when exact lookups fail and the query is not purely numeric.
func (s *Store) FuzzyLookup(query string) []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		item  domain.Item
		score float64
	}

	q := strings.ToLower(query)
	results := make([]scored, 0, fuzzyLimit)
	for _, id := range s.order {
		item := s.items[id]
		score := similarity(q, strings.ToLower(item.Name))
		if score >= fuzzyCutoff {
			results = append(results, scored{item: item, score: score})
		}
	}
	if len(results) == 0 {
		return nil
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].item.Name < results[j].item.Name
		}
		return results[i].score > results[j].score
	})

	if len(results) > fuzzyLimit {
		results = results[:fuzzyLimit]
	}
	items := make([]domain.Item, len(results))
	for i, r := range results {
		items[i] = r.item
	}
	return items
}

// similarity normalizes edit distance into [0,1]: identical strings
// score 1, entirely different strings score 0.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
