package dispatchers

import (
	"sort"
	"strings"
)

const (
	defaultSuggestionsCount = 3
	commandSuggestDistance  = 3
	paramSuggestDistance    = 2
)

// levenshtein calculates the case-insensitive edit distance between two
// strings, counting runes rather than bytes.
func levenshtein(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two rows are enough: each cell only looks at the previous row.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

type suggestion struct {
	name     string
	distance int
}

// FindSimilar returns up to maxResults candidates within maxDistance edits
// of input, closest first and alphabetical among equals. Exact matches are
// not suggested.
func FindSimilar(input string, candidates []string, maxResults, maxDistance int) []string {
	var suggestions []suggestion
	seen := make(map[string]bool, len(candidates))

	for _, name := range candidates {
		if seen[name] {
			continue
		}
		seen[name] = true

		dist := levenshtein(input, name)
		if dist <= maxDistance && dist > 0 {
			suggestions = append(suggestions, suggestion{name: name, distance: dist})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].distance != suggestions[j].distance {
			return suggestions[i].distance < suggestions[j].distance
		}
		return suggestions[i].name < suggestions[j].name
	})

	if len(suggestions) > maxResults {
		suggestions = suggestions[:maxResults]
	}

	result := make([]string, len(suggestions))
	for i, s := range suggestions {
		result[i] = s.name
	}
	return result
}
