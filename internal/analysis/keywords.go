package analysis

import (
	"regexp"
	"sort"
	"strings"
)

const maxKeywords = 10

var wordRE = regexp.MustCompile(`\b[a-z]{3,}\b`)

// stopwords excluded from keyword ranking. Domain noise ("tour", "tours")
// rides along with the grammatical filler.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "can": true, "this": true, "that": true,
	"these": true, "those": true, "i": true, "you": true, "he": true,
	"she": true, "it": true, "we": true, "they": true, "his": true,
	"her": true, "its": true, "our": true, "their": true, "am": true,
	"tour": true, "tours": true,
}

// ExtractKeywords ranks significant terms across the given texts: lowercase,
// 3+ letter words only, stopwords stripped, frequency descending with ties
// broken by first occurrence. Deterministic for fixed input.
func ExtractKeywords(texts []string, top int) []string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	pos := 0
	for _, text := range texts {
		for _, w := range wordRE.FindAllString(strings.ToLower(text), -1) {
			if stopwords[w] {
				continue
			}
			if _, ok := counts[w]; !ok {
				firstSeen[w] = pos
			}
			counts[w]++
			pos++
		}
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > top {
		words = words[:top]
	}
	out := make([]string, len(words))
	copy(out, words)
	return out
}
