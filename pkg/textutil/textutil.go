package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// Suggest returns the candidate most similar to `name` by Jaro-Winkler
// similarity of the normalized names, and false if nothing is similar at all.
func Suggest(name string, candidates []string) (string, bool) {
	normalized := NormalizeName(name)

	best := ""
	bestSimilarity := 0.0
	for _, candidate := range candidates {
		similarity := matchr.JaroWinkler(normalized, NormalizeName(candidate), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = candidate
		}
	}
	return best, bestSimilarity > 0
}
