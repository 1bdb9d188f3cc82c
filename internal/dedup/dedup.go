// Package dedup collapses job listings that describe the same real-world
// opening. Providers have no shared identifier for a posting, so matching
// is fuzzy: same employer plus approximately equal title.
package dedup

import (
	"strings"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

// similarityThreshold is the Jaccard score (inclusive) at or above which
// two titles are considered the same role.
const similarityThreshold = 0.6

// stopWords are filler tokens removed from titles before comparison, so
// that seniority prefixes and conjunctions don't split otherwise identical
// roles.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {},
	"-": {}, "/": {},
	"junior": {}, "senior": {}, "jr": {}, "sr": {},
}

// Tokenize splits a title into its lower-cased word set with stop words
// removed. The result may be empty (e.g. a title of only stop words).
func Tokenize(title string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if _, skip := stopWords[word]; skip {
			continue
		}
		tokens[word] = struct{}{}
	}
	return tokens
}

// Jaccard returns |a∩b| / |a∪b| for two token sets. It returns 0 when the
// union is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// SameTitle reports whether two job titles describe the same role: Jaccard
// similarity of their token sets at or above the threshold. If either set
// is empty after stop-word removal the comparison falls back to exact
// case-insensitive equality of the full titles.
func SameTitle(a, b string) bool {
	tokensA := Tokenize(a)
	tokensB := Tokenize(b)

	if len(tokensA) == 0 || len(tokensB) == 0 {
		return strings.EqualFold(a, b)
	}

	return Jaccard(tokensA, tokensB) >= similarityThreshold
}

// Engine removes near-duplicate listings from a candidate sequence. The
// first occurrence wins, so callers encode source priority by the order
// they concatenate provider outputs.
type Engine struct{}

// New returns a dedup engine with the standard title-matching policy.
func New() *Engine {
	return &Engine{}
}

var _ model.Deduper = (*Engine)(nil)

// Deduplicate returns the input sequence with duplicates removed, in input
// order. A candidate is a duplicate when an already-accepted listing from
// the same company (lower-cased, trimmed name) has a matching title.
// Quadratic per company, but the result cap keeps the input small.
func (e *Engine) Deduplicate(jobs []model.Job) []model.Job {
	accepted := make(map[string][]model.Job)
	unique := make([]model.Job, 0, len(jobs))

	for _, job := range jobs {
		companyKey := strings.ToLower(strings.TrimSpace(job.Company))

		duplicate := false
		for _, existing := range accepted[companyKey] {
			if SameTitle(job.Title, existing.Title) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		accepted[companyKey] = append(accepted[companyKey], job)
		unique = append(unique, job)
	}

	return unique
}
