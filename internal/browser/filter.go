package browser

import (
	"strings"

	"repodeck/internal/model"
)

// applyFilter returns the subsequence of repos passing both the
// free-text query and the category predicate. Pure: order is
// preserved and the input is never mutated.
func applyFilter(repos []model.Repo, query string, cat model.Category) []model.Repo {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Repo, 0, len(repos))
	for _, r := range repos {
		if q != "" && !matchesQuery(r, q) {
			continue
		}
		if !cat.Match(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesQuery reports whether the lowercased query is a substring of
// the repository's name, description, or language.
func matchesQuery(r model.Repo, q string) bool {
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Description), q) ||
		strings.Contains(strings.ToLower(r.Language), q)
}
