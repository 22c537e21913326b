package model

// Category narrows the browsed collection to one slice of it.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryStarred   Category = "starred"
	CategoryOwned     Category = "owned"
	CategoryForked    Category = "forked"
	CategoryHasIssues Category = "has-issues"
)

var categoryOrder = []Category{
	CategoryAll,
	CategoryStarred,
	CategoryOwned,
	CategoryForked,
	CategoryHasIssues,
}

// Next cycles through the categories in display order.
func (c Category) Next() Category {
	for i, cat := range categoryOrder {
		if cat == c {
			return categoryOrder[(i+1)%len(categoryOrder)]
		}
	}
	return CategoryAll
}

// Label is the human-readable name shown in the filter bar.
func (c Category) Label() string {
	switch c {
	case CategoryStarred:
		return "starred only"
	case CategoryOwned:
		return "owned only"
	case CategoryForked:
		return "forked only"
	case CategoryHasIssues:
		return "with issues"
	default:
		return "all repositories"
	}
}

// Match reports whether the repository belongs to the category.
func (c Category) Match(r Repo) bool {
	switch c {
	case CategoryStarred:
		return r.Starred
	case CategoryOwned:
		return !r.Fork
	case CategoryForked:
		return r.Fork
	case CategoryHasIssues:
		return r.OpenIssues > 0
	default:
		return true
	}
}
