package listing

import (
	"github.com/claimex/backend/internal/entity"
)

type PostQuery struct {
	Search   string
	Category string
	SortBy   SortKey
}

func (q PostQuery) Predicates() []Predicate[entity.CommunityPost] {
	return []Predicate[entity.CommunityPost]{
		Search(q.Search,
			func(p entity.CommunityPost) string { return p.Title },
			func(p entity.CommunityPost) string { return p.Content },
		),
		Equal(q.Category, func(p entity.CommunityPost) string { return string(p.Category) }),
	}
}

func (q PostQuery) Less() func(a, b entity.CommunityPost) bool {
	if q.SortBy == SortPopular {
		return func(a, b entity.CommunityPost) bool { return a.Upvotes > b.Upvotes }
	}

	return func(a, b entity.CommunityPost) bool { return a.CreatedAt.After(b.CreatedAt) }
}

func Posts(items []entity.CommunityPost, q PostQuery) []entity.CommunityPost {
	return Sort(Filter(items, q.Predicates()...), q.Less())
}
