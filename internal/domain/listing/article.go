package listing

import (
	"time"

	"github.com/claimex/backend/internal/model"
)

const pubDateLayout = "2006-01-02 15:04:05"

type ArticleQuery struct {
	Search   string
	Category string
}

func (q ArticleQuery) Predicates() []Predicate[model.LiveArticle] {
	return []Predicate[model.LiveArticle]{
		Search(q.Search,
			func(a model.LiveArticle) string { return a.Title },
			func(a model.LiveArticle) string { return a.Description },
		),
		func(a model.LiveArticle) bool {
			if !isConstrained(q.Category) {
				return true
			}

			for _, c := range a.Category {
				if containsFold(c, q.Category) {
					return true
				}
			}

			return false
		},
	}
}

// Articles filters live articles and orders them by publication date, newest
// first.
func Articles(items []model.LiveArticle, q ArticleQuery) []model.LiveArticle {
	return Sort(Filter(items, q.Predicates()...), func(a, b model.LiveArticle) bool {
		ta, errA := time.Parse(pubDateLayout, a.PubDate)
		tb, errB := time.Parse(pubDateLayout, b.PubDate)
		if errA != nil || errB != nil {
			return a.PubDate > b.PubDate
		}

		return ta.After(tb)
	})
}
