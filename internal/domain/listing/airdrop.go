package listing

import (
	"github.com/claimex/backend/internal/entity"
)

type AirdropQuery struct {
	Search     string
	Chain      string
	Category   string
	Difficulty string
	SortBy     SortKey
}

func (q AirdropQuery) Predicates() []Predicate[entity.Airdrop] {
	return []Predicate[entity.Airdrop]{
		Search(q.Search,
			func(a entity.Airdrop) string { return a.Title },
			func(a entity.Airdrop) string { return a.Description },
		),
		Equal(q.Chain, func(a entity.Airdrop) string { return a.Chain }),
		Equal(q.Difficulty, func(a entity.Airdrop) string { return string(a.Difficulty) }),
		func(a entity.Airdrop) bool {
			return !isConstrained(q.Category) || a.Tags.Contains(q.Category)
		},
	}
}

func (q AirdropQuery) Less() func(a, b entity.Airdrop) bool {
	switch q.SortBy {
	case SortPopular:
		return func(a, b entity.Airdrop) bool { return a.Participants > b.Participants }
	case SortReward:
		// Rewards are free text, so "$900" comes before "$1000".
		return func(a, b entity.Airdrop) bool { return a.Reward > b.Reward }
	default:
		return func(a, b entity.Airdrop) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
}

func Airdrops(items []entity.Airdrop, q AirdropQuery) []entity.Airdrop {
	return Sort(Filter(items, q.Predicates()...), q.Less())
}
