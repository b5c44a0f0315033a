package listing

import (
	"github.com/claimex/backend/internal/model"
)

type CoinQuery struct {
	Search string
}

func Coins(items []model.Coin, q CoinQuery) []model.Coin {
	return Filter(items, Search(q.Search,
		func(c model.Coin) string { return c.Name },
		func(c model.Coin) string { return c.AssetID },
	))
}
