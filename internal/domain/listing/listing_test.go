package listing_test

import (
	"sync"
	"testing"
	"time"

	"github.com/claimex/backend/internal/domain/listing"
	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/model"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func sampleAirdrops() []entity.Airdrop {
	return []entity.Airdrop{
		{
			Base:  entity.Base{ID: "a", CreatedAt: now.Add(1 * time.Hour)},
			Title: "Zk Bridge", Description: "Bridge to zkSync", Chain: "Ethereum",
			Tags: entity.Tags{"Bridge", "Layer 2"}, Difficulty: entity.DifficultyEasy,
			Reward: "$1000", Participants: 50,
		},
		{
			Base:  entity.Base{ID: "b", CreatedAt: now.Add(3 * time.Hour)},
			Title: "Solana Swap", Description: "DEX on solana", Chain: "Solana",
			Tags: entity.Tags{"DeFi"}, Difficulty: entity.DifficultyMedium,
			Reward: "$900", Participants: 500,
		},
		{
			Base:  entity.Base{ID: "c", CreatedAt: now.Add(2 * time.Hour)},
			Title: "Game Fi", Description: "Ethereum gaming BRIDGE", Chain: "Ethereum",
			Tags: entity.Tags{"Gaming"}, Difficulty: entity.DifficultyEasy,
			Reward: "$50", Participants: 500,
		},
	}
}

func ids(airdrops []entity.Airdrop) []string {
	result := []string{}
	for _, a := range airdrops {
		result = append(result, a.ID)
	}
	return result
}

func TestAirdrops_Filter(t *testing.T) {
	testCases := []struct {
		name  string
		query listing.AirdropQuery
		want  []string
	}{
		{name: "no constraint", query: listing.AirdropQuery{}, want: []string{"b", "c", "a"}},
		{name: "search is case insensitive on title and description", query: listing.AirdropQuery{Search: "bridge"}, want: []string{"c", "a"}},
		{name: "chain", query: listing.AirdropQuery{Chain: "Ethereum"}, want: []string{"c", "a"}},
		{name: "category from tags", query: listing.AirdropQuery{Category: "DeFi"}, want: []string{"b"}},
		{name: "difficulty", query: listing.AirdropQuery{Difficulty: "Easy"}, want: []string{"c", "a"}},
		{name: "conjunction", query: listing.AirdropQuery{Search: "bridge", Difficulty: "Easy", Category: "Layer 2"}, want: []string{"a"}},
		{name: "nothing", query: listing.AirdropQuery{Chain: "Bitcoin"}, want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ids(listing.Airdrops(sampleAirdrops(), tc.query)))
		})
	}
}

func TestAirdrops_AllIsNoConstraint(t *testing.T) {
	items := sampleAirdrops()
	all := listing.AirdropQuery{Chain: listing.All, Category: listing.All, Difficulty: listing.All}
	require.Equal(t, ids(listing.Airdrops(items, listing.AirdropQuery{})), ids(listing.Airdrops(items, all)))

	withChain := listing.AirdropQuery{Chain: "Solana", Difficulty: listing.All}
	require.Equal(t,
		ids(listing.Airdrops(items, listing.AirdropQuery{Chain: "Solana"})),
		ids(listing.Airdrops(items, withChain)),
	)
}

func TestAirdrops_FilterCommutative(t *testing.T) {
	items := sampleAirdrops()
	query := listing.AirdropQuery{Search: "e", Chain: "Ethereum", Difficulty: "Easy"}
	predicates := query.Predicates()

	expected := ids(listing.Filter(items, predicates...))
	reversed := []listing.Predicate[entity.Airdrop]{predicates[3], predicates[2], predicates[1], predicates[0]}
	require.Equal(t, expected, ids(listing.Filter(items, reversed...)))

	// Filtering step by step is the same as filtering at once.
	stepped := items
	for _, p := range predicates {
		stepped = listing.Filter(stepped, p)
	}
	require.Equal(t, expected, ids(stepped))

	// Idempotent.
	require.Equal(t, expected, ids(listing.Filter(listing.Filter(items, predicates...), predicates...)))
}

func TestAirdrops_Sort(t *testing.T) {
	items := sampleAirdrops()

	require.Equal(t, []string{"b", "c", "a"},
		ids(listing.Airdrops(items, listing.AirdropQuery{SortBy: listing.SortRecent})))

	// b and c have equal participants and keep their input order.
	require.Equal(t, []string{"b", "c", "a"},
		ids(listing.Airdrops(items, listing.AirdropQuery{SortBy: listing.SortPopular})))

	// Lexicographic: "$900" > "$50" > "$1000".
	require.Equal(t, []string{"b", "c", "a"},
		ids(listing.Airdrops(items, listing.AirdropQuery{SortBy: listing.SortReward})))
}

func TestAirdrops_RewardIsLexicographic(t *testing.T) {
	items := []entity.Airdrop{
		{Base: entity.Base{ID: "thousand"}, Reward: "$1000"},
		{Base: entity.Base{ID: "nine-hundred"}, Reward: "$900"},
	}

	require.Equal(t, []string{"nine-hundred", "thousand"},
		ids(listing.Airdrops(items, listing.AirdropQuery{SortBy: listing.SortReward})))
}

func TestAirdrops_DoesNotMutateInput(t *testing.T) {
	items := sampleAirdrops()
	_ = listing.Airdrops(items, listing.AirdropQuery{SortBy: listing.SortPopular})
	require.Equal(t, []string{"a", "b", "c"}, ids(items))
}

func TestPosts(t *testing.T) {
	posts := []entity.CommunityPost{
		{Base: entity.Base{ID: "p1", CreatedAt: now}, Title: "Alpha leak", Content: "zk", Category: entity.PostCategoryAlpha, Upvotes: 10},
		{Base: entity.Base{ID: "p2", CreatedAt: now.Add(time.Hour)}, Title: "Question", Content: "How to ALPHA?", Category: entity.PostCategoryQuestion, Upvotes: 1},
	}

	result := listing.Posts(posts, listing.PostQuery{Search: "alpha"})
	require.Len(t, result, 2)
	require.Equal(t, "p2", result[0].ID)

	result = listing.Posts(posts, listing.PostQuery{SortBy: listing.SortPopular})
	require.Equal(t, "p1", result[0].ID)

	result = listing.Posts(posts, listing.PostQuery{Category: "Question"})
	require.Len(t, result, 1)
	require.Equal(t, "p2", result[0].ID)
}

func TestArticles(t *testing.T) {
	articles := []model.LiveArticle{
		{ArticleID: "1", Title: "Bitcoin ETF", PubDate: "2024-03-01 10:00:00", Category: []string{"business"}},
		{ArticleID: "2", Title: "New L2", Description: "ethereum scaling", PubDate: "2024-03-02 10:00:00", Category: []string{"technology"}},
		{ArticleID: "3", Title: "Markets", PubDate: "2024-02-28 10:00:00", Category: []string{"Business", "top"}},
	}

	result := listing.Articles(articles, listing.ArticleQuery{})
	require.Equal(t, "2", result[0].ArticleID)
	require.Equal(t, "3", result[2].ArticleID)

	result = listing.Articles(articles, listing.ArticleQuery{Category: "busi"})
	require.Len(t, result, 2)
	require.Equal(t, "1", result[0].ArticleID)

	result = listing.Articles(articles, listing.ArticleQuery{Search: "ETHEREUM"})
	require.Len(t, result, 1)
	require.Equal(t, "2", result[0].ArticleID)
}

func TestCoins(t *testing.T) {
	coins := []model.Coin{{AssetID: "BTC", Name: "Bitcoin"}, {AssetID: "ETH", Name: "Ethereum"}}

	require.Len(t, listing.Coins(coins, listing.CoinQuery{}), 2)
	require.Len(t, listing.Coins(coins, listing.CoinQuery{Search: "eth"}), 1)
	require.Len(t, listing.Coins(coins, listing.CoinQuery{Search: "bitc"}), 1)
}

func TestCollection_SequenceGuard(t *testing.T) {
	var c listing.Collection[int]

	slow := c.Begin()
	fast := c.Begin()

	require.True(t, c.Replace(fast, []int{2}))
	require.False(t, c.Replace(slow, []int{1}))

	items, seq := c.Items()
	require.Equal(t, []int{2}, items)
	require.Equal(t, fast, seq)

	newer := c.Begin()
	require.True(t, c.Replace(newer, []int{3}))
	items, _ = c.Items()
	require.Equal(t, []int{3}, items)
}

func TestCollection_Concurrent(t *testing.T) {
	var c listing.Collection[uint64]

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := c.Begin()
			c.Replace(seq, []uint64{seq})
		}()
	}
	wg.Wait()

	items, seq := c.Items()
	require.Equal(t, uint64(50), seq)
	require.Equal(t, []uint64{50}, items)
}
