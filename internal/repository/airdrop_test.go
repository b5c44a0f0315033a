package repository_test

import (
	"errors"
	"testing"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func airdropIDs(airdrops []entity.Airdrop) []string {
	ids := []string{}
	for _, a := range airdrops {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestAirdropRepository_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewAirdropRepository()

	testCases := []struct {
		name   string
		filter repository.GetListAirdropFilter
		want   []string
	}{
		{
			name: "no filter orders by created_at desc",
			want: []string{"airdrop3", "airdrop2", "airdrop1"},
		},
		{
			name:   "featured",
			filter: repository.GetListAirdropFilter{Featured: true},
			want:   []string{"airdrop3", "airdrop1"},
		},
		{
			name:   "chain",
			filter: repository.GetListAirdropFilter{Chain: "Ethereum"},
			want:   []string{"airdrop3", "airdrop1"},
		},
		{
			name:   "chain all",
			filter: repository.GetListAirdropFilter{Chain: repository.AllValue},
			want:   []string{"airdrop3", "airdrop2", "airdrop1"},
		},
		{
			name:   "difficulty",
			filter: repository.GetListAirdropFilter{Difficulty: "Easy"},
			want:   []string{"airdrop2"},
		},
		{
			name:   "chain and difficulty",
			filter: repository.GetListAirdropFilter{Chain: "Ethereum", Difficulty: "Hard"},
			want:   []string{"airdrop3"},
		},
		{
			name:   "limit",
			filter: repository.GetListAirdropFilter{Limit: 2},
			want:   []string{"airdrop3", "airdrop2"},
		},
		{
			name:   "featured with limit",
			filter: repository.GetListAirdropFilter{Featured: true, Limit: 1},
			want:   []string{"airdrop3"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := repo.GetList(ctx, tc.filter)
			require.NoError(t, err)
			require.Equal(t, tc.want, airdropIDs(result))
		})
	}
}

func TestAirdropRepository_TagsRoundTrip(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewAirdropRepository()

	a, err := repo.GetByID(ctx, testutil.Airdrop1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Airdrop1.Tags, a.Tags)
}

func TestAirdropRepository_LegacyTags(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	err := xcontext.DB(ctx).Exec("UPDATE airdrops SET tags=? WHERE id=?",
		"DeFi, Layer 2", testutil.Airdrop2.ID).Error
	require.NoError(t, err)

	a, err := repository.NewAirdropRepository().GetByID(ctx, testutil.Airdrop2.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Tags{"DeFi", "Layer 2"}, a.Tags)
}

func TestAirdropRepository_UpdateByID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewAirdropRepository()

	a, err := repo.UpdateByID(ctx, testutil.Airdrop1.ID, map[string]any{
		"title":    "New title",
		"featured": false,
	})
	require.NoError(t, err)
	require.Equal(t, "New title", a.Title)
	require.False(t, a.Featured)
	require.Equal(t, testutil.Airdrop1.Chain, a.Chain)

	_, err = repo.UpdateByID(ctx, "missing", map[string]any{"title": "x"})
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestAirdropRepository_DeleteByID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewAirdropRepository()

	require.NoError(t, repo.DeleteByID(ctx, testutil.Airdrop2.ID))

	result, err := repo.GetList(ctx, repository.GetListAirdropFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"airdrop3", "airdrop1"}, airdropIDs(result))

	_, err = repo.GetByID(ctx, testutil.Airdrop2.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.DeleteByID(ctx, testutil.Airdrop2.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}
