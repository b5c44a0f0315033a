package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestClickRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewClickRepository()

	now := time.Now()
	clicks := []entity.ClickEvent{
		{ID: 1, AirdropID: "airdrop1", Timestamp: now},
		{ID: 2, AirdropID: "airdrop1", IPAddress: sql.NullString{Valid: true, String: "1.2.3.4"}, Timestamp: now.Add(time.Second)},
		{ID: 3, AirdropID: "airdrop2", Timestamp: now.Add(2 * time.Second)},
	}
	for i := range clicks {
		require.NoError(t, repo.Create(ctx, &clicks[i]))
	}

	events, err := repo.GetList(ctx, repository.GetListClickFilter{AirdropID: "airdrop1"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, int64(2), events[0].ID)
	require.Equal(t, "1.2.3.4", events[0].IPAddress.String)

	counts, err := repo.CountByAirdrop(ctx, repository.GetListClickFilter{})
	require.NoError(t, err)
	require.Equal(t, []repository.ClickCount{
		{AirdropID: "airdrop1", Clicks: 2},
		{AirdropID: "airdrop2", Clicks: 1},
	}, counts)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
}
