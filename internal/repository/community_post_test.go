package repository_test

import (
	"testing"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestCommunityPostRepository_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewCommunityPostRepository()

	posts, err := repo.GetList(ctx, repository.GetListCommunityPostFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, testutil.Post2.ID, posts[0].ID)

	posts, err = repo.GetList(ctx, repository.GetListCommunityPostFilter{Category: "Strategy"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, testutil.Post1.ID, posts[0].ID)

	posts, err = repo.GetList(ctx, repository.GetListCommunityPostFilter{Category: "All", Limit: 1})
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestCommunityPostRepository_IncreaseVotes(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewCommunityPostRepository()

	require.NoError(t, repo.IncreaseVotes(ctx, testutil.Post1.ID, 1, -1))
	require.NoError(t, repo.IncreaseVotes(ctx, testutil.Post1.ID, 0, 2))

	p, err := repo.GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Post1.Upvotes+1, p.Upvotes)
	require.Equal(t, testutil.Post1.Downvotes+1, p.Downvotes)
}

func TestVoteRepository_PostVote(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewVoteRepository()

	vote := &entity.PostVote{UserID: "user1", PostID: "post1", Direction: entity.VoteUp}
	require.NoError(t, repo.UpsertPostVote(ctx, vote))

	vote.Direction = entity.VoteDown
	require.NoError(t, repo.UpsertPostVote(ctx, vote))

	got, err := repo.GetPostVote(ctx, "user1", "post1")
	require.NoError(t, err)
	require.Equal(t, entity.VoteDown, got.Direction)

	require.NoError(t, repo.DeletePostVote(ctx, "user1", "post1"))
	_, err = repo.GetPostVote(ctx, "user1", "post1")
	require.Error(t, err)
}
