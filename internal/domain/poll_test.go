package domain

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestPollDomain() PollDomain {
	return NewPollDomain(repository.NewPollRepository(), repository.NewVoteRepository(), repository.NewUserRepository())
}

func Test_pollDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestPollDomain()

	endsAt := time.Now().Add(time.Hour).UTC().Format(model.DefaultTimeLayout)
	req := &model.CreatePollRequest{
		Question: "Next L2?",
		Options:  []string{"Base", " ", "Scroll"},
		EndsAt:   endsAt,
	}

	_, err := domain.Create(xcontext.WithRequestUserID(ctx, testutil.User1.ID), req)
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.AdminUser.ID)
	resp, err := domain.Create(adminCtx, req)
	require.NoError(t, err)
	require.Zero(t, resp.Poll.TotalVotes)
	require.Equal(t, []model.PollOption{
		{ID: "opt1", Text: "Base"},
		{ID: "opt2", Text: "Scroll"},
	}, resp.Poll.Options)

	_, err = domain.Create(adminCtx, &model.CreatePollRequest{
		Question: "q", Options: []string{"only", " "}, EndsAt: endsAt,
	})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))

	_, err = domain.Create(adminCtx, &model.CreatePollRequest{
		Question: "q", Options: []string{"a", "b"}, EndsAt: "tomorrow",
	})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))

	_, err = domain.Create(adminCtx, &model.CreatePollRequest{
		Question: "q", Options: []string{"a", "b"}, EndsAt: "2030-01-02T15:04",
	})
	require.NoError(t, err)

	list, err := domain.GetList(ctx, &model.GetPollsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Polls, 4)
}

func Test_pollDomain_Vote(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestPollDomain()
	voterCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	resp, err := domain.Vote(voterCtx, &model.VotePollRequest{PollID: testutil.OpenPoll.ID, OptionID: "opt2"})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Poll.TotalVotes)
	require.Equal(t, 0, resp.Poll.Options[0].Votes)
	require.Equal(t, 1, resp.Poll.Options[1].Votes)

	_, err = domain.Vote(voterCtx, &model.VotePollRequest{PollID: testutil.OpenPoll.ID, OptionID: "opt1"})
	require.ErrorIs(t, err, errorx.New(errorx.AlreadyVoted, ""))

	_, err = domain.Vote(xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.VotePollRequest{PollID: testutil.OpenPoll.ID, OptionID: "opt9"})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))

	_, err = domain.Vote(voterCtx, &model.VotePollRequest{PollID: testutil.ClosedPoll.ID, OptionID: "opt1"})
	require.ErrorIs(t, err, errorx.New(errorx.PollClosed, ""))

	_, err = domain.Vote(ctx, &model.VotePollRequest{PollID: testutil.OpenPoll.ID, OptionID: "opt1"})
	require.ErrorIs(t, err, errorx.New(errorx.Unauthenticated, ""))

	poll, err := repository.NewPollRepository().GetByID(ctx, testutil.OpenPoll.ID)
	require.NoError(t, err)
	require.Equal(t, 1, poll.TotalVotes)
}

func Test_pollDomain_VoteConcurrently(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestPollDomain()

	const voters = 10
	errs := make(chan error, voters)
	wg := sync.WaitGroup{}
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			option := []string{"opt1", "opt2"}[i%2]
			_, err := domain.Vote(xcontext.WithRequestUserID(ctx, fmt.Sprintf("voter-%d", i)),
				&model.VotePollRequest{PollID: testutil.OpenPoll.ID, OptionID: option})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	poll, err := repository.NewPollRepository().GetByID(ctx, testutil.OpenPoll.ID)
	require.NoError(t, err)
	require.Equal(t, voters, poll.TotalVotes)
	require.Equal(t, voters/2, poll.Options[0].Votes)
	require.Equal(t, voters/2, poll.Options[1].Votes)
}

func Test_pollDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestPollDomain()

	_, err := domain.Delete(xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.DeletePollRequest{ID: testutil.ClosedPoll.ID})
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))

	_, err = domain.Delete(xcontext.WithRequestUserID(ctx, testutil.AdminUser.ID),
		&model.DeletePollRequest{ID: testutil.ClosedPoll.ID})
	require.NoError(t, err)

	list, err := domain.GetList(ctx, &model.GetPollsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Polls, 1)
}
