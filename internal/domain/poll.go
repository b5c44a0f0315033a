package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Layouts accepted for the end of a poll, the first one being what clients
// get back.
var pollTimeLayouts = []string{
	model.DefaultTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type PollDomain interface {
	GetList(context.Context, *model.GetPollsRequest) (*model.GetPollsResponse, error)
	Create(context.Context, *model.CreatePollRequest) (*model.CreatePollResponse, error)
	Delete(context.Context, *model.DeletePollRequest) (*model.DeletePollResponse, error)
	Vote(context.Context, *model.VotePollRequest) (*model.VotePollResponse, error)
}

type pollDomain struct {
	pollRepo      repository.PollRepository
	voteRepo      repository.VoteRepository
	adminVerifier *common.AdminVerifier
}

func NewPollDomain(
	pollRepo repository.PollRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
) PollDomain {
	return &pollDomain{
		pollRepo:      pollRepo,
		voteRepo:      voteRepo,
		adminVerifier: common.NewAdminVerifier(userRepo),
	}
}

func (d *pollDomain) GetList(
	ctx context.Context, req *model.GetPollsRequest,
) (*model.GetPollsResponse, error) {
	polls, err := d.pollRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get polls: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetPollsResponse{Polls: make([]model.Poll, 0, len(polls))}
	for i := range polls {
		resp.Polls = append(resp.Polls, model.ConvertPoll(&polls[i]))
	}

	return resp, nil
}

func (d *pollDomain) Create(
	ctx context.Context, req *model.CreatePollRequest,
) (*model.CreatePollResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	endsAt, err := parsePollTime(req.EndsAt)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid ends_at")
	}

	options := entity.Array[entity.PollOption]{}
	for _, text := range req.Options {
		if text = strings.TrimSpace(text); text == "" {
			continue
		}

		options = append(options, entity.PollOption{
			ID:   fmt.Sprintf("opt%d", len(options)+1),
			Text: text,
		})
	}

	if len(options) < 2 {
		return nil, errorx.New(errorx.BadRequest, "A poll needs at least two options")
	}

	poll := &entity.Poll{
		Base:     entity.Base{ID: uuid.NewString()},
		Question: req.Question,
		Options:  options,
		EndsAt:   endsAt,
	}

	if err := d.pollRepo.Create(ctx, poll); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create poll: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePollResponse{Poll: model.ConvertPoll(poll)}, nil
}

func (d *pollDomain) Delete(
	ctx context.Context, req *model.DeletePollRequest,
) (*model.DeletePollResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if err := d.pollRepo.DeleteByID(ctx, req.ID); err != nil {
		return nil, storeError(ctx, err, "delete", "poll")
	}

	return &model.DeletePollResponse{}, nil
}

func (d *pollDomain) Vote(
	ctx context.Context, req *model.VotePollRequest,
) (*model.VotePollResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	poll, err := d.pollRepo.GetByIDForUpdate(ctx, req.PollID)
	if err != nil {
		return nil, storeError(ctx, err, "get", "poll")
	}

	if !time.Now().Before(poll.EndsAt) {
		return nil, errorx.New(errorx.PollClosed, "This poll has ended")
	}

	_, err = d.voteRepo.GetPollVote(ctx, userID, poll.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyVoted, "You have already voted on this poll")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get poll vote: %v", err)
		return nil, errorx.Unknown
	}

	found := false
	for i := range poll.Options {
		if poll.Options[i].ID == req.OptionID {
			poll.Options[i].Votes++
			found = true
			break
		}
	}
	if !found {
		return nil, errorx.New(errorx.NotFound, "Not found option")
	}
	poll.TotalVotes++

	err = d.voteRepo.CreatePollVote(ctx, &entity.PollVote{
		UserID:   userID,
		PollID:   poll.ID,
		OptionID: req.OptionID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create poll vote: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.pollRepo.UpdateVotes(ctx, poll.ID, poll.Options, poll.TotalVotes); err != nil {
		return nil, storeError(ctx, err, "update votes of", "poll")
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit poll vote: %v", err)
		return nil, errorx.Unknown
	}

	return &model.VotePollResponse{Poll: model.ConvertPoll(poll)}, nil
}

func parsePollTime(s string) (time.Time, error) {
	var err error
	for _, layout := range pollTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, err
}
