package repository

import (
	"context"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type VoteRepository interface {
	GetPostVote(ctx context.Context, userID, postID string) (*entity.PostVote, error)
	UpsertPostVote(ctx context.Context, e *entity.PostVote) error
	DeletePostVote(ctx context.Context, userID, postID string) error

	GetPollVote(ctx context.Context, userID, pollID string) (*entity.PollVote, error)
	CreatePollVote(ctx context.Context, e *entity.PollVote) error
}

type voteRepository struct{}

func NewVoteRepository() VoteRepository {
	return &voteRepository{}
}

func (r *voteRepository) GetPostVote(ctx context.Context, userID, postID string) (*entity.PostVote, error) {
	var result entity.PostVote
	err := xcontext.DB(ctx).
		Where("user_id=? AND post_id=?", userID, postID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *voteRepository) UpsertPostVote(ctx context.Context, e *entity.PostVote) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"direction"}),
		}).
		Create(e).Error
}

func (r *voteRepository) DeletePostVote(ctx context.Context, userID, postID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.PostVote{}, "user_id=? AND post_id=?", userID, postID).Error
}

func (r *voteRepository) GetPollVote(ctx context.Context, userID, pollID string) (*entity.PollVote, error) {
	var result entity.PollVote
	err := xcontext.DB(ctx).
		Where("user_id=? AND poll_id=?", userID, pollID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *voteRepository) CreatePollVote(ctx context.Context, e *entity.PollVote) error {
	return xcontext.DB(ctx).Create(e).Error
}
