package repository

import (
	"context"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PollRepository interface {
	Create(ctx context.Context, e *entity.Poll) error
	GetByID(ctx context.Context, id string) (*entity.Poll, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Poll, error)
	GetList(ctx context.Context) ([]entity.Poll, error)
	UpdateVotes(ctx context.Context, id string, options entity.Array[entity.PollOption], totalVotes int) error
	DeleteByID(ctx context.Context, id string) error
}

type pollRepository struct{}

func NewPollRepository() PollRepository {
	return &pollRepository{}
}

func (r *pollRepository) Create(ctx context.Context, e *entity.Poll) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *pollRepository) GetByID(ctx context.Context, id string) (*entity.Poll, error) {
	var result entity.Poll
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByIDForUpdate locks the row until the surrounding transaction ends, so
// concurrent voters read the counters one after another.
func (r *pollRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Poll, error) {
	var result entity.Poll
	err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id=?", id).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pollRepository) GetList(ctx context.Context) ([]entity.Poll, error) {
	var result []entity.Poll
	if err := xcontext.DB(ctx).Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pollRepository) UpdateVotes(
	ctx context.Context, id string, options entity.Array[entity.PollOption], totalVotes int,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Poll{}).
		Where("id=?", id).
		Updates(map[string]any{
			"options":     options,
			"total_votes": totalVotes,
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *pollRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Poll{}, "id=?", id)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
