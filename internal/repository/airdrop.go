package repository

import (
	"context"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// AllValue is the sentinel of list filters meaning no constraint.
const AllValue = "All"

// GetListAirdropFilter narrows a listing. Every field is optional.
type GetListAirdropFilter struct {
	// Featured keeps only featured airdrops when true.
	Featured bool

	// Chain keeps airdrops on this chain unless empty or "All".
	Chain string

	// Difficulty keeps airdrops of this difficulty unless empty or "All".
	Difficulty string

	// Limit truncates the result when positive.
	Limit int
}

type AirdropRepository interface {
	Create(ctx context.Context, e *entity.Airdrop) error
	GetByID(ctx context.Context, id string) (*entity.Airdrop, error)
	GetList(ctx context.Context, filter GetListAirdropFilter) ([]entity.Airdrop, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) (*entity.Airdrop, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type airdropRepository struct{}

func NewAirdropRepository() AirdropRepository {
	return &airdropRepository{}
}

func (r *airdropRepository) Create(ctx context.Context, e *entity.Airdrop) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *airdropRepository) GetByID(ctx context.Context, id string) (*entity.Airdrop, error) {
	var result entity.Airdrop
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *airdropRepository) GetList(ctx context.Context, filter GetListAirdropFilter) ([]entity.Airdrop, error) {
	tx := xcontext.DB(ctx).Model(&entity.Airdrop{})
	if filter.Featured {
		tx.Where("featured=?", true)
	}

	if isConstrained(filter.Chain) {
		tx.Where("chain=?", filter.Chain)
	}

	if isConstrained(filter.Difficulty) {
		tx.Where("difficulty=?", filter.Difficulty)
	}

	if filter.Limit > 0 {
		tx.Limit(filter.Limit)
	}

	var result []entity.Airdrop
	if err := tx.Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *airdropRepository) UpdateByID(ctx context.Context, id string, data map[string]any) (*entity.Airdrop, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Airdrop{}).
		Where("id=?", id).
		Updates(data)
	if err := tx.Error; err != nil {
		return nil, err
	}

	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *airdropRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Airdrop{}, "id=?", id)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *airdropRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.Airdrop{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func isConstrained(value string) bool {
	return value != "" && value != AllValue
}
