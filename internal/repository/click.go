package repository

import (
	"context"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/pkg/xcontext"
)

type GetListClickFilter struct {
	AirdropID string
}

type ClickCount struct {
	AirdropID string
	Clicks    int
}

type ClickRepository interface {
	Create(ctx context.Context, e *entity.ClickEvent) error
	GetList(ctx context.Context, filter GetListClickFilter) ([]entity.ClickEvent, error)
	CountByAirdrop(ctx context.Context, filter GetListClickFilter) ([]ClickCount, error)
	Count(ctx context.Context) (int64, error)
}

type clickRepository struct{}

func NewClickRepository() ClickRepository {
	return &clickRepository{}
}

func (r *clickRepository) Create(ctx context.Context, e *entity.ClickEvent) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *clickRepository) GetList(ctx context.Context, filter GetListClickFilter) ([]entity.ClickEvent, error) {
	tx := xcontext.DB(ctx).Model(&entity.ClickEvent{})
	if filter.AirdropID != "" {
		tx.Where("airdrop_id=?", filter.AirdropID)
	}

	var result []entity.ClickEvent
	if err := tx.Order("timestamp DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *clickRepository) CountByAirdrop(ctx context.Context, filter GetListClickFilter) ([]ClickCount, error) {
	tx := xcontext.DB(ctx).Model(&entity.ClickEvent{}).
		Select("airdrop_id, COUNT(*) AS clicks")
	if filter.AirdropID != "" {
		tx.Where("airdrop_id=?", filter.AirdropID)
	}

	var result []ClickCount
	if err := tx.Group("airdrop_id").Order("clicks DESC").Scan(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *clickRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.ClickEvent{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}
