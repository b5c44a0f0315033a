package repository

import (
	"context"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListCommunityPostFilter struct {
	// Category keeps posts of this category unless empty or "All".
	Category string

	Limit int
}

type CommunityPostRepository interface {
	Create(ctx context.Context, e *entity.CommunityPost) error
	GetByID(ctx context.Context, id string) (*entity.CommunityPost, error)
	GetList(ctx context.Context, filter GetListCommunityPostFilter) ([]entity.CommunityPost, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) (*entity.CommunityPost, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	IncreaseVotes(ctx context.Context, id string, up, down int) error
}

type communityPostRepository struct{}

func NewCommunityPostRepository() CommunityPostRepository {
	return &communityPostRepository{}
}

func (r *communityPostRepository) Create(ctx context.Context, e *entity.CommunityPost) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *communityPostRepository) GetByID(ctx context.Context, id string) (*entity.CommunityPost, error) {
	var result entity.CommunityPost
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityPostRepository) GetList(
	ctx context.Context, filter GetListCommunityPostFilter,
) ([]entity.CommunityPost, error) {
	tx := xcontext.DB(ctx).Model(&entity.CommunityPost{})
	if isConstrained(filter.Category) {
		tx.Where("category=?", filter.Category)
	}

	if filter.Limit > 0 {
		tx.Limit(filter.Limit)
	}

	var result []entity.CommunityPost
	if err := tx.Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *communityPostRepository) UpdateByID(
	ctx context.Context, id string, data map[string]any,
) (*entity.CommunityPost, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.CommunityPost{}).
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

func (r *communityPostRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.CommunityPost{}, "id=?", id)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *communityPostRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.CommunityPost{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *communityPostRepository) IncreaseVotes(ctx context.Context, id string, up, down int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.CommunityPost{}).
		Where("id=?", id).
		Updates(map[string]any{
			"upvotes":   gorm.Expr("upvotes+?", up),
			"downvotes": gorm.Expr("downvotes+?", down),
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
