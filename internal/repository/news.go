package repository

import (
	"context"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListNewsFilter struct {
	Category string
	Limit    int
}

type NewsRepository interface {
	Create(ctx context.Context, e *entity.NewsArticle) error
	GetByID(ctx context.Context, id string) (*entity.NewsArticle, error)
	GetList(ctx context.Context, filter GetListNewsFilter) ([]entity.NewsArticle, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) (*entity.NewsArticle, error)
	DeleteByID(ctx context.Context, id string) error
}

type newsRepository struct{}

func NewNewsRepository() NewsRepository {
	return &newsRepository{}
}

func (r *newsRepository) Create(ctx context.Context, e *entity.NewsArticle) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *newsRepository) GetByID(ctx context.Context, id string) (*entity.NewsArticle, error) {
	var result entity.NewsArticle
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *newsRepository) GetList(ctx context.Context, filter GetListNewsFilter) ([]entity.NewsArticle, error) {
	tx := xcontext.DB(ctx).Model(&entity.NewsArticle{})
	if isConstrained(filter.Category) {
		tx.Where("category=?", filter.Category)
	}

	if filter.Limit > 0 {
		tx.Limit(filter.Limit)
	}

	var result []entity.NewsArticle
	if err := tx.Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *newsRepository) UpdateByID(
	ctx context.Context, id string, data map[string]any,
) (*entity.NewsArticle, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.NewsArticle{}).
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

func (r *newsRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.NewsArticle{}, "id=?", id)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
