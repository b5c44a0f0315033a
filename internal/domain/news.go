package domain

import (
	"context"
	"database/sql"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/domain/feed"
	"github.com/claimex/backend/internal/domain/listing"
	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/enum"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/fatih/structs"
	"github.com/google/uuid"
)

type NewsDomain interface {
	GetList(context.Context, *model.GetNewsRequest) (*model.GetNewsResponse, error)
	Create(context.Context, *model.CreateNewsRequest) (*model.CreateNewsResponse, error)
	Update(context.Context, *model.UpdateNewsRequest) (*model.UpdateNewsResponse, error)
	Delete(context.Context, *model.DeleteNewsRequest) (*model.DeleteNewsResponse, error)
	GetLive(context.Context, *model.GetLiveNewsRequest) (*model.GetLiveNewsResponse, error)
}

type newsDomain struct {
	newsRepo      repository.NewsRepository
	adminVerifier *common.AdminVerifier
	liveNews      feed.News
}

func NewNewsDomain(
	newsRepo repository.NewsRepository,
	userRepo repository.UserRepository,
	liveNews feed.News,
) NewsDomain {
	return &newsDomain{
		newsRepo:      newsRepo,
		adminVerifier: common.NewAdminVerifier(userRepo),
		liveNews:      liveNews,
	}
}

func (d *newsDomain) GetList(
	ctx context.Context, req *model.GetNewsRequest,
) (*model.GetNewsResponse, error) {
	news, err := d.newsRepo.GetList(ctx, repository.GetListNewsFilter{
		Category: req.Category,
		Limit:    common.ClampLimit(ctx, req.Limit),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get news: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetNewsResponse{News: make([]model.NewsArticle, 0, len(news))}
	for i := range news {
		resp.News = append(resp.News, model.ConvertNewsArticle(&news[i]))
	}

	return resp, nil
}

func (d *newsDomain) Create(
	ctx context.Context, req *model.CreateNewsRequest,
) (*model.CreateNewsResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	category, err := enum.ToEnum[entity.NewsCategory](req.Category)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid category")
	}

	article := &entity.NewsArticle{
		Base:     entity.Base{ID: uuid.NewString()},
		Title:    req.Title,
		Content:  req.Content,
		URL:      req.URL,
		ImageURL: sql.NullString{Valid: req.ImageURL != "", String: req.ImageURL},
		Category: category,
	}

	if err := d.newsRepo.Create(ctx, article); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create news: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateNewsResponse{News: model.ConvertNewsArticle(article)}, nil
}

type newsPatch struct {
	Title    string `structs:"title,omitempty"`
	Content  string `structs:"content,omitempty"`
	URL      string `structs:"url,omitempty"`
	ImageURL string `structs:"image_url,omitempty"`
	Category string `structs:"category,omitempty"`
}

func (d *newsDomain) Update(
	ctx context.Context, req *model.UpdateNewsRequest,
) (*model.UpdateNewsResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if req.Category != "" {
		if _, err := enum.ToEnum[entity.NewsCategory](req.Category); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category")
		}
	}

	data := structs.Map(newsPatch{
		Title:    req.Title,
		Content:  req.Content,
		URL:      req.URL,
		ImageURL: req.ImageURL,
		Category: req.Category,
	})
	if len(data) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	article, err := d.newsRepo.UpdateByID(ctx, req.ID, data)
	if err != nil {
		return nil, storeError(ctx, err, "update", "news")
	}

	return &model.UpdateNewsResponse{News: model.ConvertNewsArticle(article)}, nil
}

func (d *newsDomain) Delete(
	ctx context.Context, req *model.DeleteNewsRequest,
) (*model.DeleteNewsResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if err := d.newsRepo.DeleteByID(ctx, req.ID); err != nil {
		return nil, storeError(ctx, err, "delete", "news")
	}

	return &model.DeleteNewsResponse{}, nil
}

func (d *newsDomain) GetLive(
	ctx context.Context, req *model.GetLiveNewsRequest,
) (*model.GetLiveNewsResponse, error) {
	articles, err := d.liveNews.Latest(ctx)
	if err != nil {
		return nil, err
	}

	return &model.GetLiveNewsResponse{
		Articles: listing.Articles(articles, listing.ArticleQuery{
			Search:   req.Q,
			Category: req.Category,
		}),
	}, nil
}
