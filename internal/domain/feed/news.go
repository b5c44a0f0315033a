package feed

import (
	"context"

	"github.com/claimex/backend/config"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/pkg/api"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

type News interface {
	Latest(ctx context.Context) ([]model.LiveArticle, error)
}

type newsData struct {
	generator api.Generator
	cfg       config.NewsConfigs
}

func NewNews(generator api.Generator, cfg config.NewsConfigs) *newsData {
	return &newsData{generator: generator, cfg: cfg}
}

// Latest calls the provider once. There is neither retry nor fallback.
func (n *newsData) Latest(ctx context.Context) ([]model.LiveArticle, error) {
	resp, err := n.generator.New("/api/1/news").
		Query(api.Parameter{
			"apikey":   n.cfg.APIKey,
			"q":        n.cfg.Query,
			"language": n.cfg.Language,
			"category": n.cfg.Category,
		}).
		GET(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call news provider: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Failed to fetch news")
	}

	if !resp.IsSuccess() {
		xcontext.Logger(ctx).Errorf("News provider returned status %d", resp.Code)
		return nil, errorx.New(errorx.Unavailable, "Failed to fetch news")
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		xcontext.Logger(ctx).Errorf("Invalid news response: %s", resp.RawBody)
		return nil, errorx.New(errorx.Unavailable, "Failed to fetch news")
	}

	articles := []model.LiveArticle{}
	results, err := body.Get("results")
	if err != nil || results == nil {
		return articles, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &articles,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(results); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode news response: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Failed to fetch news")
	}

	return articles, nil
}
