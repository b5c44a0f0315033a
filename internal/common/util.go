package common

import (
	"context"

	"github.com/claimex/backend/pkg/xcontext"
	mathUtil "github.com/pkg/math"
)

// ClampLimit resolves the limit of a listing request. A non-positive limit
// falls back to the default one, zero meaning no limit.
func ClampLimit(ctx context.Context, limit int) int {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	if limit > 0 && cfg.MaxLimit > 0 {
		limit = mathUtil.MinInt(limit, cfg.MaxLimit)
	}

	return limit
}

// MarketAssetsCacheKey holds the latest market snapshot written by the poller.
const MarketAssetsCacheKey = "cache:market:assets"
