package cron

import (
	"context"
	"time"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/domain/feed"
	"github.com/claimex/backend/internal/domain/listing"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/claimex/backend/pkg/xredis"
)

const defaultPollInterval = 10 * time.Second

// MarketPollerJob refreshes the market data snapshot shared by every API
// instance through redis.
type MarketPollerJob struct {
	market      feed.MarketData
	redisClient xredis.Client
	assets      *listing.Collection[feed.Asset]
	interval    time.Duration
	ttl         time.Duration
}

func NewMarketPollerJob(
	market feed.MarketData,
	redisClient xredis.Client,
	assets *listing.Collection[feed.Asset],
	interval, ttl time.Duration,
) *MarketPollerJob {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	return &MarketPollerJob{
		market:      market,
		redisClient: redisClient,
		assets:      assets,
		interval:    interval,
		ttl:         ttl,
	}
}

func (job *MarketPollerJob) Do(ctx context.Context) {
	seq := job.assets.Begin()
	snapshot, err := job.market.Assets(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot poll market data, keep the previous snapshot: %v", err)
		return
	}

	if !job.assets.Replace(seq, snapshot.Assets()) {
		xcontext.Logger(ctx).Debugf("Drop superseded market snapshot %d", seq)
		return
	}

	if err := job.redisClient.SetObj(ctx, common.MarketAssetsCacheKey, snapshot, job.ttl); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cache market snapshot: %v", err)
	}
}

func (job *MarketPollerJob) RunNow() bool {
	return true
}

func (job *MarketPollerJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
