package domain

import (
	"context"
	"errors"
	"net/http"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/domain/feed"
	"github.com/claimex/backend/internal/domain/listing"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/router"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/claimex/backend/pkg/xredis"
	"github.com/shopspring/decimal"
)

const topCoins = 50

type MarketDomain interface {
	GetAssets(context.Context, *model.GetCryptoAssetsRequest) (*model.GetCryptoAssetsResponse, error)
	GetPrices(context.Context, *model.GetCryptoPricesRequest) (*model.GetCryptoPricesResponse, error)
}

type marketDomain struct {
	market      feed.MarketData
	redisClient xredis.Client
}

// NewMarketDomain reads the snapshot cached by the poller when redisClient is
// not nil.
func NewMarketDomain(market feed.MarketData, redisClient xredis.Client) MarketDomain {
	return &marketDomain{market: market, redisClient: redisClient}
}

// GetAssets forwards the provider payload verbatim. The X-Data-Source header
// tells whether it is live or the fallback dataset. A provider error is
// forwarded with the provider status.
func (d *marketDomain) GetAssets(
	ctx context.Context, req *model.GetCryptoAssetsRequest,
) (*model.GetCryptoAssetsResponse, error) {
	w := xcontext.HTTPWriter(ctx)
	if w == nil {
		return nil, errorx.New(errorx.Internal, "No response writer")
	}

	snapshot, err := d.market.Assets(ctx)
	if err != nil {
		var upstream feed.UpstreamError
		if errors.As(err, &upstream) {
			xcontext.Logger(ctx).Warnf("Market data provider error: %v", err)
			if err := router.WriteJSON(w, upstream.StatusCode, upstream); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
			}
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get market data: %v", err)
		return nil, errorx.Unknown
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Data-Source", string(snapshot.Source))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(snapshot.Payload); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}

	return nil, nil
}

func (d *marketDomain) GetPrices(
	ctx context.Context, req *model.GetCryptoPricesRequest,
) (*model.GetCryptoPricesResponse, error) {
	snapshot, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	coins := []model.Coin{}
	for _, a := range snapshot.Assets() {
		if len(coins) == topCoins {
			break
		}

		if a.PriceUSD == nil || a.TypeIsCrypto != 1 {
			continue
		}

		coins = append(coins, model.Coin{
			AssetID:       a.AssetID,
			Name:          a.Name,
			PriceUSD:      decimal.NewFromFloat(*a.PriceUSD),
			Volume1DayUSD: decimal.NewFromFloat(a.Volume1DayUSD),
			MarketCapUSD:  optionalDecimal(a.MarketCapUSD),
			Change24h:     optionalDecimal(a.Change24h),
		})
	}

	return &model.GetCryptoPricesResponse{
		Source: string(snapshot.Source),
		Coins:  listing.Coins(coins, listing.CoinQuery{Search: req.Q}),
	}, nil
}

// snapshot prefers the one cached by the poller and falls back to a live
// fetch.
func (d *marketDomain) snapshot(ctx context.Context) (*feed.MarketSnapshot, error) {
	if d.redisClient != nil {
		var cached feed.MarketSnapshot
		err := d.redisClient.GetObj(ctx, common.MarketAssetsCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}

		if !errors.Is(err, xredis.ErrNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot read cached market snapshot: %v", err)
		}
	}

	snapshot, err := d.market.Assets(ctx)
	if err != nil {
		var upstream feed.UpstreamError
		if errors.As(err, &upstream) {
			return nil, errorx.New(errorx.BadResponse, "%s", upstream.Message)
		}

		xcontext.Logger(ctx).Errorf("Cannot get market data: %v", err)
		return nil, errorx.Unknown
	}

	return snapshot, nil
}

func optionalDecimal(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}

	return decimal.NewFromFloat(*f)
}
