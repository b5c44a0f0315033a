package domain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/domain/feed"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type mockMarketData struct {
	calls    int
	snapshot *feed.MarketSnapshot
	err      error
}

func (m *mockMarketData) Assets(context.Context) (*feed.MarketSnapshot, error) {
	m.calls++
	return m.snapshot, m.err
}

func Test_marketDomain_GetPrices(t *testing.T) {
	ctx := testutil.MockContext()

	t.Run("cached snapshot", func(t *testing.T) {
		redisClient := testutil.NewMockRedisClient()
		require.NoError(t, redisClient.SetObj(ctx, common.MarketAssetsCacheKey, &feed.MarketSnapshot{
			Source:  feed.SourceFallback,
			Payload: feed.FallbackPayload(),
		}, 0))
		market := &mockMarketData{}

		resp, err := NewMarketDomain(market, redisClient).GetPrices(ctx, &model.GetCryptoPricesRequest{})
		require.NoError(t, err)
		require.Zero(t, market.calls)
		require.Equal(t, "fallback", resp.Source)
		require.Len(t, resp.Coins, 5)
		require.Equal(t, "42350.67", resp.Coins[0].PriceUSD.String())

		resp, err = NewMarketDomain(market, redisClient).GetPrices(ctx, &model.GetCryptoPricesRequest{Q: "bit"})
		require.NoError(t, err)
		require.Len(t, resp.Coins, 1)
		require.Equal(t, "BTC", resp.Coins[0].AssetID)
	})

	t.Run("live without cache", func(t *testing.T) {
		market := &mockMarketData{snapshot: &feed.MarketSnapshot{
			Source: feed.SourceLive,
			Payload: []byte(`[
				{"asset_id":"BTC","name":"Bitcoin","type_is_crypto":1,"price_usd":50000.5},
				{"asset_id":"USD","name":"US Dollar","type_is_crypto":0,"price_usd":1},
				{"asset_id":"NOPRICE","name":"No price","type_is_crypto":1}
			]`),
		}}

		resp, err := NewMarketDomain(market, nil).GetPrices(ctx, &model.GetCryptoPricesRequest{})
		require.NoError(t, err)
		require.Equal(t, 1, market.calls)
		require.Equal(t, "live", resp.Source)
		require.Len(t, resp.Coins, 1)
		require.Equal(t, "BTC", resp.Coins[0].AssetID)
	})

	t.Run("upstream error", func(t *testing.T) {
		market := &mockMarketData{err: feed.UpstreamError{StatusCode: 401, Message: "Invalid API key"}}
		_, err := NewMarketDomain(market, nil).GetPrices(ctx, &model.GetCryptoPricesRequest{})
		require.ErrorIs(t, err, errorx.New(errorx.BadResponse, ""))
	})
}

func Test_marketDomain_GetAssets(t *testing.T) {
	t.Run("payload is forwarded", func(t *testing.T) {
		w := httptest.NewRecorder()
		ctx := xcontext.WithHTTPWriter(testutil.MockContext(), w)
		market := &mockMarketData{snapshot: &feed.MarketSnapshot{
			Source:  feed.SourceFallback,
			Payload: feed.FallbackPayload(),
		}}

		resp, err := NewMarketDomain(market, nil).GetAssets(ctx, &model.GetCryptoAssetsRequest{})
		require.NoError(t, err)
		require.Nil(t, resp)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "fallback", w.Header().Get("X-Data-Source"))
		require.JSONEq(t, string(feed.FallbackPayload()), w.Body.String())
	})

	t.Run("upstream status is forwarded", func(t *testing.T) {
		w := httptest.NewRecorder()
		ctx := xcontext.WithHTTPWriter(testutil.MockContext(), w)
		market := &mockMarketData{err: feed.UpstreamError{StatusCode: 429, Message: "slow down"}}

		resp, err := NewMarketDomain(market, nil).GetAssets(ctx, &model.GetCryptoAssetsRequest{})
		require.NoError(t, err)
		require.Nil(t, resp)
		require.Equal(t, 429, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "slow down", body["error"])
		require.Equal(t, float64(429), body["status"])
	})
}
