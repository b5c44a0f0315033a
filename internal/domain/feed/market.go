package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/pkg/api"
	"github.com/claimex/backend/pkg/enum"
	"github.com/claimex/backend/pkg/xcontext"
)

type Source string

var (
	SourceLive     = enum.New(Source("live"))
	SourceFallback = enum.New(Source("fallback"))
)

// Asset is one record of the market data payload.
type Asset struct {
	AssetID            string   `json:"asset_id"`
	Name               string   `json:"name"`
	TypeIsCrypto       int      `json:"type_is_crypto"`
	DataQuoteStart     string   `json:"data_quote_start,omitempty"`
	DataQuoteEnd       string   `json:"data_quote_end,omitempty"`
	DataOrderbookStart string   `json:"data_orderbook_start,omitempty"`
	DataOrderbookEnd   string   `json:"data_orderbook_end,omitempty"`
	DataTradeStart     string   `json:"data_trade_start,omitempty"`
	DataTradeEnd       string   `json:"data_trade_end,omitempty"`
	DataSymbolsCount   int      `json:"data_symbols_count,omitempty"`
	Volume1HrsUSD      float64  `json:"volume_1hrs_usd,omitempty"`
	Volume1DayUSD      float64  `json:"volume_1day_usd,omitempty"`
	Volume1MthUSD      float64  `json:"volume_1mth_usd,omitempty"`
	PriceUSD           *float64 `json:"price_usd,omitempty"`
	MarketCapUSD       *float64 `json:"market_cap_usd,omitempty"`
	Change24h          *float64 `json:"change_24h,omitempty"`
}

type MarketSnapshot struct {
	Source    Source          `json:"source"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Assets decodes the payload. A payload which is not a list of assets yields
// no asset.
func (s *MarketSnapshot) Assets() []Asset {
	var assets []Asset
	if err := json.Unmarshal(s.Payload, &assets); err != nil {
		return nil
	}

	return assets
}

// UpstreamError is an error status returned by the market data provider,
// other than the quota one.
type UpstreamError struct {
	StatusCode int    `json:"status"`
	Message    string `json:"error"`
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("market data provider returned %d: %s", e.StatusCode, e.Message)
}

type MarketData interface {
	Assets(ctx context.Context) (*MarketSnapshot, error)
}

type coinAPI struct {
	generator api.Generator
	apiKey    string
}

func NewMarketData(generator api.Generator, apiKey string) *coinAPI {
	return &coinAPI{generator: generator, apiKey: apiKey}
}

// Assets never fails on a quota or transport problem; the fixed fallback
// dataset is returned instead.
func (c *coinAPI) Assets(ctx context.Context) (*MarketSnapshot, error) {
	resp, err := c.generator.New("/v1/assets").
		Header("X-CoinAPI-Key", c.apiKey).
		GET(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Network error when fetching market data, using fallback: %v", err)
		return fallback("network"), nil
	}

	if resp.Code == http.StatusForbidden {
		xcontext.Logger(ctx).Warnf("Market data quota exceeded, using fallback")
		return fallback("quota"), nil
	}

	// An empty success payload is not JSON either.
	empty := len(bytes.TrimSpace(resp.RawBody)) == 0
	if resp.Body == nil || (resp.Code == http.StatusOK && empty) {
		xcontext.Logger(ctx).Warnf("Cannot parse market data response, using fallback")
		return fallback("parse"), nil
	}

	if resp.Code != http.StatusOK {
		return nil, UpstreamError{StatusCode: resp.Code, Message: upstreamMessage(resp.Body)}
	}

	return &MarketSnapshot{
		Source:    SourceLive,
		Payload:   resp.RawBody,
		FetchedAt: time.Now(),
	}, nil
}

func upstreamMessage(body any) string {
	if j, ok := body.(api.JSON); ok {
		for _, key := range []string{"error", "message"} {
			if msg, err := j.GetString(key); err == nil && msg != "" {
				return msg
			}
		}
	}

	return "Unknown error from CoinAPI"
}

func fallback(reason string) *MarketSnapshot {
	common.PromCounters[common.MarketFallbackTotal].WithLabelValues(reason).Inc()

	return &MarketSnapshot{
		Source:    SourceFallback,
		Payload:   FallbackPayload(),
		FetchedAt: time.Now(),
	}
}
