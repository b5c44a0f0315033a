package model

import "github.com/shopspring/decimal"

type GetCryptoAssetsRequest struct{}

type GetCryptoPricesRequest struct {
	Q string `json:"q"`
}

type Coin struct {
	AssetID       string          `json:"asset_id"`
	Name          string          `json:"name"`
	PriceUSD      decimal.Decimal `json:"price_usd"`
	Volume1DayUSD decimal.Decimal `json:"volume_1day_usd"`
	MarketCapUSD  decimal.Decimal `json:"market_cap_usd"`
	Change24h     decimal.Decimal `json:"change_24h"`
}

type GetCryptoPricesResponse struct {
	Source string `json:"source"`
	Coins  []Coin `json:"coins"`
}

// GetCryptoAssetsResponse is never filled; the raw upstream payload is
// written as is.
type GetCryptoAssetsResponse struct{}
