package feed

import "encoding/json"

const dataEnd = "2024-01-15T00:00:00.0000000Z"

func price(v float64) *float64 {
	return &v
}

// FallbackAssets is served when the market data provider is unreachable or
// out of quota.
var FallbackAssets = []Asset{
	{
		AssetID:            "BTC",
		Name:               "Bitcoin",
		TypeIsCrypto:       1,
		DataQuoteStart:     "2010-07-17T23:09:17.0000000Z",
		DataQuoteEnd:       dataEnd,
		DataOrderbookStart: "2014-02-24T17:43:05.0000000Z",
		DataOrderbookEnd:   dataEnd,
		DataTradeStart:     "2010-07-17T23:09:17.0000000Z",
		DataTradeEnd:       dataEnd,
		DataSymbolsCount:   63390,
		Volume1HrsUSD:      2847392847.32,
		Volume1DayUSD:      68337428736.45,
		Volume1MthUSD:      2108234567890.12,
		PriceUSD:           price(42350.67),
	},
	{
		AssetID:            "ETH",
		Name:               "Ethereum",
		TypeIsCrypto:       1,
		DataQuoteStart:     "2015-08-07T14:50:38.0000000Z",
		DataQuoteEnd:       dataEnd,
		DataOrderbookStart: "2015-08-07T14:50:38.0000000Z",
		DataOrderbookEnd:   dataEnd,
		DataTradeStart:     "2015-08-07T14:50:38.0000000Z",
		DataTradeEnd:       dataEnd,
		DataSymbolsCount:   48291,
		Volume1HrsUSD:      1234567890.45,
		Volume1DayUSD:      29876543210.87,
		Volume1MthUSD:      987654321098.76,
		PriceUSD:           price(2587.34),
	},
	{
		AssetID:            "USDT",
		Name:               "Tether",
		TypeIsCrypto:       1,
		DataQuoteStart:     "2015-02-25T13:34:26.0000000Z",
		DataQuoteEnd:       dataEnd,
		DataOrderbookStart: "2015-02-25T13:34:26.0000000Z",
		DataOrderbookEnd:   dataEnd,
		DataTradeStart:     "2015-02-25T13:34:26.0000000Z",
		DataTradeEnd:       dataEnd,
		DataSymbolsCount:   35672,
		Volume1HrsUSD:      3456789012.34,
		Volume1DayUSD:      82963741852.96,
		Volume1MthUSD:      2567890123456.78,
		PriceUSD:           price(1.00),
	},
	{
		AssetID:            "BNB",
		Name:               "Binance Coin",
		TypeIsCrypto:       1,
		DataQuoteStart:     "2017-07-25T04:30:05.0000000Z",
		DataQuoteEnd:       dataEnd,
		DataOrderbookStart: "2017-07-25T04:30:05.0000000Z",
		DataOrderbookEnd:   dataEnd,
		DataTradeStart:     "2017-07-25T04:30:05.0000000Z",
		DataTradeEnd:       dataEnd,
		DataSymbolsCount:   12847,
		Volume1HrsUSD:      567890123.45,
		Volume1DayUSD:      13629472583.69,
		Volume1MthUSD:      418765432109.87,
		PriceUSD:           price(315.42),
	},
	{
		AssetID:            "XRP",
		Name:               "XRP",
		TypeIsCrypto:       1,
		DataQuoteStart:     "2013-08-04T18:38:32.0000000Z",
		DataQuoteEnd:       dataEnd,
		DataOrderbookStart: "2013-08-04T18:38:32.0000000Z",
		DataOrderbookEnd:   dataEnd,
		DataTradeStart:     "2013-08-04T18:38:32.0000000Z",
		DataTradeEnd:       dataEnd,
		DataSymbolsCount:   9876,
		Volume1HrsUSD:      234567890.12,
		Volume1DayUSD:      5629384756.28,
		Volume1MthUSD:      172847593021.45,
		PriceUSD:           price(0.52),
	},
}

func FallbackPayload() json.RawMessage {
	b, err := json.Marshal(FallbackAssets)
	if err != nil {
		panic(err)
	}

	return b
}
