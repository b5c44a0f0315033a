package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claimex/backend/config"
	"github.com/claimex/backend/pkg/api"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func Test_coinAPI_Assets(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantSource Source
		wantErr    error
	}{
		{
			name:       "live",
			status:     http.StatusOK,
			body:       `[{"asset_id":"DOGE","name":"Dogecoin","type_is_crypto":1,"price_usd":0.1}]`,
			wantSource: SourceLive,
		},
		{
			name:       "quota exceeded",
			status:     http.StatusForbidden,
			body:       `{"error":"quota"}`,
			wantSource: SourceFallback,
		},
		{
			name:       "empty body",
			status:     http.StatusOK,
			body:       "",
			wantSource: SourceFallback,
		},
		{
			name:       "blank body",
			status:     http.StatusOK,
			body:       " \n",
			wantSource: SourceFallback,
		},
		{
			name:       "unparseable body",
			status:     http.StatusOK,
			body:       "<html>busy</html>",
			wantSource: SourceFallback,
		},
		{
			name:    "upstream error message",
			status:  http.StatusUnauthorized,
			body:    `{"error":"Invalid API key"}`,
			wantErr: UpstreamError{StatusCode: http.StatusUnauthorized, Message: "Invalid API key"},
		},
		{
			name:    "upstream message field",
			status:  http.StatusTooManyRequests,
			body:    `{"message":"slow down"}`,
			wantErr: UpstreamError{StatusCode: http.StatusTooManyRequests, Message: "slow down"},
		},
		{
			name:    "upstream without message",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			wantErr: UpstreamError{StatusCode: http.StatusInternalServerError, Message: "Unknown error from CoinAPI"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/v1/assets", r.URL.Path)
				require.Equal(t, "key", r.Header.Get("X-CoinAPI-Key"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			market := NewMarketData(api.NewGenerator(server.URL, time.Second), "key")
			snapshot, err := market.Assets(context.Background())
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantSource, snapshot.Source)
			if tt.wantSource == SourceLive {
				require.JSONEq(t, tt.body, string(snapshot.Payload))
			} else {
				require.JSONEq(t, string(FallbackPayload()), string(snapshot.Payload))
			}
		})
	}
}

func Test_coinAPI_Assets_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	market := NewMarketData(api.NewGenerator(url, time.Second), "key")
	snapshot, err := market.Assets(context.Background())
	require.NoError(t, err)
	require.Equal(t, SourceFallback, snapshot.Source)

	assets := snapshot.Assets()
	require.Len(t, assets, 5)
	require.Equal(t, "BTC", assets[0].AssetID)
	require.Equal(t, 42350.67, *assets[0].PriceUSD)
	require.Equal(t, "2014-02-24T17:43:05.0000000Z", assets[0].DataOrderbookStart)
	require.Equal(t, "XRP", assets[4].AssetID)
}

func Test_newsData_Latest(t *testing.T) {
	cfg := config.NewsConfigs{
		APIKey:   "news-key",
		Query:    "crypto",
		Language: "en",
		Category: "business,technology",
	}

	t.Run("success", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/1/news", r.URL.Path)
			require.Equal(t, "news-key", r.URL.Query().Get("apikey"))
			require.Equal(t, "crypto", r.URL.Query().Get("q"))
			require.Equal(t, "en", r.URL.Query().Get("language"))
			require.Equal(t, "business,technology", r.URL.Query().Get("category"))
			_, _ = w.Write([]byte(`{"status":"success","results":[
				{"article_id":"a1","title":"Bitcoin ETF","link":"https://n.test/a1","pubDate":"2024-01-02 10:00:00","category":["business"]}
			]}`))
		})

		news := NewNews(api.NewGenerator(server.URL, time.Second), cfg)
		articles, err := news.Latest(context.Background())
		require.NoError(t, err)
		require.Len(t, articles, 1)
		require.Equal(t, "a1", articles[0].ArticleID)
		require.Equal(t, "2024-01-02 10:00:00", articles[0].PubDate)
		require.Equal(t, []string{"business"}, articles[0].Category)
	})

	t.Run("no results", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success"}`))
		})

		news := NewNews(api.NewGenerator(server.URL, time.Second), cfg)
		articles, err := news.Latest(context.Background())
		require.NoError(t, err)
		require.NotNil(t, articles)
		require.Empty(t, articles)
	})

	t.Run("upstream failure", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		news := NewNews(api.NewGenerator(server.URL, time.Second), cfg)
		_, err := news.Latest(context.Background())
		require.True(t, errors.Is(err, errorx.New(errorx.Unavailable, "")))
		require.Equal(t, "Failed to fetch news", err.(errorx.Error).Message)
	})
}
