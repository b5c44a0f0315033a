package domain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/pubsub"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestClickDomain(t *testing.T, publisher pubsub.Publisher) ClickDomain {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewClickDomain(
		repository.NewClickRepository(),
		repository.NewAirdropRepository(),
		repository.NewCommunityPostRepository(),
		repository.NewUserRepository(),
		publisher,
		node,
	)
}

// withClickRequest returns ctx carrying a request that came through a
// trusted load balancer and an internal proxy.
func withClickRequest(ctx context.Context) context.Context {
	cfg := xcontext.Configs(ctx)
	cfg.ApiServer.TrustedProxies = []string{"192.0.2.1", "10.0.0.0/8"}
	ctx = xcontext.WithConfigs(ctx, cfg)

	req := httptest.NewRequest(http.MethodPost, "/trackClick", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	return xcontext.WithHTTPRequest(ctx, req)
}

func Test_clickDomain_TrackDirect(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestClickDomain(t, nil)

	_, err := domain.Track(withClickRequest(ctx), &model.TrackClickRequest{AirdropID: testutil.Airdrop1.ID})
	require.NoError(t, err)

	clicks, err := repository.NewClickRepository().GetList(ctx, repository.GetListClickFilter{})
	require.NoError(t, err)
	require.Len(t, clicks, 1)
	require.Equal(t, testutil.Airdrop1.ID, clicks[0].AirdropID)
	require.Equal(t, "203.0.113.7", clicks[0].IPAddress.String)
	require.NotZero(t, clicks[0].ID)
}

func Test_clickDomain_TrackThroughBroker(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	var packs []*pubsub.Pack
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			require.Equal(t, ClickTopic, topic)
			packs = append(packs, pack)
			return nil
		},
	}
	domain := newTestClickDomain(t, publisher)

	for _, id := range []string{testutil.Airdrop1.ID, testutil.Airdrop2.ID, testutil.Airdrop1.ID} {
		_, err := domain.Track(withClickRequest(ctx), &model.TrackClickRequest{AirdropID: id})
		require.NoError(t, err)
	}
	require.Len(t, packs, 3)

	count, err := repository.NewClickRepository().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	for _, pack := range packs {
		domain.Subscribe(ctx, pack, time.Now())
	}
	// A malformed message is dropped.
	domain.Subscribe(ctx, &pubsub.Pack{Msg: []byte("{")}, time.Now())

	_, err = domain.GetAnalytics(xcontext.WithRequestUserID(ctx, testutil.User1.ID), &model.GetClickAnalyticsRequest{})
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.AdminUser.ID)
	resp, err := domain.GetAnalytics(adminCtx, &model.GetClickAnalyticsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Events, 3)
	require.Equal(t, []model.ClickCount{
		{AirdropID: testutil.Airdrop1.ID, Clicks: 2},
		{AirdropID: testutil.Airdrop2.ID, Clicks: 1},
	}, resp.Counts)
	require.Equal(t, "203.0.113.7", resp.Events[0].IPAddress)

	stats, err := domain.GetAdminStats(adminCtx, &model.GetAdminStatsRequest{})
	require.NoError(t, err)
	require.Equal(t, &model.GetAdminStatsResponse{TotalAirdrops: 3, TotalClicks: 3, TotalPosts: 2}, stats)
}

func Test_requestIP(t *testing.T) {
	trusted := []string{"192.0.2.1", "10.0.0.0/8"}

	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{
			name:   "no header",
			remote: "198.51.100.2:5555",
			want:   "198.51.100.2",
		},
		{
			name:      "header from an untrusted peer is ignored",
			remote:    "198.51.100.2:5555",
			forwarded: "203.0.113.7",
			trusted:   trusted,
			want:      "198.51.100.2",
		},
		{
			name:      "header ignored without trusted proxies",
			remote:    "192.0.2.1:5555",
			forwarded: "203.0.113.7",
			want:      "192.0.2.1",
		},
		{
			name:      "trusted proxy",
			remote:    "192.0.2.1:5555",
			forwarded: "203.0.113.7",
			trusted:   trusted,
			want:      "203.0.113.7",
		},
		{
			name:      "spoofed leftmost entry is skipped",
			remote:    "192.0.2.1:5555",
			forwarded: "1.1.1.1, 203.0.113.7, 10.0.0.1",
			trusted:   trusted,
			want:      "203.0.113.7",
		},
		{
			name:      "only proxies",
			remote:    "192.0.2.1:5555",
			forwarded: "10.0.0.2, 10.0.0.1",
			trusted:   trusted,
			want:      "10.0.0.2",
		},
		{
			name:    "trusted proxy without header",
			remote:  "192.0.2.1:5555",
			trusted: trusted,
			want:    "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			require.Equal(t, tt.want, requestIP(req, tt.trusted))
		})
	}

	require.Equal(t, "", requestIP(nil, trusted))
}
