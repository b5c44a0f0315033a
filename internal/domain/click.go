package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/pubsub"
	"github.com/claimex/backend/pkg/xcontext"
)

const ClickTopic = "click"

type ClickDomain interface {
	Track(context.Context, *model.TrackClickRequest) (*model.TrackClickResponse, error)
	GetAnalytics(context.Context, *model.GetClickAnalyticsRequest) (*model.GetClickAnalyticsResponse, error)
	GetAdminStats(context.Context, *model.GetAdminStatsRequest) (*model.GetAdminStatsResponse, error)
	Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time)
}

type clickDomain struct {
	clickRepo     repository.ClickRepository
	airdropRepo   repository.AirdropRepository
	postRepo      repository.CommunityPostRepository
	adminVerifier *common.AdminVerifier
	publisher     pubsub.Publisher
	node          *snowflake.Node
}

// NewClickDomain returns a domain which sends clicks to the broker through
// publisher, or inserts them directly when publisher is nil.
func NewClickDomain(
	clickRepo repository.ClickRepository,
	airdropRepo repository.AirdropRepository,
	postRepo repository.CommunityPostRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
	node *snowflake.Node,
) ClickDomain {
	return &clickDomain{
		clickRepo:     clickRepo,
		airdropRepo:   airdropRepo,
		postRepo:      postRepo,
		adminVerifier: common.NewAdminVerifier(userRepo),
		publisher:     publisher,
		node:          node,
	}
}

func (d *clickDomain) Track(
	ctx context.Context, req *model.TrackClickRequest,
) (*model.TrackClickResponse, error) {
	click := &entity.ClickEvent{
		ID:        d.node.Generate().Int64(),
		AirdropID: req.AirdropID,
		Timestamp: time.Now(),
	}
	trusted := xcontext.Configs(ctx).ApiServer.TrustedProxies
	if ip := requestIP(xcontext.HTTPRequest(ctx), trusted); ip != "" {
		click.IPAddress = sql.NullString{Valid: true, String: ip}
	}

	if d.publisher == nil {
		if err := d.clickRepo.Create(ctx, click); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create click: %v", err)
			return nil, errorx.Unknown
		}

		common.PromCounters[common.ClickTotal].WithLabelValues("db").Inc()
		return &model.TrackClickResponse{}, nil
	}

	b, err := json.Marshal(model.ConvertClickEvent(click))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal click: %v", err)
		return nil, errorx.Unknown
	}

	err = d.publisher.Publish(ctx, ClickTopic, &pubsub.Pack{
		Key: []byte(click.AirdropID),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish click: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.ClickTotal].WithLabelValues("broker").Inc()
	return &model.TrackClickResponse{}, nil
}

// Subscribe inserts a click received from the broker. Malformed messages are
// dropped.
func (d *clickDomain) Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var msg model.ClickEvent
	if err := json.Unmarshal(pack.Msg, &msg); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal click: %v", err)
		return
	}

	timestamp, err := time.Parse(model.DefaultTimeLayout, msg.Timestamp)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Invalid click timestamp %q, use receive time: %v", msg.Timestamp, err)
		timestamp = t
	}

	click := &entity.ClickEvent{
		ID:        msg.ID,
		AirdropID: msg.AirdropID,
		IPAddress: sql.NullString{Valid: msg.IPAddress != "", String: msg.IPAddress},
		Timestamp: timestamp,
	}
	if err := d.clickRepo.Create(ctx, click); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create click %d: %v", click.ID, err)
	}
}

func (d *clickDomain) GetAnalytics(
	ctx context.Context, req *model.GetClickAnalyticsRequest,
) (*model.GetClickAnalyticsResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	filter := repository.GetListClickFilter{AirdropID: req.AirdropID}
	clicks, err := d.clickRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get clicks: %v", err)
		return nil, errorx.Unknown
	}

	counts, err := d.clickRepo.CountByAirdrop(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count clicks: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetClickAnalyticsResponse{
		Events: make([]model.ClickEvent, 0, len(clicks)),
		Counts: make([]model.ClickCount, 0, len(counts)),
	}
	for i := range clicks {
		resp.Events = append(resp.Events, model.ConvertClickEvent(&clicks[i]))
	}
	for _, c := range counts {
		resp.Counts = append(resp.Counts, model.ClickCount{AirdropID: c.AirdropID, Clicks: c.Clicks})
	}

	return resp, nil
}

func (d *clickDomain) GetAdminStats(
	ctx context.Context, req *model.GetAdminStatsRequest,
) (*model.GetAdminStatsResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	var resp model.GetAdminStatsResponse
	var err error
	if resp.TotalAirdrops, err = d.airdropRepo.Count(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count airdrops: %v", err)
		return nil, errorx.Unknown
	}

	if resp.TotalClicks, err = d.clickRepo.Count(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count clicks: %v", err)
		return nil, errorx.Unknown
	}

	if resp.TotalPosts, err = d.postRepo.Count(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	return &resp, nil
}

// requestIP returns the address of the client. X-Forwarded-For is honored
// only when the peer is a trusted proxy, and then the nearest address not
// belonging to a trusted proxy wins.
func requestIP(r *http.Request, trustedProxies []string) string {
	if r == nil {
		return ""
	}

	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	trusted := parsePrefixes(trustedProxies)
	if !containsAddr(trusted, remote) {
		return remote
	}

	forwarded := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(forwarded) - 1; i >= 0; i-- {
		ip := strings.TrimSpace(forwarded[i])
		if ip == "" {
			continue
		}

		if !containsAddr(trusted, ip) {
			return ip
		}

		remote = ip
	}

	return remote
}

func parsePrefixes(values []string) []netip.Prefix {
	result := []netip.Prefix{}
	for _, v := range values {
		if prefix, err := netip.ParsePrefix(v); err == nil {
			result = append(result, prefix)
			continue
		}

		if addr, err := netip.ParseAddr(v); err == nil {
			result = append(result, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}

	return result
}

func containsAddr(prefixes []netip.Prefix, ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}

	for _, prefix := range prefixes {
		if prefix.Contains(addr.Unmap()) {
			return true
		}
	}

	return false
}
