package model

type TrackClickRequest struct {
	AirdropID string `json:"airdrop_id" validate:"required"`
}

type TrackClickResponse struct{}

type GetClickAnalyticsRequest struct {
	AirdropID string `json:"airdrop_id"`
}

type ClickCount struct {
	AirdropID string `json:"airdrop_id"`
	Clicks    int    `json:"clicks"`
}

type GetClickAnalyticsResponse struct {
	Events []ClickEvent `json:"events"`
	Counts []ClickCount `json:"counts"`
}

type GetAdminStatsRequest struct{}

type GetAdminStatsResponse struct {
	TotalAirdrops int64 `json:"total_airdrops"`
	TotalClicks   int64 `json:"total_clicks"`
	TotalPosts    int64 `json:"total_posts"`
}
