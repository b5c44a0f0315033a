package model

type GetAirdropsRequest struct {
	Featured   bool   `json:"featured"`
	Chain      string `json:"chain"`
	Difficulty string `json:"difficulty"`
	Limit      int    `json:"limit" validate:"gte=0"`

	Q        string `json:"q"`
	Category string `json:"category"`
	SortBy   string `json:"sort_by" validate:"omitempty,oneof=recent popular reward"`
}

type GetAirdropsResponse struct {
	Airdrops []Airdrop `json:"airdrops"`
	Total    int       `json:"total"`
	Showing  int       `json:"showing"`
}

type GetAirdropRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetAirdropResponse struct {
	Airdrop Airdrop `json:"airdrop"`
}

type CreateAirdropRequest struct {
	Title        string `json:"title" validate:"required"`
	Chain        string `json:"chain" validate:"required"`
	Reward       string `json:"reward"`
	Description  string `json:"description"`
	Link         string `json:"link" validate:"omitempty,url"`
	Tags         Tags   `json:"tags"`
	ImageURL     string `json:"image_url"`
	Image        *Image `json:"image"`
	Difficulty   string `json:"difficulty" validate:"required"`
	Participants int    `json:"participants" validate:"gte=0"`
	TimeLeft     string `json:"time_left"`
	Featured     bool   `json:"featured"`
}

type CreateAirdropResponse struct {
	Airdrop Airdrop `json:"airdrop"`
}

// UpdateAirdropRequest only changes the fields which are present.
type UpdateAirdropRequest struct {
	ID           string `json:"id" validate:"required"`
	Title        string `json:"title"`
	Chain        string `json:"chain"`
	Reward       string `json:"reward"`
	Description  string `json:"description"`
	Link         string `json:"link" validate:"omitempty,url"`
	Tags         Tags   `json:"tags"`
	ImageURL     string `json:"image_url"`
	Difficulty   string `json:"difficulty"`
	Participants *int   `json:"participants" validate:"omitempty,gte=0"`
	TimeLeft     string `json:"time_left"`
	Featured     *bool  `json:"featured"`
}

type UpdateAirdropResponse struct {
	Airdrop Airdrop `json:"airdrop"`
}

type DeleteAirdropRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteAirdropResponse struct{}

type GetAirdropStatsRequest struct{}

type GetAirdropStatsResponse struct {
	Active     int `json:"active"`
	EndingSoon int `json:"ending_soon"`
	Featured   int `json:"featured"`
}
