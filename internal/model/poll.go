package model

type GetPollsRequest struct{}

type GetPollsResponse struct {
	Polls []Poll `json:"polls"`
}

type CreatePollRequest struct {
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options" validate:"min=2,dive,required"`
	EndsAt   string   `json:"ends_at" validate:"required"`
}

type CreatePollResponse struct {
	Poll Poll `json:"poll"`
}

type DeletePollRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeletePollResponse struct{}

type VotePollRequest struct {
	PollID   string `json:"poll_id" validate:"required"`
	OptionID string `json:"option_id" validate:"required"`
}

type VotePollResponse struct {
	Poll Poll `json:"poll"`
}
