package model

type GetCommunityPostsRequest struct {
	Category string `json:"category"`
	Limit    int    `json:"limit" validate:"gte=0"`

	Q      string `json:"q"`
	SortBy string `json:"sort_by" validate:"omitempty,oneof=recent popular"`
}

type GetCommunityPostsResponse struct {
	Posts []CommunityPost `json:"posts"`
}

type CreateCommunityPostRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category"`
	Tags     Tags   `json:"tags"`
	Image    *Image `json:"image"`
}

type CreateCommunityPostResponse struct {
	Post CommunityPost `json:"post"`
}

type UpdateCommunityPostRequest struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Tags     Tags   `json:"tags"`
	Pinned   *bool  `json:"pinned"`
}

type UpdateCommunityPostResponse struct {
	Post CommunityPost `json:"post"`
}

type DeleteCommunityPostRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteCommunityPostResponse struct{}

type VotePostRequest struct {
	PostID    string `json:"post_id" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type VotePostResponse struct {
	Post CommunityPost `json:"post"`

	// Direction is the caller's vote after toggling, empty if none.
	Direction string `json:"direction"`
}
