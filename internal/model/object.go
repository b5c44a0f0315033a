package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/claimex/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

type Airdrop struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Chain        string   `json:"chain"`
	Reward       string   `json:"reward"`
	Description  string   `json:"description"`
	Link         string   `json:"link"`
	Tags         []string `json:"tags"`
	ImageURL     string   `json:"image_url"`
	Difficulty   string   `json:"difficulty"`
	Participants int      `json:"participants"`
	TimeLeft     string   `json:"time_left"`
	Featured     bool     `json:"featured"`
	CreatedAt    string   `json:"created_at"`
}

type CommunityPost struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	ImageURL     string   `json:"image_url,omitempty"`
	Author       string   `json:"author"`
	AuthorAvatar string   `json:"author_avatar"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Upvotes      int      `json:"upvotes"`
	Downvotes    int      `json:"downvotes"`
	Replies      int      `json:"replies"`
	Pinned       bool     `json:"pinned"`
	CreatedAt    string   `json:"created_at"`
}

type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	ID         string       `json:"id"`
	Question   string       `json:"question"`
	Options    []PollOption `json:"options"`
	TotalVotes int          `json:"total_votes"`
	CreatedAt  string       `json:"created_at"`
	EndsAt     string       `json:"ends_at"`
}

type NewsArticle struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	URL       string `json:"url"`
	ImageURL  string `json:"image_url,omitempty"`
	Category  string `json:"category"`
	Views     int    `json:"views"`
	Comments  int    `json:"comments"`
	CreatedAt string `json:"created_at"`
}

type ClickEvent struct {
	ID        int64  `json:"id,string"`
	AirdropID string `json:"airdrop_id"`
	IPAddress string `json:"ip_address,omitempty"`
	Timestamp string `json:"timestamp"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Image is sent inline with create requests, base64 encoded.
type Image struct {
	Name string `json:"name" validate:"required"`
	Data []byte `json:"data" validate:"required"`
}

// Tags accepts either a JSON list of strings or a single comma-joined string.
type Tags []string

func (t *Tags) UnmarshalJSON(b []byte) error {
	// null leaves the tags unset.
	if string(bytes.TrimSpace(b)) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = Tags(entity.NormalizeTags(list))
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("tags must be a list or a comma-joined string")
	}

	*t = Tags(entity.SplitTags(s))
	return nil
}
