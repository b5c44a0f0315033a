package entity

import (
	"database/sql"

	"github.com/claimex/backend/pkg/enum"
)

type PostCategory string

var (
	PostCategoryGeneral  = enum.New(PostCategory("General"))
	PostCategoryStrategy = enum.New(PostCategory("Strategy"))
	PostCategoryNews     = enum.New(PostCategory("News"))
	PostCategoryTips     = enum.New(PostCategory("Tips"))
	PostCategoryAlpha    = enum.New(PostCategory("Alpha"))
	PostCategoryQuestion = enum.New(PostCategory("Question"))
)

type CommunityPost struct {
	Base
	Title        string
	Content      string
	ImageURL     sql.NullString
	AuthorID     string `gorm:"index"`
	Author       string
	AuthorAvatar string
	Category     PostCategory `gorm:"index"`
	Tags         Tags         `gorm:"type:text"`
	Upvotes      int
	Downvotes    int
	Replies      int
	Pinned       bool
}

type VoteDirection string

var (
	VoteUp   = enum.New(VoteDirection("up"))
	VoteDown = enum.New(VoteDirection("down"))
)

type PostVote struct {
	UserID    string `gorm:"primaryKey"`
	PostID    string `gorm:"primaryKey"`
	Direction VoteDirection
}
