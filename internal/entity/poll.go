package entity

import "time"

type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	Base
	Question   string
	Options    Array[PollOption] `gorm:"type:text"`
	TotalVotes int
	EndsAt     time.Time
}

type PollVote struct {
	UserID   string `gorm:"primaryKey"`
	PollID   string `gorm:"primaryKey"`
	OptionID string
}
