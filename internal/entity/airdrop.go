package entity

import "github.com/claimex/backend/pkg/enum"

type DifficultyType string

var (
	DifficultyEasy   = enum.New(DifficultyType("Easy"))
	DifficultyMedium = enum.New(DifficultyType("Medium"))
	DifficultyHard   = enum.New(DifficultyType("Hard"))
)

type AirdropCategory string

var (
	AirdropCategoryDeFi       = enum.New(AirdropCategory("DeFi"))
	AirdropCategoryLayer2     = enum.New(AirdropCategory("Layer 2"))
	AirdropCategoryNFT        = enum.New(AirdropCategory("NFT"))
	AirdropCategoryGaming     = enum.New(AirdropCategory("Gaming"))
	AirdropCategoryBridge     = enum.New(AirdropCategory("Bridge"))
	AirdropCategoryGovernance = enum.New(AirdropCategory("Governance"))
)

type Airdrop struct {
	Base
	Title        string
	Chain        string `gorm:"index"`
	Reward       string
	Description  string
	Link         string
	Tags         Tags `gorm:"type:text"`
	ImageURL     string
	Difficulty   DifficultyType `gorm:"index"`
	Participants int
	TimeLeft     string
	Featured     bool `gorm:"index"`
}
