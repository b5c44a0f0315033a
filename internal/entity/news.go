package entity

import (
	"database/sql"

	"github.com/claimex/backend/pkg/enum"
)

type NewsCategory string

var (
	NewsCategoryProtocolUpdates = enum.New(NewsCategory("Protocol Updates"))
	NewsCategoryEcosystemNews   = enum.New(NewsCategory("Ecosystem News"))
	NewsCategoryTestnetNews     = enum.New(NewsCategory("Testnet News"))
	NewsCategoryAnalysis        = enum.New(NewsCategory("Analysis"))
	NewsCategoryGuides          = enum.New(NewsCategory("Guides"))
)

type NewsArticle struct {
	Base
	Title    string
	Content  string
	URL      string
	ImageURL sql.NullString
	Category NewsCategory `gorm:"index"`
	Views    int
	Comments int
}

func (NewsArticle) TableName() string {
	return "news"
}
