package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/pkg/xcontext"
)

var baseTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	AdminUser = &entity.User{
		Base:  entity.Base{ID: "admin"},
		Email: "admin@claimex.com",
		Role:  entity.UserRole,
	}

	User1 = &entity.User{
		Base:  entity.Base{ID: "user1"},
		Email: "user1@claimex.com",
		Role:  entity.UserRole,
	}

	User2 = &entity.User{
		Base:  entity.Base{ID: "user2"},
		Email: "user2@claimex.com",
		Role:  entity.UserRole,
	}

	// RoleAdminUser is admin by role, not by email.
	RoleAdminUser = &entity.User{
		Base:  entity.Base{ID: "role_admin"},
		Email: "ops@claimex.com",
		Role:  entity.AdminRole,
	}

	Users = []*entity.User{AdminUser, User1, User2, RoleAdminUser}
)

var (
	Airdrop1 = &entity.Airdrop{
		Base:         entity.Base{ID: "airdrop1", CreatedAt: baseTime.Add(1 * time.Hour)},
		Title:        "LayerZero Season 2",
		Chain:        "Ethereum",
		Reward:       "$900",
		Description:  "Bridge assets across chains",
		Link:         "https://layerzero.network",
		Tags:         entity.Tags{"Bridge", "Layer 2"},
		Difficulty:   entity.DifficultyMedium,
		Participants: 1200,
		TimeLeft:     "14 days",
		Featured:     true,
	}

	Airdrop2 = &entity.Airdrop{
		Base:         entity.Base{ID: "airdrop2", CreatedAt: baseTime.Add(2 * time.Hour)},
		Title:        "Jupiter Governance",
		Chain:        "Solana",
		Reward:       "$1000",
		Description:  "Vote on DAO proposals",
		Link:         "https://jup.ag",
		Tags:         entity.Tags{"Governance", "DeFi"},
		Difficulty:   entity.DifficultyEasy,
		Participants: 5000,
		TimeLeft:     "45 days",
		Featured:     false,
	}

	Airdrop3 = &entity.Airdrop{
		Base:         entity.Base{ID: "airdrop3", CreatedAt: baseTime.Add(3 * time.Hour)},
		Title:        "Pixel Quest",
		Chain:        "Ethereum",
		Reward:       "$50-$200",
		Description:  "Play to earn game on Ethereum",
		Link:         "https://pixel.quest",
		Tags:         entity.Tags{"Gaming", "NFT"},
		Difficulty:   entity.DifficultyHard,
		Participants: 300,
		TimeLeft:     "Ended",
		Featured:     true,
	}

	Airdrops = []*entity.Airdrop{Airdrop1, Airdrop2, Airdrop3}
)

var (
	Post1 = &entity.CommunityPost{
		Base:         entity.Base{ID: "post1", CreatedAt: baseTime.Add(1 * time.Hour)},
		Title:        "How I farm testnets",
		Content:      "Daily routine for testnet farming",
		AuthorID:     User1.ID,
		Author:       "user1",
		AuthorAvatar: "US",
		Category:     entity.PostCategoryStrategy,
		Tags:         entity.Tags{"testnet"},
		Upvotes:      3,
	}

	Post2 = &entity.CommunityPost{
		Base:         entity.Base{ID: "post2", CreatedAt: baseTime.Add(2 * time.Hour)},
		Title:        "Is this legit?",
		Content:      "Found a new airdrop link",
		AuthorID:     User2.ID,
		Author:       "user2",
		AuthorAvatar: "US",
		Category:     entity.PostCategoryQuestion,
		Tags:         entity.Tags{},
		Upvotes:      10,
		Downvotes:    1,
	}

	Posts = []*entity.CommunityPost{Post1, Post2}
)

var (
	OpenPoll = &entity.Poll{
		Base:     entity.Base{ID: "poll1", CreatedAt: baseTime},
		Question: "Which chain will airdrop next?",
		Options: entity.Array[entity.PollOption]{
			{ID: "opt1", Text: "Ethereum"},
			{ID: "opt2", Text: "Solana"},
		},
		EndsAt: time.Now().Add(24 * time.Hour),
	}

	ClosedPoll = &entity.Poll{
		Base:     entity.Base{ID: "poll2", CreatedAt: baseTime.Add(time.Hour)},
		Question: "Best wallet?",
		Options: entity.Array[entity.PollOption]{
			{ID: "opt1", Text: "Metamask"},
			{ID: "opt2", Text: "Phantom"},
		},
		EndsAt: baseTime.Add(2 * time.Hour),
	}

	Polls = []*entity.Poll{OpenPoll, ClosedPoll}
)

var (
	News1 = &entity.NewsArticle{
		Base:     entity.Base{ID: "news1", CreatedAt: baseTime.Add(1 * time.Hour)},
		Title:    "Mainnet launch",
		Content:  "The protocol launched its mainnet",
		URL:      "https://example.com/mainnet",
		ImageURL: sql.NullString{Valid: true, String: "https://example.com/mainnet.png"},
		Category: entity.NewsCategoryProtocolUpdates,
	}

	News2 = &entity.NewsArticle{
		Base:     entity.Base{ID: "news2", CreatedAt: baseTime.Add(2 * time.Hour)},
		Title:    "How to bridge",
		Content:  "Step by step bridging guide",
		URL:      "https://example.com/bridge",
		Category: entity.NewsCategoryGuides,
	}

	News = []*entity.NewsArticle{News1, News2}
)

// CreateFixtureDb inserts the sample rows into the database of ctx.
func CreateFixtureDb(ctx context.Context) {
	db := xcontext.DB(ctx)
	for _, u := range Users {
		copied := *u
		if err := db.Create(&copied).Error; err != nil {
			panic(err)
		}
	}

	for _, a := range Airdrops {
		copied := *a
		if err := db.Create(&copied).Error; err != nil {
			panic(err)
		}
	}

	for _, p := range Posts {
		copied := *p
		if err := db.Create(&copied).Error; err != nil {
			panic(err)
		}
	}

	for _, p := range Polls {
		copied := *p
		if err := db.Create(&copied).Error; err != nil {
			panic(err)
		}
	}

	for _, n := range News {
		copied := *n
		if err := db.Create(&copied).Error; err != nil {
			panic(err)
		}
	}
}
