package model

import (
	"github.com/claimex/backend/internal/entity"
)

func ConvertAirdrop(a *entity.Airdrop) Airdrop {
	if a == nil {
		return Airdrop{}
	}

	tags := []string(a.Tags)
	if tags == nil {
		tags = []string{}
	}

	return Airdrop{
		ID:           a.ID,
		Title:        a.Title,
		Chain:        a.Chain,
		Reward:       a.Reward,
		Description:  a.Description,
		Link:         a.Link,
		Tags:         tags,
		ImageURL:     a.ImageURL,
		Difficulty:   string(a.Difficulty),
		Participants: a.Participants,
		TimeLeft:     a.TimeLeft,
		Featured:     a.Featured,
		CreatedAt:    a.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertCommunityPost(p *entity.CommunityPost) CommunityPost {
	if p == nil {
		return CommunityPost{}
	}

	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}

	return CommunityPost{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		ImageURL:     p.ImageURL.String,
		Author:       p.Author,
		AuthorAvatar: p.AuthorAvatar,
		Category:     string(p.Category),
		Tags:         tags,
		Upvotes:      p.Upvotes,
		Downvotes:    p.Downvotes,
		Replies:      p.Replies,
		Pinned:       p.Pinned,
		CreatedAt:    p.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPoll(p *entity.Poll) Poll {
	if p == nil {
		return Poll{}
	}

	options := []PollOption{}
	for _, o := range p.Options {
		options = append(options, PollOption{ID: o.ID, Text: o.Text, Votes: o.Votes})
	}

	return Poll{
		ID:         p.ID,
		Question:   p.Question,
		Options:    options,
		TotalVotes: p.TotalVotes,
		CreatedAt:  p.CreatedAt.Format(DefaultTimeLayout),
		EndsAt:     p.EndsAt.Format(DefaultTimeLayout),
	}
}

func ConvertNewsArticle(n *entity.NewsArticle) NewsArticle {
	if n == nil {
		return NewsArticle{}
	}

	return NewsArticle{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		URL:       n.URL,
		ImageURL:  n.ImageURL.String,
		Category:  string(n.Category),
		Views:     n.Views,
		Comments:  n.Comments,
		CreatedAt: n.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertClickEvent(c *entity.ClickEvent) ClickEvent {
	if c == nil {
		return ClickEvent{}
	}

	return ClickEvent{
		ID:        c.ID,
		AirdropID: c.AirdropID,
		IPAddress: c.IPAddress.String,
		Timestamp: c.Timestamp.Format(DefaultTimeLayout),
	}
}

func ConvertUser(u *entity.User) User {
	if u == nil {
		return User{}
	}

	return User{ID: u.ID, Email: u.Email, Role: u.Role}
}
