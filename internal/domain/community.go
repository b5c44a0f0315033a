package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/domain/listing"
	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/enum"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/storage"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	anonymousAuthor = "Anonymous"
	anonymousAvatar = "AN"
)

type CommunityDomain interface {
	GetList(context.Context, *model.GetCommunityPostsRequest) (*model.GetCommunityPostsResponse, error)
	Create(context.Context, *model.CreateCommunityPostRequest) (*model.CreateCommunityPostResponse, error)
	Update(context.Context, *model.UpdateCommunityPostRequest) (*model.UpdateCommunityPostResponse, error)
	Delete(context.Context, *model.DeleteCommunityPostRequest) (*model.DeleteCommunityPostResponse, error)
	Vote(context.Context, *model.VotePostRequest) (*model.VotePostResponse, error)
}

type communityDomain struct {
	postRepo repository.CommunityPostRepository
	voteRepo repository.VoteRepository
	userRepo repository.UserRepository
	storage  storage.Storage
}

func NewCommunityDomain(
	postRepo repository.CommunityPostRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
	storage storage.Storage,
) CommunityDomain {
	return &communityDomain{
		postRepo: postRepo,
		voteRepo: voteRepo,
		userRepo: userRepo,
		storage:  storage,
	}
}

func (d *communityDomain) GetList(
	ctx context.Context, req *model.GetCommunityPostsRequest,
) (*model.GetCommunityPostsResponse, error) {
	posts, err := d.postRepo.GetList(ctx, repository.GetListCommunityPostFilter{
		Category: req.Category,
		Limit:    common.ClampLimit(ctx, req.Limit),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community posts: %v", err)
		return nil, errorx.Unknown
	}

	shown := listing.Posts(posts, listing.PostQuery{
		Search: req.Q,
		SortBy: listing.SortKey(req.SortBy),
	})

	resp := &model.GetCommunityPostsResponse{Posts: make([]model.CommunityPost, 0, len(shown))}
	for i := range shown {
		resp.Posts = append(resp.Posts, model.ConvertCommunityPost(&shown[i]))
	}

	return resp, nil
}

// Create ignores any counter sent by the client; a new post always starts
// without votes nor replies.
func (d *communityDomain) Create(
	ctx context.Context, req *model.CreateCommunityPostRequest,
) (*model.CreateCommunityPostResponse, error) {
	user, err := d.requestUser(ctx)
	if err != nil {
		return nil, err
	}

	category := entity.PostCategoryGeneral
	if req.Category != "" {
		category, err = enum.ToEnum[entity.PostCategory](req.Category)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category")
		}
	}

	author, _, _ := strings.Cut(user.Email, "@")
	avatar := avatarOf(author)
	if author == "" {
		author, avatar = anonymousAuthor, anonymousAvatar
	}

	post := &entity.CommunityPost{
		Base:         entity.Base{ID: uuid.NewString()},
		Title:        req.Title,
		Content:      req.Content,
		AuthorID:     user.ID,
		Author:       author,
		AuthorAvatar: avatar,
		Category:     category,
		Tags:         entity.NormalizeTags(req.Tags),
	}

	var uploaded *storage.UploadObject
	if req.Image != nil {
		var url string
		uploaded, url, err = uploadImage(
			ctx, d.storage, xcontext.Configs(ctx).Storage.CommunityBucket, "post", req.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = sql.NullString{Valid: true, String: url}
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community post: %v", err)
		discardUpload(ctx, d.storage, uploaded)
		return nil, errorx.Unknown
	}

	return &model.CreateCommunityPostResponse{Post: model.ConvertCommunityPost(post)}, nil
}

type postPatch struct {
	Title    string `structs:"title,omitempty"`
	Content  string `structs:"content,omitempty"`
	Category string `structs:"category,omitempty"`
}

func (d *communityDomain) Update(
	ctx context.Context, req *model.UpdateCommunityPostRequest,
) (*model.UpdateCommunityPostResponse, error) {
	user, err := d.requestUser(ctx)
	if err != nil {
		return nil, err
	}

	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, storeError(ctx, err, "get", "post")
	}

	isAdmin := common.IsAdmin(ctx, user)
	if post.AuthorID != user.ID && !isAdmin {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can edit this post")
	}

	if req.Category != "" {
		if _, err := enum.ToEnum[entity.PostCategory](req.Category); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category")
		}
	}

	data := structs.Map(postPatch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if req.Tags != nil {
		data["tags"] = entity.NormalizeTags(req.Tags)
	}
	if req.Pinned != nil {
		if !isAdmin {
			return nil, errorx.New(errorx.PermissionDenied, "Only admin can pin a post")
		}
		data["pinned"] = *req.Pinned
	}

	if len(data) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	post, err = d.postRepo.UpdateByID(ctx, req.ID, data)
	if err != nil {
		return nil, storeError(ctx, err, "update", "post")
	}

	return &model.UpdateCommunityPostResponse{Post: model.ConvertCommunityPost(post)}, nil
}

func (d *communityDomain) Delete(
	ctx context.Context, req *model.DeleteCommunityPostRequest,
) (*model.DeleteCommunityPostResponse, error) {
	user, err := d.requestUser(ctx)
	if err != nil {
		return nil, err
	}

	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, storeError(ctx, err, "get", "post")
	}

	if post.AuthorID != user.ID && !common.IsAdmin(ctx, user) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this post")
	}

	if err := d.postRepo.DeleteByID(ctx, req.ID); err != nil {
		return nil, storeError(ctx, err, "delete", "post")
	}

	return &model.DeleteCommunityPostResponse{}, nil
}

// Vote toggles the vote of the request user. Voting the same direction twice
// removes the vote, voting the other direction moves it.
func (d *communityDomain) Vote(
	ctx context.Context, req *model.VotePostRequest,
) (*model.VotePostResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	direction, err := enum.ToEnum[entity.VoteDirection](req.Direction)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid direction")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		return nil, storeError(ctx, err, "get", "post")
	}

	var previous entity.VoteDirection
	vote, err := d.voteRepo.GetPostVote(ctx, userID, req.PostID)
	if err == nil {
		previous = vote.Direction
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get post vote: %v", err)
		return nil, errorx.Unknown
	}

	up, down := 0, 0
	delta := func(dir entity.VoteDirection, n int) {
		if dir == entity.VoteUp {
			up += n
		} else {
			down += n
		}
	}

	current := direction
	if previous == direction {
		current = ""
		delta(previous, -1)
		err = d.voteRepo.DeletePostVote(ctx, userID, req.PostID)
	} else {
		if previous != "" {
			delta(previous, -1)
		}
		delta(direction, 1)
		err = d.voteRepo.UpsertPostVote(ctx, &entity.PostVote{
			UserID:    userID,
			PostID:    req.PostID,
			Direction: direction,
		})
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save post vote: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.IncreaseVotes(ctx, req.PostID, up, down); err != nil {
		return nil, storeError(ctx, err, "update votes of", "post")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, storeError(ctx, err, "get", "post")
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit post vote: %v", err)
		return nil, errorx.Unknown
	}

	return &model.VotePostResponse{
		Post:      model.ConvertCommunityPost(post),
		Direction: string(current),
	}, nil
}

func (d *communityDomain) requestUser(ctx context.Context) (*entity.User, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}
