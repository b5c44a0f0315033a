package domain

import (
	"context"
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
)

const endingSoonDays = 30

type AirdropDomain interface {
	GetList(context.Context, *model.GetAirdropsRequest) (*model.GetAirdropsResponse, error)
	Get(context.Context, *model.GetAirdropRequest) (*model.GetAirdropResponse, error)
	Create(context.Context, *model.CreateAirdropRequest) (*model.CreateAirdropResponse, error)
	Update(context.Context, *model.UpdateAirdropRequest) (*model.UpdateAirdropResponse, error)
	Delete(context.Context, *model.DeleteAirdropRequest) (*model.DeleteAirdropResponse, error)
	GetStats(context.Context, *model.GetAirdropStatsRequest) (*model.GetAirdropStatsResponse, error)
}

type airdropDomain struct {
	airdropRepo   repository.AirdropRepository
	adminVerifier *common.AdminVerifier
	storage       storage.Storage
}

func NewAirdropDomain(
	airdropRepo repository.AirdropRepository,
	userRepo repository.UserRepository,
	storage storage.Storage,
) AirdropDomain {
	return &airdropDomain{
		airdropRepo:   airdropRepo,
		adminVerifier: common.NewAdminVerifier(userRepo),
		storage:       storage,
	}
}

func (d *airdropDomain) GetList(
	ctx context.Context, req *model.GetAirdropsRequest,
) (*model.GetAirdropsResponse, error) {
	airdrops, err := d.airdropRepo.GetList(ctx, repository.GetListAirdropFilter{
		Featured:   req.Featured,
		Chain:      req.Chain,
		Difficulty: req.Difficulty,
		Limit:      common.ClampLimit(ctx, req.Limit),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get airdrops: %v", err)
		return nil, errorx.Unknown
	}

	shown := listing.Airdrops(airdrops, listing.AirdropQuery{
		Search:   req.Q,
		Category: req.Category,
		SortBy:   listing.SortKey(req.SortBy),
	})

	resp := &model.GetAirdropsResponse{
		Airdrops: make([]model.Airdrop, 0, len(shown)),
		Total:    len(airdrops),
		Showing:  len(shown),
	}
	for i := range shown {
		resp.Airdrops = append(resp.Airdrops, model.ConvertAirdrop(&shown[i]))
	}

	return resp, nil
}

func (d *airdropDomain) Get(
	ctx context.Context, req *model.GetAirdropRequest,
) (*model.GetAirdropResponse, error) {
	airdrop, err := d.airdropRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, storeError(ctx, err, "get", "airdrop")
	}

	return &model.GetAirdropResponse{Airdrop: model.ConvertAirdrop(airdrop)}, nil
}

func (d *airdropDomain) Create(
	ctx context.Context, req *model.CreateAirdropRequest,
) (*model.CreateAirdropResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	difficulty, err := enum.ToEnum[entity.DifficultyType](req.Difficulty)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid difficulty: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid difficulty")
	}

	airdrop := &entity.Airdrop{
		Base:         entity.Base{ID: uuid.NewString()},
		Title:        req.Title,
		Chain:        req.Chain,
		Reward:       req.Reward,
		Description:  req.Description,
		Link:         req.Link,
		Tags:         entity.NormalizeTags(req.Tags),
		ImageURL:     req.ImageURL,
		Difficulty:   difficulty,
		Participants: req.Participants,
		TimeLeft:     req.TimeLeft,
		Featured:     req.Featured,
	}

	var uploaded *storage.UploadObject
	if req.Image != nil {
		uploaded, airdrop.ImageURL, err = uploadImage(
			ctx, d.storage, xcontext.Configs(ctx).Storage.AirdropBucket, "airdrop", req.Image)
		if err != nil {
			return nil, err
		}
	}

	if err := d.airdropRepo.Create(ctx, airdrop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create airdrop: %v", err)
		discardUpload(ctx, d.storage, uploaded)
		return nil, errorx.Unknown
	}

	return &model.CreateAirdropResponse{Airdrop: model.ConvertAirdrop(airdrop)}, nil
}

type airdropPatch struct {
	Title       string `structs:"title,omitempty"`
	Chain       string `structs:"chain,omitempty"`
	Reward      string `structs:"reward,omitempty"`
	Description string `structs:"description,omitempty"`
	Link        string `structs:"link,omitempty"`
	ImageURL    string `structs:"image_url,omitempty"`
	Difficulty  string `structs:"difficulty,omitempty"`
	TimeLeft    string `structs:"time_left,omitempty"`
}

func (d *airdropDomain) Update(
	ctx context.Context, req *model.UpdateAirdropRequest,
) (*model.UpdateAirdropResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if req.Difficulty != "" {
		if _, err := enum.ToEnum[entity.DifficultyType](req.Difficulty); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid difficulty")
		}
	}

	data := structs.Map(airdropPatch{
		Title:       req.Title,
		Chain:       req.Chain,
		Reward:      req.Reward,
		Description: req.Description,
		Link:        req.Link,
		ImageURL:    req.ImageURL,
		Difficulty:  req.Difficulty,
		TimeLeft:    req.TimeLeft,
	})
	if req.Tags != nil {
		data["tags"] = entity.NormalizeTags(req.Tags)
	}
	if req.Participants != nil {
		data["participants"] = *req.Participants
	}
	if req.Featured != nil {
		data["featured"] = *req.Featured
	}

	if len(data) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	airdrop, err := d.airdropRepo.UpdateByID(ctx, req.ID, data)
	if err != nil {
		return nil, storeError(ctx, err, "update", "airdrop")
	}

	return &model.UpdateAirdropResponse{Airdrop: model.ConvertAirdrop(airdrop)}, nil
}

func (d *airdropDomain) Delete(
	ctx context.Context, req *model.DeleteAirdropRequest,
) (*model.DeleteAirdropResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if err := d.airdropRepo.DeleteByID(ctx, req.ID); err != nil {
		return nil, storeError(ctx, err, "delete", "airdrop")
	}

	return &model.DeleteAirdropResponse{}, nil
}

// GetStats counts every listed airdrop as active. An airdrop is ending soon
// when its time left starts with a number of at most 30.
func (d *airdropDomain) GetStats(
	ctx context.Context, req *model.GetAirdropStatsRequest,
) (*model.GetAirdropStatsResponse, error) {
	airdrops, err := d.airdropRepo.GetList(ctx, repository.GetListAirdropFilter{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get airdrops: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetAirdropStatsResponse{Active: len(airdrops)}
	for _, a := range airdrops {
		if a.Featured {
			resp.Featured++
		}

		timeLeft := strings.Fields(a.TimeLeft)
		if len(timeLeft) == 0 {
			continue
		}

		if n, ok := leadingInt(timeLeft[0]); ok && n <= endingSoonDays {
			resp.EndingSoon++
		}
	}

	return resp, nil
}
