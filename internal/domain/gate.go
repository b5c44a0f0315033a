package domain

import (
	"context"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/xcontext"
)

type GateDomain interface {
	Get(context.Context, *model.GetAdminGateRequest) (*model.GetAdminGateResponse, error)
}

type gateDomain struct {
	adminVerifier *common.AdminVerifier
}

func NewGateDomain(userRepo repository.UserRepository) GateDomain {
	return &gateDomain{adminVerifier: common.NewAdminVerifier(userRepo)}
}

// Get tells the client which admin surface to render. It never fails for an
// anonymous caller.
func (d *gateDomain) Get(
	ctx context.Context, req *model.GetAdminGateRequest,
) (*model.GetAdminGateResponse, error) {
	state, err := d.adminVerifier.State(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the gate state: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetAdminGateResponse{State: string(state)}, nil
}
