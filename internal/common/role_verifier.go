package common

import (
	"context"
	"errors"

	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/enum"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GateState string

var (
	GateUnauthenticated = enum.New(GateState("unauthenticated"))
	GateForbidden       = enum.New(GateState("forbidden"))
	GateAdmin           = enum.New(GateState("admin"))
)

// AdminVerifier decides whether the request user may use admin operations.
// A user is admin if its email equals the configured admin email (case
// sensitive) or it has the admin role.
type AdminVerifier struct {
	userRepo repository.UserRepository
}

func NewAdminVerifier(userRepo repository.UserRepository) *AdminVerifier {
	return &AdminVerifier{userRepo: userRepo}
}

func (v *AdminVerifier) State(ctx context.Context) (GateState, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return GateUnauthenticated, nil
	}

	u, err := v.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GateUnauthenticated, nil
		}

		return "", err
	}

	if !IsAdmin(ctx, u) {
		return GateForbidden, nil
	}

	return GateAdmin, nil
}

// Verify returns a client error unless the request user is admin.
func (v *AdminVerifier) Verify(ctx context.Context) error {
	state, err := v.State(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the gate state: %v", err)
		return errorx.Unknown
	}

	switch state {
	case GateUnauthenticated:
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	case GateForbidden:
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

func IsAdmin(ctx context.Context, u *entity.User) bool {
	if u == nil {
		return false
	}

	adminEmail := xcontext.Configs(ctx).Auth.AdminEmail
	if adminEmail != "" && u.Email == adminEmail {
		return true
	}

	return u.Role == entity.AdminRole
}
