package common_test

import (
	"context"
	"testing"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestAdminVerifier_State(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	verifier := common.NewAdminVerifier(repository.NewUserRepository())

	testCases := []struct {
		name   string
		ctx    context.Context
		state  common.GateState
		verify error
	}{
		{
			name:   "unauthenticated",
			ctx:    ctx,
			state:  common.GateUnauthenticated,
			verify: errorx.New(errorx.Unauthenticated, ""),
		},
		{
			name:   "unknown user",
			ctx:    xcontext.WithRequestUserID(ctx, "ghost"),
			state:  common.GateUnauthenticated,
			verify: errorx.New(errorx.Unauthenticated, ""),
		},
		{
			name:   "regular user",
			ctx:    xcontext.WithRequestUserID(ctx, testutil.User1.ID),
			state:  common.GateForbidden,
			verify: errorx.New(errorx.PermissionDenied, ""),
		},
		{
			name:  "admin by email",
			ctx:   xcontext.WithRequestUserID(ctx, testutil.AdminUser.ID),
			state: common.GateAdmin,
		},
		{
			name:  "admin by role",
			ctx:   xcontext.WithRequestUserID(ctx, testutil.RoleAdminUser.ID),
			state: common.GateAdmin,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state, err := verifier.State(tc.ctx)
			require.NoError(t, err)
			require.Equal(t, tc.state, state)

			err = verifier.Verify(tc.ctx)
			if tc.verify == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.verify)
			}
		})
	}
}

func TestIsAdmin_CaseSensitive(t *testing.T) {
	ctx := testutil.MockContext()

	u := *testutil.AdminUser
	u.Email = "Admin@claimex.com"
	require.False(t, common.IsAdmin(ctx, &u))

	u.Email = "admin@claimex.com"
	require.True(t, common.IsAdmin(ctx, &u))
}
