package domain

import (
	"testing"

	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_gateDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewGateDomain(repository.NewUserRepository())

	testCases := []struct {
		name   string
		userID string
		want   string
	}{
		{name: "anonymous", userID: "", want: "unauthenticated"},
		{name: "unknown user", userID: "ghost", want: "unauthenticated"},
		{name: "regular user", userID: testutil.User1.ID, want: "forbidden"},
		{name: "admin email", userID: testutil.AdminUser.ID, want: "admin"},
		{name: "admin role", userID: testutil.RoleAdminUser.ID, want: "admin"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := domain.Get(xcontext.WithRequestUserID(ctx, tc.userID), &model.GetAdminGateRequest{})
			require.NoError(t, err)
			require.Equal(t, tc.want, resp.State)
		})
	}
}
