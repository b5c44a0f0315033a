package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestAuthVerifier_Middleware(t *testing.T) {
	ctx := testutil.MockContext()
	token, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{ID: "user1", Email: "user1@claimex.com"},
	)
	require.NoError(t, err)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		wantID string
	}{
		{
			name:   "bearer",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			wantID: "user1",
		},
		{
			name: "cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "access_token", Value: token})
			},
			wantID: "user1",
		},
		{
			name:   "invalid token is anonymous",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer garbage") },
			wantID: "",
		},
		{
			name:   "no credential",
			setup:  func(r *http.Request) {},
			wantID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/getMe", nil)
			tt.setup(req)

			reqCtx := xcontext.WithHTTPRequest(ctx, req)
			newCtx, err := NewAuthVerifier().Middleware()(reqCtx)
			require.NoError(t, err)
			if tt.wantID == "" {
				require.Nil(t, newCtx)
				return
			}

			require.Equal(t, tt.wantID, xcontext.RequestUserID(newCtx))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	_, err := Authenticate()(testutil.MockContext())
	require.ErrorIs(t, err, errorx.New(errorx.Unauthenticated, ""))

	_, err = Authenticate()(testutil.MockContextWithUserID("user1"))
	require.NoError(t, err)
}

func TestOnlyAdmin(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	onlyAdmin := NewOnlyAdmin(repository.NewUserRepository())

	_, err := onlyAdmin.Middleware()(xcontext.WithRequestUserID(ctx, testutil.User1.ID))
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))

	_, err = onlyAdmin.Middleware()(xcontext.WithRequestUserID(ctx, testutil.AdminUser.ID))
	require.NoError(t, err)
}

func TestSessionAndCookie(t *testing.T) {
	ctx := testutil.MockContext()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signIn", nil)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)

	resp := model.NewSignInResponse(model.User{ID: "user1"}, "token", "sid1", "access_token", xcontext.Configs(ctx).Auth.AccessToken.Expiration)
	ctx = xcontext.WithResponse(ctx, resp)

	_, err := HandleSaveSession()(ctx)
	require.NoError(t, err)
	_, err = HandleSetAccessToken()(ctx)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	names := []string{}
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	require.Contains(t, names, "claimex")
	require.Contains(t, names, "access_token")

	// The session cookie can be read back.
	next := httptest.NewRequest(http.MethodGet, "/getMe", nil)
	for _, c := range cookies {
		if c.Name == "claimex" {
			next.AddCookie(c)
		}
	}
	session, err := xcontext.SessionStore(ctx).Get(next, "claimex")
	require.NoError(t, err)
	require.Equal(t, "token", session.Values["access_token"])
	require.Equal(t, "sid1", session.Values[model.SessionIDKey])
}
