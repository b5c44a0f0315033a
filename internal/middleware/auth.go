package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/router"
	"github.com/claimex/backend/pkg/xcontext"
)

// AuthVerifier resolves the request user from, in order, the Authorization
// bearer token, the access token cookie and the session. A missing or invalid
// credential leaves the request anonymous.
type AuthVerifier struct{}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return nil, nil
		}

		for _, token := range a.candidates(ctx, req) {
			var accessToken model.AccessToken
			if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
				xcontext.Logger(ctx).Debugf("Ignore invalid access token: %v", err)
				continue
			}

			if accessToken.ID != "" {
				return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
			}
		}

		return nil, nil
	}
}

func (a *AuthVerifier) candidates(ctx context.Context, req *http.Request) []string {
	tokens := []string{}
	name := xcontext.Configs(ctx).Auth.AccessToken.Name

	if auth := req.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
			tokens = append(tokens, token)
		}
	}

	if cookie, err := req.Cookie(name); err == nil && cookie.Value != "" {
		tokens = append(tokens, cookie.Value)
	}

	if store := xcontext.SessionStore(ctx); store != nil {
		session, err := store.Get(req, xcontext.Configs(ctx).Session.Name)
		if err == nil {
			if token, ok := session.Values[name].(string); ok && token != "" {
				tokens = append(tokens, token)
			}
		}
	}

	return tokens
}

// Authenticate rejects anonymous requests.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return nil, nil
	}
}
