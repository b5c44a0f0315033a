package middleware

import (
	"context"
	"net/http"

	"github.com/claimex/backend/pkg/router"
	"github.com/claimex/backend/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo() []http.Cookie
}

func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		w := xcontext.HTTPWriter(ctx)
		tokenResp, ok := xcontext.Response(ctx).(CookieResponse)
		if ok && w != nil {
			for _, cookie := range tokenResp.CookieInfo() {
				cookie := cookie
				http.SetCookie(w, &cookie)
			}
		}

		return nil, nil
	}
}
