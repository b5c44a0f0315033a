package middleware

import (
	"context"
	"errors"

	"github.com/claimex/backend/pkg/router"
	"github.com/claimex/backend/pkg/xcontext"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

// HandleSaveSession copies the session info of the response into the session.
// A nil value removes the key.
func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return nil, nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return nil, errors.New("no session info")
		}

		req := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
		if session == nil {
			return nil, err
		}
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot decode the session, start a new one: %v", err)
		}

		for k, v := range sessionInfo {
			if v == nil {
				delete(session.Values, k)
				continue
			}
			session.Values[k] = v
		}

		if err := session.Save(req, xcontext.HTTPWriter(ctx)); err != nil {
			return nil, err
		}

		return nil, nil
	}
}
