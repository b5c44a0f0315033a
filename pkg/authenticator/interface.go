package authenticator

import (
	"context"
	"time"
)

type TokenEngine interface {
	Generate(expiration time.Duration, obj any) (string, error)
	Verify(token string, obj any) error
}

type OIDCUser struct {
	Subject string
	Email   string
}

type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, rawIDToken string) (OIDCUser, error)
}
