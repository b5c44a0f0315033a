package authenticator

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

type oidcVerifier struct {
	*oidc.Provider
	oauth2.Config
}

// NewOIDCVerifier discovers the provider at issuer and returns a verifier for
// id tokens issued to clientID.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (IDTokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}

	return &oidcVerifier{
		Provider: provider,
		Config: oauth2.Config{
			ClientID: clientID,
			Endpoint: provider.Endpoint(),
			Scopes:   []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}

func (v *oidcVerifier) VerifyIDToken(ctx context.Context, rawIDToken string) (OIDCUser, error) {
	idToken, err := v.Verifier(&oidc.Config{ClientID: v.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return OIDCUser{}, err
	}

	var claims idTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return OIDCUser{}, err
	}

	return claims.user(idToken.Subject)
}

type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// user accepts only an email the provider has verified, the address is the
// identity of the account.
func (c idTokenClaims) user(subject string) (OIDCUser, error) {
	if c.Email == "" {
		return OIDCUser{}, errors.New("no email claim in id token")
	}

	if !c.EmailVerified {
		return OIDCUser{}, errors.New("email in id token is not verified")
	}

	return OIDCUser{Subject: subject, Email: c.Email}, nil
}
