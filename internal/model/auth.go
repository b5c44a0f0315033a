package model

import (
	"net/http"
	"time"
)

// SessionIDKey is the session value naming the browser session, used to
// route session state changes to its subscribers.
const SessionIDKey = "sid"

// AccessToken is the payload signed into the access token.
type AccessToken struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignUpResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignInResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`

	cookieName string
	expiration time.Duration
	sessionID  string
}

func NewSignInResponse(
	user User, token, sessionID, cookieName string, expiration time.Duration,
) *SignInResponse {
	return &SignInResponse{
		User:        user,
		AccessToken: token,
		cookieName:  cookieName,
		expiration:  expiration,
		sessionID:   sessionID,
	}
}

func (r SignInResponse) SessionInfo() map[string]any {
	return map[string]any{r.cookieName: r.AccessToken, SessionIDKey: r.sessionID}
}

func (r SignInResponse) CookieInfo() []http.Cookie {
	return []http.Cookie{{
		Name:     r.cookieName,
		Value:    r.AccessToken,
		Path:     "/",
		MaxAge:   int(r.expiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}}
}

type SignOutRequest struct{}

type SignOutResponse struct {
	cookieName string
}

func NewSignOutResponse(cookieName string) *SignOutResponse {
	return &SignOutResponse{cookieName: cookieName}
}

// SessionInfo removes the token but keeps the session id, so subscribers of
// this browser session still get notified.
func (r SignOutResponse) SessionInfo() map[string]any {
	return map[string]any{r.cookieName: nil}
}

func (r SignOutResponse) CookieInfo() []http.Cookie {
	return []http.Cookie{{Name: r.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true}}
}

type OAuth2VerifyRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type OAuth2VerifyResponse = SignInResponse

type GetMeRequest struct{}

type GetMeResponse struct {
	User *User `json:"user"`
}

type GetAdminGateRequest struct{}

type GetAdminGateResponse struct {
	State string `json:"state"`
}
