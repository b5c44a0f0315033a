package domain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/claimex/backend/internal/domain/session"
	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/pkg/authenticator"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/ws"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type AuthDomain interface {
	SignUp(context.Context, *model.SignUpRequest) (*model.SignUpResponse, error)
	SignIn(context.Context, *model.SignInRequest) (*model.SignInResponse, error)
	SignOut(context.Context, *model.SignOutRequest) (*model.SignOutResponse, error)
	OAuth2Verify(context.Context, *model.OAuth2VerifyRequest) (*model.OAuth2VerifyResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	SubscribeSession(context.Context) error

	// ProvisionAdmin makes sure the configured admin email belongs to an
	// admin account whose password is the configured one.
	ProvisionAdmin(context.Context) error
}

type authDomain struct {
	userRepo repository.UserRepository
	hub      *session.Hub
	oidc     authenticator.IDTokenVerifier
	upgrader websocket.Upgrader
}

// NewAuthDomain accepts a nil oidc verifier, in which case OAuth2Verify is
// unavailable.
func NewAuthDomain(
	userRepo repository.UserRepository,
	hub *session.Hub,
	oidc authenticator.IDTokenVerifier,
	allowedOrigins []string,
) AuthDomain {
	return &authDomain{
		userRepo: userRepo,
		hub:      hub,
		oidc:     oidc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

func (d *authDomain) SignUp(
	ctx context.Context, req *model.SignUpRequest,
) (*model.SignUpResponse, error) {
	email := strings.TrimSpace(req.Email)
	if isReservedEmail(ctx, email) {
		return nil, errorx.New(errorx.PermissionDenied, "This email is reserved")
	}

	_, err := d.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:     entity.Base{ID: uuid.NewString()},
		Email:    email,
		Password: string(hashed),
		Role:     entity.UserRole,
	}
	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	token, err := generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.SignUpResponse{User: model.ConvertUser(user), AccessToken: token}, nil
}

func (d *authDomain) ProvisionAdmin(ctx context.Context) error {
	cfg := xcontext.Configs(ctx).Auth
	if cfg.AdminEmail == "" {
		return nil
	}

	if cfg.AdminPassword == "" {
		xcontext.Logger(ctx).Warnf("No admin password is configured, %s cannot sign in with a password", cfg.AdminEmail)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := d.userRepo.GetByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return d.userRepo.Create(ctx, &entity.User{
			Base:     entity.Base{ID: uuid.NewString()},
			Email:    cfg.AdminEmail,
			Password: string(hashed),
			Role:     entity.AdminRole,
		})
	}

	// Whoever held the address before loses its password.
	return d.userRepo.UpdateByID(ctx, user.ID, map[string]any{
		"password": string(hashed),
		"role":     entity.AdminRole,
	})
}

func (d *authDomain) SignIn(
	ctx context.Context, req *model.SignInRequest,
) (*model.SignInResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidCredential, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if user.Password == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errorx.New(errorx.InvalidCredential, "Invalid email or password")
	}

	return d.startSession(ctx, user)
}

func (d *authDomain) SignOut(
	ctx context.Context, req *model.SignOutRequest,
) (*model.SignOutResponse, error) {
	if sid := sessionID(ctx); sid != "" {
		d.hub.Publish(sid, session.State{})
	}

	return model.NewSignOutResponse(xcontext.Configs(ctx).Auth.AccessToken.Name), nil
}

// OAuth2Verify signs in the owner of an OpenID Connect id token, registering
// it on first use.
func (d *authDomain) OAuth2Verify(
	ctx context.Context, req *model.OAuth2VerifyRequest,
) (*model.OAuth2VerifyResponse, error) {
	if d.oidc == nil {
		return nil, errorx.New(errorx.Unavailable, "OAuth2 is not configured")
	}

	oidcUser, err := d.oidc.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify id token: %v", err)
		return nil, errorx.New(errorx.InvalidCredential, "Invalid id token")
	}

	user, err := d.userRepo.GetByEmail(ctx, oidcUser.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
			return nil, errorx.Unknown
		}

		user = &entity.User{
			Base:  entity.Base{ID: uuid.NewString()},
			Email: oidcUser.Email,
			Role:  entity.UserRole,
		}
		if err := d.userRepo.Create(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}
	}

	return d.startSession(ctx, user)
}

func (d *authDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	return &model.GetMeResponse{User: user}, nil
}

// SubscribeSession streams the session state of the browser to a websocket
// until the peer goes away.
func (d *authDomain) SubscribeSession(ctx context.Context) error {
	w := xcontext.HTTPWriter(ctx)
	req := xcontext.HTTPRequest(ctx)

	store := xcontext.SessionStore(ctx)
	s, err := store.Get(req, xcontext.Configs(ctx).Session.Name)
	if s == nil {
		xcontext.Logger(ctx).Errorf("Cannot get the session: %v", err)
		return errorx.Unknown
	}
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode the session, start a new one: %v", err)
	}

	sid, _ := s.Values[model.SessionIDKey].(string)
	if sid == "" {
		sid = uuid.NewString()
		s.Values[model.SessionIDKey] = sid
		if err := s.Save(req, w); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save the session: %v", err)
			return errorx.Unknown
		}
	}

	// The session cookie must go with the handshake response.
	header := http.Header{}
	if cookies := w.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header["Set-Cookie"] = cookies
	}

	conn, err := d.upgrader.Upgrade(w, req, header)
	if err != nil {
		// The upgrader already replied to the client.
		xcontext.Logger(ctx).Debugf("Cannot upgrade connection: %v", err)
		return nil
	}

	client := ws.NewClient(conn)
	defer client.Close()

	states, unsubscribe := d.hub.Subscribe(sid)
	defer unsubscribe()

	if _, ok := d.hub.Current(sid); !ok {
		user, err := d.currentUser(ctx)
		if err != nil {
			return nil
		}

		if err := d.send(client, session.State{User: user}); err != nil {
			return nil
		}
	}

	for {
		select {
		case state, ok := <-states:
			if !ok {
				return nil
			}

			if err := d.send(client, state); err != nil {
				return nil
			}

		case _, ok := <-client.R:
			if !ok {
				return nil
			}

		case <-client.Done():
			return nil

		case <-ctx.Done():
			return nil
		}
	}
}

// isReservedEmail reports whether email grants admin rights by itself, such
// an account is never created on request.
func isReservedEmail(ctx context.Context, email string) bool {
	adminEmail := xcontext.Configs(ctx).Auth.AdminEmail
	return adminEmail != "" && email == adminEmail
}

func (d *authDomain) send(client *ws.Client, state session.State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return client.Write(b)
}

func (d *authDomain) startSession(ctx context.Context, user *entity.User) (*model.SignInResponse, error) {
	token, err := generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	sid := sessionID(ctx)
	if sid == "" {
		sid = uuid.NewString()
	}

	converted := model.ConvertUser(user)
	d.hub.Publish(sid, session.State{User: &converted})

	cfg := xcontext.Configs(ctx).Auth.AccessToken
	return model.NewSignInResponse(converted, token, sid, cfg.Name, cfg.Expiration), nil
}

func (d *authDomain) currentUser(ctx context.Context) (*model.User, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, nil
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	converted := model.ConvertUser(user)
	return &converted, nil
}

func generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	token, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{ID: user.ID, Email: user.Email, Role: user.Role},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", errorx.Unknown
	}

	return token, nil
}

// sessionID returns the id of the browser session, empty if it has none yet.
func sessionID(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	store := xcontext.SessionStore(ctx)
	if req == nil || store == nil {
		return ""
	}

	s, err := store.Get(req, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return ""
	}

	sid, _ := s.Values[model.SessionIDKey].(string)
	return sid
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 || slices.Contains(allowed, "*") {
			return true
		}

		return slices.Contains(allowed, origin)
	}
}
