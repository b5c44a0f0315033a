package router

import (
	"context"
	"net/http"

	"github.com/claimex/backend/config"
	"github.com/claimex/backend/pkg/authenticator"
	"github.com/claimex/backend/pkg/logger"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

type (
	// HandlerFunc handles a request whose parameters were already bound and
	// validated into req.
	HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

	// MiddlewareFunc may return a derived context. A nil context keeps the
	// current one.
	MiddlewareFunc func(ctx context.Context) (context.Context, error)

	// CloserFunc is always called at the end of a request, whether it failed
	// or not.
	CloserFunc func(ctx context.Context)
)

type Router struct {
	mux *chi.Mux

	cfg          config.Configs
	logger       logger.Logger
	db           *gorm.DB
	tokenEngine  authenticator.TokenEngine
	sessionStore sessions.Store
	validate     *validator.Validate

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:          chi.NewRouter(),
		cfg:          cfg,
		logger:       logger,
		db:           db,
		tokenEngine:  authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
		validate:     validator.New(),
	}
}

// Branch returns a router sharing the same mux. Middlewares added to the
// branch do not affect its parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware ...MiddlewareFunc) {
	r.befores = append(r.befores, middleware...)
}

func (r *Router) After(middleware ...MiddlewareFunc) {
	r.afters = append(r.afters, middleware...)
}

func (r *Router) AddCloser(closer ...CloserFunc) {
	r.closers = append(r.closers, closer...)
}

// Use registers a net/http middleware on the underlying mux. It must be called
// before any route is added.
func (r *Router) Use(middleware ...func(http.Handler) http.Handler) {
	r.mux.Use(middleware...)
}

// Handle mounts a raw http.Handler, e.g. the metrics exporter.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// Websocket mounts a handler that takes over the connection. Before
// middlewares still run, so the handler can rely on the request user.
func (r *Router) Websocket(pattern string, handler func(ctx context.Context) error) {
	r.mux.Get(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newContext(w, req)
		defer func() { r.close(ctx) }()

		var err error
		ctx, err = r.runMiddlewares(ctx, r.befores)
		if err == nil {
			err = handler(ctx)
		}

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
		}
	})
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func (r *Router) newContext(w http.ResponseWriter, req *http.Request) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return ctx
}

func (r *Router) runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, m := range middlewares {
		newCtx, err := m(ctx)
		if err != nil {
			return ctx, err
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, nil
}

func (r *Router) close(ctx context.Context) {
	for _, closer := range r.closers {
		closer(ctx)
	}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Get(pattern, handle(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Post(pattern, handle(r, http.MethodPost, handler))
}
