package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/middleware"
	"github.com/claimex/backend/pkg/router"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadStorage()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadOIDC()
	s.loadFeeds()
	s.loadRepos()
	s.loadDomains()
	if err := s.authDomain.ProvisionAdmin(s.ctx); err != nil {
		return err
	}
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.Port)

	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = httpServer.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = httpServer.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	cfg := xcontext.Configs(s.ctx)
	common.RegisterMetrics(prometheus.DefaultRegisterer)

	s.router = router.New(xcontext.DB(s.ctx), cfg, xcontext.Logger(s.ctx))
	s.router.Use(middleware.AllowCors(cfg.ApiServer.AllowedOrigins))
	s.router.Before(middleware.WithStartTime(), middleware.NewAuthVerifier().Middleware())
	s.router.AddCloser(middleware.Logger(), middleware.Prometheus())
	s.router.After(middleware.HandleSaveSession(), middleware.HandleSetAccessToken())

	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Websocket("/subscribeSession", s.authDomain.SubscribeSession)

	// These following APIs are open to anonymous visitors.
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/getAirdrops", s.airdropDomain.GetList)
		router.GET(publicRouter, "/getAirdrop", s.airdropDomain.Get)
		router.GET(publicRouter, "/getAirdropStats", s.airdropDomain.GetStats)
		router.GET(publicRouter, "/getCommunityPosts", s.communityDomain.GetList)
		router.GET(publicRouter, "/getPolls", s.pollDomain.GetList)
		router.GET(publicRouter, "/getNews", s.newsDomain.GetList)
		router.GET(publicRouter, "/getLiveNews", s.newsDomain.GetLive)
		router.GET(publicRouter, "/getCryptoAssets", s.marketDomain.GetAssets)
		router.GET(publicRouter, "/getCryptoPrices", s.marketDomain.GetPrices)
		router.GET(publicRouter, "/getMe", s.authDomain.GetMe)
		router.GET(publicRouter, "/getAdminGate", s.gateDomain.Get)
		router.POST(publicRouter, "/trackClick", s.clickDomain.Track)
	}

	// Auth API
	authRouter := s.router.Branch()
	{
		router.POST(authRouter, "/signUp", s.authDomain.SignUp)
		router.POST(authRouter, "/signIn", s.authDomain.SignIn)
		router.POST(authRouter, "/signOut", s.authDomain.SignOut)
		router.POST(authRouter, "/oauth2/verify", s.authDomain.OAuth2Verify)
	}

	// These following APIs need an authenticated user.
	userRouter := s.router.Branch()
	userRouter.Before(middleware.Authenticate())
	{
		router.POST(userRouter, "/createCommunityPost", s.communityDomain.Create)
		router.POST(userRouter, "/updateCommunityPost", s.communityDomain.Update)
		router.POST(userRouter, "/deleteCommunityPost", s.communityDomain.Delete)
		router.POST(userRouter, "/votePost", s.communityDomain.Vote)
		router.POST(userRouter, "/votePoll", s.pollDomain.Vote)
	}

	// These following APIs are reserved to admins.
	adminRouter := s.router.Branch()
	adminRouter.Before(middleware.Authenticate(), middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.POST(adminRouter, "/createAirdrop", s.airdropDomain.Create)
		router.POST(adminRouter, "/updateAirdrop", s.airdropDomain.Update)
		router.POST(adminRouter, "/deleteAirdrop", s.airdropDomain.Delete)

		router.POST(adminRouter, "/createNews", s.newsDomain.Create)
		router.POST(adminRouter, "/updateNews", s.newsDomain.Update)
		router.POST(adminRouter, "/deleteNews", s.newsDomain.Delete)

		router.POST(adminRouter, "/createPoll", s.pollDomain.Create)
		router.POST(adminRouter, "/deletePoll", s.pollDomain.Delete)

		router.GET(adminRouter, "/getClickAnalytics", s.clickDomain.GetAnalytics)
		router.GET(adminRouter, "/getAdminStats", s.clickDomain.GetAdminStats)
	}
}
