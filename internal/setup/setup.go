package setup

import (
	"time"

	"github.com/itchan-dev/tgchan/internal/apiclient"
	"github.com/itchan-dev/tgchan/internal/fetcher"
	"github.com/itchan-dev/tgchan/internal/handler"
	"github.com/itchan-dev/tgchan/internal/miniapp"
	"github.com/itchan-dev/tgchan/shared/config"
	"github.com/itchan-dev/tgchan/shared/httpclient"
	"github.com/itchan-dev/tgchan/shared/jwt"
	mw "github.com/itchan-dev/tgchan/shared/middleware"
	"github.com/itchan-dev/tgchan/shared/middleware/ratelimiter"
)

const rateLimitExpiration = time.Hour

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Client         *apiclient.Client
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
	RateLimiter    *ratelimiter.Limiter
}

// NewClient builds the upstream data path shared by the server and the CLI.
func NewClient(cfg *config.Config) *apiclient.Client {
	proxies := make([]fetcher.Proxy, 0, len(cfg.Public.Proxies))
	for _, p := range cfg.Public.Proxies {
		proxies = append(proxies, fetcher.Proxy{Name: p.Name, Template: p.Template})
	}
	f := fetcher.New(httpclient.New(), fetcher.Config{
		Proxies:        proxies,
		AttemptTimeout: cfg.Public.Upstream.AttemptTimeout,
		UserAgent:      cfg.Public.Upstream.UserAgent,
	})
	return apiclient.New(cfg.Public.Upstream.BaseURL, f)
}

// SetupDependencies initializes all dependencies required for the server.
func SetupDependencies(cfg *config.Config) *Dependencies {
	client := NewClient(cfg)
	jwtSvc := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	host := miniapp.NewHost(cfg.BotToken(), cfg.Public.Session.InitDataMaxAge, cfg.Public.DevMode)

	return &Dependencies{
		Config:         cfg,
		Client:         client,
		Handler:        handler.New(client, client, host, jwtSvc, cfg),
		Jwt:            jwtSvc,
		AuthMiddleware: mw.NewAuth(jwtSvc, cfg.Public.Server.SecureCookies),
		RateLimiter:    ratelimiter.New(cfg.Public.RateLimit.RPS, cfg.Public.RateLimit.Burst, rateLimitExpiration),
	}
}

// Close releases background resources.
func (d *Dependencies) Close() {
	d.RateLimiter.Stop()
}
