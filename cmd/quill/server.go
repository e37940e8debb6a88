package main

import (
	"fmt"

	"codeberg.org/llamaquill/quill/api/web"
	"codeberg.org/llamaquill/quill/internal/blog"
	"codeberg.org/llamaquill/quill/internal/config"
	apperrors "codeberg.org/llamaquill/quill/internal/errors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
)

// holds the shared pieces behind both HTTP surfaces
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	service  *blog.Service
	gate     *blog.Gate
	defaults blog.Settings
	page     *web.Page
	rate     limiter.Rate
}

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit: %w", err)
	}

	apperrors.SetProduction(cfg.IsProduction())

	service := blog.NewService(cfg.Provider, blog.ProviderFactory(cfg.Provider, cfg.APIKey))
	gate := blog.NewGate()
	defaults := blog.DefaultSettings(cfg.Models, cfg.Endpoint)

	page, err := web.NewPage(service, gate, cfg.Models, defaults)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:      cfg,
		router:   gin.New(),
		service:  service,
		gate:     gate,
		defaults: defaults,
		page:     page,
		rate:     rate,
	}

	RegisterRoutes(srv.router, srv)

	return srv, nil
}
