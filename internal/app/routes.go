package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tracknest/core/internal/middleware"
	"github.com/tracknest/core/internal/modules/auth"
	"github.com/tracknest/core/internal/modules/cronjob"
	"github.com/tracknest/core/internal/modules/event"
	"github.com/tracknest/core/internal/modules/gateway"
	"github.com/tracknest/core/internal/modules/stats"
	"github.com/tracknest/core/internal/modules/user"
	"github.com/tracknest/core/internal/modules/website"
	"github.com/tracknest/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	rc := a.rc
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group(apiPrefix)
	api.Use(middleware.Idempotence(rc.Raw()))

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	// Auth & account
	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api)
	user.NewHandler(user.NewService(db)).RegisterRoutes(api, authMW)

	// Websites
	website.NewHandler(website.NewService(db)).RegisterRoutes(api, authMW)

	// Ingestion (public, rate limited)
	eventSvc := event.NewService(db, rc, a.logger.Named("event"))
	event.NewHandler(eventSvc).RegisterRoutes(api, middleware.RateLimit(rc.Raw()))

	// Dashboards
	statsSvc := stats.NewService(db, rc, a.logger.Named("stats"))
	stats.NewHandler(statsSvc).RegisterRoutes(api, authMW)

	// Background jobs (operator surface)
	cronjob.NewHandler(a.sched).RegisterRoutes(api, authMW)

	// WebSocket gateway
	gateway.RegisterRoutes(r, api, a.hub)
}
