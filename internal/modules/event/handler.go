package event

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tracknest/core/internal/pkg/response"
	"github.com/tracknest/core/public"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public collector endpoints. They carry no auth
// middleware on purpose: the tracker script runs on third-party pages.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	g := rg.Group("/events", rateLimit)
	g.POST("/track", h.track)
	g.GET("/tracknest.js", h.script)
}

// POST /events/track
func (h *Handler) track(c *gin.Context) {
	var dto TrackEventDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ua := dto.UserAgent
	if ua == "" {
		ua = c.Request.UserAgent()
	}
	ip := NormalizeIP(c.ClientIP())

	ev, err := h.svc.Track(c.Request.Context(), &dto, ip, ua)
	if err != nil {
		writeTrackError(c, err)
		return
	}
	response.Created(c, ev)
}

// writeTrackError maps ingestion failures onto the public collector contract.
func writeTrackError(c *gin.Context, err error) {
	if errors.Is(err, errUnregisteredWebsite) {
		response.ForbiddenMsg(c, "Unregistered website/domain")
		return
	}
	response.InternalError(c, err)
}

// GET /events/tracknest.js
func (h *Handler) script(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", public.TrackerScript)
}
