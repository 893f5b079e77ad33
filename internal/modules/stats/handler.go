package stats

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tracknest/core/internal/middleware"
	"github.com/tracknest/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/stats", authMW)
	g.GET("/:websiteId/overview", h.overview)
}

// GET /stats/:websiteId/overview
func (h *Handler) overview(c *gin.Context) {
	websiteID := c.Param("websiteId")
	userID := middleware.CurrentUserID(c)

	out, err := h.svc.Overview(c.Request.Context(), websiteID, userID)
	if err != nil {
		if errors.Is(err, errNotOwner) {
			response.ForbiddenMsg(c, "Not your website")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, out)
}
