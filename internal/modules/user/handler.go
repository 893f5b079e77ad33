package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tracknest/core/internal/middleware"
	"github.com/tracknest/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/user", authMW)
	g.GET("/me", h.me)
	g.PATCH("/password", h.updatePassword)
}

// GET /user/me
func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.Info(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errAccountNotFound) {
			response.Forbidden(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}

// PATCH /user/password
func (h *Handler) updatePassword(c *gin.Context) {
	var dto UpdatePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.svc.UpdatePassword(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	switch {
	case errors.Is(err, errSamePassword):
		response.Conflict(c, "New password must differ from the current one")
	case errors.Is(err, errWrongPassword):
		response.Unauthorized(c)
	case errors.Is(err, errAccountNotFound):
		response.Forbidden(c)
	case err != nil:
		response.InternalError(c, err)
	default:
		response.NoContent(c)
	}
}
