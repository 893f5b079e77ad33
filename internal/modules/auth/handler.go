package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tracknest/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/signup", h.signup)
	g.POST("/signin", h.signin)
}

// POST /auth/signup
func (h *Handler) signup(c *gin.Context) {
	var dto SignupDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.svc.Signup(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errCredentialsTaken) {
			response.ForbiddenMsg(c, "Credentials taken")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, token)
}

// POST /auth/signin
func (h *Handler) signin(c *gin.Context) {
	var dto SigninDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.svc.Signin(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errIncorrectCredentials) {
			response.ForbiddenMsg(c, "Incorrect credentials")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, token)
}
