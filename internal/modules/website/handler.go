package website

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tracknest/core/internal/middleware"
	"github.com/tracknest/core/internal/models"
	"github.com/tracknest/core/internal/pkg/pagination"
	"github.com/tracknest/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/websites", authMW)
	g.POST("/create", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
}

// POST /websites/create
func (h *Handler) create(c *gin.Context) {
	var dto CreateWebsiteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	site, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errWebsiteExists) {
			response.Conflict(c, "Website already exists")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, site)
}

// GET /websites
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	query := h.svc.ListQuery(c.Request.Context(), middleware.CurrentUserID(c))

	var sites []models.WebsiteModel
	page, err := pagination.Paginate(query, q, &sites)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, sites, page)
}

// GET /websites/:id
func (h *Handler) get(c *gin.Context) {
	site, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, site)
}
