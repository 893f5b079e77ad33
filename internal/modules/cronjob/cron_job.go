package cronjob

import (
	"context"

	"github.com/gin-gonic/gin"
	pkgcron "github.com/tracknest/core/internal/pkg/cron"
	"github.com/tracknest/core/internal/pkg/response"
)

// Handler wraps the scheduler for HTTP access: operators can inspect the
// registered jobs, trigger one by hand and poll its outcome.
type Handler struct {
	sched *pkgcron.Scheduler
}

func NewHandler(sched *pkgcron.Scheduler) *Handler {
	return &Handler{sched: sched}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/cron", authMW)
	g.GET("", h.list)
	g.GET("/:name", h.get)
	g.POST("/:name/run", h.run)
}

// GET /cron — list all jobs
func (h *Handler) list(c *gin.Context) {
	response.OK(c, h.sched.List())
}

// GET /cron/:name — single job status
func (h *Handler) get(c *gin.Context) {
	result, err := h.sched.GetTask(c.Param("name"))
	if err != nil {
		response.NotFoundMsg(c, "Job not found")
		return
	}
	response.OK(c, result)
}

// POST /cron/:name/run — manually trigger a job
func (h *Handler) run(c *gin.Context) {
	// The job outlives the request, so it must not inherit the request
	// context: gin cancels that the moment the response is written.
	if err := h.sched.Run(context.Background(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, "Job not found")
		return
	}
	response.OK(c, gin.H{"message": "job triggered"})
}
