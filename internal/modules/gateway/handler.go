package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts socket.io and the connection-stats endpoint.
func RegisterRoutes(r *gin.Engine, rg *gin.RouterGroup, hub *Hub) {
	handler := gin.WrapH(hub.Handler())
	r.Any("/socket.io", handler)
	r.Any("/socket.io/*any", handler)

	rg.GET("/gateway/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"total": hub.ClientCount(""),
		})
	})
}
