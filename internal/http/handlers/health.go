package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/steveyiyo/speechcoach-backend/pkg/types"
)

type HealthHandler struct {
	Configured bool
}

func NewHealthHandler(configured bool) *HealthHandler {
	return &HealthHandler{Configured: configured}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResp{Status: "ok", APIKeyConfigured: h.Configured})
}

// NotFound and MethodNotAllowed keep unmatched routes on the JSON envelope.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.ErrorResp{Error: "Not found"})
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, types.ErrorResp{Error: "Method not allowed"})
}
