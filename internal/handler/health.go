package handler

import (
	"net/http"

	"dukapos/internal/upstream"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	client  *upstream.Client
	storage string
}

func NewHealthHandler(client *upstream.Client, storageBackend string) *HealthHandler {
	return &HealthHandler{client: client, storage: storageBackend}
}

// Check reports gateway liveness and the circuit state toward the central
// API. The gateway itself is healthy even when the central API is not.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"central_api": h.client.BreakerState().String(),
		"storage":     h.storage,
	})
}
