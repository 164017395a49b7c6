package handler

import (
	"net/http"

	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type BatchesHandler struct {
	views *view.Registry
}

func NewBatchesHandler(views *view.Registry) *BatchesHandler {
	return &BatchesHandler{views: views}
}

func (h *BatchesHandler) List(c *gin.Context) {
	v := h.views.Batches()
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["batches"] = v.Batches()
	resp["statistics"] = v.Stats()
	c.JSON(http.StatusOK, resp)
}

func (h *BatchesHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	batch, err := h.views.Batches().Detail(c.Request.Context(), id)
	if err != nil {
		writeViewErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch})
}
