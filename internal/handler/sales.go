package handler

import (
	"net/http"

	"dukapos/internal/session"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	sess  *session.Store
	views *view.Registry
}

func NewSalesHandler(sess *session.Store, views *view.Registry) *SalesHandler {
	return &SalesHandler{sess: sess, views: views}
}

func (h *SalesHandler) List(c *gin.Context) {
	branchID, _ := h.sess.AssignedBranch()
	v := h.views.Sales(branchID)
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["sales"] = v.Sales()
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) Refund(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	branchID, _ := h.sess.AssignedBranch()
	if err := h.views.Sales(branchID).Refund(c.Request.Context(), id); err != nil {
		writeViewErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "refund recorded"})
}
