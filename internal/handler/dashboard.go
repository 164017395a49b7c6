package handler

import (
	"net/http"

	"dukapos/internal/session"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	sess  *session.Store
	views *view.Registry
}

func NewDashboardHandler(sess *session.Store, views *view.Registry) *DashboardHandler {
	return &DashboardHandler{sess: sess, views: views}
}

// Show renders the statistics cards. stats_source tells the UI whether the
// figures came from the server endpoint or the degraded local recomputation,
// so the fallback is always labeled.
func (h *DashboardHandler) Show(c *gin.Context) {
	branchID, _ := h.sess.AssignedBranch()
	v := h.views.Dashboard(branchID)
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["stats"] = v.Stats()
	resp["stats_source"] = v.Mode().String()
	c.JSON(http.StatusOK, resp)
}
