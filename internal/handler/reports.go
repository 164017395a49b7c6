package handler

import (
	"net/http"

	"dukapos/internal/apierror"
	"dukapos/internal/receipt"
	"dukapos/internal/session"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	sess  *session.Store
	views *view.Registry
}

func NewReportsHandler(sess *session.Store, views *view.Registry) *ReportsHandler {
	return &ReportsHandler{sess: sess, views: views}
}

func (h *ReportsHandler) view() *view.ReportsView {
	branchID, _ := h.sess.AssignedBranch()
	return h.views.Reports(branchID)
}

func (h *ReportsHandler) Show(c *gin.Context) {
	v := h.view()
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["rows"] = v.Rows()
	c.JSON(http.StatusOK, resp)
}

// Export streams the sales workbook. Loads first when the view was never
// opened so a direct download still carries data.
func (h *ReportsHandler) Export(c *gin.Context) {
	v := h.view()
	if v.Phase() != view.PhaseReady {
		v.Load(c.Request.Context())
	}
	if v.Phase() != view.PhaseReady {
		writeViewErr(c, v.Err())
		return
	}

	f, err := receipt.SalesWorkbook(v.Sales())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("report generation failed"))
		return
	}
	defer f.Close()

	rows := v.Rows()
	from, to := "", ""
	if n := len(rows); n > 0 {
		// rows are sorted newest first
		from, to = rows[n-1].Date, rows[0].Date
	}

	c.Header("Content-Disposition", `attachment; filename="`+receipt.ReportFilename(from, to)+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if _, err := f.WriteTo(c.Writer); err != nil {
		c.Error(err)
	}
}
