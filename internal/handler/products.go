package handler

import (
	"net/http"

	"dukapos/internal/dto"
	"dukapos/internal/session"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct {
	sess  *session.Store
	views *view.Registry
}

func NewProductsHandler(sess *session.Store, views *view.Registry) *ProductsHandler {
	return &ProductsHandler{sess: sess, views: views}
}

func (h *ProductsHandler) view() *view.ProductsView {
	branchID, _ := h.sess.AssignedBranch()
	return h.views.Products(branchID)
}

func (h *ProductsHandler) List(c *gin.Context) {
	v := h.view()
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["products"] = v.Products()
	resp["branches"] = v.Branches()
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// New products default to the operator's branch unless the form says
	// otherwise (superusers can stock any branch).
	if req.BranchID == uuid.Nil {
		req.BranchID, _ = h.sess.AssignedBranch()
	}
	v := h.view()
	if err := v.Create(c.Request.Context(), req.ToInput()); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["products"] = v.Products()
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.BranchID == uuid.Nil {
		req.BranchID, _ = h.sess.AssignedBranch()
	}
	v := h.view()
	if err := v.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["products"] = v.Products()
	c.JSON(http.StatusOK, resp)
}
