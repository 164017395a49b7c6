package handler

import (
	"net/http"

	"dukapos/internal/dto"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type BranchesHandler struct {
	views *view.Registry
}

func NewBranchesHandler(views *view.Registry) *BranchesHandler {
	return &BranchesHandler{views: views}
}

func (h *BranchesHandler) List(c *gin.Context) {
	v := h.views.Branches()
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["branches"] = v.Branches()
	c.JSON(http.StatusOK, resp)
}

func (h *BranchesHandler) Create(c *gin.Context) {
	var req dto.BranchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.views.Branches()
	if err := v.Create(c.Request.Context(), req.ToInput()); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["branches"] = v.Branches()
	c.JSON(http.StatusCreated, resp)
}

func (h *BranchesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.BranchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.views.Branches()
	if err := v.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["branches"] = v.Branches()
	c.JSON(http.StatusOK, resp)
}
