package handler

import (
	"net/http"

	"dukapos/internal/dto"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type TransfersHandler struct {
	views *view.Registry
}

func NewTransfersHandler(views *view.Registry) *TransfersHandler {
	return &TransfersHandler{views: views}
}

func (h *TransfersHandler) List(c *gin.Context) {
	v := h.views.Transfers()
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["transfers"] = v.Transfers()
	resp["pending"] = v.Pending()
	resp["products"] = v.Products()
	c.JSON(http.StatusOK, resp)
}

func (h *TransfersHandler) Create(c *gin.Context) {
	var req dto.TransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.views.Transfers()
	if err := v.Submit(c.Request.Context(), req.ToInput()); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["transfers"] = v.Transfers()
	resp["pending"] = v.Pending()
	c.JSON(http.StatusCreated, resp)
}

func (h *TransfersHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v := h.views.Transfers()
	if err := v.Approve(c.Request.Context(), id); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["transfers"] = v.Transfers()
	resp["pending"] = v.Pending()
	c.JSON(http.StatusOK, resp)
}

func (h *TransfersHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.RejectTransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.views.Transfers()
	if err := v.Reject(c.Request.Context(), id, req.Reason); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["transfers"] = v.Transfers()
	resp["pending"] = v.Pending()
	c.JSON(http.StatusOK, resp)
}
