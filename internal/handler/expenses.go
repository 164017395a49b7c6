package handler

import (
	"net/http"

	"dukapos/internal/dto"
	"dukapos/internal/session"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type ExpensesHandler struct {
	sess  *session.Store
	views *view.Registry
}

func NewExpensesHandler(sess *session.Store, views *view.Registry) *ExpensesHandler {
	return &ExpensesHandler{sess: sess, views: views}
}

func (h *ExpensesHandler) view() *view.ExpensesView {
	branchID, _ := h.sess.AssignedBranch()
	return h.views.Expenses(branchID)
}

func (h *ExpensesHandler) List(c *gin.Context) {
	v := h.view()
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["expenses"] = v.Expenses()
	resp["categories"] = v.Categories()
	c.JSON(http.StatusOK, resp)
}

func (h *ExpensesHandler) Create(c *gin.Context) {
	var req dto.ExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	branchID, _ := h.sess.AssignedBranch()
	v := h.view()
	if err := v.Submit(c.Request.Context(), req.ToInput(branchID)); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["expenses"] = v.Expenses()
	c.JSON(http.StatusCreated, resp)
}

func (h *ExpensesHandler) CreateCategory(c *gin.Context) {
	var req dto.ExpenseCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.view()
	if err := v.CreateCategory(c.Request.Context(), req.ToInput()); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["categories"] = v.Categories()
	c.JSON(http.StatusCreated, resp)
}

func (h *ExpensesHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ExpenseCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.view()
	if err := v.UpdateCategory(c.Request.Context(), id, req.ToInput()); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["categories"] = v.Categories()
	c.JSON(http.StatusOK, resp)
}

func (h *ExpensesHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v := h.view()
	if err := v.DeleteCategory(c.Request.Context(), id); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["categories"] = v.Categories()
	c.JSON(http.StatusOK, resp)
}
