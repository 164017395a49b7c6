package handler

import (
	"net/http"

	"dukapos/internal/dto"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	views *view.Registry
}

func NewUsersHandler(views *view.Registry) *UsersHandler {
	return &UsersHandler{views: views}
}

func (h *UsersHandler) List(c *gin.Context) {
	v := h.views.Users()
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["users"] = v.Users()
	resp["branches"] = v.Branches()
	c.JSON(http.StatusOK, resp)
}

func (h *UsersHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v := h.views.Users()
	if err := v.Approve(c.Request.Context(), id); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["users"] = v.Users()
	c.JSON(http.StatusOK, resp)
}

func (h *UsersHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v := h.views.Users()
	if err := v.Reject(c.Request.Context(), id); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["users"] = v.Users()
	c.JSON(http.StatusOK, resp)
}

func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UserUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.views.Users()
	if err := v.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		writeViewErr(c, err)
		return
	}
	resp := stateEnvelope(v)
	resp["users"] = v.Users()
	c.JSON(http.StatusOK, resp)
}
