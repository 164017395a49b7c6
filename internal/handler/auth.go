package handler

import (
	"net/http"

	"dukapos/internal/access"
	"dukapos/internal/apierror"
	"dukapos/internal/dto"
	"dukapos/internal/session"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sess  *session.Store
	views *view.Registry
}

func NewAuthHandler(sess *session.Store, views *view.Registry) *AuthHandler {
	return &AuthHandler{sess: sess, views: views}
}

// Login signs an operator in on this terminal. Any failure, including an
// unrecognized role or a storage write error, leaves the terminal signed out.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.sess.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		e := apierror.From(err)
		if e.Kind == apierror.KindUpstream {
			c.JSON(http.StatusUnauthorized, apierror.New(e.Detail))
			return
		}
		writeViewErr(c, err)
		return
	}

	h.views.Reset()
	h.writeSession(c)
}

// Session reports the signed-in operator and their navigation menu.
func (h *AuthHandler) Session(c *gin.Context) {
	if !h.sess.Authenticated() {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	h.writeSession(c)
}

// Refresh exchanges the current token for a fresh one.
func (h *AuthHandler) Refresh(c *gin.Context) {
	if err := h.sess.Refresh(c.Request.Context()); err != nil {
		writeViewErr(c, err)
		return
	}
	h.writeSession(c)
}

// Logout clears the terminal session. The central API is notified best
// effort; the terminal is signed out regardless.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sess.Logout(c.Request.Context()); err != nil {
		writeViewErr(c, err)
		return
	}
	h.views.Reset()
	c.JSON(http.StatusOK, gin.H{"detail": "signed out"})
}

func (h *AuthHandler) writeSession(c *gin.Context) {
	id, _ := h.sess.Identity()
	c.JSON(http.StatusOK, gin.H{
		"user": id,
		"menu": access.Menu(id.Role),
	})
}
