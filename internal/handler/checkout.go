package handler

import (
	"net/http"
	"path/filepath"

	"dukapos/internal/apierror"
	"dukapos/internal/dto"
	"dukapos/internal/printq"
	"dukapos/internal/receipt"
	"dukapos/internal/session"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	sess       *session.Store
	views      *view.Registry
	spooler    *printq.Spooler
	receiptDir string
}

func NewCheckoutHandler(sess *session.Store, views *view.Registry, spooler *printq.Spooler, receiptDir string) *CheckoutHandler {
	return &CheckoutHandler{sess: sess, views: views, spooler: spooler, receiptDir: receiptDir}
}

func (h *CheckoutHandler) view() *view.CheckoutView {
	branchID, _ := h.sess.AssignedBranch()
	return h.views.Checkout(branchID)
}

// Show renders the till screen: the product catalog plus the current cart.
func (h *CheckoutHandler) Show(c *gin.Context) {
	v := h.view()
	loadView(c, v)

	resp := stateEnvelope(v)
	resp["products"] = v.Products()
	resp["cart"] = v.Cart()
	resp["cart_total"] = v.CartTotal()
	c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) AddItem(c *gin.Context) {
	var req dto.CartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.view()
	if err := v.AddItem(req.ProductID, req.Quantity); err != nil {
		writeViewErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": v.Cart(), "cart_total": v.CartTotal()})
}

func (h *CheckoutHandler) SetQuantity(c *gin.Context) {
	var req dto.CartQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.view()
	if err := v.SetQuantity(req.ProductID, req.Quantity); err != nil {
		writeViewErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": v.Cart(), "cart_total": v.CartTotal()})
}

func (h *CheckoutHandler) ClearCart(c *gin.Context) {
	v := h.view()
	v.ClearCart()
	c.JSON(http.StatusOK, gin.H{"cart": v.Cart(), "cart_total": v.CartTotal()})
}

// Checkout records the sale upstream and queues the receipt for printing.
// The sale is already committed when printing fails, so spool errors are
// logged by the spooler and never fail this request.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := h.view()
	proj, err := v.Checkout(c.Request.Context(), req.PaymentMethod, req.PaymentReference)
	if err != nil {
		writeViewErr(c, err)
		return
	}
	h.spooler.Enqueue(c.Request.Context(), proj)

	resp := stateEnvelope(v)
	resp["receipt"] = proj
	c.JSON(http.StatusCreated, resp)
}

// Receipt serves the last receipt as a printable HTML page.
func (h *CheckoutHandler) Receipt(c *gin.Context) {
	proj, ok := h.view().LastReceipt()
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("no receipt available"))
		return
	}
	page, err := receipt.HTML(proj)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("receipt rendering failed"))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// ReceiptPDF renders the last receipt as a thermal-ticket PDF and serves it
// as a download.
func (h *CheckoutHandler) ReceiptPDF(c *gin.Context) {
	proj, ok := h.view().LastReceipt()
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("no receipt available"))
		return
	}
	path, err := receipt.TicketPDF(proj, h.receiptDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("receipt rendering failed"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// Reprint pushes the last receipt back onto the print spool.
func (h *CheckoutHandler) Reprint(c *gin.Context) {
	proj, ok := h.view().LastReceipt()
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("no receipt available"))
		return
	}
	if _, err := h.spooler.Enqueue(c.Request.Context(), proj); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not queue receipt for printing"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "receipt queued"})
}
