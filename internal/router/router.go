// Package router wires the gateway's HTTP routes. Role allow-lists live here
// in one place: cashiers see the till and their branch figures, managers add
// inventory screens, superusers add user and branch administration.
package router

import (
	"time"

	"dukapos/internal/access"
	"dukapos/internal/config"
	"dukapos/internal/handler"
	"dukapos/internal/middleware"
	"dukapos/internal/printq"
	"dukapos/internal/session"
	"dukapos/internal/upstream"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
)

func New(cfg *config.Config, sess *session.Store, client *upstream.Client, views *view.Registry, spooler *printq.Spooler) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS())

	health := handler.NewHealthHandler(client, cfg.StorageBackend)
	auth := handler.NewAuthHandler(sess, views)
	dashboard := handler.NewDashboardHandler(sess, views)
	checkout := handler.NewCheckoutHandler(sess, views, spooler, cfg.ReceiptDir)
	sales := handler.NewSalesHandler(sess, views)
	expenses := handler.NewExpensesHandler(sess, views)
	products := handler.NewProductsHandler(sess, views)
	batches := handler.NewBatchesHandler(views)
	transfers := handler.NewTransfersHandler(views)
	reports := handler.NewReportsHandler(sess, views)
	users := handler.NewUsersHandler(views)
	branches := handler.NewBranchesHandler(views)

	r.GET("/health", health.Check)

	v1 := r.Group("/v1")

	v1.POST("/auth/login", middleware.LoginRateLimiter(5, time.Minute), auth.Login)
	v1.GET("/auth/session", auth.Session)

	authed := v1.Group("", middleware.SessionRequired(sess))
	authed.POST("/auth/logout", auth.Logout)
	authed.POST("/auth/refresh", auth.Refresh)

	// Screens every role gets
	all := authed.Group("", middleware.RequireRole(sess, access.RoleSuperuser, access.RoleManager, access.RoleCashier))
	all.GET("/dashboard", dashboard.Show)

	all.GET("/checkout", checkout.Show)
	all.POST("/checkout/cart/items", checkout.AddItem)
	all.PUT("/checkout/cart/items", checkout.SetQuantity)
	all.DELETE("/checkout/cart", checkout.ClearCart)
	all.POST("/checkout", checkout.Checkout)
	all.GET("/checkout/receipt", checkout.Receipt)
	all.GET("/checkout/receipt.pdf", checkout.ReceiptPDF)
	all.POST("/checkout/receipt/print", checkout.Reprint)

	all.GET("/sales", sales.List)
	all.POST("/sales/:id/refund", sales.Refund)

	all.GET("/expenses", expenses.List)
	all.POST("/expenses", expenses.Create)

	// Manager screens
	mgr := authed.Group("", middleware.RequireRole(sess, access.RoleSuperuser, access.RoleManager))
	mgr.POST("/expense-categories", expenses.CreateCategory)
	mgr.PUT("/expense-categories/:id", expenses.UpdateCategory)
	mgr.DELETE("/expense-categories/:id", expenses.DeleteCategory)

	mgr.GET("/products", products.List)
	mgr.POST("/products", products.Create)
	mgr.PUT("/products/:id", products.Update)

	mgr.GET("/batches", batches.List)
	mgr.GET("/batches/:id", batches.Detail)

	mgr.GET("/transfers", transfers.List)
	mgr.POST("/transfers", transfers.Create)
	mgr.POST("/transfers/:id/approve", transfers.Approve)
	mgr.POST("/transfers/:id/reject", transfers.Reject)

	mgr.GET("/reports", reports.Show)
	mgr.GET("/reports/export", reports.Export)

	// Superuser administration
	su := authed.Group("", middleware.RequireRole(sess, access.RoleSuperuser))
	su.GET("/users", users.List)
	su.POST("/users/:id/approve", users.Approve)
	su.POST("/users/:id/reject", users.Reject)
	su.PUT("/users/:id", users.Update)

	su.GET("/locations", branches.List)
	su.POST("/locations", branches.Create)
	su.PUT("/locations/:id", branches.Update)

	return r
}
