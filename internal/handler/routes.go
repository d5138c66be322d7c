package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartbudget/smartbudget-backend/internal/middleware"
)

// Handlers bundles all HTTP handlers for route registration
type Handlers struct {
	Auth        *AuthHandler
	Wallet      *WalletHandler
	Category    *CategoryHandler
	Budget      *BudgetHandler
	Transaction *TransactionHandler
	Receipt     *ReceiptHandler
	Report      *ReportHandler
	Dashboard   *DashboardHandler
	WebSocket   *WebSocketHandler
}

// RegisterRoutes wires all endpoints onto the Echo instance. Everything
// under /api except the auth endpoints requires a valid bearer token; the
// auth endpoints are rate limited per IP instead.
func RegisterRoutes(e *echo.Echo, h *Handlers, validator middleware.TokenValidator, limiter *middleware.RateLimiter) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/ws", h.WebSocket.HandleWS)

	api := e.Group("/api")

	authGroup := api.Group("/Auth", middleware.RateLimitMiddleware(limiter))
	authGroup.POST("/Register", h.Auth.Register)
	authGroup.POST("/Login", h.Auth.Login)

	protected := api.Group("", middleware.JWTAuth(validator))
	protected.GET("/Auth/Me", h.Auth.Me)

	wallets := protected.Group("/Wallets")
	wallets.POST("/Add", h.Wallet.Add)
	wallets.GET("/GetAll", h.Wallet.GetAll)
	wallets.GET("/GetById/:id", h.Wallet.GetByID)
	wallets.PUT("/Update/:id", h.Wallet.Update)
	wallets.DELETE("/Delete/:id", h.Wallet.Delete)

	categories := protected.Group("/Categories")
	categories.POST("/Add", h.Category.Add)
	categories.GET("/GetAll", h.Category.GetAll)
	categories.GET("/GetById/:id", h.Category.GetByID)
	categories.PUT("/Update/:id", h.Category.Update)
	categories.DELETE("/Delete/:id", h.Category.Delete)

	budgets := protected.Group("/Budgets")
	budgets.POST("/Add", h.Budget.Add)
	budgets.GET("/GetAll", h.Budget.GetAll)
	budgets.GET("/GetById/:id", h.Budget.GetByID)
	budgets.GET("/GetProgress/:id", h.Budget.GetProgress)
	budgets.PUT("/Update/:id", h.Budget.Update)
	budgets.DELETE("/Delete/:id", h.Budget.Delete)

	transactions := protected.Group("/Transactions")
	transactions.POST("/Add", h.Transaction.Add)
	transactions.GET("/GetAll", h.Transaction.GetAll)
	transactions.GET("/GetById/:id", h.Transaction.GetByID)
	transactions.GET("/GetByWalletId/:id", h.Transaction.GetByWalletID)
	transactions.PUT("/Update/:id", h.Transaction.Update)
	transactions.DELETE("/Delete/:id", h.Transaction.Delete)
	transactions.POST("/:id/Receipt", h.Receipt.Upload)
	transactions.GET("/:id/Receipt", h.Receipt.GetURL)
	transactions.DELETE("/:id/Receipt", h.Receipt.Delete)

	reports := protected.Group("/Report")
	reports.POST("/Add", h.Report.Add)
	reports.GET("/GetByUserId/:id", h.Report.GetByUserID)
	reports.GET("/GetById/:id", h.Report.GetByID)
	reports.PUT("/Update/:id", h.Report.Update)
	reports.DELETE("/Delete/:id", h.Report.Delete)

	protected.GET("/Dashboard/Summary", h.Dashboard.GetSummary)
}
