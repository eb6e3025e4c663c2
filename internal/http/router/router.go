package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/ignatzorin/freelance-lifecycle/internal/config"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/http/middleware"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/handler"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/validation"
)

// Handlers собирает все HTTP хэндлеры приложения.
type Handlers struct {
	Health    *handler.HealthHandler
	Jobs      *handler.JobHandler
	Proposals *handler.ProposalHandler
	Orders    *handler.OrderHandler
	Disputes  *handler.DisputeHandler
	Messages  *handler.MessageHandler
	Wallet    *handler.WalletHandler
	Admin     *handler.AdminHandler
	WS        *handler.WSHandler
}

func SetupRouter(cfg *config.Config, h Handlers, auth middleware.Authenticator, rateStore limiter.Store) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.RegisterBindingValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestLogger(), middleware.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperror.New(apperror.ErrCodeNotFound, "маршрут не найден"))
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, apperror.New(apperror.ErrCodeMethodNotAllowed, "метод не поддерживается"))
	})

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(rateStore, cfg.RateLimitLimit, cfg.RateLimitPeriod))

	// Сокет сам проверяет токен из query.
	api.GET("/ws", h.WS.Handle)

	id := middleware.UUIDValidator("id")

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(auth))
	{
		protected.GET("/jobs", h.Jobs.ListOpenJobs)
		protected.POST("/jobs", h.Jobs.CreateJob)
		protected.GET("/jobs/my", h.Jobs.ListMyJobs)
		protected.GET("/jobs/:id", id, h.Jobs.GetJob)
		protected.PUT("/jobs/:id", id, h.Jobs.EditJob)
		protected.POST("/jobs/:id/cancel", id, h.Jobs.CancelJob)
		protected.POST("/jobs/:id/proposals", id, h.Proposals.Submit)
		protected.GET("/jobs/:id/proposals", id, h.Proposals.ListForJob)
		protected.POST("/jobs/:id/messages", id, h.Messages.Send)
		protected.GET("/jobs/:id/messages", id, h.Messages.List)

		protected.GET("/proposals/my", h.Proposals.ListMy)
		protected.POST("/proposals/:id/accept", id, h.Proposals.Accept)
		protected.POST("/proposals/:id/reject", id, h.Proposals.Reject)

		protected.GET("/orders", h.Orders.ListOrders)
		protected.GET("/orders/:id", id, h.Orders.GetOrder)
		protected.POST("/orders/:id/deliver", id, h.Orders.Deliver)
		protected.POST("/orders/:id/review", id, h.Orders.Review)
		protected.PATCH("/orders/:id/status", id, h.Orders.UpdateStatus)
		protected.POST("/orders/:id/disputes", id, h.Disputes.Open)

		protected.GET("/disputes/:id", id, h.Disputes.Get)

		protected.GET("/wallet", h.Wallet.GetWallet)
		protected.GET("/wallet/transactions", h.Wallet.ListTransactions)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(auth), middleware.RequireRole(valueobject.RoleAdmin))
	{
		admin.GET("/stats", h.Admin.Stats)

		admin.GET("/skills", h.Admin.ListSkills)
		admin.PUT("/skills/:name", h.Admin.RenameSkill)
		admin.DELETE("/skills/:name", h.Admin.DeleteSkill)

		admin.GET("/jobs", h.Jobs.AdminListJobs)
		admin.PUT("/jobs/:id", id, h.Jobs.EditJob)
		admin.POST("/jobs/:id/approval", id, h.Jobs.SetApproval)
		admin.POST("/jobs/:id/cancel", id, h.Jobs.CancelJob)
		admin.DELETE("/jobs/:id", id, h.Jobs.DeleteJob)

		admin.POST("/proposals/:id/accept", id, h.Proposals.Accept)
		admin.POST("/proposals/:id/reject", id, h.Proposals.Reject)
		admin.PUT("/proposals/:id", id, h.Proposals.Edit)
		admin.DELETE("/proposals/:id", id, h.Proposals.Delete)

		admin.GET("/orders", h.Orders.ListOrders)
		admin.POST("/orders/:id/approve-delivery", id, h.Orders.AdminApproveDelivery)
		admin.POST("/orders/:id/cancel", id, h.Orders.AdminCancel)
		admin.DELETE("/orders/:id", id, h.Orders.DeleteOrder)

		admin.GET("/disputes", h.Disputes.List)
		admin.POST("/disputes/:id/resolve", id, h.Disputes.Resolve)
		admin.POST("/disputes/:id/close", id, h.Disputes.Close)
		admin.DELETE("/disputes/:id", id, h.Disputes.Delete)
	}

	return r, nil
}
