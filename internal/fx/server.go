package fx

import (
	"context"

	"github.com/DanielUlisses/organizador-financeiro/config"
	"github.com/DanielUlisses/organizador-financeiro/internal/logger"
	"github.com/DanielUlisses/organizador-financeiro/internal/middleware"
	"github.com/DanielUlisses/organizador-financeiro/internal/routes"

	"github.com/gin-gonic/gin"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	authRateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	public := router.Group("/api")
	public.Use(middleware.RateLimit(authRateLimiter))
	{
		public.POST("/auth/login", handler.Authenticate)
		public.POST("/auth/register", handler.Registration)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimitByUser())
	{
		users := private.Group("/users")
		{
			users.GET("/me", handler.GetProfile)
			users.PATCH("/me", handler.UpdateUserName)
			users.PATCH("/me/password", handler.UpdateUserPassword)
			users.DELETE("/me", handler.DeleteUser)
		}

		accounts := private.Group("/accounts")
		{
			accounts.POST("", handler.CreateBankAccount)
			accounts.GET("", handler.ListBankAccounts)
			accounts.GET("/balance", handler.GetTotalBalance)
			accounts.GET("/:id", handler.GetBankAccount)
			accounts.PATCH("/:id", handler.UpdateBankAccount)
			accounts.DELETE("/:id", handler.DeleteBankAccount)
		}

		payments := private.Group("/payments")
		{
			payments.POST("", handler.CreatePayment)
			payments.GET("", handler.ListPayments)
			payments.GET("/occurrences", handler.ListUpcomingOccurrences)
			payments.GET("/:id", handler.GetPayment)
			payments.PATCH("/:id", handler.UpdatePayment)
			payments.DELETE("/:id", handler.DeletePayment)

			payments.POST("/:id/occurrences", handler.CreateOccurrence)
			payments.GET("/:id/occurrences", handler.ListOccurrences)
			payments.POST("/:id/occurrences/generate", handler.GenerateOccurrences)
			payments.PATCH("/occurrences/:occurrenceId", handler.UpdateOccurrence)
			payments.DELETE("/occurrences/:occurrenceId", handler.DeleteOccurrence)

			payments.POST("/:id/overrides", handler.CreateOverride)
			payments.GET("/:id/overrides", handler.ListOverrides)
			payments.PATCH("/overrides/:overrideId", handler.UpdateOverride)
			payments.DELETE("/overrides/:overrideId", handler.DeleteOverride)
		}

		creditCards := private.Group("/credit-cards")
		{
			creditCards.POST("", handler.CreateCreditCard)
			creditCards.GET("", handler.ListCreditCards)
			creditCards.GET("/debt", handler.GetTotalDebt)
			creditCards.GET("/:id", handler.GetCreditCard)
			creditCards.PATCH("/:id", handler.UpdateCreditCard)
			creditCards.DELETE("/:id", handler.DeleteCreditCard)
			creditCards.PATCH("/:id/balance", handler.UpdateCreditCardBalance)
			creditCards.GET("/:id/cycle", handler.GetBillingCycle)
			creditCards.GET("/:id/statement", handler.GetStatement)
			creditCards.GET("/:id/invoices", handler.GetInvoiceHistory)
			creditCards.POST("/:id/planned-payments/sync", handler.SyncPlannedPayments)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
