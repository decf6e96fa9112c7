package fx

import (
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/auth"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/bankaccount"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/creditcard"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/user"
	"github.com/DanielUlisses/organizador-financeiro/internal/middleware"
	"github.com/DanielUlisses/organizador-financeiro/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece handlers e rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newAuthRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	authSvc *auth.Service,
	jwtSvc *middleware.JwtService,
	accountSvc *bankaccount.Service,
	paymentSvc *payment.Service,
	creditCardSvc *creditcard.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:       userSvc,
		AuthService:       authSvc,
		JwtService:        jwtSvc,
		AccountService:    accountSvc,
		PaymentService:    paymentSvc,
		CreditCardService: creditCardSvc,
	}
}

func newAuthRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
