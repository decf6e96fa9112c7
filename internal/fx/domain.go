package fx

import (
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/auth"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/bankaccount"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/creditcard"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/shared"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/user"
	"github.com/DanielUlisses/organizador-financeiro/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newUserServiceAdapter,
		newUserCheckerService,
		newAuthService,
		newBankAccountService,
		newPaymentService,
		newCreditCardService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserServiceAdapter(userSvc *user.Service) *user.UserServiceAdapter {
	return user.NewUserServiceAdapter(userSvc)
}

func newUserCheckerService(adapter *user.UserServiceAdapter) *shared.UserCheckerService {
	return shared.NewUserCheckerService(adapter)
}

func newAuthService(
	repo *infrastructure.UserRepository,
	userSvc *user.Service,
) *auth.Service {
	return auth.NewService(repo, userSvc)
}

func newBankAccountService(
	repo *infrastructure.BankAccountRepository,
	userChecker *shared.UserCheckerService,
) *bankaccount.Service {
	return bankaccount.NewService(repo, userChecker)
}

func newPaymentService(
	repo *infrastructure.PaymentRepository,
	userChecker *shared.UserCheckerService,
) *payment.Service {
	return payment.NewService(repo, userChecker)
}

func newCreditCardService(
	repo *infrastructure.CreditCardRepository,
	paymentRepo *infrastructure.PaymentRepository,
	accountSvc *bankaccount.Service,
	userChecker *shared.UserCheckerService,
) *creditcard.Service {
	return creditcard.NewService(repo, paymentRepo, accountSvc, userChecker)
}
