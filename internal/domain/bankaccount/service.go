package bankaccount

import (
	"context"
	"strings"

	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/shared"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Service struct {
	Repository  Repository
	UserChecker *shared.UserCheckerService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{Repository: repo, UserChecker: userChecker}
}

func (s *Service) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*BankAccount, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "tipo de conta inválido")
	}

	currency := req.Currency
	if currency == "" {
		currency = "BRL"
	}

	now := pkg.SetTimestamps()
	account := &BankAccount{
		Id:             pkg.GenerateULIDObject(),
		UserId:         req.UserId,
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		BankName:       strings.TrimSpace(req.BankName),
		LastFourDigits: req.LastFourDigits,
		Balance:        req.InitialBalance,
		Currency:       currency,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repository.Create(ctx, account); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return account, nil
}

func (s *Service) UpdateAccount(ctx context.Context, accountID, userID ulid.ULID, req *UpdateAccountRequest) error {
	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		account.Name = name
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return appErrors.NewValidationError("type", "tipo de conta inválido")
		}
		account.Type = *req.Type
	}

	if req.BankName != nil {
		account.BankName = strings.TrimSpace(*req.BankName)
	}

	if req.LastFourDigits != nil {
		account.LastFourDigits = *req.LastFourDigits
	}

	if req.Balance != nil {
		account.Balance = *req.Balance
	}

	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	account.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.Update(ctx, account)
}

func (s *Service) DeleteAccount(ctx context.Context, accountID, userID ulid.ULID) error {
	if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, accountID, userID)
}

func (s *Service) GetAccountByID(ctx context.Context, accountID, userID ulid.ULID) (*BankAccount, error) {
	account, err := s.Repository.GetByID(ctx, accountID, userID)
	if err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}

	if account.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*BankAccount, int64, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.Repository.GetByUserID(ctx, userID, pagination)
}

func (s *Service) UpdateBalance(ctx context.Context, accountID, userID ulid.ULID, newBalance decimal.Decimal) error {
	if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
		return err
	}
	return s.Repository.UpdateBalance(ctx, accountID, userID, newBalance)
}

func (s *Service) GetTotalBalance(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return decimal.Zero, err
	}
	return s.Repository.GetTotalBalance(ctx, userID)
}

// ResolvePaymentAccount escolhe a conta bancária que servirá de origem para
// pagamentos planejados de fatura: a conta preferida se ainda estiver ativa,
// senão a primeira conta corrente ativa, senão qualquer conta ativa.
func (s *Service) ResolvePaymentAccount(ctx context.Context, userID ulid.ULID, preferred *ulid.ULID) (*BankAccount, error) {
	if preferred != nil {
		account, err := s.Repository.GetByID(ctx, *preferred, userID)
		if err == nil && account != nil && account.IsActive {
			return account, nil
		}
	}

	accounts, err := s.Repository.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if len(accounts) == 0 {
		return nil, appErrors.ErrAccountNotFound
	}

	for _, account := range accounts {
		if account.Type == TypeChecking {
			return account, nil
		}
	}

	return accounts[0], nil
}

type CreateAccountRequest struct {
	UserId         ulid.ULID
	Name           string
	Type           AccountType
	BankName       string
	LastFourDigits string
	InitialBalance decimal.Decimal
	Currency       string
}

type UpdateAccountRequest struct {
	Name           *string
	Type           *AccountType
	BankName       *string
	LastFourDigits *string
	Balance        *decimal.Decimal
	IsActive       *bool
}
