package bankaccount

import (
	"context"

	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, account *BankAccount) error
	Update(ctx context.Context, account *BankAccount) error
	Delete(ctx context.Context, accountID, userID ulid.ULID) error
	GetByID(ctx context.Context, accountID, userID ulid.ULID) (*BankAccount, error)
	GetByUserID(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*BankAccount, int64, error)
	GetActiveByUserID(ctx context.Context, userID ulid.ULID) ([]*BankAccount, error)
	UpdateBalance(ctx context.Context, accountID, userID ulid.ULID, newBalance decimal.Decimal) error
	GetTotalBalance(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error)
}
