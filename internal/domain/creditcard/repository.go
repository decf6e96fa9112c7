package creditcard

import (
	"context"

	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, card *CreditCard) error
	Update(ctx context.Context, card *CreditCard) error
	Delete(ctx context.Context, cardID, userID ulid.ULID) error
	GetByID(ctx context.Context, cardID, userID ulid.ULID) (*CreditCard, error)
	GetByUserID(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*CreditCard, int64, error)
	GetActiveByUserID(ctx context.Context, userID ulid.ULID) ([]*CreditCard, error)
	UpdateBalance(ctx context.Context, cardID, userID ulid.ULID, newBalance decimal.Decimal) error
	// GetTotalDebt soma o saldo devedor de todos os cartões ativos do
	// usuário.
	GetTotalDebt(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error)
}
