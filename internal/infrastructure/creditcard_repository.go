package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/creditcard"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreditCardRepository struct {
	DB *gorm.DB
}

var _ creditcard.Repository = (*CreditCardRepository)(nil)

type creditCardDB struct {
	Id                      string          `gorm:"type:varchar(26);primaryKey"`
	UserId                  string          `gorm:"type:varchar(26);index:idx_credit_cards_user_id;not null"`
	Name                    string          `gorm:"type:varchar(100);not null"`
	Brand                   string          `gorm:"type:varchar(20);not null"`
	CreditLimit             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentBalance          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Currency                string          `gorm:"type:varchar(3);not null;default:'BRL'"`
	InvoiceCloseDay         int             `gorm:"not null"`
	PaymentDueDay           int             `gorm:"not null"`
	DefaultPaymentAccountId *string         `gorm:"type:varchar(26)"`
	LastFourDigits          string          `gorm:"type:varchar(4)"`
	IsActive                bool            `gorm:"not null;default:true"`
	CreatedAt               time.Time       `gorm:"autoCreateTime;not null"`
	UpdatedAt               time.Time       `gorm:"autoUpdateTime;not null"`
}

func (creditCardDB) TableName() string {
	return "credit_cards"
}

func toDomainCreditCard(cdb *creditCardDB) (*creditcard.CreditCard, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(cdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	var defaultAccount *ulid.ULID
	if cdb.DefaultPaymentAccountId != nil && *cdb.DefaultPaymentAccountId != "" {
		parsed, err := pkg.ParseULID(*cdb.DefaultPaymentAccountId)
		if err != nil {
			return nil, appErrors.ErrInternalServer.WithError(err)
		}
		defaultAccount = &parsed
	}

	return &creditcard.CreditCard{
		Id:                      id,
		UserId:                  userID,
		Name:                    cdb.Name,
		Brand:                   creditcard.CardBrand(cdb.Brand),
		CreditLimit:             cdb.CreditLimit,
		CurrentBalance:          cdb.CurrentBalance,
		Currency:                cdb.Currency,
		InvoiceCloseDay:         cdb.InvoiceCloseDay,
		PaymentDueDay:           cdb.PaymentDueDay,
		DefaultPaymentAccountId: defaultAccount,
		LastFourDigits:          cdb.LastFourDigits,
		IsActive:                cdb.IsActive,
		CreatedAt:               cdb.CreatedAt,
		UpdatedAt:               cdb.UpdatedAt,
	}, nil
}

func toDBCreditCard(card *creditcard.CreditCard) *creditCardDB {
	var defaultAccount *string
	if card.DefaultPaymentAccountId != nil {
		s := card.DefaultPaymentAccountId.String()
		defaultAccount = &s
	}

	return &creditCardDB{
		Id:                      card.Id.String(),
		UserId:                  card.UserId.String(),
		Name:                    card.Name,
		Brand:                   string(card.Brand),
		CreditLimit:             card.CreditLimit,
		CurrentBalance:          card.CurrentBalance,
		Currency:                card.Currency,
		InvoiceCloseDay:         card.InvoiceCloseDay,
		PaymentDueDay:           card.PaymentDueDay,
		DefaultPaymentAccountId: defaultAccount,
		LastFourDigits:          card.LastFourDigits,
		IsActive:                card.IsActive,
		CreatedAt:               card.CreatedAt,
		UpdatedAt:               card.UpdatedAt,
	}
}

func (r *CreditCardRepository) Create(ctx context.Context, card *creditcard.CreditCard) error {
	cdb := toDBCreditCard(card)
	if err := r.DB.WithContext(ctx).Table("credit_cards").Create(cdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CreditCardRepository) Update(ctx context.Context, card *creditcard.CreditCard) error {
	cdb := toDBCreditCard(card)
	return r.DB.WithContext(ctx).Model(&creditCardDB{}).
		Where("id = ? AND user_id = ?", cdb.Id, cdb.UserId).
		Select("name", "brand", "credit_limit", "currency", "invoice_close_day", "payment_due_day",
			"default_payment_account_id", "last_four_digits", "is_active", "updated_at").
		Updates(cdb).Error
}

func (r *CreditCardRepository) Delete(ctx context.Context, cardID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", cardID.String(), userID.String()).
		Delete(&creditCardDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCardNotFound
	}
	return nil
}

func (r *CreditCardRepository) GetByID(ctx context.Context, cardID, userID ulid.ULID) (*creditcard.CreditCard, error) {
	var cdb creditCardDB
	err := r.DB.WithContext(ctx).Table("credit_cards").
		Where("id = ? AND user_id = ?", cardID.String(), userID.String()).
		First(&cdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCardNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainCreditCard(&cdb)
}

func (r *CreditCardRepository) GetByUserID(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*creditcard.CreditCard, int64, error) {
	query := r.DB.WithContext(ctx).Table("credit_cards").Where("user_id = ?", userID.String())

	cards, total, err := pkg.Paginate[creditcard.CreditCard, creditCardDB](query, pagination, "created_at ASC", toDomainCreditCard)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return cards, total, nil
}

func (r *CreditCardRepository) GetActiveByUserID(ctx context.Context, userID ulid.ULID) ([]*creditcard.CreditCard, error) {
	var rows []creditCardDB
	err := r.DB.WithContext(ctx).Table("credit_cards").
		Where("user_id = ? AND is_active = ?", userID.String(), true).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	cards := make([]*creditcard.CreditCard, 0, len(rows))
	for i := range rows {
		card, err := toDomainCreditCard(&rows[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (r *CreditCardRepository) UpdateBalance(ctx context.Context, cardID, userID ulid.ULID, newBalance decimal.Decimal) error {
	result := r.DB.WithContext(ctx).Model(&creditCardDB{}).
		Where("id = ? AND user_id = ?", cardID.String(), userID.String()).
		Updates(map[string]interface{}{
			"current_balance": newBalance,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCardNotFound
	}
	return nil
}

func (r *CreditCardRepository) GetTotalDebt(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.DB.WithContext(ctx).Table("credit_cards").
		Where("user_id = ? AND is_active = ?", userID.String(), true).
		Select("SUM(current_balance)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, appErrors.NewDatabaseError(err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
