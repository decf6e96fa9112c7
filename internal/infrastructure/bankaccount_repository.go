package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/bankaccount"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BankAccountRepository struct {
	DB *gorm.DB
}

var _ bankaccount.Repository = (*BankAccountRepository)(nil)

type bankAccountDB struct {
	Id             string          `gorm:"type:varchar(26);primaryKey"`
	UserId         string          `gorm:"type:varchar(26);index:idx_bank_accounts_user_id;not null"`
	Name           string          `gorm:"type:varchar(100);not null"`
	Type           string          `gorm:"type:varchar(20);not null"`
	BankName       string          `gorm:"type:varchar(100)"`
	LastFourDigits string          `gorm:"type:varchar(4)"`
	Balance        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'BRL'"`
	IsActive       bool            `gorm:"not null;default:true;index:idx_bank_accounts_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;not null"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime;not null"`
}

func (bankAccountDB) TableName() string {
	return "bank_accounts"
}

func toDomainBankAccount(adb *bankAccountDB) (*bankaccount.BankAccount, error) {
	id, err := pkg.ParseULID(adb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(adb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &bankaccount.BankAccount{
		Id:             id,
		UserId:         userID,
		Name:           adb.Name,
		Type:           bankaccount.AccountType(adb.Type),
		BankName:       adb.BankName,
		LastFourDigits: adb.LastFourDigits,
		Balance:        adb.Balance,
		Currency:       adb.Currency,
		IsActive:       adb.IsActive,
		CreatedAt:      adb.CreatedAt,
		UpdatedAt:      adb.UpdatedAt,
	}, nil
}

func toDBBankAccount(a *bankaccount.BankAccount) *bankAccountDB {
	return &bankAccountDB{
		Id:             a.Id.String(),
		UserId:         a.UserId.String(),
		Name:           a.Name,
		Type:           string(a.Type),
		BankName:       a.BankName,
		LastFourDigits: a.LastFourDigits,
		Balance:        a.Balance,
		Currency:       a.Currency,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (r *BankAccountRepository) Create(ctx context.Context, account *bankaccount.BankAccount) error {
	adb := toDBBankAccount(account)
	if err := r.DB.WithContext(ctx).Table("bank_accounts").Create(adb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *BankAccountRepository) Update(ctx context.Context, account *bankaccount.BankAccount) error {
	adb := toDBBankAccount(account)
	return r.DB.WithContext(ctx).Model(&bankAccountDB{}).
		Where("id = ? AND user_id = ?", adb.Id, adb.UserId).
		Select("name", "type", "bank_name", "last_four_digits", "balance", "currency", "is_active", "updated_at").
		Updates(adb).Error
}

func (r *BankAccountRepository) Delete(ctx context.Context, accountID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID.String(), userID.String()).
		Delete(&bankAccountDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrAccountNotFound
	}
	return nil
}

func (r *BankAccountRepository) GetByID(ctx context.Context, accountID, userID ulid.ULID) (*bankaccount.BankAccount, error) {
	var adb bankAccountDB
	err := r.DB.WithContext(ctx).Table("bank_accounts").
		Where("id = ? AND user_id = ?", accountID.String(), userID.String()).
		First(&adb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAccountNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainBankAccount(&adb)
}

func (r *BankAccountRepository) GetByUserID(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*bankaccount.BankAccount, int64, error) {
	if pagination == nil {
		pagination = &pkg.PaginationParams{Page: 1, Limit: 10}
	}
	pagination.Normalize()

	baseQuery := r.DB.WithContext(ctx).Table("bank_accounts").Where("user_id = ?", userID.String())

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}

	var rows []bankAccountDB
	err := baseQuery.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}

	accounts := make([]*bankaccount.BankAccount, 0, len(rows))
	for i := range rows {
		account, err := toDomainBankAccount(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, account)
	}
	return accounts, total, nil
}

func (r *BankAccountRepository) GetActiveByUserID(ctx context.Context, userID ulid.ULID) ([]*bankaccount.BankAccount, error) {
	var rows []bankAccountDB
	err := r.DB.WithContext(ctx).Table("bank_accounts").
		Where("user_id = ? AND is_active = ?", userID.String(), true).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	accounts := make([]*bankaccount.BankAccount, 0, len(rows))
	for i := range rows {
		account, err := toDomainBankAccount(&rows[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *BankAccountRepository) UpdateBalance(ctx context.Context, accountID, userID ulid.ULID, newBalance decimal.Decimal) error {
	result := r.DB.WithContext(ctx).Model(&bankAccountDB{}).
		Where("id = ? AND user_id = ?", accountID.String(), userID.String()).
		Updates(map[string]interface{}{
			"balance":    newBalance,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrAccountNotFound
	}
	return nil
}

func (r *BankAccountRepository) GetTotalBalance(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.DB.WithContext(ctx).Table("bank_accounts").
		Select("SUM(balance)").
		Where("user_id = ? AND is_active = ?", userID.String(), true).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, appErrors.NewDatabaseError(err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
