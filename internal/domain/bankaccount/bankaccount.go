package bankaccount

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type BankAccount struct {
	Id            ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId        ulid.ULID       `gorm:"type:varchar(26);index:idx_bank_accounts_user_id;not null" json:"userId"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	Type          AccountType     `gorm:"type:varchar(20);not null" json:"type"`
	BankName      string          `gorm:"type:varchar(100)" json:"bankName"`
	LastFourDigits string         `gorm:"type:varchar(4)" json:"lastFourDigits"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'BRL'" json:"currency"`
	IsActive      bool            `gorm:"not null;default:true;index:idx_bank_accounts_active" json:"isActive"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}

type AccountType string

const (
	TypeChecking    AccountType = "CHECKING"
	TypeSavings     AccountType = "SAVINGS"
	TypeMoneyMarket AccountType = "MONEY_MARKET"
	TypeOther       AccountType = "OTHER"
)

func (t AccountType) IsValid() bool {
	switch t {
	case TypeChecking, TypeSavings, TypeMoneyMarket, TypeOther:
		return true
	}
	return false
}
