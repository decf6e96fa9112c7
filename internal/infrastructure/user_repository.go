package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/shared"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/user"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

var _ user.Repository = (*UserRepository)(nil)

type userDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex:idx_users_email;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

func (userDB) TableName() string {
	return "users"
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &user.User{
		Id:        id,
		Name:      udb.Name,
		Email:     udb.Email,
		Password:  udb.Password,
		CreatedAt: udb.CreatedAt,
		UpdatedAt: udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:        u.Id.String(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	if err := r.DB.WithContext(ctx).Table("users").Create(udb).Error; err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.ErrEmailAlreadyExists.WithError(err)
		}
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	if err := r.DB.WithContext(ctx).Table("users").Where("id = ?", udb.Id).Updates(udb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// Delete remove o usuário e todos os seus dados financeiros na mesma
// transação. As ocorrências e exceções saem antes dos pagamentos por causa
// das referências de pagamento.
func (r *UserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	userID := id.String()

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paymentIDs := tx.Model(&paymentDB{}).Select("id").Where("user_id = ?", userID)

		if err := tx.Where("payment_id IN (?)", paymentIDs).Delete(&occurrenceDB{}).Error; err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if err := tx.Where("payment_id IN (?)", paymentIDs).Delete(&overrideDB{}).Error; err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&paymentDB{}).Error; err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&creditCardDB{}).Error; err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&bankAccountDB{}).Error; err != nil {
			return appErrors.NewDatabaseError(err)
		}

		result := tx.Where("id = ?", userID).Delete(&userDB{})
		if result.Error != nil {
			return appErrors.NewDatabaseError(result.Error)
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrUserNotFound
		}
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	var udb userDB
	if err := r.DB.WithContext(ctx).Table("users").Where("id = ?", id.String()).First(&udb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var udb userDB
	if err := r.DB.WithContext(ctx).Table("users").Where("email = ?", email).First(&udb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUser(&udb)
}
