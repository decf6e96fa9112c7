package infrastructure

import (
	"github.com/DanielUlisses/organizador-financeiro/config"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/bankaccount"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/creditcard"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/user"
	"github.com/DanielUlisses/organizador-financeiro/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error().
			Err(err).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.DBName).
			Msg("Falha ao conectar ao banco de dados")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Falha ao obter instância do banco de dados")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.DBName).
		Msg("Conexão com banco de dados estabelecida com sucesso")

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	logger.Info().Msg("Executando migrations...")

	entities := []interface{}{
		&user.User{},
		&bankaccount.BankAccount{},
		&payment.Payment{},
		&payment.PaymentOccurrence{},
		&payment.RecurringPaymentOverride{},
		&creditcard.CreditCard{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			logger.Error().
				Err(err).
				Str("entity", getEntityName(entity)).
				Msg("Erro ao migrar entidade")
			return err
		}
	}

	logger.Info().Msg("Migrations executadas com sucesso!")
	return nil
}

func getEntityName(entity interface{}) string {
	switch entity.(type) {
	case *user.User:
		return "User"
	case *bankaccount.BankAccount:
		return "BankAccount"
	case *payment.Payment:
		return "Payment"
	case *payment.PaymentOccurrence:
		return "PaymentOccurrence"
	case *payment.RecurringPaymentOverride:
		return "RecurringPaymentOverride"
	case *creditcard.CreditCard:
		return "CreditCard"
	default:
		return "Unknown"
	}
}
