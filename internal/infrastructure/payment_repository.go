package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg/dates"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

var _ payment.Repository = (*PaymentRepository)(nil)

type paymentDB struct {
	Id              string           `gorm:"type:varchar(26);primaryKey"`
	UserId          string           `gorm:"type:varchar(26);index:idx_payments_user_id;not null"`
	Type            string           `gorm:"type:varchar(15);not null"`
	Description     string           `gorm:"type:varchar(255);not null"`
	Amount          decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Currency        string           `gorm:"type:varchar(3);not null;default:'BRL'"`
	Category        string           `gorm:"type:varchar(20)"`
	FromAccountKind *string          `gorm:"type:varchar(15)"`
	FromAccountId   *string          `gorm:"type:varchar(26);index:idx_payments_from_account"`
	ToAccountKind   *string          `gorm:"type:varchar(15)"`
	ToAccountId     *string          `gorm:"type:varchar(26);index:idx_payments_to_account"`
	DueDate         *time.Time       `gorm:"type:date;index:idx_payments_due_date"`
	Frequency       *string          `gorm:"type:varchar(15)"`
	StartDate       *time.Time       `gorm:"type:date"`
	EndDate         *time.Time       `gorm:"type:date"`
	NextDueDate     *time.Time       `gorm:"type:date"`
	Status          string           `gorm:"type:varchar(15);not null;default:'pending'"`
	ProcessedDate   *time.Time       `gorm:"type:date"`
	ReconciledDate  *time.Time       `gorm:"type:date"`
	Notes           string           `gorm:"type:text"`
	IsActive        bool             `gorm:"not null;default:true"`
	CreatedAt       time.Time        `gorm:"autoCreateTime;not null"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime;not null"`
}

func (paymentDB) TableName() string {
	return "payments"
}

type occurrenceDB struct {
	Id             string          `gorm:"type:varchar(26);primaryKey"`
	PaymentId      string          `gorm:"type:varchar(26);index:idx_occurrences_payment_id;not null"`
	ScheduledDate  time.Time       `gorm:"type:date;not null;index:idx_occurrences_scheduled_date"`
	DueDate        *time.Time      `gorm:"type:date"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status         string          `gorm:"type:varchar(15);not null;default:'scheduled'"`
	ProcessedDate  *time.Time      `gorm:"type:date"`
	ReconciledDate *time.Time      `gorm:"type:date"`
	Notes          string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;not null"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime;not null"`
}

func (occurrenceDB) TableName() string {
	return "payment_occurrences"
}

type overrideDB struct {
	Id              string           `gorm:"type:varchar(26);primaryKey"`
	PaymentId       string           `gorm:"type:varchar(26);index:idx_overrides_payment_id;not null"`
	OverrideType    string           `gorm:"type:varchar(20);not null;column:override_type"`
	TargetDate      *time.Time       `gorm:"type:date"`
	EffectiveDate   time.Time        `gorm:"type:date;not null"`
	EndDate         *time.Time       `gorm:"type:date"`
	OccurrenceCount *int             `gorm:""`
	NewAmount       *decimal.Decimal `gorm:"type:decimal(15,2)"`
	NewDueDate      *time.Time       `gorm:"type:date"`
	IsActive        bool             `gorm:"not null;default:true"`
	Notes           string           `gorm:"type:text"`
	CreatedAt       time.Time        `gorm:"autoCreateTime;not null"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime;not null"`
}

func (overrideDB) TableName() string {
	return "recurring_payment_overrides"
}

func toDomainPayment(pdb *paymentDB) (*payment.Payment, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(pdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	fromKind, fromID, err := toDomainAccountRef(pdb.FromAccountKind, pdb.FromAccountId)
	if err != nil {
		return nil, err
	}
	toKind, toID, err := toDomainAccountRef(pdb.ToAccountKind, pdb.ToAccountId)
	if err != nil {
		return nil, err
	}

	var frequency *payment.Frequency
	if pdb.Frequency != nil && *pdb.Frequency != "" {
		f := payment.Frequency(*pdb.Frequency)
		frequency = &f
	}

	return &payment.Payment{
		Id:              id,
		UserId:          userID,
		Type:            payment.PaymentType(pdb.Type),
		Description:     pdb.Description,
		Amount:          pdb.Amount,
		Currency:        pdb.Currency,
		Category:        payment.Category(pdb.Category),
		FromAccountKind: fromKind,
		FromAccountId:   fromID,
		ToAccountKind:   toKind,
		ToAccountId:     toID,
		DueDate:         pdb.DueDate,
		Frequency:       frequency,
		StartDate:       pdb.StartDate,
		EndDate:         pdb.EndDate,
		NextDueDate:     pdb.NextDueDate,
		Status:          payment.Status(pdb.Status),
		ProcessedDate:   pdb.ProcessedDate,
		ReconciledDate:  pdb.ReconciledDate,
		Notes:           pdb.Notes,
		IsActive:        pdb.IsActive,
		CreatedAt:       pdb.CreatedAt,
		UpdatedAt:       pdb.UpdatedAt,
	}, nil
}

func toDomainAccountRef(kind, id *string) (*payment.AccountKind, *ulid.ULID, error) {
	if kind == nil || id == nil || *id == "" {
		return nil, nil, nil
	}
	parsed, err := pkg.ParseULID(*id)
	if err != nil {
		return nil, nil, appErrors.ErrInternalServer.WithError(err)
	}
	k := payment.AccountKind(*kind)
	return &k, &parsed, nil
}

func toDBPayment(p *payment.Payment) *paymentDB {
	var frequency *string
	if p.Frequency != nil {
		f := string(*p.Frequency)
		frequency = &f
	}

	fromKind, fromID := toDBAccountRef(p.FromAccountKind, p.FromAccountId)
	toKind, toID := toDBAccountRef(p.ToAccountKind, p.ToAccountId)

	return &paymentDB{
		Id:              p.Id.String(),
		UserId:          p.UserId.String(),
		Type:            string(p.Type),
		Description:     p.Description,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Category:        string(p.Category),
		FromAccountKind: fromKind,
		FromAccountId:   fromID,
		ToAccountKind:   toKind,
		ToAccountId:     toID,
		DueDate:         p.DueDate,
		Frequency:       frequency,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		NextDueDate:     p.NextDueDate,
		Status:          string(p.Status),
		ProcessedDate:   p.ProcessedDate,
		ReconciledDate:  p.ReconciledDate,
		Notes:           p.Notes,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toDBAccountRef(kind *payment.AccountKind, id *ulid.ULID) (*string, *string) {
	if kind == nil || id == nil {
		return nil, nil
	}
	k := string(*kind)
	s := id.String()
	return &k, &s
}

func toDomainOccurrence(odb *occurrenceDB) (*payment.PaymentOccurrence, error) {
	id, err := pkg.ParseULID(odb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	paymentID, err := pkg.ParseULID(odb.PaymentId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &payment.PaymentOccurrence{
		Id:             id,
		PaymentId:      paymentID,
		ScheduledDate:  dates.DayOf(odb.ScheduledDate),
		DueDate:        odb.DueDate,
		Amount:         odb.Amount,
		Status:         payment.Status(odb.Status),
		ProcessedDate:  odb.ProcessedDate,
		ReconciledDate: odb.ReconciledDate,
		Notes:          odb.Notes,
		CreatedAt:      odb.CreatedAt,
		UpdatedAt:      odb.UpdatedAt,
	}, nil
}

func toDBOccurrence(o *payment.PaymentOccurrence) *occurrenceDB {
	return &occurrenceDB{
		Id:             o.Id.String(),
		PaymentId:      o.PaymentId.String(),
		ScheduledDate:  o.ScheduledDate,
		DueDate:        o.DueDate,
		Amount:         o.Amount,
		Status:         string(o.Status),
		ProcessedDate:  o.ProcessedDate,
		ReconciledDate: o.ReconciledDate,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toDomainOverride(odb *overrideDB) (*payment.RecurringPaymentOverride, error) {
	id, err := pkg.ParseULID(odb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	paymentID, err := pkg.ParseULID(odb.PaymentId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &payment.RecurringPaymentOverride{
		Id:              id,
		PaymentId:       paymentID,
		Type:            payment.OverrideType(odb.OverrideType),
		TargetDate:      odb.TargetDate,
		EffectiveDate:   dates.DayOf(odb.EffectiveDate),
		EndDate:         odb.EndDate,
		OccurrenceCount: odb.OccurrenceCount,
		NewAmount:       odb.NewAmount,
		NewDueDate:      odb.NewDueDate,
		IsActive:        odb.IsActive,
		Notes:           odb.Notes,
		CreatedAt:       odb.CreatedAt,
		UpdatedAt:       odb.UpdatedAt,
	}, nil
}

func toDBOverride(o *payment.RecurringPaymentOverride) *overrideDB {
	return &overrideDB{
		Id:              o.Id.String(),
		PaymentId:       o.PaymentId.String(),
		OverrideType:    string(o.Type),
		TargetDate:      o.TargetDate,
		EffectiveDate:   o.EffectiveDate,
		EndDate:         o.EndDate,
		OccurrenceCount: o.OccurrenceCount,
		NewAmount:       o.NewAmount,
		NewDueDate:      o.NewDueDate,
		IsActive:        o.IsActive,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p *payment.Payment) error {
	pdb := toDBPayment(p)
	if err := r.DB.WithContext(ctx).Table("payments").Create(pdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *PaymentRepository) CreatePaymentWithOccurrence(ctx context.Context, p *payment.Payment, occ *payment.PaymentOccurrence) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("payments").Create(toDBPayment(p)).Error; err != nil {
			return err
		}
		if occ != nil {
			if err := tx.Table("payment_occurrences").Create(toDBOccurrence(occ)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PaymentRepository) UpdatePayment(ctx context.Context, p *payment.Payment) error {
	pdb := toDBPayment(p)
	return r.DB.WithContext(ctx).Model(&paymentDB{}).
		Where("id = ? AND user_id = ?", pdb.Id, pdb.UserId).
		Select("description", "amount", "currency", "category", "from_account_kind", "from_account_id",
			"to_account_kind", "to_account_id", "due_date", "frequency", "start_date", "end_date",
			"next_due_date", "status", "processed_date", "reconciled_date", "notes", "is_active", "updated_at").
		Updates(pdb).Error
}

func (r *PaymentRepository) DeletePayment(ctx context.Context, paymentID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", paymentID.String()).Delete(&occurrenceDB{}).Error; err != nil {
			return err
		}
		if err := tx.Where("payment_id = ?", paymentID.String()).Delete(&overrideDB{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", paymentID.String(), userID.String()).Delete(&paymentDB{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrPaymentNotFound
		}
		return nil
	})
}

func (r *PaymentRepository) GetPaymentByID(ctx context.Context, paymentID, userID ulid.ULID) (*payment.Payment, error) {
	var pdb paymentDB
	err := r.DB.WithContext(ctx).Table("payments").
		Where("id = ? AND user_id = ?", paymentID.String(), userID.String()).
		First(&pdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrPaymentNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainPayment(&pdb)
}

func (r *PaymentRepository) GetPaymentsByUserID(ctx context.Context, userID ulid.ULID, filter *payment.PaymentFilter, pagination *pkg.PaginationParams) ([]*payment.Payment, int64, error) {
	query := r.DB.WithContext(ctx).Table("payments").Where("user_id = ?", userID.String())

	if filter != nil {
		if filter.Type != nil {
			query = query.Where("type = ?", string(*filter.Type))
		}
		if filter.Status != nil {
			query = query.Where("status = ?", string(*filter.Status))
		}
		if filter.DateFrom != nil {
			query = query.Where("(due_date >= ? OR next_due_date >= ?)", *filter.DateFrom, *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("(due_date <= ? OR start_date <= ?)", *filter.DateTo, *filter.DateTo)
		}
	}

	payments, total, err := pkg.Paginate[payment.Payment, paymentDB](query, pagination, "created_at DESC", toDomainPayment)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return payments, total, nil
}

func (r *PaymentRepository) CreateOccurrence(ctx context.Context, occ *payment.PaymentOccurrence) error {
	if err := r.DB.WithContext(ctx).Table("payment_occurrences").Create(toDBOccurrence(occ)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *PaymentRepository) CreateOccurrences(ctx context.Context, occs []*payment.PaymentOccurrence) error {
	if len(occs) == 0 {
		return nil
	}
	rows := make([]*occurrenceDB, 0, len(occs))
	for _, occ := range occs {
		rows = append(rows, toDBOccurrence(occ))
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table("payment_occurrences").CreateInBatches(rows, 100).Error
	})
}

func (r *PaymentRepository) UpdateOccurrence(ctx context.Context, occ *payment.PaymentOccurrence) error {
	odb := toDBOccurrence(occ)
	return r.DB.WithContext(ctx).Model(&occurrenceDB{}).
		Where("id = ?", odb.Id).
		Select("scheduled_date", "due_date", "amount", "status", "processed_date", "reconciled_date", "notes", "updated_at").
		Updates(odb).Error
}

func (r *PaymentRepository) DeleteOccurrence(ctx context.Context, occurrenceID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND payment_id IN (?)",
			occurrenceID.String(),
			r.userPaymentIDs(ctx, userID),
		).
		Delete(&occurrenceDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrOccurrenceNotFound
	}
	return nil
}

func (r *PaymentRepository) GetOccurrenceByID(ctx context.Context, occurrenceID, userID ulid.ULID) (*payment.PaymentOccurrence, error) {
	var odb occurrenceDB
	err := r.DB.WithContext(ctx).Table("payment_occurrences").
		Where("id = ? AND payment_id IN (?)", occurrenceID.String(), r.userPaymentIDs(ctx, userID)).
		First(&odb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrOccurrenceNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainOccurrence(&odb)
}

func (r *PaymentRepository) GetOccurrencesByPaymentID(ctx context.Context, paymentID ulid.ULID, status *payment.Status, from, to *time.Time) ([]*payment.PaymentOccurrence, error) {
	query := r.DB.WithContext(ctx).Table("payment_occurrences").Where("payment_id = ?", paymentID.String())
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	if from != nil {
		query = query.Where("scheduled_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("scheduled_date <= ?", *to)
	}

	var rows []occurrenceDB
	if err := query.Order("scheduled_date ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainOccurrences(rows)
}

func (r *PaymentRepository) GetOccurrenceDates(ctx context.Context, paymentID ulid.ULID) (map[time.Time]struct{}, error) {
	var scheduled []time.Time
	err := r.DB.WithContext(ctx).Table("payment_occurrences").
		Where("payment_id = ?", paymentID.String()).
		Pluck("scheduled_date", &scheduled).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	existing := make(map[time.Time]struct{}, len(scheduled))
	for _, d := range scheduled {
		existing[dates.DayOf(d)] = struct{}{}
	}
	return existing, nil
}

func (r *PaymentRepository) GetOccurrencesInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*payment.PaymentOccurrence, error) {
	var rows []occurrenceDB
	err := r.DB.WithContext(ctx).Table("payment_occurrences").
		Where("payment_id IN (?) AND scheduled_date >= ? AND scheduled_date <= ?",
			r.userPaymentIDs(ctx, userID), from, to).
		Order("scheduled_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainOccurrences(rows)
}

func (r *PaymentRepository) CreateOverride(ctx context.Context, o *payment.RecurringPaymentOverride) error {
	if err := r.DB.WithContext(ctx).Table("recurring_payment_overrides").Create(toDBOverride(o)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *PaymentRepository) UpdateOverride(ctx context.Context, o *payment.RecurringPaymentOverride) error {
	odb := toDBOverride(o)
	return r.DB.WithContext(ctx).Model(&overrideDB{}).
		Where("id = ?", odb.Id).
		Select("target_date", "effective_date", "end_date", "occurrence_count", "new_amount", "new_due_date", "is_active", "notes", "updated_at").
		Updates(odb).Error
}

func (r *PaymentRepository) DeleteOverride(ctx context.Context, overrideID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND payment_id IN (?)", overrideID.String(), r.userPaymentIDs(ctx, userID)).
		Delete(&overrideDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrOverrideNotFound
	}
	return nil
}

func (r *PaymentRepository) GetOverrideByID(ctx context.Context, overrideID, userID ulid.ULID) (*payment.RecurringPaymentOverride, error) {
	var odb overrideDB
	err := r.DB.WithContext(ctx).Table("recurring_payment_overrides").
		Where("id = ? AND payment_id IN (?)", overrideID.String(), r.userPaymentIDs(ctx, userID)).
		First(&odb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrOverrideNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainOverride(&odb)
}

func (r *PaymentRepository) GetActiveOverrides(ctx context.Context, paymentID ulid.ULID) ([]*payment.RecurringPaymentOverride, error) {
	var rows []overrideDB
	err := r.DB.WithContext(ctx).Table("recurring_payment_overrides").
		Where("payment_id = ? AND is_active = ?", paymentID.String(), true).
		Order("effective_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	overrides := make([]*payment.RecurringPaymentOverride, 0, len(rows))
	for i := range rows {
		o, err := toDomainOverride(&rows[i])
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, nil
}

func (r *PaymentRepository) GetCardOccurrencesInRange(ctx context.Context, cardID, userID ulid.ULID, from, to time.Time) ([]*payment.CardOccurrence, error) {
	cardPayments, err := r.cardPayments(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}
	if len(cardPayments) == 0 {
		return nil, nil
	}

	byID := make(map[string]*payment.Payment, len(cardPayments))
	ids := make([]string, 0, len(cardPayments))
	for _, p := range cardPayments {
		id := p.Id.String()
		byID[id] = p
		ids = append(ids, id)
	}

	var rows []occurrenceDB
	err = r.DB.WithContext(ctx).Table("payment_occurrences").
		Where("payment_id IN ? AND scheduled_date >= ? AND scheduled_date <= ?", ids, from, to).
		Where("status NOT IN ?", []string{string(payment.StatusCancelled), string(payment.StatusFailed)}).
		Order("scheduled_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	result := make([]*payment.CardOccurrence, 0, len(rows))
	for i := range rows {
		occ, err := toDomainOccurrence(&rows[i])
		if err != nil {
			return nil, err
		}
		result = append(result, &payment.CardOccurrence{
			Occurrence: occ,
			Payment:    byID[rows[i].PaymentId],
		})
	}
	return result, nil
}

func (r *PaymentRepository) GetOneTimeCardPaymentsInRange(ctx context.Context, cardID, userID ulid.ULID, from, to time.Time) ([]*payment.Payment, error) {
	var rows []paymentDB
	err := r.cardPaymentsQuery(ctx, cardID, userID).
		Where("type = ?", string(payment.TypeOneTime)).
		Where("due_date >= ? AND due_date <= ?", from, to).
		Where("status NOT IN ?", []string{string(payment.StatusCancelled), string(payment.StatusFailed)}).
		Order("due_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainPayments(rows)
}

func (r *PaymentRepository) GetCardPaymentsByDueDates(ctx context.Context, cardID, userID ulid.ULID, dueDates []time.Time) ([]*payment.Payment, error) {
	if len(dueDates) == 0 {
		return nil, nil
	}

	var rows []paymentDB
	err := r.DB.WithContext(ctx).Table("payments").
		Where("user_id = ?", userID.String()).
		Where("to_account_kind = ? AND to_account_id = ?", string(payment.KindCreditCard), cardID.String()).
		Where("due_date IN ?", dueDates).
		Where("status NOT IN ?", []string{string(payment.StatusCancelled), string(payment.StatusFailed)}).
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainPayments(rows)
}

func (r *PaymentRepository) ApplyPlannedChanges(ctx context.Context, creates []*payment.Payment, updates []*payment.Payment, deleteIDs []ulid.ULID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range deleteIDs {
			if err := tx.Where("id = ?", id.String()).Delete(&paymentDB{}).Error; err != nil {
				return err
			}
		}
		for _, p := range updates {
			pdb := toDBPayment(p)
			err := tx.Model(&paymentDB{}).
				Where("id = ?", pdb.Id).
				Select("amount", "description", "from_account_kind", "from_account_id", "status", "updated_at").
				Updates(pdb).Error
			if err != nil {
				return err
			}
		}
		for _, p := range creates {
			if err := tx.Table("payments").Create(toDBPayment(p)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// cardPayments busca os pagamentos do usuário que referenciam o cartão como
// origem ou destino.
func (r *PaymentRepository) cardPayments(ctx context.Context, cardID, userID ulid.ULID) ([]*payment.Payment, error) {
	var rows []paymentDB
	if err := r.cardPaymentsQuery(ctx, cardID, userID).Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainPayments(rows)
}

func (r *PaymentRepository) cardPaymentsQuery(ctx context.Context, cardID, userID ulid.ULID) *gorm.DB {
	kind := string(payment.KindCreditCard)
	id := cardID.String()
	return r.DB.WithContext(ctx).Table("payments").
		Where("user_id = ?", userID.String()).
		Where("(from_account_kind = ? AND from_account_id = ?) OR (to_account_kind = ? AND to_account_id = ?)",
			kind, id, kind, id)
}

func (r *PaymentRepository) userPaymentIDs(ctx context.Context, userID ulid.ULID) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&paymentDB{}).Select("id").Where("user_id = ?", userID.String())
}

func toDomainPayments(rows []paymentDB) ([]*payment.Payment, error) {
	payments := make([]*payment.Payment, 0, len(rows))
	for i := range rows {
		p, err := toDomainPayment(&rows[i])
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func toDomainOccurrences(rows []occurrenceDB) ([]*payment.PaymentOccurrence, error) {
	occurrences := make([]*payment.PaymentOccurrence, 0, len(rows))
	for i := range rows {
		occ, err := toDomainOccurrence(&rows[i])
		if err != nil {
			return nil, err
		}
		occurrences = append(occurrences, occ)
	}
	return occurrences, nil
}
