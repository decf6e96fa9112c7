package payment

import (
	"context"
	"strings"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/shared"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/logger"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg/dates"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// generationHorizonDays é o horizonte padrão de geração de ocorrências
// quando o chamador não informa uma data limite.
const generationHorizonDays = 365

type Service struct {
	Repository  Repository
	UserChecker *shared.UserCheckerService
	Now         func() time.Time
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:  repo,
		UserChecker: userChecker,
		Now:         time.Now,
	}
}

func (s *Service) CreateOneTimePayment(ctx context.Context, req *CreateOneTimePaymentRequest) (*Payment, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if err := validateCommon(req.Description, req.Amount, req.Category); err != nil {
		return nil, err
	}
	if err := validateAccountRef("from_account", req.FromAccountKind, req.FromAccountId); err != nil {
		return nil, err
	}
	if err := validateAccountRef("to_account", req.ToAccountKind, req.ToAccountId); err != nil {
		return nil, err
	}

	now := pkg.SetTimestamps()
	p := &Payment{
		Id:              pkg.GenerateULIDObject(),
		UserId:          req.UserId,
		Type:            TypeOneTime,
		Description:     strings.TrimSpace(req.Description),
		Amount:          req.Amount,
		Currency:        currencyOrDefault(req.Currency),
		Category:        req.Category,
		FromAccountKind: req.FromAccountKind,
		FromAccountId:   req.FromAccountId,
		ToAccountKind:   req.ToAccountKind,
		ToAccountId:     req.ToAccountId,
		DueDate:         normalizeDatePtr(req.DueDate),
		Status:          StatusPending,
		Notes:           req.Notes,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Pagamento único com vencimento ganha a ocorrência inicial na mesma
	// transação.
	var occ *PaymentOccurrence
	if p.DueDate != nil {
		occ = &PaymentOccurrence{
			Id:            pkg.GenerateULIDObject(),
			PaymentId:     p.Id,
			ScheduledDate: *p.DueDate,
			DueDate:       p.DueDate,
			Amount:        p.Amount,
			Status:        StatusScheduled,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	if err := s.Repository.CreatePaymentWithOccurrence(ctx, p, occ); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return p, nil
}

func (s *Service) CreateRecurringPayment(ctx context.Context, req *CreateRecurringPaymentRequest) (*Payment, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if err := validateCommon(req.Description, req.Amount, req.Category); err != nil {
		return nil, err
	}
	if err := validateAccountRef("from_account", req.FromAccountKind, req.FromAccountId); err != nil {
		return nil, err
	}
	if err := validateAccountRef("to_account", req.ToAccountKind, req.ToAccountId); err != nil {
		return nil, err
	}

	sched, err := NewSchedule(req.Frequency)
	if err != nil {
		return nil, err
	}

	if req.StartDate.IsZero() {
		return nil, appErrors.NewValidationError("start_date", "é obrigatória para pagamentos recorrentes")
	}
	start := dates.DayOf(req.StartDate)
	if req.EndDate != nil && dates.DayOf(*req.EndDate).Before(start) {
		return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data de início")
	}

	frequency := req.Frequency
	nextDue := sched.Next(start)
	now := pkg.SetTimestamps()
	p := &Payment{
		Id:              pkg.GenerateULIDObject(),
		UserId:          req.UserId,
		Type:            TypeRecurring,
		Description:     strings.TrimSpace(req.Description),
		Amount:          req.Amount,
		Currency:        currencyOrDefault(req.Currency),
		Category:        req.Category,
		FromAccountKind: req.FromAccountKind,
		FromAccountId:   req.FromAccountId,
		ToAccountKind:   req.ToAccountKind,
		ToAccountId:     req.ToAccountId,
		Frequency:       &frequency,
		StartDate:       &start,
		EndDate:         normalizeDatePtr(req.EndDate),
		NextDueDate:     &nextDue,
		Status:          StatusPending,
		Notes:           req.Notes,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	occ := &PaymentOccurrence{
		Id:            pkg.GenerateULIDObject(),
		PaymentId:     p.Id,
		ScheduledDate: start,
		DueDate:       &start,
		Amount:        p.Amount,
		Status:        StatusScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repository.CreatePaymentWithOccurrence(ctx, p, occ); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return p, nil
}

func (s *Service) UpdatePayment(ctx context.Context, paymentID, userID ulid.ULID, req *UpdatePaymentRequest) error {
	p, err := s.GetPaymentByID(ctx, paymentID, userID)
	if err != nil {
		return err
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return appErrors.NewValidationError("description", "não pode ser vazia")
		}
		p.Description = description
	}

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		p.Amount = *req.Amount
	}

	if req.Category != nil {
		if !req.Category.IsValid() {
			return appErrors.NewValidationError("category", "categoria inválida")
		}
		p.Category = *req.Category
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return appErrors.NewValidationError("status", "status inválido")
		}
		p.Status = *req.Status
	}

	if req.DueDate != nil {
		if p.Type != TypeOneTime {
			return appErrors.NewValidationError("due_date", "apenas pagamentos únicos possuem vencimento direto")
		}
		p.DueDate = normalizeDatePtr(req.DueDate)
	}

	scheduleChanged := false
	if req.Frequency != nil {
		if p.Type != TypeRecurring {
			return appErrors.NewValidationError("frequency", "apenas pagamentos recorrentes possuem frequência")
		}
		if _, err := NewSchedule(*req.Frequency); err != nil {
			return err
		}
		p.Frequency = req.Frequency
		scheduleChanged = true
	}

	if req.StartDate != nil {
		if p.Type != TypeRecurring {
			return appErrors.NewValidationError("start_date", "apenas pagamentos recorrentes possuem data de início")
		}
		p.StartDate = normalizeDatePtr(req.StartDate)
		scheduleChanged = true
	}

	if req.EndDate != nil {
		p.EndDate = normalizeDatePtr(req.EndDate)
	}

	if req.Notes != nil {
		p.Notes = *req.Notes
	}

	if req.ProcessedDate != nil {
		p.ProcessedDate = normalizeDatePtr(req.ProcessedDate)
	}

	if req.ReconciledDate != nil {
		p.ReconciledDate = normalizeDatePtr(req.ReconciledDate)
	}

	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	// Frequência ou início alterados recalculam o próximo vencimento.
	if scheduleChanged && p.Frequency != nil && p.StartDate != nil {
		sched, err := NewSchedule(*p.Frequency)
		if err != nil {
			return err
		}
		nextDue := sched.Next(*p.StartDate)
		p.NextDueDate = &nextDue
	}

	p.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.UpdatePayment(ctx, p)
}

func (s *Service) DeletePayment(ctx context.Context, paymentID, userID ulid.ULID) error {
	if _, err := s.GetPaymentByID(ctx, paymentID, userID); err != nil {
		return err
	}
	return s.Repository.DeletePayment(ctx, paymentID, userID)
}

func (s *Service) GetPaymentByID(ctx context.Context, paymentID, userID ulid.ULID) (*Payment, error) {
	p, err := s.Repository.GetPaymentByID(ctx, paymentID, userID)
	if err != nil {
		return nil, appErrors.ErrPaymentNotFound.WithError(err)
	}
	if p.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}
	return p, nil
}

func (s *Service) ListPayments(ctx context.Context, userID ulid.ULID, filter *PaymentFilter, pagination *pkg.PaginationParams) ([]*Payment, int64, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.Repository.GetPaymentsByUserID(ctx, userID, filter, pagination)
}

func (s *Service) CreateOccurrence(ctx context.Context, paymentID, userID ulid.ULID, req *CreateOccurrenceRequest) (*PaymentOccurrence, error) {
	p, err := s.GetPaymentByID(ctx, paymentID, userID)
	if err != nil {
		return nil, err
	}

	if req.ScheduledDate.IsZero() {
		return nil, appErrors.NewValidationError("scheduled_date", "é obrigatória")
	}

	amount := p.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}

	status := StatusScheduled
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, appErrors.NewValidationError("status", "status inválido")
		}
		status = *req.Status
	}

	now := pkg.SetTimestamps()
	occ := &PaymentOccurrence{
		Id:            pkg.GenerateULIDObject(),
		PaymentId:     p.Id,
		ScheduledDate: dates.DayOf(req.ScheduledDate),
		DueDate:       normalizeDatePtr(req.DueDate),
		Amount:        amount,
		Status:        status,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repository.CreateOccurrence(ctx, occ); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return occ, nil
}

func (s *Service) UpdateOccurrence(ctx context.Context, occurrenceID, userID ulid.ULID, req *UpdateOccurrenceRequest) error {
	occ, err := s.Repository.GetOccurrenceByID(ctx, occurrenceID, userID)
	if err != nil {
		return appErrors.ErrOccurrenceNotFound.WithError(err)
	}

	if req.ScheduledDate != nil {
		occ.ScheduledDate = dates.DayOf(*req.ScheduledDate)
	}
	if req.DueDate != nil {
		occ.DueDate = normalizeDatePtr(req.DueDate)
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		occ.Amount = *req.Amount
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return appErrors.NewValidationError("status", "status inválido")
		}
		occ.Status = *req.Status
	}
	if req.ProcessedDate != nil {
		occ.ProcessedDate = normalizeDatePtr(req.ProcessedDate)
	}
	if req.ReconciledDate != nil {
		occ.ReconciledDate = normalizeDatePtr(req.ReconciledDate)
	}
	if req.Notes != nil {
		occ.Notes = *req.Notes
	}

	occ.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.UpdateOccurrence(ctx, occ)
}

func (s *Service) DeleteOccurrence(ctx context.Context, occurrenceID, userID ulid.ULID) error {
	if _, err := s.Repository.GetOccurrenceByID(ctx, occurrenceID, userID); err != nil {
		return appErrors.ErrOccurrenceNotFound.WithError(err)
	}
	return s.Repository.DeleteOccurrence(ctx, occurrenceID, userID)
}

func (s *Service) GetOccurrences(ctx context.Context, paymentID, userID ulid.ULID, status *Status, from, to *time.Time) ([]*PaymentOccurrence, error) {
	if _, err := s.GetPaymentByID(ctx, paymentID, userID); err != nil {
		return nil, err
	}
	return s.Repository.GetOccurrencesByPaymentID(ctx, paymentID, status, normalizeDatePtr(from), normalizeDatePtr(to))
}

// GetOccurrencesInRange lista as ocorrências do usuário no intervalo em uma
// única consulta.
func (s *Service) GetOccurrencesInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*PaymentOccurrence, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repository.GetOccurrencesInRange(ctx, userID, dates.DayOf(from), dates.DayOf(to))
}

func (s *Service) CreateOverride(ctx context.Context, paymentID, userID ulid.ULID, req *CreateOverrideRequest) (*RecurringPaymentOverride, error) {
	p, err := s.GetPaymentByID(ctx, paymentID, userID)
	if err != nil {
		return nil, err
	}

	if p.Type != TypeRecurring {
		return nil, appErrors.NewValidationError("payment", "exceções só se aplicam a pagamentos recorrentes")
	}

	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("override_type", "tipo de exceção inválido")
	}
	if req.EffectiveDate.IsZero() {
		return nil, appErrors.NewValidationError("effective_date", "é obrigatória")
	}
	if req.Type == OverrideChangeAmount && req.NewAmount == nil {
		return nil, appErrors.NewValidationError("new_amount", "é obrigatório para exceções de valor")
	}
	if req.Type == OverrideChangeDate && req.NewDueDate == nil {
		return nil, appErrors.NewValidationError("new_due_date", "é obrigatória para exceções de data")
	}

	now := pkg.SetTimestamps()
	o := &RecurringPaymentOverride{
		Id:              pkg.GenerateULIDObject(),
		PaymentId:       p.Id,
		Type:            req.Type,
		TargetDate:      normalizeDatePtr(req.TargetDate),
		EffectiveDate:   dates.DayOf(req.EffectiveDate),
		EndDate:         normalizeDatePtr(req.EndDate),
		OccurrenceCount: req.OccurrenceCount,
		NewAmount:       req.NewAmount,
		NewDueDate:      normalizeDatePtr(req.NewDueDate),
		IsActive:        true,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Repository.CreateOverride(ctx, o); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return o, nil
}

func (s *Service) UpdateOverride(ctx context.Context, overrideID, userID ulid.ULID, req *UpdateOverrideRequest) error {
	o, err := s.Repository.GetOverrideByID(ctx, overrideID, userID)
	if err != nil {
		return appErrors.ErrOverrideNotFound.WithError(err)
	}

	if req.TargetDate != nil {
		o.TargetDate = normalizeDatePtr(req.TargetDate)
	}
	if req.EffectiveDate != nil {
		o.EffectiveDate = dates.DayOf(*req.EffectiveDate)
	}
	if req.EndDate != nil {
		o.EndDate = normalizeDatePtr(req.EndDate)
	}
	if req.NewAmount != nil {
		o.NewAmount = req.NewAmount
	}
	if req.NewDueDate != nil {
		o.NewDueDate = normalizeDatePtr(req.NewDueDate)
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}

	o.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.UpdateOverride(ctx, o)
}

func (s *Service) DeleteOverride(ctx context.Context, overrideID, userID ulid.ULID) error {
	if _, err := s.Repository.GetOverrideByID(ctx, overrideID, userID); err != nil {
		return appErrors.ErrOverrideNotFound.WithError(err)
	}
	return s.Repository.DeleteOverride(ctx, overrideID, userID)
}

func (s *Service) GetOverrides(ctx context.Context, paymentID, userID ulid.ULID) ([]*RecurringPaymentOverride, error) {
	if _, err := s.GetPaymentByID(ctx, paymentID, userID); err != nil {
		return nil, err
	}
	return s.Repository.GetActiveOverrides(ctx, paymentID)
}

// GenerateOccurrences materializa as ocorrências futuras de um pagamento
// recorrente até a data limite (padrão: um ano a partir de hoje). Datas que
// já possuem ocorrência são puladas mas a série continua avançando; o efeito
// é somente aditivo e o lote inteiro é persistido em uma transação, o que
// torna a operação idempotente.
func (s *Service) GenerateOccurrences(ctx context.Context, paymentID, userID ulid.ULID, upTo *time.Time) ([]*PaymentOccurrence, error) {
	p, err := s.GetPaymentByID(ctx, paymentID, userID)
	if err != nil {
		return nil, err
	}

	if p.Type != TypeRecurring {
		return nil, appErrors.NewValidationError("payment", "apenas pagamentos recorrentes geram ocorrências")
	}
	if p.Frequency == nil || p.StartDate == nil {
		return nil, appErrors.NewValidationError("payment", "pagamento recorrente sem frequência ou data de início")
	}
	if !p.IsActive {
		return []*PaymentOccurrence{}, nil
	}

	sched, err := NewSchedule(*p.Frequency)
	if err != nil {
		return nil, err
	}

	today := dates.DayOf(s.Now())
	limit := today.AddDate(0, 0, generationHorizonDays)
	if upTo != nil {
		limit = dates.DayOf(*upTo)
	}
	if p.EndDate != nil && dates.DayOf(*p.EndDate).Before(limit) {
		limit = dates.DayOf(*p.EndDate)
	}

	existing, err := s.Repository.GetOccurrenceDates(ctx, p.Id)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	overrides, err := s.Repository.GetActiveOverrides(ctx, p.Id)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	start := dates.DayOf(*p.StartDate)
	now := pkg.SetTimestamps()
	var generated []*PaymentOccurrence

	for n := 0; ; n++ {
		current := sched.Advance(start, n)
		if current.After(limit) {
			break
		}
		if _, ok := existing[current]; ok {
			continue
		}

		resolution := resolveOverrides(current, p.Amount, overrides)
		if resolution.Skip {
			continue
		}

		scheduled := current
		generated = append(generated, &PaymentOccurrence{
			Id:            pkg.GenerateULIDObject(),
			PaymentId:     p.Id,
			ScheduledDate: scheduled,
			DueDate:       &scheduled,
			Amount:        resolution.Amount,
			Status:        StatusScheduled,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if len(generated) > 0 {
		if err := s.Repository.CreateOccurrences(ctx, generated); err != nil {
			return nil, appErrors.NewDatabaseError(err)
		}
	}

	logger.Debug().
		Str("payment_id", p.Id.String()).
		Int("generated", len(generated)).
		Msg("Ocorrências geradas")

	return generated, nil
}

func validateCommon(description string, amount decimal.Decimal, category Category) error {
	if strings.TrimSpace(description) == "" {
		return appErrors.NewValidationError("description", "é obrigatória")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}
	if !category.IsValid() {
		return appErrors.NewValidationError("category", "categoria inválida")
	}
	return nil
}

func validateAccountRef(field string, kind *AccountKind, id *ulid.ULID) error {
	if kind == nil && id == nil {
		return nil
	}
	if kind == nil || id == nil {
		return appErrors.NewValidationError(field, "tipo e id da conta devem ser informados juntos")
	}
	if !kind.IsValid() {
		return appErrors.NewValidationError(field, "tipo de conta inválido")
	}
	return nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "BRL"
	}
	return currency
}

func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dates.DayOf(*t)
	return &d
}

type CreateOneTimePaymentRequest struct {
	UserId          ulid.ULID
	Description     string
	Amount          decimal.Decimal
	Currency        string
	Category        Category
	FromAccountKind *AccountKind
	FromAccountId   *ulid.ULID
	ToAccountKind   *AccountKind
	ToAccountId     *ulid.ULID
	DueDate         *time.Time
	Notes           string
}

type CreateRecurringPaymentRequest struct {
	UserId          ulid.ULID
	Description     string
	Amount          decimal.Decimal
	Currency        string
	Category        Category
	FromAccountKind *AccountKind
	FromAccountId   *ulid.ULID
	ToAccountKind   *AccountKind
	ToAccountId     *ulid.ULID
	Frequency       Frequency
	StartDate       time.Time
	EndDate         *time.Time
	Notes           string
}

type UpdatePaymentRequest struct {
	Description    *string
	Amount         *decimal.Decimal
	Category       *Category
	Status         *Status
	DueDate        *time.Time
	Frequency      *Frequency
	StartDate      *time.Time
	EndDate        *time.Time
	Notes          *string
	ProcessedDate  *time.Time
	ReconciledDate *time.Time
	IsActive       *bool
}

type CreateOccurrenceRequest struct {
	ScheduledDate time.Time
	DueDate       *time.Time
	Amount        *decimal.Decimal
	Status        *Status
	Notes         string
}

type UpdateOccurrenceRequest struct {
	ScheduledDate  *time.Time
	DueDate        *time.Time
	Amount         *decimal.Decimal
	Status         *Status
	ProcessedDate  *time.Time
	ReconciledDate *time.Time
	Notes          *string
}

type CreateOverrideRequest struct {
	Type            OverrideType
	TargetDate      *time.Time
	EffectiveDate   time.Time
	EndDate         *time.Time
	OccurrenceCount *int
	NewAmount       *decimal.Decimal
	NewDueDate      *time.Time
	Notes           string
}

type UpdateOverrideRequest struct {
	TargetDate    *time.Time
	EffectiveDate *time.Time
	EndDate       *time.Time
	NewAmount     *decimal.Decimal
	NewDueDate    *time.Time
	IsActive      *bool
	Notes         *string
}
