package creditcard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/bankaccount"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/shared"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/logger"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg/dates"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// plannedHorizonMonths é o horizonte da sincronização de pagamentos
// planejados.
const plannedHorizonMonths = 12

type Service struct {
	Repository     Repository
	PaymentRepo    payment.Repository
	AccountService *bankaccount.Service
	UserChecker    *shared.UserCheckerService
	Now            func() time.Time
}

func NewService(repo Repository, paymentRepo payment.Repository, accountService *bankaccount.Service, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:     repo,
		PaymentRepo:    paymentRepo,
		AccountService: accountService,
		UserChecker:    userChecker,
		Now:            time.Now,
	}
}

func (s *Service) CreateCard(ctx context.Context, req *CreateCardRequest) (*CreditCard, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	if !req.Brand.IsValid() {
		return nil, appErrors.NewValidationError("brand", "bandeira inválida")
	}
	if req.CreditLimit.IsNegative() {
		return nil, appErrors.NewValidationError("credit_limit", "não pode ser negativo")
	}
	if req.InvoiceCloseDay < 1 || req.InvoiceCloseDay > 31 {
		return nil, appErrors.NewValidationError("invoice_close_day", "deve estar entre 1 e 31")
	}
	if req.PaymentDueDay < 1 || req.PaymentDueDay > 60 {
		return nil, appErrors.NewValidationError("payment_due_day", "deve estar entre 1 e 60 dias após o fechamento")
	}

	if req.DefaultPaymentAccountId != nil {
		if _, err := s.AccountService.GetAccountByID(ctx, *req.DefaultPaymentAccountId, req.UserId); err != nil {
			return nil, err
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "BRL"
	}

	now := pkg.SetTimestamps()
	card := &CreditCard{
		Id:                      pkg.GenerateULIDObject(),
		UserId:                  req.UserId,
		Name:                    strings.TrimSpace(req.Name),
		Brand:                   req.Brand,
		CreditLimit:             req.CreditLimit,
		CurrentBalance:          decimal.Zero,
		Currency:                currency,
		InvoiceCloseDay:         req.InvoiceCloseDay,
		PaymentDueDay:           req.PaymentDueDay,
		DefaultPaymentAccountId: req.DefaultPaymentAccountId,
		LastFourDigits:          req.LastFourDigits,
		IsActive:                true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := s.Repository.Create(ctx, card); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return card, nil
}

func (s *Service) UpdateCard(ctx context.Context, cardID, userID ulid.ULID, req *UpdateCardRequest) error {
	card, err := s.GetCardByID(ctx, cardID, userID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		card.Name = name
	}
	if req.Brand != nil {
		if !req.Brand.IsValid() {
			return appErrors.NewValidationError("brand", "bandeira inválida")
		}
		card.Brand = *req.Brand
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return appErrors.NewValidationError("credit_limit", "não pode ser negativo")
		}
		card.CreditLimit = *req.CreditLimit
	}
	if req.InvoiceCloseDay != nil {
		if *req.InvoiceCloseDay < 1 || *req.InvoiceCloseDay > 31 {
			return appErrors.NewValidationError("invoice_close_day", "deve estar entre 1 e 31")
		}
		card.InvoiceCloseDay = *req.InvoiceCloseDay
	}
	if req.PaymentDueDay != nil {
		if *req.PaymentDueDay < 1 || *req.PaymentDueDay > 60 {
			return appErrors.NewValidationError("payment_due_day", "deve estar entre 1 e 60 dias após o fechamento")
		}
		card.PaymentDueDay = *req.PaymentDueDay
	}
	if req.DefaultPaymentAccountId != nil {
		if _, err := s.AccountService.GetAccountByID(ctx, *req.DefaultPaymentAccountId, userID); err != nil {
			return err
		}
		card.DefaultPaymentAccountId = req.DefaultPaymentAccountId
	}
	if req.LastFourDigits != nil {
		card.LastFourDigits = *req.LastFourDigits
	}
	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}

	card.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.Update(ctx, card)
}

func (s *Service) DeleteCard(ctx context.Context, cardID, userID ulid.ULID) error {
	if _, err := s.GetCardByID(ctx, cardID, userID); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, cardID, userID)
}

func (s *Service) GetCardByID(ctx context.Context, cardID, userID ulid.ULID) (*CreditCard, error) {
	card, err := s.Repository.GetByID(ctx, cardID, userID)
	if err != nil {
		return nil, appErrors.ErrCardNotFound.WithError(err)
	}
	if card.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}
	return card, nil
}

func (s *Service) ListCards(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*CreditCard, int64, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.Repository.GetByUserID(ctx, userID, pagination)
}

func (s *Service) UpdateBalance(ctx context.Context, cardID, userID ulid.ULID, newBalance decimal.Decimal) error {
	if _, err := s.GetCardByID(ctx, cardID, userID); err != nil {
		return err
	}
	return s.Repository.UpdateBalance(ctx, cardID, userID, newBalance)
}

func (s *Service) GetTotalDebt(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return decimal.Zero, err
	}
	return s.Repository.GetTotalDebt(ctx, userID)
}

// GetBillingCycle devolve o ciclo de fatura do cartão para a data de
// referência (hoje quando ausente).
func (s *Service) GetBillingCycle(ctx context.Context, cardID, userID ulid.ULID, reference *time.Time) (*BillingCycle, error) {
	card, err := s.GetCardByID(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	ref := dates.DayOf(s.Now())
	if reference != nil {
		ref = dates.DayOf(*reference)
	}

	cycle := CycleFor(card.InvoiceCloseDay, card.PaymentDueDay, ref)
	return &cycle, nil
}

// GetStatementSummary agrega a fatura do ciclo que contém a data de
// referência. Somente leitura.
func (s *Service) GetStatementSummary(ctx context.Context, cardID, userID ulid.ULID, reference *time.Time) (*StatementSummary, error) {
	card, err := s.GetCardByID(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	ref := dates.DayOf(s.Now())
	if reference != nil {
		ref = dates.DayOf(*reference)
	}

	cycle := CycleFor(card.InvoiceCloseDay, card.PaymentDueDay, ref)
	return s.summarizeCycle(ctx, card, cycle)
}

// GetInvoiceHistory devolve os resumos das últimas faturas, da mais recente
// para a mais antiga, andando um mês para trás por iteração e removendo
// ciclos repetidos pela data de fechamento.
func (s *Service) GetInvoiceHistory(ctx context.Context, cardID, userID ulid.ULID, months int) ([]*StatementSummary, error) {
	card, err := s.GetCardByID(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	if months < 1 {
		months = 1
	}
	if months > 24 {
		months = 24
	}

	today := dates.DayOf(s.Now())
	seen := make(map[time.Time]struct{}, months)
	summaries := make([]*StatementSummary, 0, months)

	for i := 0; i < months; i++ {
		ref := dates.MidMonth(dates.AddMonths(today, -i))
		cycle := CycleFor(card.InvoiceCloseDay, card.PaymentDueDay, ref)
		if _, dup := seen[cycle.CloseDate]; dup {
			continue
		}
		seen[cycle.CloseDate] = struct{}{}

		summary, err := s.summarizeCycle(ctx, card, cycle)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// SyncPlannedPayments reconcilia os placeholders de pagamento de fatura dos
// próximos meses com os saldos projetados. Sem conta de origem resolvível a
// sincronização não faz nada. Todas as mudanças são aplicadas em uma única
// transação; uma segunda execução imediata não produz mudanças.
func (s *Service) SyncPlannedPayments(ctx context.Context, cardID, userID ulid.ULID) error {
	card, err := s.GetCardByID(ctx, cardID, userID)
	if err != nil {
		return err
	}

	source, err := s.AccountService.ResolvePaymentAccount(ctx, userID, card.DefaultPaymentAccountId)
	if err != nil {
		if errors.Is(err, appErrors.ErrAccountNotFound) {
			logger.Warn().
				Str("card_id", card.Id.String()).
				Msg("Sincronização de pagamentos planejados ignorada: nenhuma conta de origem disponível")
			return nil
		}
		return err
	}

	today := dates.DayOf(s.Now())
	desired := make(map[time.Time]decimal.Decimal, plannedHorizonMonths)
	dueDates := make([]time.Time, 0, plannedHorizonMonths)

	for i := 0; i < plannedHorizonMonths; i++ {
		ref := dates.MidMonth(dates.AddMonths(today, i))
		cycle := CycleFor(card.InvoiceCloseDay, card.PaymentDueDay, ref)

		summary, err := s.projectCycle(ctx, card, cycle)
		if err != nil {
			return err
		}

		// Crédito líquido no ciclo nunca vira pagamento negativo.
		balance := summary.StatementBalance
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		if _, dup := desired[cycle.DueDate]; !dup {
			dueDates = append(dueDates, cycle.DueDate)
		}
		desired[cycle.DueDate] = balance
	}

	existing, err := s.PaymentRepo.GetCardPaymentsByDueDates(ctx, card.Id, userID, dueDates)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	plan := computeSyncPlan(card, source.Id, desired, existing)
	if plan.isEmpty() {
		return nil
	}

	if err := s.PaymentRepo.ApplyPlannedChanges(ctx, plan.creates, plan.updates, plan.deleteIDs); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	logger.Info().
		Str("card_id", card.Id.String()).
		Int("created", len(plan.creates)).
		Int("updated", len(plan.updates)).
		Int("deleted", len(plan.deleteIDs)).
		Msg("Pagamentos planejados sincronizados")

	return nil
}

// summarizeCycle monta a fatura visível ao usuário, com placeholders de
// pagamento planejado incluídos.
func (s *Service) summarizeCycle(ctx context.Context, card *CreditCard, cycle BillingCycle) (*StatementSummary, error) {
	return s.cycleSummary(ctx, card, cycle, false)
}

// projectCycle monta a projeção usada pela sincronização. Os placeholders
// gerenciados pelo sistema ficam de fora: o placeholder criado para o ciclo
// N vence dentro da janela do ciclo N+1 e, se contado, reduziria a projeção
// seguinte e a própria sincronização desfaria o que acabou de criar.
func (s *Service) projectCycle(ctx context.Context, card *CreditCard, cycle BillingCycle) (*StatementSummary, error) {
	return s.cycleSummary(ctx, card, cycle, true)
}

func (s *Service) cycleSummary(ctx context.Context, card *CreditCard, cycle BillingCycle, excludePlanned bool) (*StatementSummary, error) {
	occurrences, err := s.PaymentRepo.GetCardOccurrencesInRange(ctx, card.Id, card.UserId, cycle.CycleStartDate, cycle.CycleEndDate)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	oneTime, err := s.PaymentRepo.GetOneTimeCardPaymentsInRange(ctx, card.Id, card.UserId, cycle.CycleStartDate, cycle.CycleEndDate)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	if excludePlanned {
		kept := make([]*payment.Payment, 0, len(oneTime))
		for _, p := range oneTime {
			if IsPlannedPayment(p, card.Id) {
				continue
			}
			kept = append(kept, p)
		}
		oneTime = kept
	}

	return buildStatement(card.Id, cycle, occurrences, oneTime), nil
}

type CreateCardRequest struct {
	UserId                  ulid.ULID
	Name                    string
	Brand                   CardBrand
	CreditLimit             decimal.Decimal
	Currency                string
	InvoiceCloseDay         int
	PaymentDueDay           int
	DefaultPaymentAccountId *ulid.ULID
	LastFourDigits          string
}

type UpdateCardRequest struct {
	Name                    *string
	Brand                   *CardBrand
	CreditLimit             *decimal.Decimal
	InvoiceCloseDay         *int
	PaymentDueDay           *int
	DefaultPaymentAccountId *ulid.ULID
	LastFourDigits          *string
	IsActive                *bool
}
