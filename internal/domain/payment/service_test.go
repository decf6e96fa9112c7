package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/shared"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type fakePaymentRepository struct {
	createPaymentFn               func(ctx context.Context, p *payment.Payment) error
	createPaymentWithOccurrenceFn func(ctx context.Context, p *payment.Payment, occ *payment.PaymentOccurrence) error
	updatePaymentFn               func(ctx context.Context, p *payment.Payment) error
	deletePaymentFn               func(ctx context.Context, paymentID, userID ulid.ULID) error
	getPaymentByIDFn              func(ctx context.Context, paymentID, userID ulid.ULID) (*payment.Payment, error)
	getPaymentsByUserIDFn         func(ctx context.Context, userID ulid.ULID, filter *payment.PaymentFilter, pagination *pkg.PaginationParams) ([]*payment.Payment, int64, error)
	createOccurrenceFn            func(ctx context.Context, occ *payment.PaymentOccurrence) error
	createOccurrencesFn           func(ctx context.Context, occs []*payment.PaymentOccurrence) error
	updateOccurrenceFn            func(ctx context.Context, occ *payment.PaymentOccurrence) error
	deleteOccurrenceFn            func(ctx context.Context, occurrenceID, userID ulid.ULID) error
	getOccurrenceByIDFn           func(ctx context.Context, occurrenceID, userID ulid.ULID) (*payment.PaymentOccurrence, error)
	getOccurrencesByPaymentIDFn   func(ctx context.Context, paymentID ulid.ULID, status *payment.Status, from, to *time.Time) ([]*payment.PaymentOccurrence, error)
	getOccurrenceDatesFn          func(ctx context.Context, paymentID ulid.ULID) (map[time.Time]struct{}, error)
	getOccurrencesInRangeFn       func(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*payment.PaymentOccurrence, error)
	createOverrideFn              func(ctx context.Context, o *payment.RecurringPaymentOverride) error
	updateOverrideFn              func(ctx context.Context, o *payment.RecurringPaymentOverride) error
	deleteOverrideFn              func(ctx context.Context, overrideID, userID ulid.ULID) error
	getOverrideByIDFn             func(ctx context.Context, overrideID, userID ulid.ULID) (*payment.RecurringPaymentOverride, error)
	getActiveOverridesFn          func(ctx context.Context, paymentID ulid.ULID) ([]*payment.RecurringPaymentOverride, error)
	getCardOccurrencesInRangeFn   func(ctx context.Context, cardID, userID ulid.ULID, from, to time.Time) ([]*payment.CardOccurrence, error)
	getOneTimeCardPaymentsFn      func(ctx context.Context, cardID, userID ulid.ULID, from, to time.Time) ([]*payment.Payment, error)
	getCardPaymentsByDueDatesFn   func(ctx context.Context, cardID, userID ulid.ULID, dueDates []time.Time) ([]*payment.Payment, error)
	applyPlannedChangesFn         func(ctx context.Context, creates []*payment.Payment, updates []*payment.Payment, deleteIDs []ulid.ULID) error
}

func (f *fakePaymentRepository) CreatePayment(ctx context.Context, p *payment.Payment) error {
	if f.createPaymentFn != nil {
		return f.createPaymentFn(ctx, p)
	}
	return nil
}

func (f *fakePaymentRepository) CreatePaymentWithOccurrence(ctx context.Context, p *payment.Payment, occ *payment.PaymentOccurrence) error {
	if f.createPaymentWithOccurrenceFn != nil {
		return f.createPaymentWithOccurrenceFn(ctx, p, occ)
	}
	return nil
}

func (f *fakePaymentRepository) UpdatePayment(ctx context.Context, p *payment.Payment) error {
	if f.updatePaymentFn != nil {
		return f.updatePaymentFn(ctx, p)
	}
	return nil
}

func (f *fakePaymentRepository) DeletePayment(ctx context.Context, paymentID, userID ulid.ULID) error {
	if f.deletePaymentFn != nil {
		return f.deletePaymentFn(ctx, paymentID, userID)
	}
	return nil
}

func (f *fakePaymentRepository) GetPaymentByID(ctx context.Context, paymentID, userID ulid.ULID) (*payment.Payment, error) {
	if f.getPaymentByIDFn != nil {
		return f.getPaymentByIDFn(ctx, paymentID, userID)
	}
	return nil, appErrors.ErrPaymentNotFound
}

func (f *fakePaymentRepository) GetPaymentsByUserID(ctx context.Context, userID ulid.ULID, filter *payment.PaymentFilter, pagination *pkg.PaginationParams) ([]*payment.Payment, int64, error) {
	if f.getPaymentsByUserIDFn != nil {
		return f.getPaymentsByUserIDFn(ctx, userID, filter, pagination)
	}
	return nil, 0, nil
}

func (f *fakePaymentRepository) CreateOccurrence(ctx context.Context, occ *payment.PaymentOccurrence) error {
	if f.createOccurrenceFn != nil {
		return f.createOccurrenceFn(ctx, occ)
	}
	return nil
}

func (f *fakePaymentRepository) CreateOccurrences(ctx context.Context, occs []*payment.PaymentOccurrence) error {
	if f.createOccurrencesFn != nil {
		return f.createOccurrencesFn(ctx, occs)
	}
	return nil
}

func (f *fakePaymentRepository) UpdateOccurrence(ctx context.Context, occ *payment.PaymentOccurrence) error {
	if f.updateOccurrenceFn != nil {
		return f.updateOccurrenceFn(ctx, occ)
	}
	return nil
}

func (f *fakePaymentRepository) DeleteOccurrence(ctx context.Context, occurrenceID, userID ulid.ULID) error {
	if f.deleteOccurrenceFn != nil {
		return f.deleteOccurrenceFn(ctx, occurrenceID, userID)
	}
	return nil
}

func (f *fakePaymentRepository) GetOccurrenceByID(ctx context.Context, occurrenceID, userID ulid.ULID) (*payment.PaymentOccurrence, error) {
	if f.getOccurrenceByIDFn != nil {
		return f.getOccurrenceByIDFn(ctx, occurrenceID, userID)
	}
	return nil, appErrors.ErrOccurrenceNotFound
}

func (f *fakePaymentRepository) GetOccurrencesByPaymentID(ctx context.Context, paymentID ulid.ULID, status *payment.Status, from, to *time.Time) ([]*payment.PaymentOccurrence, error) {
	if f.getOccurrencesByPaymentIDFn != nil {
		return f.getOccurrencesByPaymentIDFn(ctx, paymentID, status, from, to)
	}
	return nil, nil
}

func (f *fakePaymentRepository) GetOccurrenceDates(ctx context.Context, paymentID ulid.ULID) (map[time.Time]struct{}, error) {
	if f.getOccurrenceDatesFn != nil {
		return f.getOccurrenceDatesFn(ctx, paymentID)
	}
	return map[time.Time]struct{}{}, nil
}

func (f *fakePaymentRepository) GetOccurrencesInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*payment.PaymentOccurrence, error) {
	if f.getOccurrencesInRangeFn != nil {
		return f.getOccurrencesInRangeFn(ctx, userID, from, to)
	}
	return nil, nil
}

func (f *fakePaymentRepository) CreateOverride(ctx context.Context, o *payment.RecurringPaymentOverride) error {
	if f.createOverrideFn != nil {
		return f.createOverrideFn(ctx, o)
	}
	return nil
}

func (f *fakePaymentRepository) UpdateOverride(ctx context.Context, o *payment.RecurringPaymentOverride) error {
	if f.updateOverrideFn != nil {
		return f.updateOverrideFn(ctx, o)
	}
	return nil
}

func (f *fakePaymentRepository) DeleteOverride(ctx context.Context, overrideID, userID ulid.ULID) error {
	if f.deleteOverrideFn != nil {
		return f.deleteOverrideFn(ctx, overrideID, userID)
	}
	return nil
}

func (f *fakePaymentRepository) GetOverrideByID(ctx context.Context, overrideID, userID ulid.ULID) (*payment.RecurringPaymentOverride, error) {
	if f.getOverrideByIDFn != nil {
		return f.getOverrideByIDFn(ctx, overrideID, userID)
	}
	return nil, appErrors.ErrOverrideNotFound
}

func (f *fakePaymentRepository) GetActiveOverrides(ctx context.Context, paymentID ulid.ULID) ([]*payment.RecurringPaymentOverride, error) {
	if f.getActiveOverridesFn != nil {
		return f.getActiveOverridesFn(ctx, paymentID)
	}
	return nil, nil
}

func (f *fakePaymentRepository) GetCardOccurrencesInRange(ctx context.Context, cardID, userID ulid.ULID, from, to time.Time) ([]*payment.CardOccurrence, error) {
	if f.getCardOccurrencesInRangeFn != nil {
		return f.getCardOccurrencesInRangeFn(ctx, cardID, userID, from, to)
	}
	return nil, nil
}

func (f *fakePaymentRepository) GetOneTimeCardPaymentsInRange(ctx context.Context, cardID, userID ulid.ULID, from, to time.Time) ([]*payment.Payment, error) {
	if f.getOneTimeCardPaymentsFn != nil {
		return f.getOneTimeCardPaymentsFn(ctx, cardID, userID, from, to)
	}
	return nil, nil
}

func (f *fakePaymentRepository) GetCardPaymentsByDueDates(ctx context.Context, cardID, userID ulid.ULID, dueDates []time.Time) ([]*payment.Payment, error) {
	if f.getCardPaymentsByDueDatesFn != nil {
		return f.getCardPaymentsByDueDatesFn(ctx, cardID, userID, dueDates)
	}
	return nil, nil
}

func (f *fakePaymentRepository) ApplyPlannedChanges(ctx context.Context, creates []*payment.Payment, updates []*payment.Payment, deleteIDs []ulid.ULID) error {
	if f.applyPlannedChangesFn != nil {
		return f.applyPlannedChangesFn(ctx, creates, updates, deleteIDs)
	}
	return nil
}

type fakeUserGetter struct {
	existsFn func(ctx context.Context, userID ulid.ULID) error
}

func (f *fakeUserGetter) Exists(ctx context.Context, userID ulid.ULID) error {
	if f.existsFn != nil {
		return f.existsFn(ctx, userID)
	}
	return nil
}

func (f *fakeUserGetter) GetByID(ctx context.Context, userID ulid.ULID) (interface{}, error) {
	return nil, nil
}

func newPaymentService(repo *fakePaymentRepository, now time.Time) *payment.Service {
	svc := payment.NewService(repo, shared.NewUserCheckerService(&fakeUserGetter{}))
	svc.Now = func() time.Time { return now }
	return svc
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateOneTimePayment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := ulid.Make()

	t.Run("with due date creates initial occurrence", func(t *testing.T) {
		var gotOcc *payment.PaymentOccurrence
		repo := &fakePaymentRepository{
			createPaymentWithOccurrenceFn: func(ctx context.Context, p *payment.Payment, occ *payment.PaymentOccurrence) error {
				gotOcc = occ
				return nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		due := day(2026, time.February, 10)
		p, err := svc.CreateOneTimePayment(ctx, &payment.CreateOneTimePaymentRequest{
			UserId:      userID,
			Description: "IPVA",
			Amount:      amount("850.00"),
			Category:    payment.CategoryBill,
			DueDate:     &due,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Type != payment.TypeOneTime {
			t.Fatalf("type = %s", p.Type)
		}
		if p.Status != payment.StatusPending {
			t.Fatalf("status = %s", p.Status)
		}
		if gotOcc == nil {
			t.Fatalf("expected initial occurrence")
		}
		if !gotOcc.ScheduledDate.Equal(due) {
			t.Fatalf("scheduled = %v, want %v", gotOcc.ScheduledDate, due)
		}
		if gotOcc.Status != payment.StatusScheduled {
			t.Fatalf("occurrence status = %s", gotOcc.Status)
		}
	})

	t.Run("without due date creates no occurrence", func(t *testing.T) {
		var gotOcc *payment.PaymentOccurrence
		called := false
		repo := &fakePaymentRepository{
			createPaymentWithOccurrenceFn: func(ctx context.Context, p *payment.Payment, occ *payment.PaymentOccurrence) error {
				called = true
				gotOcc = occ
				return nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		_, err := svc.CreateOneTimePayment(ctx, &payment.CreateOneTimePaymentRequest{
			UserId:      userID,
			Description: "Reembolso",
			Amount:      amount("120.00"),
			Category:    payment.CategoryOther,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !called {
			t.Fatalf("expected repository call")
		}
		if gotOcc != nil {
			t.Fatalf("unexpected occurrence")
		}
	})

	t.Run("rejects non positive amount", func(t *testing.T) {
		svc := newPaymentService(&fakePaymentRepository{}, day(2026, time.January, 1))
		_, err := svc.CreateOneTimePayment(ctx, &payment.CreateOneTimePaymentRequest{
			UserId:      userID,
			Description: "Conta",
			Amount:      decimal.Zero,
			Category:    payment.CategoryBill,
		})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("rejects account kind without id", func(t *testing.T) {
		svc := newPaymentService(&fakePaymentRepository{}, day(2026, time.January, 1))
		kind := payment.KindBankAccount
		_, err := svc.CreateOneTimePayment(ctx, &payment.CreateOneTimePaymentRequest{
			UserId:          userID,
			Description:     "Conta",
			Amount:          amount("50.00"),
			Category:        payment.CategoryBill,
			FromAccountKind: &kind,
		})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestCreateRecurringPayment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := ulid.Make()

	t.Run("sets next due date and initial occurrence", func(t *testing.T) {
		var gotPayment *payment.Payment
		var gotOcc *payment.PaymentOccurrence
		repo := &fakePaymentRepository{
			createPaymentWithOccurrenceFn: func(ctx context.Context, p *payment.Payment, occ *payment.PaymentOccurrence) error {
				gotPayment = p
				gotOcc = occ
				return nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		start := day(2026, time.January, 31)
		_, err := svc.CreateRecurringPayment(ctx, &payment.CreateRecurringPaymentRequest{
			UserId:      userID,
			Description: "Aluguel",
			Amount:      amount("2500.00"),
			Category:    payment.CategoryBill,
			Frequency:   payment.FrequencyMonthly,
			StartDate:   start,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPayment.NextDueDate == nil {
			t.Fatalf("expected next due date")
		}
		if want := day(2026, time.February, 28); !gotPayment.NextDueDate.Equal(want) {
			t.Fatalf("next due = %v, want %v", gotPayment.NextDueDate, want)
		}
		if gotOcc == nil || !gotOcc.ScheduledDate.Equal(start) {
			t.Fatalf("expected initial occurrence at %v, got %+v", start, gotOcc)
		}
	})

	t.Run("rejects unknown frequency", func(t *testing.T) {
		svc := newPaymentService(&fakePaymentRepository{}, day(2026, time.January, 1))
		_, err := svc.CreateRecurringPayment(ctx, &payment.CreateRecurringPaymentRequest{
			UserId:      userID,
			Description: "Assinatura",
			Amount:      amount("39.90"),
			Category:    payment.CategorySubscription,
			Frequency:   payment.Frequency("fortnightly"),
			StartDate:   day(2026, time.January, 1),
		})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("rejects end date before start", func(t *testing.T) {
		svc := newPaymentService(&fakePaymentRepository{}, day(2026, time.January, 1))
		end := day(2025, time.December, 1)
		_, err := svc.CreateRecurringPayment(ctx, &payment.CreateRecurringPaymentRequest{
			UserId:      userID,
			Description: "Assinatura",
			Amount:      amount("39.90"),
			Category:    payment.CategorySubscription,
			Frequency:   payment.FrequencyMonthly,
			StartDate:   day(2026, time.January, 1),
			EndDate:     &end,
		})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestGenerateOccurrences(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := ulid.Make()
	paymentID := ulid.Make()

	frequency := payment.FrequencyMonthly
	start := day(2026, time.January, 31)
	basePayment := func() *payment.Payment {
		return &payment.Payment{
			Id:        paymentID,
			UserId:    userID,
			Type:      payment.TypeRecurring,
			Amount:    amount("100.00"),
			Frequency: &frequency,
			StartDate: &start,
			IsActive:  true,
		}
	}

	t.Run("anchors series at start date through short months", func(t *testing.T) {
		var persisted []*payment.PaymentOccurrence
		repo := &fakePaymentRepository{
			getPaymentByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*payment.Payment, error) {
				return basePayment(), nil
			},
			createOccurrencesFn: func(ctx context.Context, occs []*payment.PaymentOccurrence) error {
				persisted = occs
				return nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		upTo := day(2026, time.April, 30)
		generated, err := svc.GenerateOccurrences(ctx, paymentID, userID, &upTo)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []time.Time{
			day(2026, time.January, 31),
			day(2026, time.February, 28),
			day(2026, time.March, 31),
			day(2026, time.April, 30),
		}
		if len(generated) != len(want) {
			t.Fatalf("generated %d occurrences, want %d", len(generated), len(want))
		}
		for i, w := range want {
			if !generated[i].ScheduledDate.Equal(w) {
				t.Fatalf("occurrence %d = %v, want %v", i, generated[i].ScheduledDate, w)
			}
			if generated[i].Status != payment.StatusScheduled {
				t.Fatalf("occurrence %d status = %s", i, generated[i].Status)
			}
		}
		if len(persisted) != len(want) {
			t.Fatalf("persisted %d, want %d", len(persisted), len(want))
		}
	})

	t.Run("existing dates are skipped but series continues", func(t *testing.T) {
		repo := &fakePaymentRepository{
			getPaymentByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*payment.Payment, error) {
				return basePayment(), nil
			},
			getOccurrenceDatesFn: func(ctx context.Context, id ulid.ULID) (map[time.Time]struct{}, error) {
				return map[time.Time]struct{}{
					day(2026, time.February, 28): {},
				}, nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		upTo := day(2026, time.April, 30)
		generated, err := svc.GenerateOccurrences(ctx, paymentID, userID, &upTo)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []time.Time{
			day(2026, time.January, 31),
			day(2026, time.March, 31),
			day(2026, time.April, 30),
		}
		if len(generated) != len(want) {
			t.Fatalf("generated %d occurrences, want %d", len(generated), len(want))
		}
		for i, w := range want {
			if !generated[i].ScheduledDate.Equal(w) {
				t.Fatalf("occurrence %d = %v, want %v", i, generated[i].ScheduledDate, w)
			}
		}
	})

	t.Run("skip override omits date without breaking series", func(t *testing.T) {
		target := day(2026, time.February, 28)
		repo := &fakePaymentRepository{
			getPaymentByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*payment.Payment, error) {
				return basePayment(), nil
			},
			getActiveOverridesFn: func(ctx context.Context, id ulid.ULID) ([]*payment.RecurringPaymentOverride, error) {
				return []*payment.RecurringPaymentOverride{
					{
						Type:          payment.OverrideSkip,
						TargetDate:    &target,
						EffectiveDate: day(2026, time.January, 1),
						IsActive:      true,
					},
				}, nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		upTo := day(2026, time.March, 31)
		generated, err := svc.GenerateOccurrences(ctx, paymentID, userID, &upTo)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []time.Time{
			day(2026, time.January, 31),
			day(2026, time.March, 31),
		}
		if len(generated) != len(want) {
			t.Fatalf("generated %d occurrences, want %d", len(generated), len(want))
		}
		for i, w := range want {
			if !generated[i].ScheduledDate.Equal(w) {
				t.Fatalf("occurrence %d = %v, want %v", i, generated[i].ScheduledDate, w)
			}
		}
	})

	t.Run("change_amount override adjusts generated amounts", func(t *testing.T) {
		newAmount := amount("150.00")
		repo := &fakePaymentRepository{
			getPaymentByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*payment.Payment, error) {
				return basePayment(), nil
			},
			getActiveOverridesFn: func(ctx context.Context, id ulid.ULID) ([]*payment.RecurringPaymentOverride, error) {
				return []*payment.RecurringPaymentOverride{
					{
						Type:          payment.OverrideChangeAmount,
						EffectiveDate: day(2026, time.March, 1),
						NewAmount:     &newAmount,
						IsActive:      true,
					},
				}, nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		upTo := day(2026, time.March, 31)
		generated, err := svc.GenerateOccurrences(ctx, paymentID, userID, &upTo)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(generated) != 3 {
			t.Fatalf("generated %d occurrences, want 3", len(generated))
		}
		if !generated[0].Amount.Equal(amount("100.00")) {
			t.Fatalf("january amount = %s", generated[0].Amount)
		}
		if !generated[1].Amount.Equal(amount("100.00")) {
			t.Fatalf("february amount = %s", generated[1].Amount)
		}
		if !generated[2].Amount.Equal(newAmount) {
			t.Fatalf("march amount = %s, want %s", generated[2].Amount, newAmount)
		}
	})

	t.Run("end date truncates the horizon", func(t *testing.T) {
		end := day(2026, time.February, 28)
		repo := &fakePaymentRepository{
			getPaymentByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*payment.Payment, error) {
				p := basePayment()
				p.EndDate = &end
				return p, nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		upTo := day(2026, time.December, 31)
		generated, err := svc.GenerateOccurrences(ctx, paymentID, userID, &upTo)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(generated) != 2 {
			t.Fatalf("generated %d occurrences, want 2", len(generated))
		}
	})

	t.Run("inactive payment generates nothing", func(t *testing.T) {
		called := false
		repo := &fakePaymentRepository{
			getPaymentByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*payment.Payment, error) {
				p := basePayment()
				p.IsActive = false
				return p, nil
			},
			createOccurrencesFn: func(ctx context.Context, occs []*payment.PaymentOccurrence) error {
				called = true
				return nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		generated, err := svc.GenerateOccurrences(ctx, paymentID, userID, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(generated) != 0 {
			t.Fatalf("generated %d occurrences, want 0", len(generated))
		}
		if called {
			t.Fatalf("unexpected persistence call")
		}
	})

	t.Run("one time payment is rejected", func(t *testing.T) {
		repo := &fakePaymentRepository{
			getPaymentByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*payment.Payment, error) {
				return &payment.Payment{
					Id:     paymentID,
					UserId: userID,
					Type:   payment.TypeOneTime,
					Amount: amount("100.00"),
				}, nil
			},
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		_, err := svc.GenerateOccurrences(ctx, paymentID, userID, nil)
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestCreateOverrideValidations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := ulid.Make()
	paymentID := ulid.Make()

	frequency := payment.FrequencyMonthly
	start := day(2026, time.January, 1)
	recurring := &payment.Payment{
		Id:        paymentID,
		UserId:    userID,
		Type:      payment.TypeRecurring,
		Amount:    amount("100.00"),
		Frequency: &frequency,
		StartDate: &start,
		IsActive:  true,
	}

	repoFor := func(p *payment.Payment) *fakePaymentRepository {
		return &fakePaymentRepository{
			getPaymentByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*payment.Payment, error) {
				return p, nil
			},
		}
	}

	t.Run("rejects override on one time payment", func(t *testing.T) {
		oneTime := &payment.Payment{Id: paymentID, UserId: userID, Type: payment.TypeOneTime, Amount: amount("10.00")}
		svc := newPaymentService(repoFor(oneTime), day(2026, time.January, 1))
		_, err := svc.CreateOverride(ctx, paymentID, userID, &payment.CreateOverrideRequest{
			Type:          payment.OverrideSkip,
			EffectiveDate: day(2026, time.February, 1),
		})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("change_amount requires new amount", func(t *testing.T) {
		svc := newPaymentService(repoFor(recurring), day(2026, time.January, 1))
		_, err := svc.CreateOverride(ctx, paymentID, userID, &payment.CreateOverrideRequest{
			Type:          payment.OverrideChangeAmount,
			EffectiveDate: day(2026, time.February, 1),
		})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("creates active skip override", func(t *testing.T) {
		var created *payment.RecurringPaymentOverride
		repo := repoFor(recurring)
		repo.createOverrideFn = func(ctx context.Context, o *payment.RecurringPaymentOverride) error {
			created = o
			return nil
		}
		svc := newPaymentService(repo, day(2026, time.January, 1))

		_, err := svc.CreateOverride(ctx, paymentID, userID, &payment.CreateOverrideRequest{
			Type:          payment.OverrideSkip,
			EffectiveDate: day(2026, time.February, 1),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil || !created.IsActive {
			t.Fatalf("expected active override, got %+v", created)
		}
	})
}

func TestUpdatePaymentRecomputesNextDueDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := ulid.Make()
	paymentID := ulid.Make()

	frequency := payment.FrequencyMonthly
	start := day(2026, time.January, 31)
	var updated *payment.Payment
	repo := &fakePaymentRepository{
		getPaymentByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*payment.Payment, error) {
			return &payment.Payment{
				Id:        paymentID,
				UserId:    userID,
				Type:      payment.TypeRecurring,
				Amount:    amount("100.00"),
				Frequency: &frequency,
				StartDate: &start,
				IsActive:  true,
			}, nil
		},
		updatePaymentFn: func(ctx context.Context, p *payment.Payment) error {
			updated = p
			return nil
		},
	}
	svc := newPaymentService(repo, day(2026, time.January, 1))

	weekly := payment.FrequencyWeekly
	err := svc.UpdatePayment(ctx, paymentID, userID, &payment.UpdatePaymentRequest{
		Frequency: &weekly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.NextDueDate == nil {
		t.Fatalf("expected updated payment with next due date")
	}
	if want := day(2026, time.February, 7); !updated.NextDueDate.Equal(want) {
		t.Fatalf("next due = %v, want %v", updated.NextDueDate, want)
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code)
	}
}
