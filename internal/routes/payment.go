package routes

import (
	"net/http"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/contracts"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func (h *Handler) CreatePayment(c *gin.Context) {
	var body contracts.PaymentCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	fromKind, fromID, err := parseAccountRef(body.FromAccountKind, body.FromAccountId, "from_account_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	toKind, toID, err := parseAccountRef(body.ToAccountKind, body.ToAccountId, "to_account_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	var created *payment.Payment
	switch payment.PaymentType(body.Type) {
	case payment.TypeRecurring:
		if body.Frequency == nil || body.StartDate == nil {
			h.respondError(c, appErrors.NewValidationError("frequency", "pagamento recorrente exige frequência e data de início"))
			return
		}
		created, err = h.PaymentService.CreateRecurringPayment(ctx, &payment.CreateRecurringPaymentRequest{
			UserId:          userID,
			Description:     body.Description,
			Amount:          body.Amount,
			Currency:        body.Currency,
			Category:        payment.Category(body.Category),
			FromAccountKind: fromKind,
			FromAccountId:   fromID,
			ToAccountKind:   toKind,
			ToAccountId:     toID,
			Frequency:       payment.Frequency(*body.Frequency),
			StartDate:       *body.StartDate,
			EndDate:         body.EndDate,
			Notes:           body.Notes,
		})
	default:
		created, err = h.PaymentService.CreateOneTimePayment(ctx, &payment.CreateOneTimePaymentRequest{
			UserId:          userID,
			Description:     body.Description,
			Amount:          body.Amount,
			Currency:        body.Currency,
			Category:        payment.Category(body.Category),
			FromAccountKind: fromKind,
			FromAccountId:   fromID,
			ToAccountKind:   toKind,
			ToAccountId:     toID,
			DueDate:         body.DueDate,
			Notes:           body.Notes,
		})
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PaymentCreateResponse{
		Message: "Pagamento criado com sucesso",
		Payment: created,
	})
}

func (h *Handler) ListPayments(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filter := &payment.PaymentFilter{}
	if t := c.Query("type"); t != "" {
		paymentType := payment.PaymentType(t)
		filter.Type = &paymentType
	}
	if s := c.Query("status"); s != "" {
		status := payment.Status(s)
		filter.Status = &status
	}
	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		h.respondError(c, err)
		return
	}
	filter.DateFrom = dateFrom
	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		h.respondError(c, err)
		return
	}
	filter.DateTo = dateTo

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	payments, total, err := h.PaymentService.ListPayments(ctx, userID, filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(payments, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetPayment(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	p, err := h.PaymentService.GetPaymentByID(ctx, paymentID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PaymentSingleResponse{Payment: p})
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.PaymentUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	req := &payment.UpdatePaymentRequest{
		Description:    body.Description,
		Amount:         body.Amount,
		DueDate:        body.DueDate,
		StartDate:      body.StartDate,
		EndDate:        body.EndDate,
		Notes:          body.Notes,
		ProcessedDate:  body.ProcessedDate,
		ReconciledDate: body.ReconciledDate,
		IsActive:       body.IsActive,
	}
	if body.Category != nil {
		category := payment.Category(*body.Category)
		req.Category = &category
	}
	if body.Status != nil {
		status := payment.Status(*body.Status)
		req.Status = &status
	}
	if body.Frequency != nil {
		frequency := payment.Frequency(*body.Frequency)
		req.Frequency = &frequency
	}

	ctx := c.Request.Context()
	if err := h.PaymentService.UpdatePayment(ctx, paymentID, userID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pagamento atualizado com sucesso"})
}

func (h *Handler) DeletePayment(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.PaymentService.DeletePayment(ctx, paymentID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pagamento removido com sucesso"})
}

func (h *Handler) CreateOccurrence(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.OccurrenceCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	req := &payment.CreateOccurrenceRequest{
		ScheduledDate: body.ScheduledDate,
		DueDate:       body.DueDate,
		Amount:        body.Amount,
		Notes:         body.Notes,
	}
	if body.Status != nil {
		status := payment.Status(*body.Status)
		req.Status = &status
	}

	ctx := c.Request.Context()
	occurrence, err := h.PaymentService.CreateOccurrence(ctx, paymentID, userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.OccurrenceCreateResponse{
		Message:    "Ocorrência criada com sucesso",
		Occurrence: occurrence,
	})
}

func (h *Handler) ListOccurrences(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var status *payment.Status
	if s := c.Query("status"); s != "" {
		parsed := payment.Status(s)
		status = &parsed
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		h.respondError(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	occurrences, err := h.PaymentService.GetOccurrences(ctx, paymentID, userID, status, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.OccurrenceListResponse{
		Occurrences: occurrences,
		Total:       len(occurrences),
	})
}

func (h *Handler) ListUpcomingOccurrences(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		h.respondError(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if from == nil || to == nil {
		h.respondError(c, appErrors.NewValidationError("from", "parâmetros from e to são obrigatórios"))
		return
	}

	ctx := c.Request.Context()
	occurrences, err := h.PaymentService.GetOccurrencesInRange(ctx, userID, *from, *to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.OccurrenceListResponse{
		Occurrences: occurrences,
		Total:       len(occurrences),
	})
}

func (h *Handler) UpdateOccurrence(c *gin.Context) {
	occurrenceID, err := pkg.ParseULID(c.Param("occurrenceId"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("occurrenceId", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.OccurrenceUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	req := &payment.UpdateOccurrenceRequest{
		ScheduledDate:  body.ScheduledDate,
		DueDate:        body.DueDate,
		Amount:         body.Amount,
		ProcessedDate:  body.ProcessedDate,
		ReconciledDate: body.ReconciledDate,
		Notes:          body.Notes,
	}
	if body.Status != nil {
		status := payment.Status(*body.Status)
		req.Status = &status
	}

	ctx := c.Request.Context()
	if err := h.PaymentService.UpdateOccurrence(ctx, occurrenceID, userID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ocorrência atualizada com sucesso"})
}

func (h *Handler) DeleteOccurrence(c *gin.Context) {
	occurrenceID, err := pkg.ParseULID(c.Param("occurrenceId"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("occurrenceId", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.PaymentService.DeleteOccurrence(ctx, occurrenceID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ocorrência removida com sucesso"})
}

func (h *Handler) GenerateOccurrences(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.OccurrenceGenerateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			h.respondError(c, appErrors.ErrBadRequest.WithError(err))
			return
		}
	}

	ctx := c.Request.Context()
	generated, err := h.PaymentService.GenerateOccurrences(ctx, paymentID, userID, body.UpTo)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.OccurrenceGenerateResponse{
		Message:     "Ocorrências geradas com sucesso",
		Generated:   len(generated),
		Occurrences: generated,
	})
}

func (h *Handler) CreateOverride(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.OverrideCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	req := &payment.CreateOverrideRequest{
		Type:            payment.OverrideType(body.Type),
		TargetDate:      body.TargetDate,
		EffectiveDate:   body.EffectiveDate,
		EndDate:         body.EndDate,
		OccurrenceCount: body.OccurrenceCount,
		NewAmount:       body.NewAmount,
		NewDueDate:      body.NewDueDate,
		Notes:           body.Notes,
	}

	ctx := c.Request.Context()
	override, err := h.PaymentService.CreateOverride(ctx, paymentID, userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.OverrideCreateResponse{
		Message:  "Exceção de recorrência criada com sucesso",
		Override: override,
	})
}

func (h *Handler) ListOverrides(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	overrides, err := h.PaymentService.GetOverrides(ctx, paymentID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.OverrideListResponse{
		Overrides: overrides,
		Total:     len(overrides),
	})
}

func (h *Handler) UpdateOverride(c *gin.Context) {
	overrideID, err := pkg.ParseULID(c.Param("overrideId"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("overrideId", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.OverrideUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	req := &payment.UpdateOverrideRequest{
		TargetDate:    body.TargetDate,
		EffectiveDate: body.EffectiveDate,
		EndDate:       body.EndDate,
		NewAmount:     body.NewAmount,
		NewDueDate:    body.NewDueDate,
		IsActive:      body.IsActive,
		Notes:         body.Notes,
	}

	ctx := c.Request.Context()
	if err := h.PaymentService.UpdateOverride(ctx, overrideID, userID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exceção de recorrência atualizada com sucesso"})
}

func (h *Handler) DeleteOverride(c *gin.Context) {
	overrideID, err := pkg.ParseULID(c.Param("overrideId"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("overrideId", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.PaymentService.DeleteOverride(ctx, overrideID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exceção de recorrência removida com sucesso"})
}

func parseAccountRef(kind, id *string, field string) (*payment.AccountKind, *ulid.ULID, error) {
	if kind == nil && id == nil {
		return nil, nil, nil
	}
	if kind == nil || id == nil {
		return nil, nil, appErrors.NewValidationError(field, "tipo e id da conta devem ser informados juntos")
	}
	parsed, err := pkg.ParseULID(*id)
	if err != nil {
		return nil, nil, appErrors.NewValidationError(field, "formato invalido")
	}
	accountKind := payment.AccountKind(*kind)
	return &accountKind, &parsed, nil
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, appErrors.NewValidationError(name, "data deve estar no formato YYYY-MM-DD")
	}
	return &parsed, nil
}
