package routes

import (
	"net/http"

	"github.com/DanielUlisses/organizador-financeiro/internal/contracts"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/creditcard"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func (h *Handler) CreateCreditCard(c *gin.Context) {
	var body contracts.CreditCardCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	defaultAccount, err := parseOptionalULID(body.DefaultPaymentAccountId, "default_payment_account_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := &creditcard.CreateCardRequest{
		UserId:                  userID,
		Name:                    body.Name,
		Brand:                   creditcard.CardBrand(body.Brand),
		CreditLimit:             body.CreditLimit,
		Currency:                body.Currency,
		InvoiceCloseDay:         body.InvoiceCloseDay,
		PaymentDueDay:           body.PaymentDueDay,
		DefaultPaymentAccountId: defaultAccount,
		LastFourDigits:          body.LastFourDigits,
	}

	ctx := c.Request.Context()
	card, err := h.CreditCardService.CreateCard(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CreditCardCreateResponse{
		Message:    "Cartão de crédito criado com sucesso",
		CreditCard: card,
	})
}

func (h *Handler) ListCreditCards(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	cards, total, err := h.CreditCardService.ListCards(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(cards, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetCreditCard(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
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
	card, err := h.CreditCardService.GetCardByID(ctx, cardID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CreditCardSingleResponse{CreditCard: card})
}

func (h *Handler) UpdateCreditCard(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CreditCardUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	defaultAccount, err := parseOptionalULID(body.DefaultPaymentAccountId, "default_payment_account_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := &creditcard.UpdateCardRequest{
		Name:                    body.Name,
		CreditLimit:             body.CreditLimit,
		InvoiceCloseDay:         body.InvoiceCloseDay,
		PaymentDueDay:           body.PaymentDueDay,
		DefaultPaymentAccountId: defaultAccount,
		LastFourDigits:          body.LastFourDigits,
		IsActive:                body.IsActive,
	}
	if body.Brand != nil {
		brand := creditcard.CardBrand(*body.Brand)
		req.Brand = &brand
	}

	ctx := c.Request.Context()
	if err := h.CreditCardService.UpdateCard(ctx, cardID, userID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cartão de crédito atualizado com sucesso"})
}

func (h *Handler) DeleteCreditCard(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
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
	if err := h.CreditCardService.DeleteCard(ctx, cardID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cartão de crédito removido com sucesso"})
}

func (h *Handler) UpdateCreditCardBalance(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CreditCardBalanceUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.CreditCardService.UpdateBalance(ctx, cardID, userID, body.Balance); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Saldo do cartão atualizado com sucesso"})
}

func (h *Handler) GetTotalDebt(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	totalDebt, err := h.CreditCardService.GetTotalDebt(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CreditCardTotalDebtResponse{TotalDebt: totalDebt})
}

func (h *Handler) GetBillingCycle(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	reference, err := parseDateQuery(c, "reference")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	cycle, err := h.CreditCardService.GetBillingCycle(ctx, cardID, userID, reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BillingCycleResponse{Cycle: cycle})
}

func (h *Handler) GetStatement(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	reference, err := parseDateQuery(c, "reference")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	statement, err := h.CreditCardService.GetStatementSummary(ctx, cardID, userID, reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.StatementResponse{Statement: statement})
}

func (h *Handler) GetInvoiceHistory(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	months := 6
	if raw := c.Query("months"); raw != "" {
		if parsed, err := pkg.ParseInt(raw); err == nil {
			months = parsed
		}
	}

	ctx := c.Request.Context()
	invoices, err := h.CreditCardService.GetInvoiceHistory(ctx, cardID, userID, months)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InvoiceHistoryResponse{
		Invoices: invoices,
		Total:    len(invoices),
	})
}

func (h *Handler) SyncPlannedPayments(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
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
	if err := h.CreditCardService.SyncPlannedPayments(ctx, cardID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PlannedPaymentsSyncResponse{
		Message: "Pagamentos planejados sincronizados com sucesso",
	})
}

func parseOptionalULID(raw *string, field string) (*ulid.ULID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := pkg.ParseULID(*raw)
	if err != nil {
		return nil, appErrors.NewValidationError(field, "formato invalido")
	}
	return &parsed, nil
}
