package routes

import (
	"net/http"

	"github.com/DanielUlisses/organizador-financeiro/internal/contracts"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/bankaccount"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateBankAccount(c *gin.Context) {
	var body contracts.BankAccountCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := &bankaccount.CreateAccountRequest{
		UserId:         userID,
		Name:           body.Name,
		Type:           bankaccount.AccountType(body.Type),
		BankName:       body.BankName,
		LastFourDigits: body.LastFourDigits,
		InitialBalance: body.InitialBalance,
		Currency:       body.Currency,
	}

	ctx := c.Request.Context()
	account, err := h.AccountService.CreateAccount(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.BankAccountCreateResponse{
		Message: "Conta bancária criada com sucesso",
		Account: account,
	})
}

func (h *Handler) ListBankAccounts(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	accounts, total, err := h.AccountService.ListAccounts(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(accounts, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetBankAccount(c *gin.Context) {
	accountID, err := pkg.ParseULID(c.Param("id"))
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
	account, err := h.AccountService.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BankAccountSingleResponse{Account: account})
}

func (h *Handler) UpdateBankAccount(c *gin.Context) {
	accountID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.BankAccountUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	req := &bankaccount.UpdateAccountRequest{
		Name:           body.Name,
		BankName:       body.BankName,
		LastFourDigits: body.LastFourDigits,
		Balance:        body.Balance,
		IsActive:       body.IsActive,
	}
	if body.Type != nil {
		accountType := bankaccount.AccountType(*body.Type)
		req.Type = &accountType
	}

	ctx := c.Request.Context()
	if err := h.AccountService.UpdateAccount(ctx, accountID, userID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conta bancária atualizada com sucesso"})
}

func (h *Handler) DeleteBankAccount(c *gin.Context) {
	accountID, err := pkg.ParseULID(c.Param("id"))
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
	if err := h.AccountService.DeleteAccount(ctx, accountID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conta bancária removida com sucesso"})
}

func (h *Handler) GetTotalBalance(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	total, err := h.AccountService.GetTotalBalance(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BankAccountTotalBalanceResponse{TotalBalance: total})
}
