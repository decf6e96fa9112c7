package routes

import (
	"net/http"

	"github.com/DanielUlisses/organizador-financeiro/internal/contracts"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/auth"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/user"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Authenticate(c *gin.Context) {
	var body contracts.AuthenticationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	ctx := c.Request.Context()
	entity, err := h.AuthService.Login(ctx, auth.Login{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(entity.Id.String())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AuthenticationResponse{
		Token: token,
		User:  entity,
	})
}

func (h *Handler) Registration(c *gin.Context) {
	var body contracts.RegistrationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	entity := &user.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	}

	ctx := c.Request.Context()
	if err := h.AuthService.Register(ctx, entity); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.RegistrationResponse{
		Message: "Usuário cadastrado com sucesso",
		User:    entity,
	})
}
