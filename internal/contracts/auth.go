package contracts

import "github.com/DanielUlisses/organizador-financeiro/internal/domain/user"

type AuthenticationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthenticationResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

type RegistrationRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegistrationResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}
