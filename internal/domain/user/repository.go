package user

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	// Delete remove o usuário e, em cascata explícita, todos os dados
	// financeiros de sua propriedade.
	Delete(ctx context.Context, userID ulid.ULID) error
	GetByID(ctx context.Context, userID ulid.ULID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
