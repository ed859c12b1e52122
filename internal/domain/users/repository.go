package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, a Account) error
	FindByUsername(ctx context.Context, username string) (Account, error)
	List(ctx context.Context) ([]Account, error)
}
