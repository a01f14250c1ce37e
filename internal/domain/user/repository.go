package user

import "context"

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CountUsersByEmail(ctx context.Context, email string) (int64, error)
	CountUsersByUsername(ctx context.Context, username string) (int64, error)
}
