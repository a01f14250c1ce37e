package user

import (
	"context"
	"errors"

	userdomain "trip-planner-go/internal/domain/user"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, account *userdomain.User) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id uint) (*userdomain.User, error) {
	var account userdomain.User
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var account userdomain.User
	if err := r.db.WithContext(ctx).First(&account, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	var account userdomain.User
	if err := r.db.WithContext(ctx).First(&account, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) CountUsersByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userdomain.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountUsersByUsername(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userdomain.User{}).Where("username = ?", username).Count(&count).Error
	return count, err
}
