package repository

import (
	"context"
	"errors"

	"estate-chat/internal/domain"
	chat_errors "estate-chat/pkg/errors"

	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, chat_errors.ErrNotFound
		}
		return domain.User{}, chat_errors.WrapStorage(err)
	}
	return user, nil
}
