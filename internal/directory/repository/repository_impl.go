package repository

import (
	"context"

	"github.com/medforce/fieldtrack/internal/directory/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, role, assigned_manager
		 FROM users WHERE LOWER(email) = LOWER(?)`,
		email,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, role, assigned_manager
		 FROM users WHERE LOWER(name) = LOWER(?)`,
		name,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) ListByAssignedManager(ctx context.Context, db *gorm.DB, manager string) ([]domain.User, error) {
	var users []domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, role, assigned_manager
		 FROM users WHERE LOWER(assigned_manager) = LOWER(?)`,
		manager,
	).Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
