package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/period"
	"github.com/medforce/fieldtrack/internal/target/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, target *domain.Target) error {
	return db.WithContext(ctx).Create(target).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, target *domain.Target) error {
	return db.WithContext(ctx).Save(target).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Target, error) {
	var target domain.Target
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&target).Error
	if err != nil {
		return nil, err
	}
	if target.ID == 0 {
		return nil, nil
	}
	return &target, nil
}

func (r *repo) FindByNaturalKey(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period) (*domain.Target, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Target{}).
		Where("rep_id = ? AND period_month = ? AND period_year = ?", repID, p.Month, p.Year)
	if productID != nil {
		stmt = stmt.Where("product_id = ?", *productID)
	} else {
		stmt = stmt.Where("product_id IS NULL")
	}

	var target domain.Target
	if err := stmt.Limit(1).Find(&target).Error; err != nil {
		return nil, err
	}
	if target.ID == 0 {
		return nil, nil
	}
	return &target, nil
}

func (r *repo) DeleteByID(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Target{}).Error
}

func (r *repo) ListByPeriod(ctx context.Context, db *gorm.DB, p period.Period) ([]domain.Target, error) {
	var targets []domain.Target
	err := db.WithContext(ctx).
		Model(&domain.Target{}).
		Where("period_month = ? AND period_year = ?", p.Month, p.Year).
		Order("rep_id asc, id asc").
		Find(&targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}

func (r *repo) ListByRepresentativeAndPeriod(ctx context.Context, db *gorm.DB, repID snowflake.ID, p period.Period) ([]domain.Target, error) {
	var targets []domain.Target
	err := db.WithContext(ctx).
		Model(&domain.Target{}).
		Where("rep_id = ? AND period_month = ? AND period_year = ?", repID, p.Month, p.Year).
		Order("id asc").
		Find(&targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}
