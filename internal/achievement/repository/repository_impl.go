package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/achievement/domain"
	"github.com/medforce/fieldtrack/internal/period"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func naturalKey(db *gorm.DB, ctx context.Context, repID snowflake.ID, productID *snowflake.ID, p period.Period) *gorm.DB {
	stmt := db.WithContext(ctx).
		Model(&domain.Achievement{}).
		Where("rep_id = ? AND period_month = ? AND period_year = ?", repID, p.Month, p.Year)
	if productID != nil {
		return stmt.Where("product_id = ?", *productID)
	}
	return stmt.Where("product_id IS NULL")
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, achievement *domain.Achievement) error {
	return db.WithContext(ctx).Create(achievement).Error
}

func (r *repo) FindByNaturalKey(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period) (*domain.Achievement, error) {
	var achievement domain.Achievement
	err := naturalKey(db, ctx, repID, productID, p).
		Limit(1).
		Find(&achievement).Error
	if err != nil {
		return nil, err
	}
	if achievement.ID == 0 {
		return nil, nil
	}
	return &achievement, nil
}

func (r *repo) AddUnits(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period, units int, remarks string, at time.Time) (int64, error) {
	res := naturalKey(db, ctx, repID, productID, p).
		Updates(map[string]any{
			"achieved_units": gorm.Expr("achieved_units + ?", units),
			"remarks":        remarks,
			"achieved_at":    at,
		})
	return res.RowsAffected, res.Error
}

func (r *repo) SetUnits(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period, units int) (int64, error) {
	res := naturalKey(db, ctx, repID, productID, p).
		Update("achieved_units", units)
	return res.RowsAffected, res.Error
}

func (r *repo) SumUnits(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period) (int, error) {
	var total struct {
		Units int `gorm:"column:units"`
	}
	err := naturalKey(db, ctx, repID, productID, p).
		Select("COALESCE(SUM(achieved_units), 0) AS units").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total.Units, nil
}
