package repository

import (
	"context"

	"github.com/medforce/fieldtrack/internal/visitreport/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListByRepName(ctx context.Context, db *gorm.DB, repName string) ([]domain.VisitReport, error) {
	var reports []domain.VisitReport
	err := db.WithContext(ctx).
		Model(&domain.VisitReport{}).
		Preload("Samples").
		Where("LOWER(rep_name) = LOWER(?)", repName).
		Order("id asc").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
