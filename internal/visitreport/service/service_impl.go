package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/period"
	"github.com/medforce/fieldtrack/internal/visitreport/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Adapter {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("visitreport.adapter"),
		repo: p.Repo,
	}
}

func (s *Service) CountVisits(ctx context.Context, repName string, p period.Period) (int, error) {
	reports, err := s.inPeriod(ctx, repName, p)
	if err != nil {
		return 0, err
	}
	return len(reports), nil
}

func (s *Service) SumSampleUnits(ctx context.Context, repName string, productID *snowflake.ID, productName string, p period.Period) (int, error) {
	reports, err := s.inPeriod(ctx, repName, p)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, report := range reports {
		for _, item := range report.Samples {
			if matchesProduct(item, productID, productName) {
				total += item.Quantity
			}
		}
	}
	return total, nil
}

func (s *Service) inPeriod(ctx context.Context, repName string, p period.Period) ([]domain.VisitReport, error) {
	reports, err := s.repo.ListByRepName(ctx, s.db, repName)
	if err != nil {
		return nil, err
	}

	matched := reports[:0]
	for _, report := range reports {
		date, ok := period.ParseReportDate(report.ReportedAt)
		if !ok {
			s.log.Debug("skipping report with unparseable timestamp",
				zap.String("report_id", report.ID.String()),
				zap.String("reported_at", report.ReportedAt),
			)
			continue
		}
		if p.Contains(date) {
			matched = append(matched, report)
		}
	}
	return matched, nil
}

// matchesProduct keeps the id-preferred, name-fallback rule: the reporting
// app populates sample product ids inconsistently, so a target that knows its
// product id matches on that alone, while id-less targets match by name.
func matchesProduct(item domain.SampleItem, productID *snowflake.ID, productName string) bool {
	if productID != nil {
		return item.ProductID == productID.String()
	}
	return strings.EqualFold(item.ProductName, productName)
}
