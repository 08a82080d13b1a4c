package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	achievementdomain "github.com/medforce/fieldtrack/internal/achievement/domain"
	"github.com/medforce/fieldtrack/internal/clock"
	inventorydomain "github.com/medforce/fieldtrack/internal/inventory/domain"
	"github.com/medforce/fieldtrack/internal/period"
	"github.com/medforce/fieldtrack/internal/target/domain"
	visitreportdomain "github.com/medforce/fieldtrack/internal/visitreport/domain"
	"github.com/medforce/fieldtrack/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	Stock        inventorydomain.Gate
	Achievements achievementdomain.Service
	VisitReports visitreportdomain.Adapter
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	stock        inventorydomain.Gate
	achievements achievementdomain.Service
	visitReports visitreportdomain.Adapter
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("target.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		stock:        p.Stock,
		achievements: p.Achievements,
		visitReports: p.VisitReports,
	}
}

func (s *Service) Assign(ctx context.Context, req domain.AssignRequest) (domain.Target, error) {
	if req.RepID == 0 {
		return domain.Target{}, domain.ErrInvalidRepresentative
	}
	if strings.TrimSpace(req.RepName) == "" {
		return domain.Target{}, domain.ErrInvalidRepresentative
	}
	if req.TargetUnits < 1 {
		return domain.Target{}, domain.ErrInvalidUnits
	}
	if err := req.Period.Validate(); err != nil {
		return domain.Target{}, err
	}

	category := req.Category
	if category == "" {
		category = domain.CategoryProduct
	}
	switch category {
	case domain.CategoryProduct:
		if req.ProductID == nil {
			return domain.Target{}, domain.ErrInvalidProduct
		}
	case domain.CategoryVisit:
		// Visit targets track activity counts, not consumable inventory;
		// they never consult the stock gate.
	default:
		return domain.Target{}, domain.ErrInvalidCategory
	}

	assignedBy := strings.TrimSpace(req.AssignedBy)
	if category == domain.CategoryProduct && assignedBy != "" {
		if err := s.stock.Authorize(ctx, assignedBy, *req.ProductID, req.TargetUnits); err != nil {
			return domain.Target{}, err
		}
	}

	now := s.clock.Now()
	var out domain.Target
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByNaturalKey(ctx, tx, req.RepID, req.ProductID, req.Period)
		if err != nil {
			return err
		}
		if existing != nil {
			applyAssign(existing, req, category, assignedBy, now)
			if err := s.repo.Update(ctx, tx, existing); err != nil {
				return err
			}
			out = *existing
			return nil
		}

		target := domain.Target{
			ID:          s.genID.Generate(),
			RepID:       req.RepID,
			PeriodMonth: req.Period.Month,
			PeriodYear:  req.Period.Year,
			ProductID:   req.ProductID,
			TargetType:  domain.TargetTypeMonthly,
		}
		applyAssign(&target, req, category, assignedBy, now)
		if err := s.repo.Insert(ctx, tx, &target); err != nil {
			// Another assignment won the insert for this key; update it instead.
			if db.IsDuplicateKeyErr(err) {
				winner, findErr := s.repo.FindByNaturalKey(ctx, tx, req.RepID, req.ProductID, req.Period)
				if findErr != nil {
					return findErr
				}
				if winner == nil {
					return err
				}
				applyAssign(winner, req, category, assignedBy, now)
				if updErr := s.repo.Update(ctx, tx, winner); updErr != nil {
					return updErr
				}
				out = *winner
				return nil
			}
			return err
		}
		out = target
		return nil
	})
	if err != nil {
		return domain.Target{}, err
	}
	return out, nil
}

func applyAssign(target *domain.Target, req domain.AssignRequest, category domain.Category, assignedBy string, now time.Time) {
	target.RepName = req.RepName
	target.ProductName = req.ProductName
	target.Category = category
	target.TargetUnits = req.TargetUnits
	target.AssignedBy = assignedBy
	target.AssignedAt = now
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.Target, error) {
	target, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Target{}, err
	}
	if target == nil {
		return domain.Target{}, domain.ErrNotFound
	}
	return *target, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	return s.repo.DeleteByID(ctx, s.db, id)
}

func (s *Service) ListByPeriod(ctx context.Context, p period.Period) ([]domain.Target, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListByPeriod(ctx, s.db, p)
}

func (s *Service) ListByRepresentative(ctx context.Context, repID snowflake.ID, p period.Period) ([]domain.Target, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListByRepresentativeAndPeriod(ctx, s.db, repID, p)
}

func (s *Service) Override(ctx context.Context, id snowflake.ID, req domain.OverrideRequest) (domain.Target, error) {
	target, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Target{}, err
	}
	if target == nil {
		return domain.Target{}, domain.ErrNotFound
	}

	if req.TargetUnits != nil {
		if *req.TargetUnits < 1 {
			return domain.Target{}, domain.ErrInvalidUnits
		}
		target.TargetUnits = *req.TargetUnits
		if err := s.repo.Update(ctx, s.db, target); err != nil {
			return domain.Target{}, err
		}
	}

	if req.AchievedUnits != nil {
		if *req.AchievedUnits < 0 {
			return domain.Target{}, achievementdomain.ErrInvalidUnits
		}
		if err := s.overrideAchieved(ctx, *target, *req.AchievedUnits); err != nil {
			return domain.Target{}, err
		}
	}

	return *target, nil
}

// overrideAchieved adjusts the manual achievement row so the blended total
// (field-reported units plus manual units) lands on the requested figure.
// Field-reported units cannot be changed, so the manual share is clamped at 0.
func (s *Service) overrideAchieved(ctx context.Context, target domain.Target, desired int) error {
	p := target.Period()

	var reported int
	var err error
	if target.Category == domain.CategoryVisit {
		reported, err = s.visitReports.CountVisits(ctx, target.RepName, p)
	} else {
		reported, err = s.visitReports.SumSampleUnits(ctx, target.RepName, target.ProductID, target.ProductName, p)
	}
	if err != nil {
		return err
	}

	manual := desired - reported
	if manual < 0 {
		manual = 0
	}

	_, err = s.achievements.Set(ctx, achievementdomain.SetRequest{
		RepID:         target.RepID,
		RepName:       target.RepName,
		ProductID:     target.ProductID,
		ProductName:   target.ProductName,
		AchievedUnits: manual,
		Period:        p,
		Remarks:       "Manager Override",
	})
	return err
}
