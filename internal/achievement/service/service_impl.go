package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/achievement/domain"
	"github.com/medforce/fieldtrack/internal/clock"
	"github.com/medforce/fieldtrack/internal/period"
	targetdomain "github.com/medforce/fieldtrack/internal/target/domain"
	"github.com/medforce/fieldtrack/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Targets targetdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	targets targetdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("achievement.recorder"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		targets: p.Targets,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordRequest) (domain.Achievement, error) {
	if req.RepID == 0 {
		return domain.Achievement{}, targetdomain.ErrInvalidRepresentative
	}
	if req.AchievedUnits < 0 {
		return domain.Achievement{}, domain.ErrInvalidUnits
	}
	if err := req.Period.Validate(); err != nil {
		return domain.Achievement{}, err
	}

	now := s.clock.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.AddUnits(ctx, tx, req.RepID, req.ProductID, req.Period, req.AchievedUnits, req.Remarks, now)
		if err != nil {
			return err
		}
		if affected > 0 {
			return nil
		}

		row := domain.Achievement{
			ID:            s.genID.Generate(),
			RepID:         req.RepID,
			ProductID:     req.ProductID,
			AchievedUnits: req.AchievedUnits,
			PeriodMonth:   req.Period.Month,
			PeriodYear:    req.Period.Year,
			Remarks:       req.Remarks,
			AchievedAt:    now,
		}
		s.backfillNames(ctx, tx, &row)

		if err := s.repo.Insert(ctx, tx, &row); err != nil {
			// Lost the insert race for this key; fold into the winner.
			if db.IsDuplicateKeyErr(err) {
				_, retryErr := s.repo.AddUnits(ctx, tx, req.RepID, req.ProductID, req.Period, req.AchievedUnits, req.Remarks, now)
				return retryErr
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Achievement{}, err
	}

	stored, err := s.repo.FindByNaturalKey(ctx, s.db, req.RepID, req.ProductID, req.Period)
	if err != nil {
		return domain.Achievement{}, err
	}
	if stored == nil {
		return domain.Achievement{}, gorm.ErrRecordNotFound
	}
	return *stored, nil
}

func (s *Service) SumFor(ctx context.Context, repID snowflake.ID, productID *snowflake.ID, p period.Period) (int, error) {
	return s.repo.SumUnits(ctx, s.db, repID, productID, p)
}

func (s *Service) Set(ctx context.Context, req domain.SetRequest) (domain.Achievement, error) {
	if req.AchievedUnits < 0 {
		req.AchievedUnits = 0
	}
	if err := req.Period.Validate(); err != nil {
		return domain.Achievement{}, err
	}

	now := s.clock.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.SetUnits(ctx, tx, req.RepID, req.ProductID, req.Period, req.AchievedUnits)
		if err != nil {
			return err
		}
		if affected > 0 {
			return nil
		}

		row := domain.Achievement{
			ID:            s.genID.Generate(),
			RepID:         req.RepID,
			RepName:       req.RepName,
			ProductID:     req.ProductID,
			ProductName:   req.ProductName,
			AchievedUnits: req.AchievedUnits,
			PeriodMonth:   req.Period.Month,
			PeriodYear:    req.Period.Year,
			Remarks:       req.Remarks,
			AchievedAt:    now,
		}
		if err := s.repo.Insert(ctx, tx, &row); err != nil {
			if db.IsDuplicateKeyErr(err) {
				_, retryErr := s.repo.SetUnits(ctx, tx, req.RepID, req.ProductID, req.Period, req.AchievedUnits)
				return retryErr
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Achievement{}, err
	}

	stored, err := s.repo.FindByNaturalKey(ctx, s.db, req.RepID, req.ProductID, req.Period)
	if err != nil {
		return domain.Achievement{}, err
	}
	if stored == nil {
		return domain.Achievement{}, gorm.ErrRecordNotFound
	}
	return *stored, nil
}

// backfillNames copies display names from a target sharing the natural key.
// Cosmetic only: a missing target never fails the recording.
func (s *Service) backfillNames(ctx context.Context, tx *gorm.DB, row *domain.Achievement) {
	target, err := s.targets.FindByNaturalKey(ctx, tx, row.RepID, row.ProductID, period.Period{Month: row.PeriodMonth, Year: row.PeriodYear})
	if err != nil {
		s.log.Debug("name backfill lookup failed", zap.Error(err))
		return
	}
	if target == nil {
		return
	}
	row.RepName = target.RepName
	row.ProductName = target.ProductName
}
