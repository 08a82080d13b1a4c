package service

import (
	"context"
	"math"
	"sort"

	"github.com/bwmarrin/snowflake"
	achievementdomain "github.com/medforce/fieldtrack/internal/achievement/domain"
	"github.com/medforce/fieldtrack/internal/config"
	"github.com/medforce/fieldtrack/internal/performance/domain"
	"github.com/medforce/fieldtrack/internal/period"
	"github.com/medforce/fieldtrack/internal/scope"
	targetdomain "github.com/medforce/fieldtrack/internal/target/domain"
	visitreportdomain "github.com/medforce/fieldtrack/internal/visitreport/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	Targets      targetdomain.Service
	Achievements achievementdomain.Service
	VisitReports visitreportdomain.Adapter
	PerfCfg      *config.PerformanceConfigHolder
}

type Service struct {
	log          *zap.Logger
	targets      targetdomain.Service
	achievements achievementdomain.Service
	visitReports visitreportdomain.Adapter
	perfCfg      *config.PerformanceConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:          p.Log.Named("performance.service"),
		targets:      p.Targets,
		achievements: p.Achievements,
		visitReports: p.VisitReports,
		perfCfg:      p.PerfCfg,
	}
}

func (s *Service) Resolve(ctx context.Context, target targetdomain.Target, p period.Period) (domain.TargetProgress, error) {
	var achieved int
	if target.Category == targetdomain.CategoryVisit {
		visits, err := s.visitReports.CountVisits(ctx, target.RepName, p)
		if err != nil {
			return domain.TargetProgress{}, err
		}
		achieved = visits
	} else {
		// Manual recordings and field-reported samples are additive
		// contributions to the same goal; neither overrides the other.
		manual, err := s.achievements.SumFor(ctx, target.RepID, target.ProductID, p)
		if err != nil {
			return domain.TargetProgress{}, err
		}
		reported, err := s.visitReports.SumSampleUnits(ctx, target.RepName, target.ProductID, target.ProductName, p)
		if err != nil {
			return domain.TargetProgress{}, err
		}
		achieved = manual + reported
	}

	pct := percentage(achieved, target.TargetUnits)
	return domain.TargetProgress{
		TargetID:              target.ID,
		RepID:                 target.RepID,
		RepName:               target.RepName,
		ProductName:           target.ProductName,
		Category:              target.Category,
		TargetType:            target.TargetType,
		TargetUnits:           target.TargetUnits,
		AchievedUnits:         achieved,
		AchievementPercentage: pct,
		ProgressStatus:        s.statusFor(pct),
		PeriodMonth:           target.PeriodMonth,
		PeriodYear:            target.PeriodYear,
		AssignedAt:            target.AssignedAt,
	}, nil
}

func (s *Service) Summarize(ctx context.Context, p period.Period, sc scope.Scope) (domain.DashboardSummary, error) {
	summary := domain.DashboardSummary{
		TopPerformer: domain.NoTopPerformer,
		Targets:      []domain.TargetProgress{},
		Leaderboard:  []domain.RepStanding{},
	}
	if err := p.Validate(); err != nil {
		return domain.DashboardSummary{}, err
	}

	all, err := s.targets.ListByPeriod(ctx, p)
	if err != nil {
		return domain.DashboardSummary{}, err
	}

	for _, target := range all {
		if !sc.Allows(target.RepID) {
			continue
		}
		progress, err := s.Resolve(ctx, target, p)
		if err != nil {
			return domain.DashboardSummary{}, err
		}
		summary.Targets = append(summary.Targets, progress)
		summary.TotalTarget += progress.TargetUnits
		summary.TotalAchievement += progress.AchievedUnits
	}

	summary.AveragePercentage = percentage(summary.TotalAchievement, summary.TotalTarget)
	summary.Leaderboard = s.rank(summary.Targets)

	if len(summary.Leaderboard) > 0 {
		best := summary.Leaderboard[0]
		if best.AchievementPercentage > 0 || best.AchievedUnits > 0 {
			summary.TopPerformer = best.RepName
		}
	}

	return summary, nil
}

func (s *Service) RepresentativeTargets(ctx context.Context, repID snowflake.ID, p period.Period) ([]domain.TargetProgress, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	targets, err := s.targets.ListByRepresentative(ctx, repID, p)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.TargetProgress, 0, len(targets))
	for _, target := range targets {
		progress, err := s.Resolve(ctx, target, p)
		if err != nil {
			return nil, err
		}
		rows = append(rows, progress)
	}
	return rows, nil
}

// rank rolls targets up per representative and orders them by blended
// percentage. Rank is 1 plus the count of strictly better performers, so ties
// share a rank.
func (s *Service) rank(rows []domain.TargetProgress) []domain.RepStanding {
	byRep := map[snowflake.ID]*domain.RepStanding{}
	order := []snowflake.ID{}
	for _, row := range rows {
		standing, ok := byRep[row.RepID]
		if !ok {
			standing = &domain.RepStanding{RepID: row.RepID, RepName: row.RepName}
			byRep[row.RepID] = standing
			order = append(order, row.RepID)
		}
		standing.TargetUnits += row.TargetUnits
		standing.AchievedUnits += row.AchievedUnits
	}

	standings := make([]domain.RepStanding, 0, len(byRep))
	for _, id := range order {
		standing := byRep[id]
		standing.AchievementPercentage = percentage(standing.AchievedUnits, standing.TargetUnits)
		standing.ProgressStatus = s.statusFor(standing.AchievementPercentage)
		standings = append(standings, *standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].AchievementPercentage > standings[j].AchievementPercentage
	})

	for i := range standings {
		rank := 1
		for _, other := range standings {
			if other.AchievementPercentage > standings[i].AchievementPercentage {
				rank++
			}
		}
		standings[i].Rank = rank
	}

	limit := s.perfCfg.Get().LeaderboardSize
	if len(standings) > limit {
		standings = standings[:limit]
	}
	return standings
}

func (s *Service) statusFor(pct float64) string {
	cfg := s.perfCfg.Get()
	for _, tier := range cfg.Tiers {
		if pct >= tier.MinPercent {
			return tier.Status
		}
	}
	return "Poor"
}

func percentage(achieved, target int) float64 {
	if target <= 0 {
		return 0
	}
	return round2(float64(achieved) * 100.0 / float64(target))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
