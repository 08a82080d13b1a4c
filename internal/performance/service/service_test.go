package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	achievementdomain "github.com/medforce/fieldtrack/internal/achievement/domain"
	achievementrepository "github.com/medforce/fieldtrack/internal/achievement/repository"
	achievementservice "github.com/medforce/fieldtrack/internal/achievement/service"
	"github.com/medforce/fieldtrack/internal/clock"
	"github.com/medforce/fieldtrack/internal/config"
	inventoryservice "github.com/medforce/fieldtrack/internal/inventory/service"
	"github.com/medforce/fieldtrack/internal/performance/domain"
	"github.com/medforce/fieldtrack/internal/period"
	"github.com/medforce/fieldtrack/internal/scope"
	targetdomain "github.com/medforce/fieldtrack/internal/target/domain"
	targetrepository "github.com/medforce/fieldtrack/internal/target/repository"
	targetservice "github.com/medforce/fieldtrack/internal/target/service"
	visitreportdomain "github.com/medforce/fieldtrack/internal/visitreport/domain"
	visitreportrepository "github.com/medforce/fieldtrack/internal/visitreport/repository"
	visitreportservice "github.com/medforce/fieldtrack/internal/visitreport/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var march = period.Period{Month: 3, Year: 2025}

type fixture struct {
	db           *gorm.DB
	node         *snowflake.Node
	svc          domain.Service
	achievements achievementdomain.Service
}

func newFixture(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&targetdomain.Target{},
		&achievementdomain.Achievement{},
		&visitreportdomain.VisitReport{},
		&visitreportdomain.SampleItem{},
	))

	log := zaptest.NewLogger(t)
	node, _ := snowflake.NewNode(1)
	fake := clock.NewFakeClock(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC))

	achievements := achievementservice.New(achievementservice.Params{
		DB:      db,
		Log:     log,
		GenID:   node,
		Clock:   fake,
		Repo:    achievementrepository.Provide(),
		Targets: targetrepository.Provide(),
	})
	visitReports := visitreportservice.New(visitreportservice.Params{
		DB:   db,
		Log:  log,
		Repo: visitreportrepository.Provide(),
	})
	targets := targetservice.New(targetservice.Params{
		DB:           db,
		Log:          log,
		GenID:        node,
		Clock:        fake,
		Repo:         targetrepository.Provide(),
		Stock:        inventoryservice.New(inventoryservice.Params{DB: db, Log: log}),
		Achievements: achievements,
		VisitReports: visitReports,
	})

	svc := New(Params{
		Log:          log,
		Targets:      targets,
		Achievements: achievements,
		VisitReports: visitReports,
		PerfCfg:      config.NewStaticPerformanceConfigHolder(config.DefaultPerformanceConfig()),
	})

	return &fixture{db: db, node: node, svc: svc, achievements: achievements}
}

func (f *fixture) seedTarget(t *testing.T, repName string, units int, category targetdomain.Category) targetdomain.Target {
	target := targetdomain.Target{
		ID:          f.node.Generate(),
		RepID:       f.node.Generate(),
		RepName:     repName,
		Category:    category,
		TargetType:  targetdomain.TargetTypeMonthly,
		TargetUnits: units,
		PeriodMonth: march.Month,
		PeriodYear:  march.Year,
		AssignedAt:  time.Now(),
	}
	if category == targetdomain.CategoryProduct {
		productID := f.node.Generate()
		target.ProductID = &productID
		target.ProductName = "Paracetamol 500"
	}
	require.NoError(t, f.db.Create(&target).Error)
	return target
}

func (f *fixture) record(t *testing.T, target targetdomain.Target, units int) {
	_, err := f.achievements.Record(context.Background(), achievementdomain.RecordRequest{
		RepID:         target.RepID,
		ProductID:     target.ProductID,
		AchievedUnits: units,
		Period:        march,
	})
	require.NoError(t, err)
}

func TestResolveBlendsSources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.seedTarget(t, "Ravi Kumar", 100, targetdomain.CategoryProduct)
	f.record(t, target, 20)

	report := visitreportdomain.VisitReport{
		ID:         f.node.Generate(),
		RepName:    "ravi kumar",
		ReportedAt: "2025-03-08T10:00:00",
		Samples: []visitreportdomain.SampleItem{{
			ID:        f.node.Generate(),
			ProductID: target.ProductID.String(),
			Quantity:  15,
		}},
	}
	require.NoError(t, f.db.Create(&report).Error)

	progress, err := f.svc.Resolve(ctx, target, march)
	require.NoError(t, err)
	assert.Equal(t, 35, progress.AchievedUnits)
	assert.Equal(t, 35.0, progress.AchievementPercentage)
	assert.Equal(t, "Poor", progress.ProgressStatus)
}

func TestResolveZeroTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.seedTarget(t, "Ravi Kumar", 100, targetdomain.CategoryProduct)
	f.record(t, target, 40)
	target.TargetUnits = 0

	progress, err := f.svc.Resolve(ctx, target, march)
	require.NoError(t, err)
	assert.Equal(t, 40, progress.AchievedUnits)
	assert.Equal(t, 0.0, progress.AchievementPercentage)
}

func TestStatusBuckets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		achieved int
		status   string
	}{
		{90, "Excellent"},
		{75, "Good"},
		{50, "Average"},
		{49, "Poor"},
	}

	for _, tc := range cases {
		target := f.seedTarget(t, "Rep", 100, targetdomain.CategoryProduct)
		f.record(t, target, tc.achieved)

		progress, err := f.svc.Resolve(ctx, target, march)
		require.NoError(t, err)
		assert.Equal(t, tc.status, progress.ProgressStatus, "achieved %d", tc.achieved)
	}

	t.Run("fractional percentages fall below the edge", func(t *testing.T) {
		for _, tc := range []struct {
			achieved int
			status   string
		}{
			{8999, "Good"},
			{7499, "Average"},
			{4999, "Poor"},
		} {
			target := f.seedTarget(t, "Rep", 10000, targetdomain.CategoryProduct)
			f.record(t, target, tc.achieved)

			progress, err := f.svc.Resolve(ctx, target, march)
			require.NoError(t, err)
			assert.Equal(t, tc.status, progress.ProgressStatus, "achieved %d", tc.achieved)
		}
	})
}

func TestSummarizeRanks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.seedTarget(t, "Ravi Kumar", 100, targetdomain.CategoryProduct)
	b := f.seedTarget(t, "Meena Iyer", 100, targetdomain.CategoryProduct)
	c := f.seedTarget(t, "Vikram Shah", 100, targetdomain.CategoryProduct)
	f.record(t, a, 95)
	f.record(t, b, 95)
	f.record(t, c, 80)

	summary, err := f.svc.Summarize(ctx, march, scope.Scope{IsAdmin: true})
	require.NoError(t, err)

	require.Len(t, summary.Leaderboard, 3)
	assert.Equal(t, 1, summary.Leaderboard[0].Rank)
	assert.Equal(t, 1, summary.Leaderboard[1].Rank)
	assert.Equal(t, 3, summary.Leaderboard[2].Rank)
	assert.Equal(t, "Vikram Shah", summary.Leaderboard[2].RepName)

	assert.Equal(t, 300, summary.TotalTarget)
	assert.Equal(t, 270, summary.TotalAchievement)
	assert.Equal(t, 90.0, summary.AveragePercentage)
}

func TestSummarizeTopPerformer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("zero achievement is never the top performer", func(t *testing.T) {
		f.seedTarget(t, "Ravi Kumar", 100, targetdomain.CategoryProduct)

		summary, err := f.svc.Summarize(ctx, march, scope.Scope{IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, domain.NoTopPerformer, summary.TopPerformer)
	})

	t.Run("any positive achievement wins", func(t *testing.T) {
		target := f.seedTarget(t, "Meena Iyer", 100, targetdomain.CategoryProduct)
		f.record(t, target, 1)

		summary, err := f.svc.Summarize(ctx, march, scope.Scope{IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, "Meena Iyer", summary.TopPerformer)
	})
}

func TestSummarizeScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := f.seedTarget(t, "Ravi Kumar", 100, targetdomain.CategoryProduct)
	other := f.seedTarget(t, "Meena Iyer", 100, targetdomain.CategoryProduct)
	f.record(t, mine, 60)
	f.record(t, other, 90)

	t.Run("manager scope filters to visible reps", func(t *testing.T) {
		summary, err := f.svc.Summarize(ctx, march, scope.Scope{RepIDs: []snowflake.ID{mine.RepID}})
		require.NoError(t, err)
		require.Len(t, summary.Targets, 1)
		assert.Equal(t, "Ravi Kumar", summary.Targets[0].RepName)
		assert.Equal(t, 100, summary.TotalTarget)
		assert.Equal(t, 60, summary.TotalAchievement)
	})

	t.Run("anonymous scope yields the empty dashboard", func(t *testing.T) {
		summary, err := f.svc.Summarize(ctx, march, scope.Scope{})
		require.NoError(t, err)
		assert.Empty(t, summary.Targets)
		assert.Empty(t, summary.Leaderboard)
		assert.Equal(t, 0, summary.TotalTarget)
		assert.Equal(t, 0.0, summary.AveragePercentage)
		assert.Equal(t, domain.NoTopPerformer, summary.TopPerformer)
	})
}

func TestVisitTargetEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.seedTarget(t, "Ravi Kumar", 10, targetdomain.CategoryVisit)
	for _, reportedAt := range []string{
		"2025-03-03T09:00:00",
		"2025-03-12T14:30:00",
		"2025-03-28",
		"2025-04-02T09:00:00",
		"not-a-date",
	} {
		require.NoError(t, f.db.Create(&visitreportdomain.VisitReport{
			ID:         f.node.Generate(),
			RepName:    "Ravi Kumar",
			ReportedAt: reportedAt,
		}).Error)
	}

	progress, err := f.svc.Resolve(ctx, target, march)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.AchievedUnits)
	assert.Equal(t, 30.0, progress.AchievementPercentage)
	assert.Equal(t, "Poor", progress.ProgressStatus)
}
