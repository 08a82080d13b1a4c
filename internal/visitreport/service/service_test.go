package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medforce/fieldtrack/internal/period"
	"github.com/medforce/fieldtrack/internal/visitreport/domain"
	"github.com/medforce/fieldtrack/internal/visitreport/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestAdapter(t *testing.T) (*gorm.DB, domain.Adapter) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.VisitReport{}, &domain.SampleItem{}))

	adapter := New(Params{
		DB:   db,
		Log:  zaptest.NewLogger(t),
		Repo: repository.Provide(),
	})
	return db, adapter
}

func seedReport(t *testing.T, db *gorm.DB, node *snowflake.Node, repName, reportedAt string, samples ...domain.SampleItem) {
	report := domain.VisitReport{
		ID:         node.Generate(),
		RepName:    repName,
		DoctorName: "Dr. Rao",
		Location:   "Pune",
		ReportedAt: reportedAt,
	}
	for i := range samples {
		samples[i].ID = node.Generate()
		samples[i].ReportID = report.ID
	}
	report.Samples = samples
	require.NoError(t, db.Create(&report).Error)
}

func TestCountVisits(t *testing.T) {
	db, adapter := newTestAdapter(t)
	node, _ := snowflake.NewNode(1)
	ctx := context.Background()
	march := period.Period{Month: 3, Year: 2025}

	seedReport(t, db, node, "Ravi Kumar", "2025-03-04T09:30:00")
	seedReport(t, db, node, "RAVI KUMAR", "2025-03-18")
	seedReport(t, db, node, "Ravi Kumar", "2025-04-01T08:00:00")
	seedReport(t, db, node, "Ravi Kumar", "yesterday")
	seedReport(t, db, node, "Ravi Kumar", "")
	seedReport(t, db, node, "Meena Iyer", "2025-03-10T10:00:00")

	t.Run("counts in-period reports case-insensitively", func(t *testing.T) {
		count, err := adapter.CountVisits(ctx, "ravi kumar", march)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("unparseable timestamps are excluded not errors", func(t *testing.T) {
		count, err := adapter.CountVisits(ctx, "Ravi Kumar", period.Period{Month: 4, Year: 2025})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("unknown representative has zero visits", func(t *testing.T) {
		count, err := adapter.CountVisits(ctx, "Nobody", march)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestSumSampleUnits(t *testing.T) {
	db, adapter := newTestAdapter(t)
	node, _ := snowflake.NewNode(1)
	ctx := context.Background()
	march := period.Period{Month: 3, Year: 2025}

	productID := node.Generate()

	seedReport(t, db, node, "Ravi Kumar", "2025-03-04T09:30:00",
		domain.SampleItem{ProductID: productID.String(), ProductName: "Paracetamol 500", Quantity: 5},
		domain.SampleItem{ProductID: "", ProductName: "PARACETAMOL 500", Quantity: 3},
		domain.SampleItem{ProductID: "", ProductName: "Amoxicillin", Quantity: 7},
	)
	seedReport(t, db, node, "Ravi Kumar", "2025-03-20T11:00:00",
		domain.SampleItem{ProductID: productID.String(), ProductName: "", Quantity: 4},
	)
	seedReport(t, db, node, "Ravi Kumar", "2025-02-28T11:00:00",
		domain.SampleItem{ProductID: productID.String(), ProductName: "Paracetamol 500", Quantity: 100},
	)

	t.Run("id match ignores names entirely", func(t *testing.T) {
		total, err := adapter.SumSampleUnits(ctx, "Ravi Kumar", &productID, "Paracetamol 500", march)
		require.NoError(t, err)
		assert.Equal(t, 9, total)
	})

	t.Run("name fallback is case-insensitive", func(t *testing.T) {
		total, err := adapter.SumSampleUnits(ctx, "Ravi Kumar", nil, "paracetamol 500", march)
		require.NoError(t, err)
		assert.Equal(t, 8, total)
	})

	t.Run("out-of-period samples never count", func(t *testing.T) {
		total, err := adapter.SumSampleUnits(ctx, "Ravi Kumar", &productID, "", period.Period{Month: 1, Year: 2025})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})
}
