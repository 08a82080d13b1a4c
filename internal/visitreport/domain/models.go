package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/period"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VisitReport is a logged field visit, owned by the reporting subsystem and
// read-only here. ReportedAt is a free-form timestamp string as submitted by
// field devices; rows whose timestamp cannot be parsed are excluded from all
// period matching.
type VisitReport struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	RepName    string            `gorm:"column:rep_name;not null;index" json:"rep_name"`
	DoctorName string            `gorm:"column:doctor_name" json:"doctor_name"`
	Location   string            `gorm:"column:location" json:"location"`
	ReportedAt string            `gorm:"column:reported_at" json:"reported_at"`
	Remarks    string            `gorm:"column:remarks" json:"remarks,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	Samples    []SampleItem      `gorm:"foreignKey:ReportID" json:"samples"`
}

func (VisitReport) TableName() string { return "visit_reports" }

// SampleItem is one product-sample line on a visit report. ProductID is a
// free string and inconsistently populated by the reporting app, which is why
// product matching prefers id and falls back to name.
type SampleItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ReportID    snowflake.ID `gorm:"not null;index" json:"report_id"`
	ProductID   string       `gorm:"column:product_id" json:"product_id,omitempty"`
	ProductName string       `gorm:"column:product_name" json:"product_name"`
	Quantity    int          `gorm:"not null" json:"quantity"`
}

func (SampleItem) TableName() string { return "visit_report_samples" }

type Repository interface {
	ListByRepName(ctx context.Context, db *gorm.DB, repName string) ([]VisitReport, error)
}

// Adapter derives period activity from raw visit reports.
type Adapter interface {
	// CountVisits counts the representative's reports whose date falls in the
	// period. Name matching is case-insensitive; unparseable timestamps are
	// skipped silently.
	CountVisits(ctx context.Context, repName string, p period.Period) (int, error)
	// SumSampleUnits totals in-period sample quantities for one product.
	// Line items match by id when productID is set, else by product name,
	// case-insensitively.
	SumSampleUnits(ctx context.Context, repName string, productID *snowflake.ID, productName string, p period.Period) (int, error)
}
