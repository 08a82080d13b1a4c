package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/period"
)

type Category string

const (
	CategoryProduct Category = "Product"
	CategoryVisit   Category = "Visit"
)

type TargetType string

const (
	TargetTypeMonthly   TargetType = "MONTHLY"
	TargetTypeQuarterly TargetType = "QUARTERLY"
	TargetTypeYearly    TargetType = "YEARLY"
)

// Target is a commitment for one representative, one category, one period.
// At most one row exists per (rep, product, period) natural key; assigning
// against an existing key updates the row in place.
type Target struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	RepID       snowflake.ID  `gorm:"column:rep_id;not null;index;uniqueIndex:ux_sales_targets_natural_key,priority:1" json:"rep_id"`
	RepName     string        `gorm:"column:rep_name;not null" json:"rep_name"`
	ProductID   *snowflake.ID `gorm:"column:product_id;uniqueIndex:ux_sales_targets_natural_key,priority:2" json:"product_id,omitempty"`
	ProductName string        `gorm:"column:product_name" json:"product_name"`
	Category    Category      `gorm:"not null;default:Product" json:"category"`
	TargetType  TargetType    `gorm:"column:target_type;not null;default:MONTHLY" json:"target_type"`
	TargetUnits int           `gorm:"column:target_units;not null" json:"target_units"`
	PeriodMonth int           `gorm:"column:period_month;not null;uniqueIndex:ux_sales_targets_natural_key,priority:3" json:"period_month"`
	PeriodYear  int           `gorm:"column:period_year;not null;uniqueIndex:ux_sales_targets_natural_key,priority:4" json:"period_year"`
	AssignedBy  string        `gorm:"column:assigned_by" json:"assigned_by,omitempty"`
	AssignedAt  time.Time     `gorm:"column:assigned_at;not null" json:"assigned_at"`
}

func (Target) TableName() string { return "sales_targets" }

func (t Target) Period() period.Period {
	return period.Period{Month: t.PeriodMonth, Year: t.PeriodYear}
}
