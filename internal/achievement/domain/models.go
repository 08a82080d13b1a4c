package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/period"
	"gorm.io/gorm"
)

var ErrInvalidUnits = errors.New("invalid_achieved_units")

// Achievement is the manually-recorded contribution toward a target,
// accumulated per (rep, product, period) natural key. Repeated recordings add
// units; they never replace.
type Achievement struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	RepID         snowflake.ID  `gorm:"column:rep_id;not null;index;uniqueIndex:ux_sales_achievements_natural_key,priority:1" json:"rep_id"`
	RepName       string        `gorm:"column:rep_name" json:"rep_name,omitempty"`
	ProductID     *snowflake.ID `gorm:"column:product_id;uniqueIndex:ux_sales_achievements_natural_key,priority:2" json:"product_id,omitempty"`
	ProductName   string        `gorm:"column:product_name" json:"product_name,omitempty"`
	AchievedUnits int           `gorm:"column:achieved_units;not null" json:"achieved_units"`
	PeriodMonth   int           `gorm:"column:period_month;not null;uniqueIndex:ux_sales_achievements_natural_key,priority:3" json:"period_month"`
	PeriodYear    int           `gorm:"column:period_year;not null;uniqueIndex:ux_sales_achievements_natural_key,priority:4" json:"period_year"`
	Remarks       string        `gorm:"column:remarks" json:"remarks,omitempty"`
	AchievedAt    time.Time     `gorm:"column:achieved_at;not null" json:"achieved_at"`
}

func (Achievement) TableName() string { return "sales_achievements" }

type RecordRequest struct {
	RepID         snowflake.ID
	ProductID     *snowflake.ID
	AchievedUnits int
	Period        period.Period
	Remarks       string
}

// SetRequest forces the stored manual total to an absolute value. Used by
// manager overrides, never by ordinary recording.
type SetRequest struct {
	RepID         snowflake.ID
	RepName       string
	ProductID     *snowflake.ID
	ProductName   string
	AchievedUnits int
	Period        period.Period
	Remarks       string
}

type Service interface {
	// Record adds the submitted units to the stored total for the natural
	// key, creating the row when absent. Remarks and the achievement date are
	// overwritten on every recording. The read-add-write is atomic per key;
	// concurrent recordings never lose units.
	Record(ctx context.Context, req RecordRequest) (Achievement, error)
	// SumFor returns the stored manual total for the key, 0 when absent.
	SumFor(ctx context.Context, repID snowflake.ID, productID *snowflake.ID, p period.Period) (int, error)
	// Set forces the stored total to an absolute value. An existing row keeps
	// its remarks and achievement date; the request's remarks apply only when
	// a fresh row is created.
	Set(ctx context.Context, req SetRequest) (Achievement, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, achievement *Achievement) error
	FindByNaturalKey(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period) (*Achievement, error)
	// AddUnits atomically increments the stored total for the natural key and
	// stamps remarks/achieved_at. Returns the number of rows updated (0 when
	// the key has no row yet).
	AddUnits(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period, units int, remarks string, at time.Time) (int64, error)
	// SetUnits replaces the stored total for the natural key, leaving remarks
	// and achieved_at untouched.
	SetUnits(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period, units int) (int64, error)
	SumUnits(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period) (int, error)
}
