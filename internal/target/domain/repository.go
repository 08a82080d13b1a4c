package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/period"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, target *Target) error
	Update(ctx context.Context, db *gorm.DB, target *Target) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Target, error)
	FindByNaturalKey(ctx context.Context, db *gorm.DB, repID snowflake.ID, productID *snowflake.ID, p period.Period) (*Target, error)
	DeleteByID(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListByPeriod(ctx context.Context, db *gorm.DB, p period.Period) ([]Target, error)
	ListByRepresentativeAndPeriod(ctx context.Context, db *gorm.DB, repID snowflake.ID, p period.Period) ([]Target, error)
}
