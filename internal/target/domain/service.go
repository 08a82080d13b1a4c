package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/period"
)

var (
	ErrNotFound              = errors.New("target_not_found")
	ErrInvalidRepresentative = errors.New("invalid_representative")
	ErrInvalidProduct        = errors.New("invalid_product")
	ErrInvalidUnits          = errors.New("invalid_units")
	ErrInvalidCategory       = errors.New("invalid_category")
)

type AssignRequest struct {
	RepID       snowflake.ID
	RepName     string
	ProductID   *snowflake.ID
	ProductName string
	Category    Category
	TargetUnits int
	Period      period.Period
	// AssignedBy is the assigning manager's identity; product targets are
	// gated against this manager's stock.
	AssignedBy string
}

type OverrideRequest struct {
	TargetUnits   *int
	AchievedUnits *int
}

type Service interface {
	// Assign upserts a target by its natural key. A Product-category request
	// must name a product and passes the inventory gate before any write.
	Assign(ctx context.Context, req AssignRequest) (Target, error)
	Get(ctx context.Context, id snowflake.ID) (Target, error)
	// Delete is idempotent; deleting an absent id is a no-op. Achievements
	// keyed alongside the target are never touched.
	Delete(ctx context.Context, id snowflake.ID) error
	ListByPeriod(ctx context.Context, p period.Period) ([]Target, error)
	ListByRepresentative(ctx context.Context, repID snowflake.ID, p period.Period) ([]Target, error)
	// Override lets a manager correct a target's units and/or force the
	// blended achieved total to an absolute figure by adjusting the manual
	// achievement row underneath the field-reported portion.
	Override(ctx context.Context, id snowflake.ID, req OverrideRequest) (Target, error)
}
