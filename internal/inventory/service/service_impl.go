package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/inventory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) domain.Gate {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("inventory.gate"),
	}
}

func (s *Service) Available(ctx context.Context, ownerIdentity string, productID snowflake.ID) (int, error) {
	var row struct {
		Units int `gorm:"column:units"`
		Found int `gorm:"column:found"`
	}
	err := s.db.WithContext(ctx).Raw(
		`SELECT units, 1 AS found
		 FROM stock_items
		 WHERE product_id = ? AND LOWER(owner_name) = LOWER(?)`,
		productID,
		ownerIdentity,
	).Scan(&row).Error
	if err != nil {
		return 0, err
	}
	if row.Found == 0 {
		return 0, nil
	}
	return row.Units, nil
}

func (s *Service) Authorize(ctx context.Context, ownerIdentity string, productID snowflake.ID, requestedUnits int) error {
	available, err := s.Available(ctx, ownerIdentity, productID)
	if err != nil {
		return err
	}
	if available <= 0 || requestedUnits > available {
		s.log.Debug("stock authorization rejected",
			zap.String("owner", ownerIdentity),
			zap.String("product_id", productID.String()),
			zap.Int("requested", requestedUnits),
			zap.Int("available", available),
		)
		return domain.ErrInsufficientStock
	}
	return nil
}
