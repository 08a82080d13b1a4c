package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var ErrInsufficientStock = errors.New("insufficient_stock")

// StockItem is a row in the externally-owned per-manager stock ledger.
// Read-only here; stock receipt and distribution live elsewhere.
type StockItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ProductID snowflake.ID `gorm:"not null;index" json:"product_id"`
	OwnerName string       `gorm:"not null;index" json:"owner_name"`
	Units     int          `gorm:"not null" json:"units"`
}

func (StockItem) TableName() string { return "stock_items" }

// Gate checks product-target assignments against the assigning manager's
// available stock. The check is advisory: nothing is reserved, so two
// managers racing for the same stock can both pass.
type Gate interface {
	// Available returns the units the owner holds for a product, 0 when the
	// ledger has no row. Absence is not an error.
	Available(ctx context.Context, ownerIdentity string, productID snowflake.ID) (int, error)
	// Authorize fails with ErrInsufficientStock when no stock is available or
	// the requested units exceed it.
	Authorize(ctx context.Context, ownerIdentity string, productID snowflake.ID, requestedUnits int) error
}
