package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type FoodItem struct {
	ID          int
	Name        string
	Description *string
	Category    string
	Price       decimal.Decimal
	ImageUrl    *string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FoodItemRepository interface {
	GetAvailable(ctx context.Context) ([]*FoodItem, error)
	// GetAvailableByIds returns only the items that exist and are available, keyed by id.
	GetAvailableByIds(ctx context.Context, ids []int) (map[int]*FoodItem, error)
}
