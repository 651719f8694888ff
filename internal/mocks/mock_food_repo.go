package mocks

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type MockFoodItemRepo struct {
	domain.FoodItemRepository
	GetAvailableFunc      func(ctx context.Context) ([]*domain.FoodItem, error)
	GetAvailableByIdsFunc func(ctx context.Context, ids []int) (map[int]*domain.FoodItem, error)
}

func (m *MockFoodItemRepo) GetAvailable(ctx context.Context) ([]*domain.FoodItem, error) {
	return m.GetAvailableFunc(ctx)
}

func (m *MockFoodItemRepo) GetAvailableByIds(ctx context.Context, ids []int) (map[int]*domain.FoodItem, error) {
	return m.GetAvailableByIdsFunc(ctx, ids)
}
