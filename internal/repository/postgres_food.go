package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

const foodItemColumns = `id, name, description, category, price, image_url, is_available, created_at, updated_at`

type PostgresFoodItemRepository struct {
	db *pgxpool.Pool
}

func NewPostgresFoodItemRepository(db *pgxpool.Pool) *PostgresFoodItemRepository {
	return &PostgresFoodItemRepository{
		db: db,
	}
}

func (p *PostgresFoodItemRepository) GetAvailable(ctx context.Context) ([]*domain.FoodItem, error) {
	query := `SELECT ` + foodItemColumns + `
		FROM food_items
		WHERE is_available
		ORDER BY category, name`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foodItems := []*domain.FoodItem{}

	for rows.Next() {
		foodItem, err := scanFoodItem(rows)
		if err != nil {
			return nil, err
		}

		foodItems = append(foodItems, foodItem)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return foodItems, nil
}

func (p *PostgresFoodItemRepository) GetAvailableByIds(ctx context.Context, ids []int) (map[int]*domain.FoodItem, error) {
	foodItems := make(map[int]*domain.FoodItem, len(ids))
	if len(ids) == 0 {
		return foodItems, nil
	}

	query := `SELECT ` + foodItemColumns + `
		FROM food_items
		WHERE id = ANY($1) AND is_available`

	rows, err := p.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		foodItem, err := scanFoodItem(rows)
		if err != nil {
			return nil, err
		}

		foodItems[foodItem.ID] = foodItem
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return foodItems, nil
}

func scanFoodItem(row scanner) (*domain.FoodItem, error) {
	var foodItem domain.FoodItem

	err := row.Scan(
		&foodItem.ID,
		&foodItem.Name,
		&foodItem.Description,
		&foodItem.Category,
		&foodItem.Price,
		&foodItem.ImageUrl,
		&foodItem.IsAvailable,
		&foodItem.CreatedAt,
		&foodItem.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &foodItem, nil
}
