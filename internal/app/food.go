package app

import (
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

func (app *Application) GetFoodItems(w http.ResponseWriter, r *http.Request) {
	foodItems, err := app.foodRepo.GetAvailable(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.FoodItem, len(foodItems))
	for i, item := range foodItems {
		resp[i] = toApiFoodItem(item)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiFoodItem(item *domain.FoodItem) api.FoodItem {
	return api.FoodItem{
		Id:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price.InexactFloat64(),
		ImageUrl:    item.ImageUrl,
		IsAvailable: item.IsAvailable,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
