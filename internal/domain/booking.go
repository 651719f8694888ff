package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const BookingStatusConfirmed = "confirmed"

// Request bounds. They keep totals inside the NUMERIC(10,2) total_price column.
const (
	MaxTicketsPerBooking = 1000
	MaxFoodItemQuantity  = 100
)

type Booking struct {
	ID            int
	ShowtimeID    int
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	NumTickets    int
	TotalPrice    decimal.Decimal
	Status        string
	FoodItems     []BookingFoodItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookingFoodItem is a food line item. UnitPrice is the catalog price at booking time and
// is never refreshed from the catalog afterwards.
type BookingFoodItem struct {
	BookingID  int
	FoodItemID int
	Quantity   int
	UnitPrice  decimal.Decimal
}

func (b BookingFoodItem) Subtotal() decimal.Decimal {
	return b.UnitPrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
}

type FoodItemSelection struct {
	FoodItemID int
	Quantity   int
}

type BookingRequest struct {
	ShowtimeID    int
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	NumTickets    int
	FoodItems     []FoodItemSelection
}

// MergedFoodItems collapses repeated food item ids into one selection, summing the
// quantities and keeping the order of first appearance.
func (r BookingRequest) MergedFoodItems() []FoodItemSelection {
	merged := make([]FoodItemSelection, 0, len(r.FoodItems))
	index := make(map[int]int, len(r.FoodItems))

	for _, item := range r.FoodItems {
		if i, ok := index[item.FoodItemID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}

		index[item.FoodItemID] = len(merged)
		merged = append(merged, item)
	}

	return merged
}

// CheckFoodQuantities reports the first food item whose merged quantity is above
// MaxFoodItemQuantity.
func (r BookingRequest) CheckFoodQuantities() error {
	for _, item := range r.MergedFoodItems() {
		if item.Quantity > MaxFoodItemQuantity {
			return fmt.Errorf("%w: food item %d must have at most %d units",
				ErrFoodQuantityExceeded, item.FoodItemID, MaxFoodItemQuantity)
		}
	}

	return nil
}

func (r BookingRequest) FoodItemIds() []int {
	merged := r.MergedFoodItems()
	ids := make([]int, len(merged))

	for i, item := range merged {
		ids[i] = item.FoodItemID
	}

	return ids
}

// NewBooking prices a booking request against the showtime and the currently available
// food items. Selections missing from availableFood are dropped without error.
func NewBooking(showtime *Showtime, req BookingRequest, availableFood map[int]*FoodItem) Booking {
	total := showtime.TicketPrice().Mul(decimal.NewFromInt(int64(req.NumTickets)))
	lineItems := make([]BookingFoodItem, 0, len(req.FoodItems))

	for _, selection := range req.MergedFoodItems() {
		foodItem, ok := availableFood[selection.FoodItemID]
		if !ok {
			continue
		}

		lineItem := BookingFoodItem{
			FoodItemID: foodItem.ID,
			Quantity:   selection.Quantity,
			UnitPrice:  foodItem.Price,
		}

		total = total.Add(lineItem.Subtotal())
		lineItems = append(lineItems, lineItem)
	}

	return Booking{
		ShowtimeID:    showtime.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		NumTickets:    req.NumTickets,
		TotalPrice:    total,
		Status:        BookingStatusConfirmed,
		FoodItems:     lineItems,
	}
}

type BookingDetail struct {
	Booking
	MovieTitle    string
	ShowDate      time.Time
	ShowTime      string
	TheaterName   string
	TicketPrice   decimal.Decimal
	FoodLineItems []BookingFoodItemDetail
}

type BookingFoodItemDetail struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

type BookingRepository interface {
	// Create reserves seats, inserts the booking and its food line items in one unit.
	// It returns ErrNotEnoughSeats when the showtime no longer has capacity.
	Create(ctx context.Context, booking *Booking) error
	GetById(ctx context.Context, id int) (*Booking, error)
	GetDetailById(ctx context.Context, id int) (*BookingDetail, error)
}
