package domain

import "errors"

var (
	ErrRecordNotFound           = errors.New("record not found")
	ErrNotEnoughSeats           = errors.New("not enough seats available")
	ErrInvalidSession           = errors.New("session is invalid or has expired")
	ErrInvalidAuthCode          = errors.New("authorization code was rejected")
	ErrUnsupportedPaymentMethod = errors.New("payment method is not supported")
	ErrFoodQuantityExceeded     = errors.New("food item quantity exceeds the limit")
)
