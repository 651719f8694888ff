package domain

import (
	"context"
	"time"
)

const DefaultLanguage = "pt-BR"

type UserPreferences struct {
	ID                         int
	UserID                     string
	Language                   string
	NotifyNewReleases          bool
	NotifyPromotions           bool
	NotifyBookingConfirmations bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:                     userID,
		Language:                   DefaultLanguage,
		NotifyNewReleases:          false,
		NotifyPromotions:           false,
		NotifyBookingConfirmations: true,
	}
}

type PreferencesRepository interface {
	// GetOrCreate returns the user's preferences, inserting the defaults atomically when
	// no row exists yet.
	GetOrCreate(ctx context.Context, defaults UserPreferences) (*UserPreferences, error)
	Upsert(ctx context.Context, prefs *UserPreferences) error
}

type AccountRepository interface {
	// DeleteUserData removes the preferences of userID and every booking, with its food
	// line items, placed with email.
	DeleteUserData(ctx context.Context, userID, email string) error
}
