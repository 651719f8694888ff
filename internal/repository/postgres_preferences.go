package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresPreferencesRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPreferencesRepository(db *pgxpool.Pool) *PostgresPreferencesRepository {
	return &PostgresPreferencesRepository{
		db: db,
	}
}

// GetOrCreate relies on the unique user_id constraint: the no-op update makes RETURNING
// yield the existing row when another request inserted it first.
func (p *PostgresPreferencesRepository) GetOrCreate(
	ctx context.Context,
	defaults domain.UserPreferences) (*domain.UserPreferences, error) {

	query := `
		INSERT INTO user_preferences (
			user_id,
			language,
			notify_new_releases,
			notify_promotions,
			notify_booking_confirmations
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING
			id,
			user_id,
			language,
			notify_new_releases,
			notify_promotions,
			notify_booking_confirmations,
			created_at,
			updated_at
	`

	var prefs domain.UserPreferences

	err := p.db.QueryRow(
		ctx,
		query,
		defaults.UserID,
		defaults.Language,
		defaults.NotifyNewReleases,
		defaults.NotifyPromotions,
		defaults.NotifyBookingConfirmations,
	).Scan(
		&prefs.ID,
		&prefs.UserID,
		&prefs.Language,
		&prefs.NotifyNewReleases,
		&prefs.NotifyPromotions,
		&prefs.NotifyBookingConfirmations,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &prefs, nil
}

func (p *PostgresPreferencesRepository) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (
			user_id,
			language,
			notify_new_releases,
			notify_promotions,
			notify_booking_confirmations
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			language = EXCLUDED.language,
			notify_new_releases = EXCLUDED.notify_new_releases,
			notify_promotions = EXCLUDED.notify_promotions,
			notify_booking_confirmations = EXCLUDED.notify_booking_confirmations,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		prefs.UserID,
		prefs.Language,
		prefs.NotifyNewReleases,
		prefs.NotifyPromotions,
		prefs.NotifyBookingConfirmations,
	).Scan(&prefs.ID, &prefs.CreatedAt, &prefs.UpdatedAt)
}
