package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		db: db,
	}
}

// DeleteUserData matches bookings by customer email, so bookings placed anonymously with
// the same address are removed as well.
func (p *PostgresAccountRepository) DeleteUserData(ctx context.Context, userID, email string) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM user_preferences WHERE user_id = $1`, userID)
		if err != nil {
			return err
		}

		query := `
			DELETE FROM booking_food_items
			WHERE booking_id IN (SELECT id FROM bookings WHERE customer_email = $1)
		`

		_, err = tx.Exec(ctx, query, email)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM bookings WHERE customer_email = $1`, email)

		return err
	})
}
