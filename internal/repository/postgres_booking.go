package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := reserveSeats(ctx, tx, booking.ShowtimeID, booking.NumTickets)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO bookings (
				showtime_id,
				customer_name,
				customer_email,
				customer_phone,
				num_tickets,
				total_price,
				status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.ShowtimeID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.NumTickets,
			booking.TotalPrice,
			booking.Status,
		).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
		if err != nil {
			return err
		}

		if len(booking.FoodItems) == 0 {
			return nil
		}

		batch := &pgx.Batch{}

		for i := range booking.FoodItems {
			item := &booking.FoodItems[i]
			item.BookingID = booking.ID

			batch.Queue(`
				INSERT INTO booking_food_items (booking_id, food_item_id, quantity, unit_price)
				VALUES ($1, $2, $3, $4)`,
				item.BookingID,
				item.FoodItemID,
				item.Quantity,
				item.UnitPrice,
			)
		}

		return tx.SendBatch(ctx, batch).Close()
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

// reserveSeats decrements available_seats only when enough seats remain, so the check
// and the write happen in one statement. Showtimes without a seat limit always match.
func reserveSeats(ctx context.Context, tx pgx.Tx, showtimeID, numTickets int) error {
	query := `
		UPDATE showtimes
		SET available_seats = available_seats - $1, updated_at = NOW()
		WHERE id = $2 AND (available_seats IS NULL OR available_seats >= $1)
	`

	tag, err := tx.Exec(ctx, query, numTickets, showtimeID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool

	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM showtimes WHERE id = $1)`, showtimeID).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrRecordNotFound
	}

	return domain.ErrNotEnoughSeats
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	query := `
		SELECT
			id,
			showtime_id,
			customer_name,
			customer_email,
			customer_phone,
			num_tickets,
			total_price,
			status,
			created_at,
			updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ShowtimeID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.NumTickets,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetDetailById(ctx context.Context, id int) (*domain.BookingDetail, error) {
	query := `
		SELECT
			b.id,
			b.showtime_id,
			b.customer_name,
			b.customer_email,
			b.customer_phone,
			b.num_tickets,
			b.total_price,
			b.status,
			b.created_at,
			b.updated_at,
			m.title,
			s.show_date,
			to_char(s.show_time, 'HH24:MI'),
			s.theater_name,
			COALESCE(s.price, 0)
		FROM bookings b
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		WHERE b.id = $1
	`

	var detail domain.BookingDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.ShowtimeID,
		&detail.CustomerName,
		&detail.CustomerEmail,
		&detail.CustomerPhone,
		&detail.NumTickets,
		&detail.TotalPrice,
		&detail.Status,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.MovieTitle,
		&detail.ShowDate,
		&detail.ShowTime,
		&detail.TheaterName,
		&detail.TicketPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	foodItems, err := p.retrieveBookingFoodItems(ctx, id)
	if err != nil {
		return nil, err
	}

	detail.FoodLineItems = foodItems

	return &detail, nil
}

func (p *PostgresBookingRepository) retrieveBookingFoodItems(
	ctx context.Context,
	bookingId int) ([]domain.BookingFoodItemDetail, error) {

	query := `
		SELECT fi.name, bfi.quantity, bfi.unit_price
		FROM booking_food_items bfi
		JOIN food_items fi ON bfi.food_item_id = fi.id
		WHERE bfi.booking_id = $1
		ORDER BY fi.name
	`

	rows, err := p.db.Query(ctx, query, bookingId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foodItems := make([]domain.BookingFoodItemDetail, 0)

	for rows.Next() {
		var foodItem domain.BookingFoodItemDetail

		err := rows.Scan(&foodItem.Name, &foodItem.Quantity, &foodItem.UnitPrice)
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
