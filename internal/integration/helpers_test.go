package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":  {},
	"request_id": {},
	"created_at": {},
	"updated_at": {},
	"reference":  {},
}

var testUser = struct {
	ID    string
	Email string
	Name  string
}{
	ID:    "4d7c2f0e-9a41-4a59-8a3a-2f1f1c1d0b11",
	Email: "maria@example.com",
	Name:  "Maria Silva",
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies []*http.Cookie) (*http.Request, error) {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

// compareResponse compares the JSON body with expectedResponse, ignoring keys whose values
// change between runs.
func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	if diff := cmp.Diff(clean(expected), clean(actual)); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func clean(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for k := range value {
			if _, ok := keysToIgnore[k]; ok {
				delete(value, k)
				continue
			}
			value[k] = clean(value[k])
		}
	case []any:
		for i := range value {
			value[i] = clean(value[i])
		}
	}

	return v
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), `
		TRUNCATE TABLE payments, booking_food_items, bookings, user_preferences, food_items, showtimes, movies
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// seedCatalog inserts two movies, three showtimes and three food items:
//
//	showtime 1: movie 1, 2025-03-10 19:30, 25.00, 10 seats
//	showtime 2: movie 1, 2025-03-11 21:00, 25.00, 2 seats
//	showtime 3: movie 2, 2025-03-10 15:00, no price, unlimited seats
//	food 1: Pipoca Grande 12.50, food 2: Refrigerante 6.00, food 3: Nachos unavailable
func seedCatalog(t testing.TB, db *pgxpool.Pool) {
	truncateAll(t, db)

	_, err := db.Exec(context.Background(), `
		INSERT INTO movies (title, description, release_date, duration_minutes, rating, genre, director, "cast", is_now_showing)
		VALUES
			('Dune: Part Two', 'Paul Atreides unites with the Fremen.', '2024-03-01', 166, '14', 'Sci-Fi', 'Denis Villeneuve', 'Timothée Chalamet, Zendaya', TRUE),
			('Ainda Estou Aqui', 'A mother reinvents herself.', '2024-11-07', 135, '14', 'Drama', 'Walter Salles', 'Fernanda Torres', FALSE)`)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), `
		INSERT INTO showtimes (movie_id, theater_name, show_date, show_time, price, available_seats)
		VALUES
			(1, 'Sala 1', '2025-03-10', '19:30', 25.00, 10),
			(1, 'Sala 2', '2025-03-11', '21:00', 25.00, 2),
			(2, 'Sala 3', '2025-03-10', '15:00', NULL, NULL)`)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), `
		INSERT INTO food_items (name, description, category, price, is_available)
		VALUES
			('Pipoca Grande', 'Salted popcorn', 'snacks', 12.50, TRUE),
			('Refrigerante', NULL, 'drinks', 6.00, TRUE),
			('Nachos', NULL, 'snacks', 18.00, FALSE)`)
	require.NoError(t, err)
}

func availableSeats(t testing.TB, db *pgxpool.Pool, showtimeId int) *int {
	var seats *int
	err := db.QueryRow(context.Background(), "SELECT available_seats FROM showtimes WHERE id = $1", showtimeId).Scan(&seats)
	require.NoError(t, err)

	return seats
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	var count int
	err := db.QueryRow(context.Background(), query, args...).Scan(&count)
	require.NoError(t, err)

	return count
}
