package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/metinatakli/movie-booking-system/internal/mailer"
	"github.com/metinatakli/movie-booking-system/internal/mocks"
	"github.com/metinatakli/movie-booking-system/internal/validator"
	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BookingsTestSuite struct {
	suite.Suite
	app             *Application
	bookingRepo     *mocks.MockBookingRepo
	preferencesRepo *mocks.MockPreferencesRepo
	identity        *mocks.MockIdentityProvider
	events          *mocks.MockEventPublisher
	mailer          *mailer.MockMailer
	showtimes       map[int]*domain.Showtime
	foodItems       map[int]*domain.FoodItem
}

var bookingCreatedAt = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

func (s *BookingsTestSuite) SetupTest() {
	s.bookingRepo = new(mocks.MockBookingRepo)
	s.preferencesRepo = new(mocks.MockPreferencesRepo)
	s.identity = new(mocks.MockIdentityProvider)
	s.events = new(mocks.MockEventPublisher)
	s.mailer = mailer.NewMockMailer()

	s.showtimes = map[int]*domain.Showtime{
		1: {
			ID:             1,
			MovieID:        1,
			TheaterName:    "Sala 1",
			ShowDate:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			ShowTime:       "19:30",
			Price:          decimal.NewNullDecimal(decimal.RequireFromString("25.00")),
			AvailableSeats: ptr(10),
		},
		2: {
			ID:             2,
			MovieID:        1,
			TheaterName:    "Sala 2",
			ShowDate:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			ShowTime:       "22:00",
			Price:          decimal.NewNullDecimal(decimal.RequireFromString("25.00")),
			AvailableSeats: ptr(1),
		},
	}

	s.foodItems = map[int]*domain.FoodItem{
		7: {ID: 7, Name: "Pipoca Grande", Price: decimal.RequireFromString("12.50"), IsAvailable: true},
	}

	s.app = newTestApplication(func(a *Application) {
		a.bookingRepo = s.bookingRepo
		a.preferencesRepo = s.preferencesRepo
		a.identity = s.identity
		a.events = s.events
		a.mailer = s.mailer
		a.showtimeRepo = &mocks.MockShowtimeRepo{
			GetByIdFunc: func(ctx context.Context, id int) (*domain.Showtime, error) {
				showtime, ok := s.showtimes[id]
				if !ok {
					return nil, domain.ErrRecordNotFound
				}
				return showtime, nil
			},
		}
		a.foodRepo = &mocks.MockFoodItemRepo{
			GetAvailableByIdsFunc: func(ctx context.Context, ids []int) (map[int]*domain.FoodItem, error) {
				found := make(map[int]*domain.FoodItem)
				for _, id := range ids {
					if item, ok := s.foodItems[id]; ok {
						found[id] = item
					}
				}
				return found, nil
			},
		}
	})
}

func TestBookingsSuite(t *testing.T) {
	suite.Run(t, new(BookingsTestSuite))
}

func (s *BookingsTestSuite) expectCreate(id int) {
	s.bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			booking := args.Get(1).(*domain.Booking)
			booking.ID = id
			booking.CreatedAt = bookingCreatedAt
			booking.UpdatedAt = bookingCreatedAt
		}).
		Return(nil).
		Once()
}

func (s *BookingsTestSuite) expectNotifications(id int) {
	s.events.On("PublishBookingCreated", mock.Anything, mock.AnythingOfType("domain.BookingCreatedEvent")).
		Return(nil).
		Once()

	s.bookingRepo.On("GetDetailById", mock.Anything, id).Return(&domain.BookingDetail{
		Booking: domain.Booking{
			ID:           id,
			CustomerName: "Maria Silva",
			NumTickets:   2,
			TotalPrice:   decimal.RequireFromString("62.50"),
		},
		MovieTitle:  "Dune: Part Two",
		ShowDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		ShowTime:    "19:30",
		TheaterName: "Sala 1",
		TicketPrice: decimal.RequireFromString("25.00"),
		FoodLineItems: []domain.BookingFoodItemDetail{
			{Name: "Pipoca Grande", Quantity: 1, UnitPrice: decimal.RequireFromString("12.50")},
		},
	}, nil).Once()
}

func validBookingBody() map[string]any {
	return map[string]any{
		"showtime_id":    1,
		"customer_name":  "Maria Silva",
		"customer_email": "maria@example.com",
		"num_tickets":    2,
		"food_items": []map[string]any{
			{"food_item_id": 7, "quantity": 1},
		},
	}
}

func (s *BookingsTestSuite) TestCreateBookingValidation() {
	tests := []struct {
		name           string
		body           any
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "empty body",
			body:           nil,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "body must not be empty",
		},
		{
			name: "unknown field",
			body: func() map[string]any {
				body := validBookingBody()
				body["seat"] = "A1"
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: `body contains unknown key "seat"`,
		},
		{
			name: "missing showtime",
			body: func() map[string]any {
				body := validBookingBody()
				delete(body, "showtime_id")
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: validator.ErrRequired,
		},
		{
			name: "invalid email",
			body: func() map[string]any {
				body := validBookingBody()
				body["customer_email"] = "maria-at-example"
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: validator.ErrInvalidEmail,
		},
		{
			name: "negative ticket count",
			body: func() map[string]any {
				body := validBookingBody()
				body["num_tickets"] = -1
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: fmt.Sprintf(validator.ErrMinValue, "1"),
		},
		{
			name: "zero food quantity",
			body: func() map[string]any {
				body := validBookingBody()
				body["food_items"] = []map[string]any{{"food_item_id": 7, "quantity": 0}}
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: fmt.Sprintf(validator.ErrMinValue, "1"),
		},
		{
			name: "zero tickets",
			body: func() map[string]any {
				body := validBookingBody()
				body["num_tickets"] = 0
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: fmt.Sprintf(validator.ErrMinValue, "1"),
		},
		{
			name: "ticket count above limit",
			body: func() map[string]any {
				body := validBookingBody()
				body["num_tickets"] = 5_000_000
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: fmt.Sprintf(validator.ErrMaxValue, "1000"),
		},
		{
			name: "food quantity above limit",
			body: func() map[string]any {
				body := validBookingBody()
				body["food_items"] = []map[string]any{{"food_item_id": 7, "quantity": 5_000_000_000}}
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: fmt.Sprintf(validator.ErrMaxValue, "100"),
		},
		{
			name: "too many food lines",
			body: func() map[string]any {
				body := validBookingBody()
				items := make([]map[string]any, 51)
				for i := range items {
					items[i] = map[string]any{"food_item_id": 7, "quantity": 1}
				}
				body["food_items"] = items
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: fmt.Sprintf(validator.ErrMaxValue, "50"),
		},
		{
			name: "repeated food items above limit",
			body: func() map[string]any {
				body := validBookingBody()
				body["food_items"] = []map[string]any{
					{"food_item_id": 7, "quantity": 60},
					{"food_item_id": 7, "quantity": 60},
				}
				return body
			}(),
			wantStatus: http.StatusBadRequest,
			wantErrMessage: fmt.Sprintf("%s: food item 7 must have at most %d units",
				domain.ErrFoodQuantityExceeded, domain.MaxFoodItemQuantity),
		},
		{
			name: "unknown showtime",
			body: func() map[string]any {
				body := validBookingBody()
				body["showtime_id"] = 404
				return body
			}(),
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name: "more tickets than seats",
			body: func() map[string]any {
				body := validBookingBody()
				body["showtime_id"] = 2
				return body
			}(),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: domain.ErrNotEnoughSeats.Error(),
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			w, r := executeRequest(s.T(), http.MethodPost, "/bookings", tt.body)
			r = setupTestSession(s.T(), s.app, r, "")

			s.app.CreateBooking(w, r)
			s.app.wg.Wait()

			s.Equal(tt.wantStatus, w.Code)
			s.bookingRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
			s.Empty(s.mailer.GetSentEmails())

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *BookingsTestSuite) TestCreateBookingWithFood() {
	s.expectCreate(42)
	s.expectNotifications(42)

	w, r := executeRequest(s.T(), http.MethodPost, "/bookings", validBookingBody())
	r = setupTestSession(s.T(), s.app, r, "")

	s.app.CreateBooking(w, r)
	s.app.wg.Wait()

	s.Require().Equal(http.StatusCreated, w.Code)

	var response api.Booking
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))

	want := api.Booking{
		Id:            42,
		ShowtimeId:    1,
		CustomerName:  "Maria Silva",
		CustomerEmail: "maria@example.com",
		NumTickets:    2,
		TotalPrice:    62.5,
		Status:        domain.BookingStatusConfirmed,
		CreatedAt:     bookingCreatedAt,
		UpdatedAt:     bookingCreatedAt,
	}
	diff := cmp.Diff(want, response)
	s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)

	s.bookingRepo.AssertCalled(s.T(), "Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return len(b.FoodItems) == 1 &&
			b.FoodItems[0].FoodItemID == 7 &&
			b.FoodItems[0].UnitPrice.Equal(decimal.RequireFromString("12.50")) &&
			b.TotalPrice.Equal(decimal.RequireFromString("62.50"))
	}))

	s.events.AssertCalled(s.T(), "PublishBookingCreated", mock.Anything, mock.MatchedBy(func(e domain.BookingCreatedEvent) bool {
		return e.BookingID == 42 && e.NumTickets == 2 && e.CustomerEmail == "maria@example.com"
	}))

	emails := s.mailer.GetSentEmails()
	s.Require().Len(emails, 1)
	s.Equal("maria@example.com", emails[0].Recipient)
	s.Equal(bookingConfirmationTemplate, emails[0].TemplateFile)

	data, ok := emails[0].Data.(bookingConfirmation)
	s.Require().True(ok)
	s.Equal(42, data.BookingID)
	s.Equal("62.50", data.TotalPrice)
	s.Equal("10/03/2025", data.ShowDate)
	s.Require().Len(data.FoodItems, 1)
	s.Equal("12.50", data.FoodItems[0].UnitPrice)

	s.bookingRepo.AssertExpectations(s.T())
	s.events.AssertExpectations(s.T())
}

func (s *BookingsTestSuite) TestCreateBookingDropsUnavailableFood() {
	s.expectCreate(43)
	s.expectNotifications(43)

	body := validBookingBody()
	body["food_items"] = []map[string]any{
		{"food_item_id": 7, "quantity": 2},
		{"food_item_id": 99, "quantity": 3},
	}

	w, r := executeRequest(s.T(), http.MethodPost, "/bookings", body)
	r = setupTestSession(s.T(), s.app, r, "")

	s.app.CreateBooking(w, r)
	s.app.wg.Wait()

	s.Require().Equal(http.StatusCreated, w.Code)

	s.bookingRepo.AssertCalled(s.T(), "Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return len(b.FoodItems) == 1 &&
			b.FoodItems[0].FoodItemID == 7 &&
			b.FoodItems[0].Quantity == 2 &&
			b.TotalPrice.Equal(decimal.RequireFromString("75.00"))
	}))
}

func (s *BookingsTestSuite) TestCreateBookingRepositoryErrors() {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "seats taken concurrently",
			err:            domain.ErrNotEnoughSeats,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: domain.ErrNotEnoughSeats.Error(),
		},
		{
			name:           "referenced row disappeared",
			err:            domain.ErrRecordNotFound,
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:           "database error",
			err:            fmt.Errorf("connection reset"),
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			s.bookingRepo.On("Create", mock.Anything, mock.Anything).Return(tt.err).Once()

			w, r := executeRequest(s.T(), http.MethodPost, "/bookings", validBookingBody())
			r = setupTestSession(s.T(), s.app, r, "")

			s.app.CreateBooking(w, r)
			s.app.wg.Wait()

			s.Equal(tt.wantStatus, w.Code)
			s.Empty(s.mailer.GetSentEmails())
			s.events.AssertNotCalled(s.T(), "PublishBookingCreated", mock.Anything, mock.Anything)

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *BookingsTestSuite) TestCreateBookingRespectsConfirmationPreference() {
	user := &domain.User{ID: "user-1", Email: "maria@example.com"}

	s.expectCreate(44)
	s.events.On("PublishBookingCreated", mock.Anything, mock.Anything).Return(nil).Once()
	s.identity.On("ResolveSession", mock.Anything, "identity-token").Return(user, nil).Once()
	s.preferencesRepo.On("GetOrCreate", mock.Anything, domain.DefaultPreferences("user-1")).
		Return(&domain.UserPreferences{
			UserID:                     "user-1",
			Language:                   "en",
			NotifyBookingConfirmations: false,
		}, nil).
		Once()

	w, r := executeRequest(s.T(), http.MethodPost, "/bookings", validBookingBody())
	r = setupTestSession(s.T(), s.app, r, "identity-token")

	s.app.CreateBooking(w, r)
	s.app.wg.Wait()

	s.Equal(http.StatusCreated, w.Code)
	s.Empty(s.mailer.GetSentEmails())
	s.bookingRepo.AssertNotCalled(s.T(), "GetDetailById", mock.Anything, mock.Anything)

	s.identity.AssertExpectations(s.T())
	s.preferencesRepo.AssertExpectations(s.T())
}

func (s *BookingsTestSuite) TestCreateBookingSkipsConfirmationWhenSessionUnresolved() {
	s.expectCreate(46)
	s.events.On("PublishBookingCreated", mock.Anything, mock.Anything).Return(nil).Once()
	s.identity.On("ResolveSession", mock.Anything, "identity-token").
		Return(nil, fmt.Errorf("identity service unavailable")).
		Once()

	w, r := executeRequest(s.T(), http.MethodPost, "/bookings", validBookingBody())
	r = setupTestSession(s.T(), s.app, r, "identity-token")

	s.app.CreateBooking(w, r)
	s.app.wg.Wait()

	s.Equal(http.StatusCreated, w.Code)
	s.Empty(s.mailer.GetSentEmails())
	s.bookingRepo.AssertNotCalled(s.T(), "GetDetailById", mock.Anything, mock.Anything)
	s.preferencesRepo.AssertNotCalled(s.T(), "GetOrCreate", mock.Anything, mock.Anything)
	s.events.AssertExpectations(s.T())
}

func (s *BookingsTestSuite) TestCreateBookingStoresBlankPhoneAsNull() {
	tests := []struct {
		name      string
		phone     string
		wantPhone *string
	}{
		{name: "empty phone", phone: "", wantPhone: nil},
		{name: "whitespace phone", phone: "   ", wantPhone: nil},
		{name: "phone number", phone: "+55 11 91234-5678", wantPhone: ptr("+55 11 91234-5678")},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.expectCreate(47)
			s.expectNotifications(47)

			body := validBookingBody()
			body["customer_phone"] = tt.phone

			w, r := executeRequest(s.T(), http.MethodPost, "/bookings", body)
			r = setupTestSession(s.T(), s.app, r, "")

			s.app.CreateBooking(w, r)
			s.app.wg.Wait()

			s.Require().Equal(http.StatusCreated, w.Code)
			s.bookingRepo.AssertCalled(s.T(), "Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
				return cmp.Equal(tt.wantPhone, b.CustomerPhone)
			}))
		})
	}
}

func (s *BookingsTestSuite) TestCreateBookingMailerFailureKeepsBooking() {
	s.expectCreate(45)
	s.expectNotifications(45)
	s.mailer.FailWith(fmt.Errorf("smtp unavailable"))

	w, r := executeRequest(s.T(), http.MethodPost, "/bookings", validBookingBody())
	r = setupTestSession(s.T(), s.app, r, "")

	s.app.CreateBooking(w, r)
	s.app.wg.Wait()

	s.Equal(http.StatusCreated, w.Code)
	s.Empty(s.mailer.GetSentEmails())
}

func (s *BookingsTestSuite) TestGetBookingById() {
	detail := &domain.BookingDetail{
		Booking: domain.Booking{
			ID:            42,
			ShowtimeID:    1,
			CustomerName:  "Maria Silva",
			CustomerEmail: "maria@example.com",
			NumTickets:    2,
			TotalPrice:    decimal.RequireFromString("62.50"),
			Status:        domain.BookingStatusConfirmed,
			CreatedAt:     bookingCreatedAt,
			UpdatedAt:     bookingCreatedAt,
		},
		MovieTitle:  "Dune: Part Two",
		ShowDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		ShowTime:    "19:30",
		TheaterName: "Sala 1",
		TicketPrice: decimal.RequireFromString("25.00"),
		FoodLineItems: []domain.BookingFoodItemDetail{
			{Name: "Pipoca Grande", Quantity: 1, UnitPrice: decimal.RequireFromString("12.50")},
		},
	}

	tests := []struct {
		name           string
		bookingId      int
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.BookingDetailResponse
	}{
		{
			name:           "invalid booking id",
			bookingId:      0,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "booking ID must be greater than zero",
		},
		{
			name:      "booking not found",
			bookingId: 404,
			setupMock: func() {
				s.bookingRepo.On("GetDetailById", mock.Anything, 404).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:      "database error",
			bookingId: 42,
			setupMock: func() {
				s.bookingRepo.On("GetDetailById", mock.Anything, 42).Return(nil, fmt.Errorf("database error"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:      "booking with food",
			bookingId: 42,
			setupMock: func() {
				s.bookingRepo.On("GetDetailById", mock.Anything, 42).Return(detail, nil)
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.BookingDetailResponse{
				Booking: api.Booking{
					Id:            42,
					ShowtimeId:    1,
					CustomerName:  "Maria Silva",
					CustomerEmail: "maria@example.com",
					NumTickets:    2,
					TotalPrice:    62.5,
					Status:        domain.BookingStatusConfirmed,
					CreatedAt:     bookingCreatedAt,
					UpdatedAt:     bookingCreatedAt,
				},
				MovieTitle:  "Dune: Part Two",
				ShowDate:    types.Date{Time: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
				ShowTime:    "19:30",
				TheaterName: "Sala 1",
				TicketPrice: 25,
				FoodItems: []api.BookingFoodLineItem{
					{Name: "Pipoca Grande", Quantity: 1, UnitPrice: 12.5},
				},
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.bookingRepo.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, fmt.Sprintf("/bookings/%d", tt.bookingId), nil)

			s.app.GetBookingById(w, r, tt.bookingId)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.BookingDetailResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")

				diff := cmp.Diff(tt.wantResponse, &response)
				s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}
