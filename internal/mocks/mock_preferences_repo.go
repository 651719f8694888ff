package mocks

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPreferencesRepo struct {
	mock.Mock
	domain.PreferencesRepository
}

func (m *MockPreferencesRepo) GetOrCreate(
	ctx context.Context,
	defaults domain.UserPreferences) (*domain.UserPreferences, error) {

	args := m.Called(ctx, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreferences), args.Error(1)
}

func (m *MockPreferencesRepo) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

type MockAccountRepo struct {
	mock.Mock
	domain.AccountRepository
}

func (m *MockAccountRepo) DeleteUserData(ctx context.Context, userID, email string) error {
	args := m.Called(ctx, userID, email)
	return args.Error(0)
}
