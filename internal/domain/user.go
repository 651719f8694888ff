package domain

import (
	"context"
	"time"
)

// User is the identity returned by the external users service. It is never stored locally.
type User struct {
	ID             string
	Email          string
	DisplayName    string
	PictureUrl     string
	LastSignedInAt *time.Time
}

type IdentityProvider interface {
	RedirectURL(ctx context.Context, provider string) (string, error)
	ExchangeCode(ctx context.Context, code string) (string, error)
	ResolveSession(ctx context.Context, token string) (*User, error)
	RevokeSession(ctx context.Context, token string) error
}
