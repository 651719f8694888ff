package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

// MemoryProvider is an in-process identity provider. Codes registered with AddCode can be
// exchanged once for a session token bound to the given user.
type MemoryProvider struct {
	mu       sync.Mutex
	codes    map[string]domain.User
	sessions map[string]domain.User
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		codes:    make(map[string]domain.User),
		sessions: make(map[string]domain.User),
	}
}

func (p *MemoryProvider) AddCode(code string, user domain.User) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.codes[code] = user
}

func (p *MemoryProvider) RedirectURL(_ context.Context, provider string) (string, error) {
	return fmt.Sprintf("https://identity.local/oauth/%s/authorize", provider), nil
}

func (p *MemoryProvider) ExchangeCode(_ context.Context, code string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	user, ok := p.codes[code]
	if !ok {
		return "", domain.ErrInvalidAuthCode
	}

	delete(p.codes, code)

	token := uuid.NewString()
	p.sessions[token] = user

	return token, nil
}

func (p *MemoryProvider) ResolveSession(_ context.Context, token string) (*domain.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	user, ok := p.sessions[token]
	if !ok {
		return nil, domain.ErrInvalidSession
	}

	return &user, nil
}

func (p *MemoryProvider) RevokeSession(_ context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.sessions, token)

	return nil
}
