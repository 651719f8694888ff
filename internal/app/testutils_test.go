package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/metinatakli/movie-booking-system/internal/events"
	"github.com/metinatakli/movie-booking-system/internal/mailer"
	"github.com/metinatakli/movie-booking-system/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:         Config{Env: "test"},
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		mailer:         mailer.NewMockMailer(),
		events:         events.NoopPublisher{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// setupTestSession loads a fresh session into the request context and, when token is not
// empty, stores it as the identity token.
func setupTestSession(t *testing.T, app *Application, r *http.Request, token string) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	if token != "" {
		app.sessionManager.Put(ctx, SessionKeyIdentityToken.String(), token)
	}

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}

		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func withUser(app *Application, r *http.Request, user *domain.User) *http.Request {
	return app.contextSetUser(r, user)
}

// checkErrorResponse expects a validation issue equal to wantErrMessage when the body is a
// validation error response, and an error message equal to it otherwise.
func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	var resp struct {
		Message          string `json:"message"`
		RequestId        string `json:"request_id"`
		ValidationErrors []struct {
			Field string `json:"field"`
			Issue string `json:"issue"`
		} `json:"validation_errors"`
	}

	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if tt.wantErrMessage == "" {
		return
	}

	if resp.ValidationErrors != nil {
		for _, vErr := range resp.ValidationErrors {
			if vErr.Issue == tt.wantErrMessage {
				return
			}
		}

		t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		return
	}

	if resp.Message != tt.wantErrMessage {
		t.Errorf("Error message = %v, want %v", resp.Message, tt.wantErrMessage)
	}
}

func ptr[T any](v T) *T {
	return &v
}
