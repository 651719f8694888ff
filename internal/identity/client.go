// Package identity talks to the external users service that owns OAuth login and session
// tokens. The application never stores users locally.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

const apiKeyHeader = "x-api-key"

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type redirectURLResponse struct {
	RedirectURL string `json:"redirect_url"`
}

type sessionRequest struct {
	Code string `json:"code"`
}

type sessionResponse struct {
	SessionToken string `json:"session_token"`
}

type userResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	DisplayName    string     `json:"display_name"`
	PictureURL     string     `json:"picture_url"`
	LastSignedInAt *time.Time `json:"last_signed_in_at"`
}

func (c *Client) RedirectURL(ctx context.Context, provider string) (string, error) {
	path := fmt.Sprintf("/oauth/%s/redirect_url", url.PathEscape(provider))

	var resp redirectURLResponse

	status, err := c.do(ctx, http.MethodGet, path, "", nil, &resp)
	if err != nil {
		return "", err
	}

	if status != http.StatusOK {
		return "", fmt.Errorf("identity: unexpected status %d fetching redirect url", status)
	}

	return resp.RedirectURL, nil
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	var resp sessionResponse

	status, err := c.do(ctx, http.MethodPost, "/sessions", "", sessionRequest{Code: code}, &resp)
	if err != nil {
		return "", err
	}

	switch {
	case status == http.StatusBadRequest || status == http.StatusUnauthorized:
		return "", domain.ErrInvalidAuthCode
	case status != http.StatusOK && status != http.StatusCreated:
		return "", fmt.Errorf("identity: unexpected status %d exchanging code", status)
	}

	if resp.SessionToken == "" {
		return "", domain.ErrInvalidAuthCode
	}

	return resp.SessionToken, nil
}

func (c *Client) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	var resp userResponse

	status, err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &resp)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusNotFound:
		return nil, domain.ErrInvalidSession
	case status != http.StatusOK:
		return nil, fmt.Errorf("identity: unexpected status %d resolving session", status)
	}

	return &domain.User{
		ID:             resp.ID,
		Email:          resp.Email,
		DisplayName:    resp.DisplayName,
		PictureUrl:     resp.PictureURL,
		LastSignedInAt: resp.LastSignedInAt,
	}, nil
}

// RevokeSession treats an already expired token as revoked.
func (c *Client) RevokeSession(ctx context.Context, token string) error {
	status, err := c.do(ctx, http.MethodDelete, "/sessions", token, nil, nil)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK, http.StatusNoContent, http.StatusUnauthorized, http.StatusNotFound:
		return nil
	}

	return fmt.Errorf("identity: unexpected status %d revoking session", status)
}

// do sends the request and decodes a 2xx body into dst when dst is not nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, dst any) (int, error) {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("identity: marshal request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("identity: build request: %w", err)
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("identity: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if dst != nil && res.StatusCode >= 200 && res.StatusCode < 300 {
		err = json.NewDecoder(res.Body).Decode(dst)
		if err != nil {
			return res.StatusCode, fmt.Errorf("identity: decode response: %w", err)
		}
	}

	return res.StatusCode, nil
}
