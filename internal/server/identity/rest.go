package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/afyalink/afyalink/internal/common"
)

// RESTProvider talks to the hosted auth endpoint over its password-grant
// HTTP API. The anon key authenticates the application itself.
type RESTProvider struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewRESTProvider(baseURL, anonKey string, timeout time.Duration) *RESTProvider {
	return &RESTProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type restUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

type restSignInResponse struct {
	AccessToken string    `json:"access_token"`
	User        *restUser `json:"user"`
}

type restError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (e *restError) text() string {
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return e.Message
}

// SignInWithPassword authenticates email/password. A provider rejection maps
// to common.ErrAuthentication; transport problems surface as-is.
func (p *RESTProvider) SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	body, status, err := p.post(ctx, "/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, rejectionError(common.ErrAuthentication, body, status)
	}

	res := &restSignInResponse{}
	if err := json.Unmarshal(body, res); err != nil {
		return nil, fmt.Errorf("decoding sign-in response: %w", err)
	}

	// No user means no login, whatever the status code said.
	if res.User == nil || res.User.ID == "" {
		return nil, common.ErrAuthentication
	}

	return &SignInResult{
		User: &User{
			ID:       res.User.ID,
			Email:    res.User.Email,
			FullName: res.User.UserMetadata.FullName,
		},
		AccessToken: res.AccessToken,
	}, nil
}

// SignUp registers a new identity, carrying the full name as user metadata
// so later sign-ins return it. No session or token is created. A duplicate
// email maps to common.ErrConflict, not an authentication failure.
func (p *RESTProvider) SignUp(ctx context.Context, email, password, fullName string) (*User, error) {
	body, status, err := p.post(ctx, "/signup", map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": fullName},
	})
	if err != nil {
		return nil, err
	}
	if status == http.StatusConflict || status == http.StatusUnprocessableEntity {
		return nil, rejectionError(common.ErrConflict, body, status)
	}
	if status < 200 || status > 299 {
		return nil, rejectionError(common.ErrValidation, body, status)
	}

	u := &restUser{}
	if err := json.Unmarshal(body, u); err != nil {
		return nil, fmt.Errorf("decoding sign-up response: %w", err)
	}
	if u.ID == "" {
		return nil, common.ErrAuthentication
	}

	return &User{ID: u.ID, Email: u.Email, FullName: u.UserMetadata.FullName}, nil
}

// post sends a JSON payload and returns the raw body and status code.
// Non-2xx responses are not errors here; each caller maps them onto its own
// sentinel.
func (p *RESTProvider) post(ctx context.Context, path string, payload any) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.anonKey != "" {
		req.Header.Set("apikey", p.anonKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

// rejectionError wraps the provider's error body in the given sentinel.
func rejectionError(sentinel error, body []byte, status int) error {
	e := &restError{}
	_ = json.Unmarshal(body, e)
	if msg := e.text(); msg != "" {
		return fmt.Errorf("%w: %s", sentinel, msg)
	}
	return fmt.Errorf("%w: status %d", sentinel, status)
}
