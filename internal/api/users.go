package api

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/aegislabs/aegis/internal/errors"
	"github.com/aegislabs/aegis/internal/models"
)

// loginRequest is the body for POST /users/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns the issued bearer token.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, apierrors.NewValidationError("credentials", "email and password are required")
	}

	return c.postCredentials(ctx, PathUsers, req)
}

// Login exchanges email/password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, apierrors.NewValidationError("credentials", "email and password are required")
	}

	return c.postCredentials(ctx, PathUsersLogin, loginRequest{Email: email, Password: password})
}

// Me returns the authenticated user's profile. A 401 is reported as an
// AuthError; callers treat it as "no user" rather than a hard failure.
func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	data, err := c.postJSON(ctx, PathUsersMe)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, apierrors.NewParseError("failed to decode user profile", "")
	}

	return &profile, nil
}

// postCredentials sends an unauthenticated JSON body and decodes the token
// response shared by registration and login.
func (c *Client) postCredentials(ctx context.Context, path string, body any) (*models.LoginResponse, error) {
	endpoint := c.endpoint(path)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "aegis-cli")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("login", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode == 401 {
		return nil, apierrors.NewAuthError("invalid credentials")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "credential request failed", readErrorBody(resp.Body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("login read", endpoint, err)
	}

	var login models.LoginResponse
	if err := json.Unmarshal(data, &login); err != nil {
		return nil, apierrors.NewParseError("failed to decode token response", "access_token")
	}
	if login.AccessToken == "" {
		return nil, apierrors.NewParseError("token response missing access_token", "access_token")
	}

	return &login, nil
}
