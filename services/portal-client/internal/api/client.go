// Package api is the HTTP client for the portal service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aihubacademy/backend/services/portal-client/internal/models"
)

// APIError is a non-2xx response from the portal service
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portal api error %d: %s", e.Status, e.Message)
}

// Client talks to the portal service API
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// userResponse is the success envelope returned by register and login
type userResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

// registerRequest is the body of POST /api/register
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// loginRequest is the body of POST /api/login
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account on the portal service
func (c *Client) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	var resp userResponse
	err := c.post(ctx, "/api/register", registerRequest{Email: email, Password: password, Name: name}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login authenticates against the portal service
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp userResponse
	err := c.post(ctx, "/api/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// GetProgress fetches the progress record for a user
func (c *Client) GetProgress(ctx context.Context, userID string) (*models.Progress, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/progress/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	progress := &models.Progress{}
	if err := c.do(req, progress); err != nil {
		return nil, err
	}

	if progress.CompletedTutorials == nil {
		progress.CompletedTutorials = []int{}
	}
	return progress, nil
}

// SaveProgress writes the full progress record for a user
func (c *Client) SaveProgress(ctx context.Context, userID string, progress *models.Progress) error {
	return c.post(ctx, "/api/progress/"+userID, progress, nil)
}

// post sends a JSON body and decodes the JSON response into out (when non-nil)
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes the request and decodes the response, turning non-2xx
// responses into *APIError values
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
