package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/educa-portal/acervo/internal/catalog"
)

// DefaultBaseURL is where the portal backend listens in development.
const DefaultBaseURL = "http://localhost:5000/api"

// Client wraps HTTP calls to the portal backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a portal API client. token may be empty for Login.
func NewClient(baseURL, token string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Token returns the bearer token the client sends.
func (c *Client) Token() string { return c.token }

// UserID returns the account id carried by the token.
func (c *Client) UserID() (string, error) {
	if c.token == "" {
		return "", ErrUnauthorized
	}
	return UserIDFromToken(c.token)
}

func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("portal request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(respBody)),
		}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// API methods

// Login exchanges credentials for a token and stores it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Senha: password}, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return nil, fmt.Errorf("login: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login: empty token in response")
	}
	c.token = resp.Token
	return &resp, nil
}

// User fetches a user profile by id.
func (c *Client) User(ctx context.Context, id string) (*User, error) {
	var resp User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), &resp); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if resp.ID == "" {
		resp.ID = ID(id)
	}
	return &resp, nil
}

// CurrentUser resolves the token's user id and fetches that profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	id, err := c.UserID()
	if err != nil {
		return nil, err
	}
	return c.User(ctx, id)
}

// Content lists every item of the given kind.
func (c *Client) Content(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	return c.listContent(ctx, kind)
}

func (c *Client) listContent(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	var dtos []contentDTO
	if err := c.get(ctx, collectionPath(kind), &dtos); err != nil {
		return nil, fmt.Errorf("list %ss: %w", kind, err)
	}
	items := toItems(dtos, kind)
	for _, it := range items {
		for _, issue := range it.Issues {
			c.log.Debug("content normalization issue", "kind", kind, "id", it.ID, "error", issue)
		}
	}
	return items, nil
}

// Delete removes a book or video.
func (c *Client) Delete(ctx context.Context, kind catalog.Kind, id string) error {
	if err := c.delete(ctx, collectionPath(kind)+"/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	return nil
}

// LikeVideo likes a video and returns its updated state.
func (c *Client) LikeVideo(ctx context.Context, id string) (*catalog.Item, error) {
	var dto contentDTO
	if err := c.post(ctx, "/videos/"+url.PathEscape(id)+"/like", nil, &dto); err != nil {
		return nil, fmt.Errorf("like video %s: %w", id, err)
	}
	it := dto.toItem(catalog.KindVideo)
	return &it, nil
}

func collectionPath(kind catalog.Kind) string {
	if kind == catalog.KindVideo {
		return "/videos"
	}
	return "/books"
}
