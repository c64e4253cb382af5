package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

const (
	// RequestIDHeader carries a per-request id for log correlation.
	RequestIDHeader = "X-Request-ID"

	maxBodySize = 1 << 20
)

// HTTPClient talks JSON to the remote API. It attaches the persisted
// credential to every request, classifies failures into the package's
// sentinel errors and raises an Event for the globally handled ones.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger

	mu       sync.RWMutex
	handlers []EventHandler
}

// NewHTTPClient builds a client for baseURL (e.g. "http://localhost:3080/api").
// timeout bounds every request; a timed-out request fails with ErrUnavailable.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With("component", "transport"),
	}
}

// Subscribe registers h for every subsequent Event.
func (c *HTTPClient) Subscribe(h EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
}

// Do sends body (JSON-encoded when not nil) to path and decodes a 2xx
// response into out (skipped when out is nil or the body is empty).
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, reader, contentType, out)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	err := c.roundTrip(ctx, method, path, body, contentType, out)
	if err != nil {
		c.emit(ctx, method, path, err)
	}
	return err
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}

	token, err := c.tokens.Get(ctx)
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", authorizationValue(token))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return err
		}
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read %s %s response: %v", ErrUnavailable, method, path, err)
	}

	c.log.Debug(ctx, "request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) emit(ctx context.Context, method, path string, err error) {
	kind, ok := eventFor(err)
	if !ok {
		return
	}

	ev := Event{Kind: kind, Method: method, Path: path, Err: err}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		ev.StatusCode = apiErr.StatusCode
	}

	c.mu.RLock()
	handlers := append([]EventHandler(nil), c.handlers...)
	c.mu.RUnlock()

	c.log.Debug(ctx, "transport event", "kind", kind, "method", method, "path", path, "subscribers", len(handlers))
	for _, h := range handlers {
		h(ev)
	}
}

func newAPIError(code int, body []byte) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	return &APIError{
		Kind:       kindForStatus(code),
		StatusCode: code,
		Message:    payload.Error,
	}
}

// authorizationValue sends tokens issued with the "Bearer " prefix as is and
// adds the prefix to bare ones.
func authorizationValue(token string) string {
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		return token
	}
	return "Bearer " + token
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.Do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("login response carries no token")
	}
	return resp.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, payload models.RegisterPayload) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/register", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("register response carries no token")
	}
	return &resp, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.Do(ctx, http.MethodGet, "/user/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, payload models.UpdateProfilePayload) (*models.User, error) {
	var u models.User
	if err := c.Do(ctx, http.MethodPut, "/user/profile", payload, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UploadAvatar sends content as the multipart "avatar" field and returns the
// URL the server stored for it.
func (c *HTTPClient) UploadAvatar(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", filename)
	if err != nil {
		return "", fmt.Errorf("build avatar form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build avatar form: %w", err)
	}

	var resp models.AvatarUpload
	if err := c.send(ctx, http.MethodPost, "/user/upload/avatar", &buf, mw.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	return resp.Avatar, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.Do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) ChangeUserRole(ctx context.Context, userID uint64, role models.Role) (*models.RoleChange, error) {
	var rc models.RoleChange
	path := fmt.Sprintf("/admin/users/%d/role", userID)
	if err := c.Do(ctx, http.MethodPatch, path, models.ChangeRoleRequest{Role: role}, &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}
