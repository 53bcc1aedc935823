// Package client is a Go client for the notodo REST API.
//
// Login, Register and Guest hand back an auth.Session; every other call takes
// that session explicitly. Nothing is cached between calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notodo/internal/auth"
	"notodo/internal/models"
	"notodo/internal/query"
	"notodo/internal/service"
)

// ErrSessionExpired is returned, without contacting the server, when the session has expired.
var ErrSessionExpired = errors.New("session expired, log in again")

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// Now defaults to time.Now; used for the session expiry check.
	Now func() time.Time
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:5000/api.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Now: time.Now,
	}
}

// Auth

func (c *Client) Register(ctx context.Context, in service.RegisterInput) (models.PublicUser, error) {
	var u models.PublicUser
	err := c.do(ctx, nil, http.MethodPost, "/auth/register", in, &u)
	return u, err
}

func (c *Client) Login(ctx context.Context, email, password string) (auth.Session, error) {
	var s auth.Session
	err := c.do(ctx, nil, http.MethodPost, "/auth/login", service.LoginInput{Email: email, Password: password}, &s)
	return s, err
}

func (c *Client) Guest(ctx context.Context) (auth.Session, error) {
	var s auth.Session
	err := c.do(ctx, nil, http.MethodPost, "/auth/guest", nil, &s)
	return s, err
}

func (c *Client) Me(ctx context.Context, s auth.Session) (models.PublicUser, error) {
	var u models.PublicUser
	err := c.do(ctx, &s, http.MethodGet, "/auth/me", nil, &u)
	return u, err
}

// Tasks

func (c *Client) ListTasks(ctx context.Context, s auth.Session, q query.TaskQuery) ([]query.TaskView, error) {
	params := url.Values{}
	setParam(params, "search", q.Search)
	setParam(params, "status", string(q.Status))
	setParam(params, "category", q.Category)
	setParam(params, "sort", string(q.Sort))

	var tasks []query.TaskView
	err := c.do(ctx, &s, http.MethodGet, withQuery("/tasks", params), nil, &tasks)
	return tasks, err
}

func (c *Client) GetTask(ctx context.Context, s auth.Session, id string) (query.TaskView, error) {
	var t query.TaskView
	err := c.do(ctx, &s, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &t)
	return t, err
}

func (c *Client) CreateTask(ctx context.Context, s auth.Session, in service.TaskInput) (query.TaskView, error) {
	var t query.TaskView
	err := c.do(ctx, &s, http.MethodPost, "/tasks", in, &t)
	return t, err
}

func (c *Client) UpdateTask(ctx context.Context, s auth.Session, id string, p service.TaskPatch) (query.TaskView, error) {
	var t query.TaskView
	err := c.do(ctx, &s, http.MethodPut, "/tasks/"+url.PathEscape(id), p, &t)
	return t, err
}

func (c *Client) DeleteTask(ctx context.Context, s auth.Session, id string) error {
	return c.do(ctx, &s, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// Notes

func (c *Client) ListNotes(ctx context.Context, s auth.Session, q query.NoteQuery) ([]models.Note, error) {
	params := url.Values{}
	setParam(params, "search", q.Search)
	setParam(params, "category", q.Category)

	var notes []models.Note
	err := c.do(ctx, &s, http.MethodGet, withQuery("/notes", params), nil, &notes)
	return notes, err
}

func (c *Client) GetNote(ctx context.Context, s auth.Session, id string) (models.Note, error) {
	var n models.Note
	err := c.do(ctx, &s, http.MethodGet, "/notes/"+url.PathEscape(id), nil, &n)
	return n, err
}

func (c *Client) CreateNote(ctx context.Context, s auth.Session, in service.NoteInput) (models.Note, error) {
	var n models.Note
	err := c.do(ctx, &s, http.MethodPost, "/notes", in, &n)
	return n, err
}

func (c *Client) UpdateNote(ctx context.Context, s auth.Session, id string, p service.NotePatch) (models.Note, error) {
	var n models.Note
	err := c.do(ctx, &s, http.MethodPut, "/notes/"+url.PathEscape(id), p, &n)
	return n, err
}

func (c *Client) DeleteNote(ctx context.Context, s auth.Session, id string) error {
	return c.do(ctx, &s, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AskNotes(ctx context.Context, s auth.Session, in service.AskInput) (string, error) {
	var out struct {
		Answer string `json:"answer"`
	}
	err := c.do(ctx, &s, http.MethodPost, "/notes/ask", in, &out)
	return out.Answer, err
}

// Categories

func (c *Client) ListCategories(ctx context.Context, s auth.Session) ([]models.Category, error) {
	var categories []models.Category
	err := c.do(ctx, &s, http.MethodGet, "/categories", nil, &categories)
	return categories, err
}

func (c *Client) CreateCategory(ctx context.Context, s auth.Session, in service.CategoryInput) (models.Category, error) {
	var cat models.Category
	err := c.do(ctx, &s, http.MethodPost, "/categories", in, &cat)
	return cat, err
}

func (c *Client) DeleteCategory(ctx context.Context, s auth.Session, id string) error {
	return c.do(ctx, &s, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Dashboard(ctx context.Context, s auth.Session) (query.Dashboard, error) {
	var d query.Dashboard
	err := c.do(ctx, &s, http.MethodGet, "/dashboard", nil, &d)
	return d, err
}

// do sends one request. A nil session means an unauthenticated endpoint.
func (c *Client) do(ctx context.Context, s *auth.Session, method, endpoint string, body, out interface{}) error {
	if s != nil && s.Expired(c.now()) {
		return ErrSessionExpired
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s != nil {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiError(method+" "+endpoint, resp.StatusCode, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

var kindByStatus = map[int]service.Kind{
	http.StatusBadRequest:         service.KindValidation,
	http.StatusUnauthorized:       service.KindAuth,
	http.StatusNotFound:           service.KindNotFound,
	http.StatusConflict:           service.KindConflict,
	http.StatusServiceUnavailable: service.KindUnavailable,
}

// apiError rebuilds a service error from a failed response so callers can use errors.Is.
func apiError(op string, status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		payload.Message = http.StatusText(status)
	}
	kind, ok := kindByStatus[status]
	if !ok {
		kind = service.KindInternal
	}
	return &service.Error{Kind: kind, Op: op, Msg: payload.Message, Err: fmt.Errorf("status %d", status)}
}

func setParam(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}
