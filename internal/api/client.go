package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"taskdeck/internal/task"
)

// APIError is an application-level failure: the server answered with a
// non-zero envelope code.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("api error (code %d)", e.Code)
	}
	return e.Msg
}

// envelope is the response wrapper every endpoint uses. code == 0 means
// success; anything else is a failure and msg carries the reason.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Credentials is what a successful login returns.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

// Client issues task and auth requests against the remote API. TokenFunc
// supplies the bearer credential; when it returns an empty string the request
// goes out unauthenticated.
type Client struct {
	base      string
	http      *http.Client
	tokenFunc func() string
}

func NewClient(baseURL string, timeout time.Duration, tokenFunc func() string) *Client {
	if tokenFunc == nil {
		tokenFunc = func() string { return "" }
	}
	return &Client{
		base:      strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		tokenFunc: tokenFunc,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokenFunc(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	if env.Code != 0 {
		return &APIError{Code: env.Code, Msg: env.Msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data from %s: %w", path, err)
		}
	}
	return nil
}

// ListTasks fetches the user's full task collection, trashed records
// included.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask sends a draft and returns the record the server created. The
// response is untrusted: a record missing its id, title or due date is
// rejected rather than merged into local state.
func (c *Client) CreateTask(ctx context.Context, draft task.Draft) (task.Task, error) {
	var created task.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", draft, &created); err != nil {
		return task.Task{}, err
	}
	if created.ID == 0 || created.Title == "" || created.DueDate == "" {
		return task.Task{}, errors.New("server returned an incomplete task record")
	}
	return created, nil
}

// UpdateTask sends a partial update. The server may omit the updated record
// from the response; callers merge the patch themselves on success.
func (c *Client) UpdateTask(ctx context.Context, id int, patch task.Patch) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), patch, nil)
}

// SoftDeleteTask moves a task to the trash. The record is retained
// server-side with isDeleted set.
func (c *Client) SoftDeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// PurgeTask removes a trashed task permanently. There is no undo.
func (c *Client) PurgeTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/permanent/%d", id), nil, nil)
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges a username and password for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/auth/login", authRequest{username, password}, &creds)
	if err != nil {
		return Credentials{}, err
	}
	if creds.Token == "" {
		return Credentials{}, errors.New("server returned no token")
	}
	return creds, nil
}

// Register creates an account. The user logs in separately afterwards.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", authRequest{username, password}, nil)
}
