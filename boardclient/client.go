package boardclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response decoded from the server.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Client talks to the board API with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an API client. httpClient may be nil, in which case
// http.DefaultClient is used.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
	}
}

// ListTasks fetches the authoritative task list for a project, ordered by
// column then position.
func (c *Client) ListTasks(ctx context.Context, projectID uint64) ([]Task, error) {
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	path := fmt.Sprintf("/api/projects/%d/tasks", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateTask appends a task to the end of its target column.
func (c *Client) CreateTask(ctx context.Context, projectID uint64, req CreateTaskRequest) (*Task, error) {
	path := fmt.Sprintf("/api/projects/%d/tasks", projectID)
	return c.doTask(ctx, http.MethodPost, path, req)
}

// UpdateTask edits a task's title, description and/or priority.
func (c *Client) UpdateTask(ctx context.Context, taskID uint64, req UpdateTaskRequest) (*Task, error) {
	path := fmt.Sprintf("/api/tasks/%d", taskID)
	return c.doTask(ctx, http.MethodPatch, path, req)
}

// DeleteTask removes a task; its column closes the gap server-side.
func (c *Client) DeleteTask(ctx context.Context, taskID uint64) error {
	path := fmt.Sprintf("/api/tasks/%d", taskID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// MoveTask relocates a task. The response carries only the moved task;
// neighbors shifted as a side effect are observed by re-fetching the list.
func (c *Client) MoveTask(ctx context.Context, taskID uint64, status TaskStatus, position int) (*Task, error) {
	path := fmt.Sprintf("/api/tasks/%d/move", taskID)
	return c.doTask(ctx, http.MethodPatch, path, MoveTaskRequest{
		Status:   status,
		Position: position,
	})
}

func (c *Client) doTask(ctx context.Context, method, path string, body interface{}) (*Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
