package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cpms/internal/models"
)

// Client talks to the CPMS API. Zero-value timeouts are left to the caller's
// http.Client; pass nil to use http.DefaultClient.
type Client struct {
	base string
	hc   *http.Client
}

func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), hc: hc}
}

// APIError is raised for any non-2xx response, carrying the server-provided
// message when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Resource is the typed proxy for one entity type's endpoint set.
type Resource[T any] struct {
	c            *Client
	path         string
	updateMethod string
}

func (c *Client) Projects() *Resource[models.Project] {
	return &Resource[models.Project]{c: c, path: "/projects", updateMethod: http.MethodPut}
}

func (c *Client) Tasks() *Resource[models.Task] {
	return &Resource[models.Task]{c: c, path: "/tasks", updateMethod: http.MethodPatch}
}

func (c *Client) Disciplines() *Resource[models.Discipline] {
	return &Resource[models.Discipline]{c: c, path: "/disciplines", updateMethod: http.MethodPatch}
}

func (c *Client) GroupFunctions() *Resource[models.GroupFunction] {
	return &Resource[models.GroupFunction]{c: c, path: "/group-functions", updateMethod: http.MethodPatch}
}

func (c *Client) DesignFunctionTemplates() *Resource[models.DesignFunctionTemplate] {
	return &Resource[models.DesignFunctionTemplate]{c: c, path: "/design-function-templates", updateMethod: http.MethodPatch}
}

// PlanningTemplates only serves List and Create; the API has no
// single-resource planning-template routes.
func (c *Client) PlanningTemplates() *Resource[models.PlanningTemplate] {
	return &Resource[models.PlanningTemplate]{c: c, path: "/planning-templates"}
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	err := r.c.do(ctx, http.MethodGet, r.path, nil, &out)
	return out, err
}

func (r *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.path, payload, &out)
	return out, err
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.path+"/"+id, nil, &out)
	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, id string, fields map[string]any) (T, error) {
	var out T
	err := r.c.do(ctx, r.updateMethod, r.path+"/"+id, fields, &out)
	return out, err
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: "Request failed"}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
