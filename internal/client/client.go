// Package client is a small Go client for the drone catalog API.
package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the decoded body of every API response
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Error      string          `json:"error,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	Pagination json.RawMessage `json:"pagination,omitempty"`
	Timestamp  string          `json:"timestamp,omitempty"`
}

// APIError is returned for responses with success false
type APIError struct {
	Status   int
	Envelope Envelope
}

func (e *APIError) Error() string {
	msg := e.Envelope.Error
	if msg == "" {
		msg = "API Error"
	}
	if len(e.Envelope.Details) > 0 {
		return fmt.Sprintf("%d %s: %s", e.Status, msg, e.Envelope.Details)
	}
	return fmt.Sprintf("%d %s", e.Status, msg)
}

// Client calls the API at BaseURL, which includes any base path
type Client struct {
	BaseURL string
	Timeout time.Duration
}

// New returns a client for baseURL
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Timeout: 10 * time.Second,
	}
}

// ListOptions are the list query parameters; zero values are omitted
type ListOptions struct {
	Page     int
	Limit    int
	Category string
	Enabled  string
	Search   string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", fmt.Sprint(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", fmt.Sprint(o.Limit))
	}
	if o.Category != "" {
		v.Set("category", o.Category)
	}
	if o.Enabled != "" {
		v.Set("enabled", o.Enabled)
	}
	if o.Search != "" {
		v.Set("search", o.Search)
	}
	return v
}

// List fetches one page of drones
func (c *Client) List(opts ListOptions) (*Envelope, error) {
	path := "/drones"
	if q := opts.values().Encode(); q != "" {
		path += "?" + q
	}
	return c.do(fiber.MethodGet, path, nil)
}

// Get fetches one drone
func (c *Client) Get(id string) (*Envelope, error) {
	return c.do(fiber.MethodGet, "/drones/"+url.PathEscape(id), nil)
}

// Create stores a new drone from a JSON object
func (c *Client) Create(body []byte) (*Envelope, error) {
	return c.do(fiber.MethodPost, "/drones", body)
}

// Update merges the fields of a JSON object into a drone
func (c *Client) Update(id string, body []byte) (*Envelope, error) {
	return c.do(fiber.MethodPut, "/drones/"+url.PathEscape(id), body)
}

// Delete removes a drone
func (c *Client) Delete(id string) (*Envelope, error) {
	return c.do(fiber.MethodDelete, "/drones/"+url.PathEscape(id), nil)
}

// Stats fetches the per-category summary
func (c *Client) Stats() (*Envelope, error) {
	return c.do(fiber.MethodGet, "/drones/stats/summary", nil)
}

// Health calls the liveness route at the server root
func (c *Client) Health() (*Envelope, error) {
	root := c.BaseURL
	if u, err := url.Parse(c.BaseURL); err == nil {
		u.Path = ""
		root = u.String()
	}
	return c.send(fiber.MethodGet, root+"/health", nil)
}

func (c *Client) do(method, path string, body []byte) (*Envelope, error) {
	return c.send(method, c.BaseURL+path, body)
}

func (c *Client) send(method, target string, body []byte) (*Envelope, error) {
	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(target)
	if body != nil {
		a.ContentType(fiber.MIMEApplicationJSON)
		a.Body(body)
	}
	a.Timeout(c.Timeout)

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, fmt.Errorf("invalid request %s %s: %w", method, target, err)
	}

	var out Envelope
	code, raw, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s %s: %w", method, target, errs[0])
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%s %s: unexpected response (%d): %w", method, target, code, err)
	}
	if !out.Success || code >= fiber.StatusBadRequest {
		return &out, &APIError{Status: code, Envelope: out}
	}
	return &out, nil
}
