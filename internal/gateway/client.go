// Package gateway is the HTTP client for the remote scheduling API. It is a
// thin transport layer: it decodes responses and reports protocol-level
// failures, and leaves all state handling to the store.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mpriestly/slotbook/internal/logger"
	"github.com/mpriestly/slotbook/internal/models"
)

// StatusError reports a response whose status code does not match the API
// contract. It is distinct from transport errors: the server answered, just
// not with what the contract promises.
type StatusError struct {
	Op     string
	Status int
	Want   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d from API (want %d)", e.Op, e.Status, e.Want)
}

// Client talks to the scheduling API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient returns a client for the API at baseURL. token, if non-empty, is
// sent as a bearer token on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	logger.Debug("API request", "method", req.Method, "path", path, "request_id", req.Header.Get("X-Request-ID"))
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "GET " + path, Status: resp.StatusCode, Want: http.StatusOK}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}

// GetDays fetches all days with their stored spot counts.
func (c *Client) GetDays(ctx context.Context) ([]models.Day, error) {
	var days []models.Day
	if err := c.getJSON(ctx, "/api/days", &days); err != nil {
		return nil, err
	}
	return days, nil
}

// GetAppointments fetches the appointment map keyed by id.
func (c *Client) GetAppointments(ctx context.Context) (map[int]models.Appointment, error) {
	var appointments map[int]models.Appointment
	if err := c.getJSON(ctx, "/api/appointments", &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// GetInterviewers fetches the interviewer map keyed by id.
func (c *Client) GetInterviewers(ctx context.Context) (map[int]models.Interviewer, error) {
	var interviewers map[int]models.Interviewer
	if err := c.getJSON(ctx, "/api/interviewers", &interviewers); err != nil {
		return nil, err
	}
	return interviewers, nil
}

// PutAppointment saves an interview into the given appointment slot. The API
// confirms with 204 No Content; any other status is a StatusError.
func (c *Client) PutAppointment(ctx context.Context, id int, interview models.Interview) error {
	payload, err := json.Marshal(map[string]models.Interview{"interview": interview})
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/api/appointments/%d", id)
	req, err := c.newRequest(ctx, http.MethodPut, path, payload)
	if err != nil {
		return err
	}
	logger.Debug("API request", "method", req.Method, "path", path, "request_id", req.Header.Get("X-Request-ID"))
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("PUT %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return &StatusError{Op: "PUT " + path, Status: resp.StatusCode, Want: http.StatusNoContent}
	}
	return nil
}

// DeleteAppointment clears the interview from the given appointment slot.
// Same 204 contract as PutAppointment.
func (c *Client) DeleteAppointment(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/appointments/%d", id)
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	logger.Debug("API request", "method", req.Method, "path", path, "request_id", req.Header.Get("X-Request-ID"))
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("DELETE %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return &StatusError{Op: "DELETE " + path, Status: resp.StatusCode, Want: http.StatusNoContent}
	}
	return nil
}
