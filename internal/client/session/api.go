// Package session implements the client side of Heartbible Connect: the
// HTTP transport to the server, the in-memory reminder list, the reminder
// form state machine, and the list/statistics rendering.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/heartbible/connect/internal/models"
)

// Client talks to the Heartbible Connect server API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL. hc may be nil, in
// which case http.DefaultClient is used.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: hc}
}

// sessionRequest mirrors the server's session payload.
type sessionRequest struct {
	Dni      string `json:"dni,omitempty"`
	Country  string `json:"country,omitempty"`
	Document string `json:"document,omitempty"`
}

// sessionResponse mirrors the server's session reply.
type sessionResponse struct {
	Dni        string `json:"dni"`
	NewAccount bool   `json:"newAccount"`
}

// validationEnvelope carries the field-scoped errors of a 422 reply.
type validationEnvelope struct {
	Errors models.ValidationErrors `json:"errors"`
}

// OpenSession resolves the free-text identifier against the server and
// reports whether a new account was created.
func (c *Client) OpenSession(ctx context.Context, dni string) (string, bool, error) {
	resp, err := c.postJSON(ctx, "/api/session", sessionRequest{Dni: dni})
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("session: %s", readError(resp.Body))
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", false, fmt.Errorf("decode session response: %w", err)
	}
	return sr.Dni, sr.NewAccount, nil
}

// OpenSessionComposed resolves the country+document identifier variant.
func (c *Client) OpenSessionComposed(ctx context.Context, country, document string) (string, bool, error) {
	resp, err := c.postJSON(ctx, "/api/session", sessionRequest{Country: country, Document: document})
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("session: %s", readError(resp.Body))
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", false, fmt.Errorf("decode session response: %w", err)
	}
	return sr.Dni, sr.NewAccount, nil
}

// ListReminders fetches all reminders of owner.
func (c *Client) ListReminders(ctx context.Context, owner string) ([]models.Reminder, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/reminders", owner, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list reminders: %s", readError(resp.Body))
	}

	var reminders []models.Reminder
	if err := json.NewDecoder(resp.Body).Decode(&reminders); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}
	return reminders, nil
}

// CreateReminder persists a new reminder and returns the stored record
// with its assigned id and creation time.
func (c *Client) CreateReminder(ctx context.Context, owner string, rem models.Reminder) (models.Reminder, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/reminders", owner, rem)
	if err != nil {
		return models.Reminder{}, err
	}
	defer resp.Body.Close()

	if err := checkWriteStatus(resp, http.StatusCreated); err != nil {
		return models.Reminder{}, err
	}

	var created models.Reminder
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return models.Reminder{}, fmt.Errorf("decode created reminder: %w", err)
	}
	return created, nil
}

// UpdateReminder overwrites the reminder with the given id.
func (c *Client) UpdateReminder(ctx context.Context, owner, id string, rem models.Reminder) error {
	resp, err := c.do(ctx, http.MethodPut, "/api/reminders/"+url.PathEscape(id), owner, rem)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkWriteStatus(resp, http.StatusOK)
}

// DeleteReminder removes the reminder with the given id permanently.
func (c *Client) DeleteReminder(ctx context.Context, owner, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/reminders/"+url.PathEscape(id), owner, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete reminder: %s", readError(resp.Body))
	}
	return nil
}

// postJSON issues a POST without owner scoping (session entry).
func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// do issues an owner-scoped request, carrying dni as a query parameter per
// the navigation contract.
func (c *Client) do(ctx context.Context, method, path, owner string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	u := c.baseURL + path + "?dni=" + url.QueryEscape(owner)
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// checkWriteStatus maps write replies onto the error taxonomy: 422 becomes
// models.ValidationErrors, 404 becomes models.ErrNotFound, anything else
// unexpected is a store error.
func checkWriteStatus(resp *http.Response, want int) error {
	switch resp.StatusCode {
	case want:
		return nil
	case http.StatusUnprocessableEntity:
		var env validationEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || len(env.Errors) == 0 {
			return fmt.Errorf("validation failed")
		}
		return env.Errors
	case http.StatusNotFound:
		return models.ErrNotFound
	default:
		return fmt.Errorf("store error: %s", readError(resp.Body))
	}
}

// readError drains a plain-text error body for message context.
func readError(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(bytes.TrimSpace(b))
}
