// Package restclient is the BFF's typed view of the events API. It never
// leaks raw upstream error bodies; callers get either decoded payloads or
// a terse error describing the failed hop.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gatherly/gatherly/internal/observability"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Event mirrors the events API wire shape; the date stays a string all the
// way through to GraphQL. The upstream attendee field is spelled "atendees".
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Organizer   User   `json:"organizer"`
	Atendees    []User `json:"atendees"`
}

type CreateEventPayload struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Category    string `json:"category"`
	OrganizerID string `json:"organizerId"`
}

type Client struct {
	baseURL string
	http    *http.Client
	prom    *observability.Prom
}

func New(baseURL string, prom *observability.Prom) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		prom:    prom,
	}
}

func (c *Client) observe(op string, fn func() error) error {
	if c.prom == nil {
		return fn()
	}

	return c.prom.ObserveUpstream(op, fn)
}

// GetEvent returns (nil, nil) when the event does not exist upstream.
func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	var out *Event

	err := c.observe("get_event", func() error {
		res, err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil)

		if err != nil {
			return err
		}

		defer drain(res)

		if res.StatusCode == http.StatusNotFound {
			return nil
		}

		if res.StatusCode != http.StatusOK {
			return statusError("GET", "/events/:id", res.StatusCode)
		}

		var e Event

		if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}

		out = &e
		return nil
	})

	return out, err
}

func (c *Client) SearchEvents(ctx context.Context, category, status *string) ([]Event, error) {
	q := url.Values{}

	if category != nil {
		q.Set("category", *category)
	}

	if status != nil {
		q.Set("status", *status)
	}

	path := "/events/search"

	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	return c.fetchEnvelope(ctx, "search_events", path)
}

func (c *Client) EventsByOrganizer(ctx context.Context, organizerID string) ([]Event, error) {
	return c.fetchEnvelope(ctx, "events_by_organizer", "/events/byOrganizer/"+url.PathEscape(organizerID))
}

func (c *Client) CreateEvent(ctx context.Context, payload CreateEventPayload) error {
	return c.observe("create_event", func() error {
		body, err := json.Marshal(payload)

		if err != nil {
			return err
		}

		res, err := c.do(ctx, http.MethodPost, "/events", bytes.NewReader(body))

		if err != nil {
			return err
		}

		defer drain(res)

		if res.StatusCode != http.StatusCreated {
			return statusError("POST", "/events", res.StatusCode)
		}

		return nil
	})
}

func (c *Client) ConfirmEvent(ctx context.Context, id string) error {
	return c.postNoBody(ctx, "confirm_event", "/events/"+url.PathEscape(id)+"/confirm")
}

func (c *Client) AddAttendee(ctx context.Context, eventID, userID string) error {
	return c.postNoBody(ctx, "add_attendee", attendeePath(eventID, userID))
}

func (c *Client) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	return c.observe("remove_attendee", func() error {
		res, err := c.do(ctx, http.MethodDelete, attendeePath(eventID, userID), nil)

		if err != nil {
			return err
		}

		defer drain(res)

		if res.StatusCode >= 300 {
			return statusError(http.MethodDelete, "/events/:id/attendees/:userId", res.StatusCode)
		}

		return nil
	})
}

func attendeePath(eventID, userID string) string {
	return "/events/" + url.PathEscape(eventID) + "/attendees/" + url.PathEscape(userID)
}

func (c *Client) postNoBody(ctx context.Context, op, path string) error {
	return c.observe(op, func() error {
		res, err := c.do(ctx, http.MethodPost, path, nil)

		if err != nil {
			return err
		}

		defer drain(res)

		if res.StatusCode >= 300 {
			return statusError(http.MethodPost, path, res.StatusCode)
		}

		return nil
	})
}

func (c *Client) fetchEnvelope(ctx context.Context, op, path string) ([]Event, error) {
	var out []Event

	err := c.observe(op, func() error {
		res, err := c.do(ctx, http.MethodGet, path, nil)

		if err != nil {
			return err
		}

		defer drain(res)

		if res.StatusCode != http.StatusOK {
			return statusError(http.MethodGet, path, res.StatusCode)
		}

		var envelope struct {
			Events []Event `json:"events"`
		}

		if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
			return fmt.Errorf("decode events: %w", err)
		}

		out = envelope.Events
		return nil
	})

	if err != nil {
		return nil, err
	}

	if out == nil {
		out = []Event{}
	}

	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)

	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

func statusError(method, route string, status int) error {
	return fmt.Errorf("events api: %s %s returned %d", method, route, status)
}

func drain(res *http.Response) {
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
