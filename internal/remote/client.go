// Package remote is the HTTP client for the Trip Service, the backend that
// owns trips, their links and their participants. The planner treats it as an
// opaque collaborator: this package only speaks its JSON contract.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// maxErrorBody caps how much of a failed response is kept in a StatusError.
const maxErrorBody = 4 << 10

// StatusError is returned when the Trip Service answers with a non-2xx status.
// A 404 also matches domain.ErrNotFound via errors.Is.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("trip service: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, domain.ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client calls the Trip Service over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New constructs a Client for the service at baseURL. timeout bounds every
// request made through the default transport.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote.New: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote.New: base url must be http or https, got %q", baseURL)
	}
	c := &Client{baseURL: u, http: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// createTripBody is the wire form of domain.TripCreateRequest. The email type
// refuses to marshal malformed addresses; CreateTrip checks each one first so
// a bad roster is reported as domain.ErrInvalidEmail and never leaves the
// device.
type createTripBody struct {
	Destination    string                `json:"destination"`
	StartsAt       string                `json:"starts_at"`
	EndsAt         string                `json:"ends_at"`
	EmailsToInvite []openapi_types.Email `json:"emails_to_invite"`
}

type createTripResponse struct {
	TripID string `json:"tripId"`
}

// CreateTrip sends POST /trips and returns the new trip id.
func (c *Client) CreateTrip(ctx context.Context, req domain.TripCreateRequest) (string, error) {
	body := createTripBody{
		Destination:    req.Destination,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		EmailsToInvite: make([]openapi_types.Email, 0, len(req.EmailsToInvite)),
	}
	for _, e := range req.EmailsToInvite {
		email := openapi_types.Email(e)
		if _, err := email.MarshalJSON(); err != nil {
			return "", fmt.Errorf("remote.Client.CreateTrip: %w: %q", domain.ErrInvalidEmail, e)
		}
		body.EmailsToInvite = append(body.EmailsToInvite, email)
	}

	var resp createTripResponse
	if err := c.do(ctx, http.MethodPost, "/trips", body, &resp); err != nil {
		return "", fmt.Errorf("remote.Client.CreateTrip: %w", err)
	}
	return resp.TripID, nil
}

type tripResponse struct {
	Trip domain.TripDetails `json:"trip"`
}

// GetTrip sends GET /trips/{id}.
func (c *Client) GetTrip(ctx context.Context, tripID string) (domain.TripDetails, error) {
	var resp tripResponse
	if err := c.do(ctx, http.MethodGet, tripPath(tripID), nil, &resp); err != nil {
		return domain.TripDetails{}, fmt.Errorf("remote.Client.GetTrip: %w", err)
	}
	return resp.Trip, nil
}

type linksResponse struct {
	Links []domain.Link `json:"links"`
}

// ListLinks sends GET /trips/{id}/links.
func (c *Client) ListLinks(ctx context.Context, tripID string) ([]domain.Link, error) {
	var resp linksResponse
	if err := c.do(ctx, http.MethodGet, tripPath(tripID, "links"), nil, &resp); err != nil {
		return nil, fmt.Errorf("remote.Client.ListLinks: %w", err)
	}
	return resp.Links, nil
}

type createLinkBody struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type createLinkResponse struct {
	LinkID string `json:"linkId"`
}

// CreateLink sends POST /trips/{id}/links and returns the new link id.
func (c *Client) CreateLink(ctx context.Context, tripID, title, linkURL string) (string, error) {
	var resp createLinkResponse
	body := createLinkBody{Title: title, URL: linkURL}
	if err := c.do(ctx, http.MethodPost, tripPath(tripID, "links"), body, &resp); err != nil {
		return "", fmt.Errorf("remote.Client.CreateLink: %w", err)
	}
	return resp.LinkID, nil
}

type participantsResponse struct {
	Participants []domain.Participant `json:"participants"`
}

// ListParticipants sends GET /trips/{id}/participants.
func (c *Client) ListParticipants(ctx context.Context, tripID string) ([]domain.Participant, error) {
	var resp participantsResponse
	if err := c.do(ctx, http.MethodGet, tripPath(tripID, "participants"), nil, &resp); err != nil {
		return nil, fmt.Errorf("remote.Client.ListParticipants: %w", err)
	}
	return resp.Participants, nil
}

// tripPath builds /trips/{id}[/sub...] with the id path-escaped.
func tripPath(tripID string, sub ...string) string {
	parts := append([]string{"trips", url.PathEscape(tripID)}, sub...)
	return "/" + strings.Join(parts, "/")
}

// do sends one JSON request and decodes a JSON response into out.
// A nil in sends no body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
