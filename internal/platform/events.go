package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/volunteerin/partner-gateway/internal/model"
)

const eventsPath = "/partners/me/events"

// ErrMissingSelections is raised client-side, before any network call, when
// a create payload carries no category or no benefit.  The platform rejects
// such payloads anyway; failing early saves the round trip and gives the
// partner an actionable message.
var ErrMissingSelections = errors.New("at least one category and one benefit must be selected")

// CreatedEvent is the platform's response to a successful creation.
type CreatedEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IsRelease bool   `json:"isRelease"`
}

// BuildEventPayload encodes a draft as the multipart form the platform
// expects: scalar fields by name, the selections as repeated categoryIds[]
// and benefitIds[] fields, timestamps as RFC 3339, and the banner bytes as
// a file part.  Optional empty fields are omitted rather than sent blank.
func BuildEventPayload(d model.DraftEvent, banner []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":         d.Title,
		"description":   d.Description,
		"type":          d.Type,
		"province":      d.Province,
		"regency":       d.Regency,
		"address":       d.Address,
		"gmaps":         d.Gmaps,
		"latitude":      d.Latitude,
		"longitude":     d.Longitude,
		"requirement":   d.Requirement,
		"contactPerson": d.ContactPerson,
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if d.StartAt != nil && !d.StartAt.IsZero() {
		if err := w.WriteField("startAt", d.StartAt.UTC().Format(time.RFC3339)); err != nil {
			return nil, "", err
		}
	}
	if d.EndAt != nil && !d.EndAt.IsZero() {
		if err := w.WriteField("endAt", d.EndAt.UTC().Format(time.RFC3339)); err != nil {
			return nil, "", err
		}
	}
	for _, id := range d.CategoryIDs {
		if err := w.WriteField("categoryIds[]", id); err != nil {
			return nil, "", err
		}
	}
	for _, id := range d.BenefitIDs {
		if err := w.WriteField("benefitIds[]", id); err != nil {
			return nil, "", err
		}
	}
	numeric := map[string]string{
		"maxApplicant":  strconv.Itoa(d.MaxApplicant),
		"acceptedQuota": strconv.Itoa(d.AcceptedQuota),
		"price":         strconv.Itoa(d.Price),
		"isPaid":        strconv.FormatBool(d.IsPaid),
		"isRelease":     strconv.FormatBool(d.IsRelease),
	}
	for k, v := range numeric {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if len(banner) > 0 {
		name := "banner.jpg"
		if d.Banner != nil && d.Banner.FileName != "" {
			name = d.Banner.FileName
		}
		part, err := w.CreateFormFile("banner", name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(banner); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// CreateEvent is the shared service function behind the pipeline's first
// strategy.  It pre-checks the selection sets and posts the multipart
// payload to the creation endpoint.  idemKey, when non-empty, rides along
// as an Idempotency-Key header so a retried submission cannot create a
// duplicate event on a backend that honors the key.
func (c *Client) CreateEvent(ctx context.Context, token string, d model.DraftEvent, banner []byte, idemKey string) (CreatedEvent, error) {
	if len(d.CategoryIDs) == 0 || len(d.BenefitIDs) == 0 {
		return CreatedEvent{}, ErrMissingSelections
	}
	body, contentType, err := BuildEventPayload(d, banner)
	if err != nil {
		return CreatedEvent{}, err
	}
	return c.PostEventMultipart(ctx, token, body, contentType, idemKey)
}

// PostEventMultipart issues the raw creation request.  The pipeline's
// direct strategy calls this straight, bypassing CreateEvent's pre-checks.
func (c *Client) PostEventMultipart(ctx context.Context, token string, body []byte, contentType, idemKey string) (CreatedEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+eventsPath, bytes.NewReader(body))
	if err != nil {
		return CreatedEvent{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}
	var out CreatedEvent
	if err := c.run(req, &out); err != nil {
		return CreatedEvent{}, err
	}
	return out, nil
}

// ListEvents returns one page of the partner's events.
func (c *Client) ListEvents(ctx context.Context, token string, page, limit int) (model.Page[model.EventSummary], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := eventsPath
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var out model.Page[model.EventSummary]
	err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

// EventDetail returns the full platform record of one event, undecoded, so
// the gateway forwards whatever shape the platform evolves to.
func (c *Client) EventDetail(ctx context.Context, token, eventID string) (map[string]any, error) {
	var out map[string]any
	err := c.doJSON(ctx, http.MethodGet, eventsPath+"/"+url.PathEscape(eventID), token, nil, &out)
	return out, err
}

// RegistrantQuery carries the listing filters the dashboard exposes.
type RegistrantQuery struct {
	Page   int
	Limit  int
	Sort   string
	Status string
	Search string
}

// Registrants returns one page of an event's applicants.
func (c *Client) Registrants(ctx context.Context, token, eventID string, rq RegistrantQuery) (model.Page[model.Registrant], error) {
	q := url.Values{}
	if rq.Page > 0 {
		q.Set("page", strconv.Itoa(rq.Page))
	}
	if rq.Limit > 0 {
		q.Set("limit", strconv.Itoa(rq.Limit))
	}
	if rq.Sort != "" {
		q.Set("sort", rq.Sort)
	}
	if rq.Status != "" {
		q.Set("status", rq.Status)
	}
	if rq.Search != "" {
		q.Set("s", rq.Search)
	}
	path := fmt.Sprintf("%s/%s/registrants", eventsPath, url.PathEscape(eventID))
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var out model.Page[model.Registrant]
	err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

// ReviewRegistrant accepts or rejects one applicant.
func (c *Client) ReviewRegistrant(ctx context.Context, token, eventID, registrantID, status string) error {
	path := fmt.Sprintf("%s/%s/registrants/%s", eventsPath, url.PathEscape(eventID), url.PathEscape(registrantID))
	return c.doJSON(ctx, http.MethodPost, path, token, map[string]string{"status": status}, nil)
}
