// Package pipeline drives event submission: three strategies tried strictly
// in order, each handing off to the next only for the failure kinds it can
// plausibly fix.  Success short-circuits; exhaustion saves a recovery
// snapshot so the partner can pick the draft back up later.
package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/volunteerin/partner-gateway/internal/model"
	"github.com/volunteerin/partner-gateway/internal/platform"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// Fallback catalog identifiers for the minimized payload.  They point at the
// platform's seeded "General" category and "Certificate" benefit rows, which
// exist in every environment; the partner can re-categorize the event after
// it lands.
const (
	FallbackCategoryID = "2ead4cf8-bf16-4b01-b05f-6af55c9f8e1d"
	FallbackBenefitID  = "0b8e7d72-5a44-4b1f-9c9a-3f1e6d2c4a85"
)

// Placeholder text used by the minimized payload when a required text field
// is still blank.
const placeholderText = "-"

// Result reports how a submission run ended.
type Result struct {
	Strategy      int                   // 1-based index of the strategy that succeeded
	Created       platform.CreatedEvent // the platform's record on success
	RecoverySaved bool                  // a snapshot was written after exhaustion
}

// Submitter runs the pipeline.  The platform client does the talking; the
// keyed store receives recovery snapshots.  now is injectable for tests.
type Submitter struct {
	client *platform.Client
	store  store.KeyedStore
	now    func() time.Time
}

func NewSubmitter(client *platform.Client, s store.KeyedStore) *Submitter {
	return &Submitter{client: client, store: s, now: time.Now}
}

// Submit pushes the draft upstream.  token is the current upstream bearer
// token; when the direct strategy refreshes it, onToken is called with the
// replacement so the caller can update the session record.  banner holds the
// processed image bytes, already bounded and re-encoded.
//
// Error contract: a nil error means Result.Strategy tells which attempt
// landed.  ErrMissingSelections and auth failures abort the whole run with
// no snapshot (the draft itself is intact and the fix is on the partner's
// side); any other exhaustion saves a snapshot, sets RecoverySaved, and
// returns the most specific upstream error observed.
func (s *Submitter) Submit(ctx context.Context, token, userID, draftID string, d model.DraftEvent, banner []byte, onToken func(string)) (Result, error) {
	// One idempotency key for the whole run: every strategy re-sends the
	// same logical creation, so a backend that honors the key cannot end up
	// with duplicates even if an earlier attempt secretly succeeded.
	idemKey := uuid.NewString()

	// Strategy 1: the service path.  Its pre-check rejects drafts with no
	// category or no benefit before any network traffic.
	created, err := s.client.CreateEvent(ctx, token, d, banner, idemKey)
	if err == nil {
		return Result{Strategy: 1, Created: created}, nil
	}
	if errors.Is(err, platform.ErrMissingSelections) {
		return Result{}, err
	}
	if kindOf(err) == platform.KindAuth {
		return Result{}, err
	}
	log.Printf("submit draft %s: service strategy failed: %v", draftID, err)

	// Strategy 2: the direct path.  Refresh the bearer token first if its
	// exp claim says it is stale, then re-issue the identical request.
	if platform.TokenExpired(token, s.now()) {
		fresh, rerr := s.client.RefreshToken(ctx, token)
		if rerr != nil {
			// Cannot refresh: the partner has to sign in again.
			return Result{}, rerr
		}
		token = fresh
		if onToken != nil {
			onToken(fresh)
		}
	}
	body, contentType, berr := platform.BuildEventPayload(d, banner)
	if berr != nil {
		return s.exhausted(ctx, userID, draftID, d, berr)
	}
	created, err = s.client.PostEventMultipart(ctx, token, body, contentType, idemKey)
	if err == nil {
		return Result{Strategy: 2, Created: created}, nil
	}
	log.Printf("submit draft %s: direct strategy failed: %v", draftID, err)

	switch kindOf(err) {
	case platform.KindAuth:
		return Result{}, err
	case platform.KindServer:
		// Only a 5xx suggests the payload content itself may be tripping
		// the backend; anything else would fail identically again.
	default:
		return s.exhausted(ctx, userID, draftID, d, err)
	}

	// Strategy 3: the minimized payload.  Blank optional content is
	// substituted so the backend sees the simplest well-formed event.
	min := minimize(d)
	body, contentType, berr = platform.BuildEventPayload(min, banner)
	if berr != nil {
		return s.exhausted(ctx, userID, draftID, d, berr)
	}
	created, err2 := s.client.PostEventMultipart(ctx, token, body, contentType, idemKey)
	if err2 == nil {
		return Result{Strategy: 3, Created: created}, nil
	}
	log.Printf("submit draft %s: minimized strategy failed: %v", draftID, err2)

	// Surface the more specific of the two terminal errors: a structured
	// validation answer beats a bare 500.
	if kindOf(err2) == platform.KindValidation {
		err = err2
	}
	return s.exhausted(ctx, userID, draftID, d, err)
}

// exhausted writes the recovery snapshot and returns the terminal error.
// Snapshot failures are logged and absorbed: recovery is best-effort and
// must never mask the real submission error.
func (s *Submitter) exhausted(ctx context.Context, userID, draftID string, d model.DraftEvent, cause error) (Result, error) {
	snap := model.DraftSnapshot{
		DraftID: draftID,
		Draft:   d,
		Reason:  cause.Error(),
		SavedAt: s.now().UTC(),
	}
	saved := true
	if err := store.SaveSnapshot(ctx, s.store, userID, snap); err != nil {
		log.Printf("submit draft %s: recovery snapshot failed: %v", draftID, err)
		saved = false
	}
	return Result{RecoverySaved: saved}, cause
}

// minimize builds the simplest well-formed payload: the selection arrays
// are replaced with the seeded fallback rows and blank required text gets a
// placeholder.  Everything else the partner filled in is sent untouched.
func minimize(d model.DraftEvent) model.DraftEvent {
	d.CategoryIDs = []string{FallbackCategoryID}
	d.BenefitIDs = []string{FallbackBenefitID}
	if d.Description == "" {
		d.Description = placeholderText
	}
	if d.Requirement == "" {
		d.Requirement = placeholderText
	}
	if d.ContactPerson == "" {
		d.ContactPerson = placeholderText
	}
	if d.Address == "" {
		d.Address = placeholderText
	}
	// Drop the optional extras entirely; the backend re-derives them later.
	d.Gmaps = ""
	d.Latitude = ""
	d.Longitude = ""
	return d
}

// kindOf classifies any error through the APIError lens; non-API errors
// (marshalling, context cancellation) count as transport-level.
func kindOf(err error) platform.Kind {
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return platform.KindTransport
}
