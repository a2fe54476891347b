package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/volunteerin/partner-gateway/internal/config"
	"github.com/volunteerin/partner-gateway/internal/draft"
	"github.com/volunteerin/partner-gateway/internal/form"
	"github.com/volunteerin/partner-gateway/internal/imaging"
	"github.com/volunteerin/partner-gateway/internal/model"
	"github.com/volunteerin/partner-gateway/internal/pipeline"
	"github.com/volunteerin/partner-gateway/internal/platform"
	"github.com/volunteerin/partner-gateway/internal/queue"
	queue_publisher "github.com/volunteerin/partner-gateway/internal/service"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// DraftHandler owns the draft editing flow: open, section updates, banner
// upload, validation and submission.
type DraftHandler struct {
	Cfg       config.Config
	Manager   *draft.Manager
	Store     store.KeyedStore
	Submitter *pipeline.Submitter
}

func NewDraftHandler(cfg config.Config, m *draft.Manager, s store.KeyedStore, sub *pipeline.Submitter) *DraftHandler {
	return &DraftHandler{Cfg: cfg, Manager: m, Store: s, Submitter: sub}
}

// ----- section DTOs -----
// Each mirrors one section's fields; binding then normalization happens in
// the form package, the handler only routes bytes to the right controller.

type eventSectionReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	CategoryIDs []string `json:"categoryIds"`
	BenefitIDs  []string `json:"benefitIds"`
}
type dateSectionReq struct {
	StartAt *time.Time `json:"startAt"`
	EndAt   *time.Time `json:"endAt"`
}
type locationSectionReq struct {
	Province  string `json:"province"`
	Regency   string `json:"regency"`
	Address   string `json:"address"`
	Gmaps     string `json:"gmaps"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}
type volunteerSectionReq struct {
	Requirement   string `json:"requirement"`
	ContactPerson string `json:"contactPerson"`
	MaxApplicant  int    `json:"maxApplicant"`
	AcceptedQuota int    `json:"acceptedQuota"`
}
type feeSectionReq struct {
	IsPaid bool `json:"isPaid"`
	Price  int  `json:"price"`
}

// Create opens a fresh draft session.
func (h *DraftHandler) Create(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Manager.Open(ctx, rec.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "draft create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": s.ID, "draft": s.Draft()})
}

// Get returns the merged draft, rehydrating from persistence if needed.
func (h *DraftHandler) Get(c echo.Context) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"id": s.ID, "draft": s.Draft()})
}

// UpdateSection binds the JSON body into the named section controller and
// applies it. Warnings come back alongside the updated draft; they never
// block the state change.
func (h *DraftHandler) UpdateSection(c echo.Context) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}

	var sec form.Section
	switch c.Param("section") {
	case form.SectionEvent:
		var req eventSectionReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		sec = &form.EventSection{
			Title: req.Title, Description: req.Description, Type: req.Type,
			CategoryIDs: req.CategoryIDs, BenefitIDs: req.BenefitIDs,
		}
	case form.SectionDate:
		var req dateSectionReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		sec = &form.DateSection{StartAt: req.StartAt, EndAt: req.EndAt}
	case form.SectionLocation:
		var req locationSectionReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		sec = &form.LocationSection{
			Province: req.Province, Regency: req.Regency, Address: req.Address,
			Gmaps: req.Gmaps, Latitude: req.Latitude, Longitude: req.Longitude,
		}
	case form.SectionVolunteer:
		var req volunteerSectionReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		sec = &form.VolunteerSection{
			Requirement: req.Requirement, ContactPerson: req.ContactPerson,
			MaxApplicant: req.MaxApplicant, AcceptedQuota: req.AcceptedQuota,
		}
	case form.SectionFee:
		var req feeSectionReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		sec = &form.FeeSection{IsPaid: req.IsPaid, Price: req.Price}
	default:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown section"})
	}

	warnings := s.ApplySection(sec)
	return c.JSON(http.StatusOK, echo.Map{"draft": s.Draft(), "warnings": warnings})
}

// UploadBanner accepts the banner image, bounds it to the recommended
// dimensions and stores the processed bytes under the draft's banner key.
func (h *DraftHandler) UploadBanner(c echo.Context) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}

	fh, err := c.FormFile("banner")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "banner file required"})
	}
	if fh.Size > model.MaxBannerBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "banner must be 1 MB or smaller"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable banner upload"})
	}
	raw, err := io.ReadAll(src)
	_ = src.Close()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable banner upload"})
	}

	processed, err := imaging.Downscale(raw, imaging.MaxBannerDim)
	if errors.Is(err, imaging.ErrNotAnImage) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "banner must be an image"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "banner processing failed"})
	}

	ttl := time.Duration(h.Cfg.SessionTTLMin) * time.Minute
	if err := h.Store.Set(c.Request().Context(), store.BannerKey(s.ID), processed, ttl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "banner store failed"})
	}

	meta := &model.BannerMeta{FileName: fh.Filename, Size: int64(len(processed)), Mime: "image/jpeg"}
	warnings := s.ApplySection(&form.BannerSection{Meta: meta})
	return c.JSON(http.StatusOK, echo.Map{"banner": meta, "warnings": warnings})
}

// Validate runs the aggregate validation pass at the tier selected by
// ?publish= and reports the message list without touching state.
func (h *DraftHandler) Validate(c echo.Context) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	publish := c.QueryParam("publish") == "true"
	errs := s.Validate(publish)
	return c.JSON(http.StatusOK, echo.Map{"valid": len(errs) == 0, "errors": errs})
}

// Submit runs the full submission flow: flush the write-behind, validate at
// the requested tier, then hand the draft to the pipeline. On success the
// draft session, its banner bytes and any recovery snapshot are cleaned up
// and an audit event is published.
func (h *DraftHandler) Submit(c echo.Context) error {
	rec, rawSession, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	s, err := h.session(c)
	if s == nil {
		return err
	}

	publish := c.QueryParam("publish") == "true"
	s.SetRelease(publish)
	s.Flush()

	if errs := s.Validate(publish); len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "draft is not ready", "errors": errs})
	}

	d := s.Draft()
	banner, err := h.Store.Get(c.Request().Context(), store.BannerKey(s.ID))
	if err != nil && err != store.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "banner load failed"})
	}

	res, err := h.Submitter.Submit(c.Request().Context(), rec.AccessToken, rec.UserID, s.ID, d, banner,
		func(fresh string) {
			// The pipeline refreshed the upstream token; keep the session
			// record current so later requests do not refresh again.
			rec.AccessToken = fresh
			ttl := time.Duration(h.Cfg.SessionTTLMin) * time.Minute
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if serr := store.SaveSession(ctx, h.Store, rawSession, rec, ttl); serr != nil {
				c.Logger().Warnf("session token update failed: %v", serr)
			}
		})

	if err != nil {
		h.publishAudit(s.ID, rec.UserID, d, res, err)
		if errors.Is(err, platform.ErrMissingSelections) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		if res.RecoverySaved {
			c.Response().Header().Set("X-Recovery-Saved", "true")
		}
		return upstreamError(c, h.Store, err)
	}

	// Success: the draft row, banner bytes and any stale recovery snapshot
	// are no longer needed.
	cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if derr := h.Manager.Discard(cleanupCtx, s.ID, rec.UserID); derr != nil {
		c.Logger().Warnf("draft cleanup failed: %v", derr)
	}
	_ = h.Store.Remove(cleanupCtx, store.BannerKey(s.ID))
	_ = store.ClearSnapshot(cleanupCtx, h.Store, rec.UserID)

	h.publishAudit(s.ID, rec.UserID, d, res, nil)

	return c.JSON(http.StatusCreated, echo.Map{
		"event":    res.Created,
		"strategy": res.Strategy,
	})
}

// Delete discards the draft without submitting it.
func (h *DraftHandler) Delete(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Manager.Discard(ctx, id, rec.UserID); err != nil {
		return draftError(c, err)
	}
	_ = h.Store.Remove(ctx, store.BannerKey(id))
	return c.NoContent(http.StatusNoContent)
}

// Recovery returns the last exhaustion snapshot, if any.
func (h *DraftHandler) Recovery(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	snap, err := store.LoadSnapshot(c.Request().Context(), h.Store, rec.UserID)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no recovery snapshot"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "snapshot load failed"})
	}
	return c.JSON(http.StatusOK, snap)
}

// session resolves the :id route param to the caller's live draft session,
// writing the error response itself on failure.
func (h *DraftHandler) session(c echo.Context) (*draft.Session, error) {
	rec, _, err := currentSession(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Manager.Get(ctx, c.Param("id"), rec.UserID)
	if err != nil {
		return nil, draftError(c, err)
	}
	return s, nil
}

// publishAudit fires the submission-outcome event. Failures are already
// logged by the publisher; the request flow never depends on the broker.
func (h *DraftHandler) publishAudit(draftID, userID string, d model.DraftEvent, res pipeline.Result, cause error) {
	ev := queue.EventSubmittedEvent{
		DraftID:     draftID,
		UserID:      userID,
		Title:       d.Title,
		IsRelease:   d.IsRelease,
		Strategy:    res.Strategy,
		Outcome:     "created",
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if cause != nil {
		ev.Outcome = "failed"
		ev.FailureNote = cause.Error()
	} else {
		ev.EventID = res.Created.ID
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishEventSubmitted(ctx, ev)
	}()
}
