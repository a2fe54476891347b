package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteerin/partner-gateway/internal/config"
	"github.com/volunteerin/partner-gateway/internal/draft"
	"github.com/volunteerin/partner-gateway/internal/form"
	"github.com/volunteerin/partner-gateway/internal/middleware"
	"github.com/volunteerin/partner-gateway/internal/model"
	"github.com/volunteerin/partner-gateway/internal/pipeline"
	"github.com/volunteerin/partner-gateway/internal/platform"
	"github.com/volunteerin/partner-gateway/internal/repository"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// fakeRepo is an in-memory draft.Persistence for handler tests.
type fakeRepo struct {
	mu   sync.Mutex
	rows map[string]fakeRow
}

type fakeRow struct {
	userID  string
	payload []byte
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: make(map[string]fakeRow)} }

func (r *fakeRepo) Create(_ context.Context, id, userID string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[id] = fakeRow{userID: userID, payload: payload}
	return nil
}

func (r *fakeRepo) GetByIDAndOwner(_ context.Context, id, userID string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrDraftNotFound
	}
	if row.userID != userID {
		return nil, repository.ErrForbidden
	}
	return row.payload, nil
}

func (r *fakeRepo) SavePayload(_ context.Context, id string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.rows[id]
	row.payload = payload
	r.rows[id] = row
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return repository.ErrDraftNotFound
	}
	if row.userID != userID {
		return repository.ErrForbidden
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRepo) has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	return ok
}

type draftFixture struct {
	h    *DraftHandler
	repo *fakeRepo
	mem  *store.MemoryStore
	mgr  *draft.Manager
	e    *echo.Echo
}

func newDraftFixture(upstream string) *draftFixture {
	repo := newFakeRepo()
	mem := store.NewMemoryStore()
	mgr := draft.NewManager(repo, 10*time.Millisecond)
	cfg := config.Config{SessionTTLMin: 60}
	sub := pipeline.NewSubmitter(platform.New(upstream, time.Second), mem)
	return &draftFixture{
		h:    NewDraftHandler(cfg, mgr, mem, sub),
		repo: repo,
		mem:  mem,
		mgr:  mgr,
		e:    echo.New(),
	}
}

// ctx builds an echo context with an authenticated session already set, the
// way SessionAuth would leave it.
func (f *draftFixture) ctx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.Set(middleware.ContextSession, store.SessionRecord{UserID: "u-1", Role: "PARTNER", AccessToken: testBearer})
	c.Set(middleware.ContextSessionID, "raw-session")
	c.Set("user_id", "u-1")
	return c, rec
}

// testBearer is a syntactically valid unsigned-checkable JWT far from expiry
// so the pipeline never tries to refresh it.
const testBearer = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
	"eyJzdWIiOiJ1LTEiLCJleHAiOjQ4OTM5NTUyMDB9." +
	"0000000000000000000000000000000000000000000"

// openDraft creates a draft through the handler and returns its id.
func (f *draftFixture) openDraft(t *testing.T) string {
	t.Helper()
	c, rec := f.ctx(http.MethodPost, "/v1/drafts", "")
	require.NoError(t, f.h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.ID
}

// patchSection drives UpdateSection for one named section.
func (f *draftFixture) patchSection(t *testing.T, id, section, body string) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := f.ctx(http.MethodPatch, "/v1/drafts/"+id+"/sections/"+section, body)
	c.SetParamNames("id", "section")
	c.SetParamValues(id, section)
	require.NoError(t, f.h.UpdateSection(c))
	return rec
}

// fillDraft applies a complete draft-tier-valid set of sections and a banner.
func (f *draftFixture) fillDraft(t *testing.T, id string) {
	t.Helper()
	f.patchSection(t, id, form.SectionEvent,
		`{"title":"Clean Beach","description":"pick up trash","type":"OPEN","categoryIds":["cat-1"],"benefitIds":["ben-1"]}`)
	f.patchSection(t, id, form.SectionDate, `{"startAt":"2026-09-01T08:00:00Z"}`)
	f.patchSection(t, id, form.SectionLocation,
		`{"province":"Jawa Barat","regency":"Bandung","address":"Jl. Asia Afrika 65","latitude":"-6.914744","longitude":"107.609810"}`)
	f.patchSection(t, id, form.SectionVolunteer,
		`{"requirement":"able to swim","contactPerson":"Rina","maxApplicant":50,"acceptedQuota":40}`)

	// The banner travels through its own multipart endpoint; apply the
	// processed metadata straight to the session here.
	s, err := f.mgr.Get(context.Background(), id, "u-1")
	require.NoError(t, err)
	s.ApplySection(&form.BannerSection{Meta: &model.BannerMeta{FileName: "b.jpg", Size: 1000, Mime: "image/jpeg"}})
}

func TestUpdateSectionMergesAndWarns(t *testing.T) {
	f := newDraftFixture("http://unused.invalid")
	id := f.openDraft(t)

	rec := f.patchSection(t, id, form.SectionEvent, `{"title":"Clean Beach"}`)
	var out struct {
		Draft    model.DraftEvent `json:"draft"`
		Warnings []string         `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Clean Beach", out.Draft.Title)
	assert.NotEmpty(t, out.Warnings) // description etc. still missing, state kept anyway
}

func TestSubmitDraftSucceedsEndToEnd(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ev-1","title":"Clean Beach","isRelease":false}`))
	}))
	defer srv.Close()

	f := newDraftFixture(srv.URL)
	id := f.openDraft(t)
	f.fillDraft(t, id)

	c, rec := f.ctx(http.MethodPost, "/v1/drafts/"+id+"/submit", "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, f.h.Submit(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, hits)
	var out struct {
		Strategy int `json:"strategy"`
		Event    struct {
			ID string `json:"id"`
		} `json:"event"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Strategy)
	assert.Equal(t, "ev-1", out.Event.ID)

	// Success tears the draft down.
	assert.False(t, f.repo.has(id))
}

func TestSubmitPublishMissingEndDateBlockedBeforeNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	f := newDraftFixture(srv.URL)
	id := f.openDraft(t)
	f.fillDraft(t, id) // no endAt set

	c, rec := f.ctx(http.MethodPost, "/v1/drafts/"+id+"/submit?publish=true", "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, f.h.Submit(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, hits, "publish-tier failures must not reach the upstream")
	assert.Contains(t, rec.Body.String(), "end date is required to publish")
	// The draft survives for the partner to finish.
	assert.True(t, f.repo.has(id))
}

func TestDeleteDraftRejectsOtherUsersDraft(t *testing.T) {
	f := newDraftFixture("http://unused.invalid")
	id := f.openDraft(t)

	c, rec := f.ctx(http.MethodDelete, "/v1/drafts/"+id, "")
	c.Set(middleware.ContextSession, store.SessionRecord{UserID: "u-2", Role: "PARTNER"})
	c.Set("user_id", "u-2")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, f.h.Delete(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, f.repo.has(id))
}

func TestRecoveryRoundTrip(t *testing.T) {
	f := newDraftFixture("http://unused.invalid")

	// No snapshot yet.
	c, rec := f.ctx(http.MethodGet, "/v1/drafts/recovery", "")
	require.NoError(t, f.h.Recovery(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	snap := model.DraftSnapshot{DraftID: "d-1", Draft: model.DraftEvent{Title: "Clean Beach"}, Reason: "boom", SavedAt: time.Now().UTC()}
	require.NoError(t, store.SaveSnapshot(context.Background(), f.mem, "u-1", snap))

	c, rec = f.ctx(http.MethodGet, "/v1/drafts/recovery", "")
	require.NoError(t, f.h.Recovery(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Clean Beach")
}
