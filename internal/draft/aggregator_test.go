package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/volunteerin/partner-gateway/internal/form"
	"github.com/volunteerin/partner-gateway/internal/model"
)

func validSections(t *testing.T) []form.Section {
	t.Helper()
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	return []form.Section{
		&form.EventSection{
			Title:       "Clean Beach",
			Description: "pick up trash together",
			Type:        model.EventTypeOpen,
			CategoryIDs: []string{"cat-1"},
			BenefitIDs:  []string{"ben-1"},
		},
		&form.DateSection{StartAt: &start},
		&form.LocationSection{
			Province: "Jawa Barat", Regency: "Bandung", Address: "Jl. Asia Afrika 65",
			Latitude: "-6.914744", Longitude: "107.609810",
		},
		&form.VolunteerSection{Requirement: "able to swim", ContactPerson: "Rina", MaxApplicant: 50, AcceptedQuota: 40},
		&form.BannerSection{Meta: &model.BannerMeta{FileName: "banner.jpg", Size: 100_000, Mime: "image/jpeg"}},
	}
}

func TestMergeFalsyFallback(t *testing.T) {
	a := NewAggregator()
	a.Merge(map[string]any{"title": "Clean Beach", "maxApplicant": 50, "isPaid": true, "price": 10000})

	// A partial update with falsy values must not zero earlier writes.
	a.Merge(map[string]any{"title": "", "maxApplicant": 0, "description": "new text"})

	d := a.Draft()
	assert.Equal(t, "Clean Beach", d.Title)
	assert.Equal(t, 50, d.MaxApplicant)
	assert.Equal(t, "new text", d.Description)
	assert.True(t, d.IsPaid)

	// Last write wins for non-falsy values.
	a.Merge(map[string]any{"title": "Clean Beach II"})
	assert.Equal(t, "Clean Beach II", a.Draft().Title)
}

func TestMergeSlicesAndTimes(t *testing.T) {
	a := NewAggregator()
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	a.Merge(map[string]any{"categoryIds": []string{"cat-1", "cat-2"}, "startAt": &start})

	a.Merge(map[string]any{"categoryIds": []string{}, "startAt": (*time.Time)(nil)})
	d := a.Draft()
	assert.Equal(t, []string{"cat-1", "cat-2"}, d.CategoryIDs)
	assert.Equal(t, start, *d.StartAt)
}

func TestValidateDraftTierHappyPath(t *testing.T) {
	// Draft with title, one category, one benefit, a start date, no end
	// date and a banner: the draft-tier aggregate must be empty.
	a := NewAggregator()
	for _, sec := range validSections(t) {
		a.Register(sec)
	}
	assert.Empty(t, a.Validate(false))
}

func TestValidatePublishTierRequiresEndDate(t *testing.T) {
	a := NewAggregator()
	for _, sec := range validSections(t) {
		a.Register(sec)
	}
	errs := a.Validate(true)
	assert.Contains(t, errs, "end date is required to publish")
}

func TestValidateFallsBackToInlineChecks(t *testing.T) {
	// No sections registered at all (e.g. a rehydrated session): the pass
	// must still enforce every rule against the merged draft.
	a := NewAggregator()
	a.Merge(map[string]any{"title": "Clean Beach"})
	errs := a.Validate(false)
	assert.Contains(t, errs, "description is required")
	assert.Contains(t, errs, "start date is required")
	assert.Contains(t, errs, "province is required")
	assert.Contains(t, errs, "contact person is required")
	assert.Contains(t, errs, "banner image is required")
}

func TestValidateRunsFeeRuleInline(t *testing.T) {
	a := NewAggregator()
	for _, sec := range validSections(t) {
		a.Register(sec)
	}
	a.Merge(map[string]any{"isPaid": true})
	assert.Contains(t, a.Validate(false), "price must be greater than zero for paid events")

	a.Register(&form.FeeSection{IsPaid: true, Price: 25000})
	assert.Empty(t, a.Validate(false))
}

func TestValidateOrderIsStable(t *testing.T) {
	// Event messages must precede date messages, and so on; the dashboard
	// renders the list as-is.
	a := NewAggregator()
	errs := a.Validate(false)
	var idxTitle, idxStart, idxBanner int
	for i, e := range errs {
		switch e {
		case "title is required":
			idxTitle = i
		case "start date is required":
			idxStart = i
		case "banner image is required":
			idxBanner = i
		}
	}
	assert.Less(t, idxTitle, idxStart)
	assert.Less(t, idxStart, idxBanner)
}

func TestSetReleaseIndependentOfMerge(t *testing.T) {
	a := NewAggregator()
	a.SetRelease(true)
	assert.True(t, a.Draft().IsRelease)
	// Merging fragments never touches the publish flag.
	a.Merge(map[string]any{"title": "x"})
	assert.True(t, a.Draft().IsRelease)
	a.SetRelease(false)
	assert.False(t, a.Draft().IsRelease)
}
