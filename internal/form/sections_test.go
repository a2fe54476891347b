package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/volunteerin/partner-gateway/internal/model"
)

func TestSectionDefaultsHaveNoMissingKeys(t *testing.T) {
	// Data() right after construction must be consistent with each
	// section's zero state: every owned key present (or absent by design
	// for optional fields), never an untyped nil surprise.
	ev := (&EventSection{}).Data()
	for _, k := range []string{"title", "description", "type", "categoryIds", "benefitIds"} {
		assert.Contains(t, ev, k)
	}
	assert.Empty(t, (&DateSection{}).Data()) // both dates optional-by-omission

	loc := (&LocationSection{}).Data()
	for _, k := range []string{"province", "regency", "address", "gmaps", "latitude", "longitude"} {
		assert.Contains(t, loc, k)
	}
	vol := (&VolunteerSection{}).Data()
	for _, k := range []string{"requirement", "contactPerson", "maxApplicant", "acceptedQuota"} {
		assert.Contains(t, vol, k)
	}
	fee := (&FeeSection{}).Data()
	assert.Contains(t, fee, "isPaid")
	assert.Contains(t, fee, "price")

	assert.Empty(t, (&BannerSection{}).Data())
}

func TestEventSectionTiers(t *testing.T) {
	s := &EventSection{
		Title:       "  Clean Beach ",
		Description: "pick up trash together",
		Type:        "open",
		CategoryIDs: []string{"cat-1", " "},
		BenefitIDs:  []string{"ben-1"},
	}
	s.Normalize()
	assert.Equal(t, "Clean Beach", s.Title)
	assert.Equal(t, model.EventTypeOpen, s.Type)
	assert.Equal(t, []string{"cat-1"}, s.CategoryIDs)
	assert.Empty(t, s.Validate())

	s.BenefitIDs = nil
	assert.Contains(t, s.Validate(), "select at least one benefit")

	s.BenefitIDs = []string{"a", "b", "c", "d", "e"}
	assert.Contains(t, s.Validate(), "select at most 4 benefits")
}

func TestDateSectionTiers(t *testing.T) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	s := &DateSection{StartAt: &start}

	// Draft tier: end date optional.
	assert.Empty(t, s.Validate())
	// Publish tier: end date mandatory.
	assert.Contains(t, s.ValidateForPublish(), "end date is required to publish")

	end := start.Add(-time.Hour)
	s.EndAt = &end
	assert.Contains(t, s.Validate(), "end date must not precede start date")

	end = start.Add(4 * time.Hour)
	s.EndAt = &end
	assert.Empty(t, s.ValidateForPublish())
}

func TestLocationSectionTiers(t *testing.T) {
	s := &LocationSection{Province: "Jawa Barat", Regency: "Bandung", Address: "Jl. Asia Afrika 65"}
	s.Normalize()
	assert.Empty(t, s.Validate())

	// Publish needs coordinates; draft does not.
	assert.Contains(t, s.ValidateForPublish(), "coordinates are required to publish")

	s.Gmaps = "https://maps.google.com/?q=-6.914744,107.609810"
	s.Normalize()
	assert.Equal(t, "-6.914744", s.Latitude)
	assert.Equal(t, "107.609810", s.Longitude)
	assert.Empty(t, s.ValidateForPublish())

	// An unparsable link leaves the extracted coordinates untouched.
	s.Gmaps = "https://maps.google.com/place/Bandung"
	s.Normalize()
	assert.Equal(t, "-6.914744", s.Latitude)
	assert.Equal(t, "107.609810", s.Longitude)

	s.Address = "short"
	assert.Contains(t, s.ValidateForPublish(), "address must be at least 10 characters to publish")
}

func TestVolunteerQuotaMessageDoesNotBlockState(t *testing.T) {
	s := &VolunteerSection{ContactPerson: "Rina", MaxApplicant: 50, AcceptedQuota: 80}
	errs := s.Validate()
	assert.Contains(t, errs, "accepted quota must not exceed max applicant")
	// The state keeps the typed values; only the message surfaces.
	assert.Equal(t, 80, s.AcceptedQuota)
	assert.Equal(t, 80, s.Data()["acceptedQuota"])

	s.AcceptedQuota = 40
	assert.Empty(t, s.Validate())
	assert.Contains(t, s.ValidateForPublish(), "requirement is required to publish")
}

func TestFeeSection(t *testing.T) {
	assert.Empty(t, (&FeeSection{}).Validate())
	assert.Contains(t, (&FeeSection{IsPaid: true}).Validate(),
		"price must be greater than zero for paid events")
	assert.Contains(t, (&FeeSection{Price: -5}).Validate(), "price must not be negative")
	assert.Empty(t, (&FeeSection{IsPaid: true, Price: 25000}).Validate())
}

func TestBannerSection(t *testing.T) {
	assert.Contains(t, (&BannerSection{}).Validate(), "banner image is required")

	s := &BannerSection{Meta: &model.BannerMeta{FileName: "banner.jpg", Size: 200_000, Mime: "image/jpeg"}}
	assert.Empty(t, s.Validate())

	s.Meta.Size = model.MaxBannerBytes + 1
	assert.NotEmpty(t, s.Validate())

	s.Meta.Size = 1000
	s.Meta.Mime = "application/pdf"
	assert.Contains(t, s.Validate(), "banner must be an image")
}
