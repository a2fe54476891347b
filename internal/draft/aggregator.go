// Package draft owns the merged in-progress event record.  The aggregator
// reconstructs the draft from section fragments (merge by key, last write
// wins, falsy values never zero an earlier write) and runs the tiered
// validation pass across the section controllers; the manager keeps live
// sessions and coalesces persistence writes through the debounce notifier.
package draft

import (
	"sync"
	"time"

	"github.com/volunteerin/partner-gateway/internal/form"
	"github.com/volunteerin/partner-gateway/internal/model"
)

// validationOrder is the fixed order of the aggregate validation pass.  The
// fee section is deliberately absent: its single rule is checked inline on
// every pass so the order stays exactly event, date, location, volunteer,
// banner.
var validationOrder = []string{
	form.SectionEvent,
	form.SectionDate,
	form.SectionLocation,
	form.SectionVolunteer,
	form.SectionBanner,
}

// Aggregator merges section fragments into one DraftEvent and coordinates
// validation across the registered section controllers.
type Aggregator struct {
	mu       sync.Mutex
	draft    model.DraftEvent
	sections map[string]form.Section
}

func NewAggregator() *Aggregator {
	return &Aggregator{sections: make(map[string]form.Section)}
}

// NewAggregatorFrom rehydrates an aggregator from a persisted draft.  No
// sections are registered; until the dashboard touches a section again, the
// validation pass uses the inline fallback checks.
func NewAggregatorFrom(d model.DraftEvent) *Aggregator {
	a := NewAggregator()
	a.draft = d
	return a
}

// Register records sec as the live controller for its slice and merges its
// current data into the draft.
func (a *Aggregator) Register(sec form.Section) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sections[sec.Name()] = sec
	a.mergeLocked(sec.Data())
}

// Merge shallow-merges fields into the draft.  A zero-valued incoming field
// keeps the draft's previous value: a section reporting a partial update
// never wipes fields it does not own.
func (a *Aggregator) Merge(fields map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mergeLocked(fields)
}

func (a *Aggregator) mergeLocked(fields map[string]any) {
	d := &a.draft
	for k, v := range fields {
		switch k {
		case "title":
			mergeString(&d.Title, v)
		case "description":
			mergeString(&d.Description, v)
		case "type":
			mergeString(&d.Type, v)
		case "categoryIds":
			mergeStrings(&d.CategoryIDs, v)
		case "benefitIds":
			mergeStrings(&d.BenefitIDs, v)
		case "startAt":
			mergeTime(&d.StartAt, v)
		case "endAt":
			mergeTime(&d.EndAt, v)
		case "province":
			mergeString(&d.Province, v)
		case "regency":
			mergeString(&d.Regency, v)
		case "address":
			mergeString(&d.Address, v)
		case "gmaps":
			mergeString(&d.Gmaps, v)
		case "latitude":
			mergeString(&d.Latitude, v)
		case "longitude":
			mergeString(&d.Longitude, v)
		case "requirement":
			mergeString(&d.Requirement, v)
		case "contactPerson":
			mergeString(&d.ContactPerson, v)
		case "maxApplicant":
			mergeInt(&d.MaxApplicant, v)
		case "acceptedQuota":
			mergeInt(&d.AcceptedQuota, v)
		case "isPaid":
			mergeBool(&d.IsPaid, v)
		case "price":
			mergeInt(&d.Price, v)
		case "banner":
			if meta, ok := v.(*model.BannerMeta); ok && meta != nil {
				d.Banner = meta
			}
		}
	}
}

// Draft returns a copy of the merged record.
func (a *Aggregator) Draft() model.DraftEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := a.draft
	d.CategoryIDs = append([]string(nil), a.draft.CategoryIDs...)
	d.BenefitIDs = append([]string(nil), a.draft.BenefitIDs...)
	return d
}

// SetRelease flips the publish flag.  The toggle is independent of field
// validation; it only selects the stricter tier and the wire payload's
// isRelease value.
func (a *Aggregator) SetRelease(release bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.draft.IsRelease = release
}

// Validate runs the aggregate pass.  Registered sections validate
// themselves (the stricter tier when publish is on and the section supports
// it); a section never registered in this session falls back to an inline
// equivalent check against the merged draft.  The fee rule always runs.
// The concatenated message list blocks submission when non-empty.
func (a *Aggregator) Validate(publish bool) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []string
	for _, name := range validationOrder {
		sec, ok := a.sections[name]
		if !ok {
			sec = sectionFromDraft(name, a.draft)
		}
		if publish {
			if pv, ok := sec.(form.PublishValidator); ok {
				errs = append(errs, pv.ValidateForPublish()...)
				continue
			}
		}
		errs = append(errs, sec.Validate()...)
	}
	// Fee rule, inline on every pass.
	fee, ok := a.sections[form.SectionFee]
	if !ok {
		fee = &form.FeeSection{IsPaid: a.draft.IsPaid, Price: a.draft.Price}
	}
	errs = append(errs, fee.Validate()...)
	return errs
}

// sectionFromDraft builds a throwaway controller over the merged draft so
// the fallback checks stay equivalent to the live section's own rules.
func sectionFromDraft(name string, d model.DraftEvent) form.Section {
	switch name {
	case form.SectionEvent:
		return &form.EventSection{
			Title:       d.Title,
			Description: d.Description,
			Type:        d.Type,
			CategoryIDs: d.CategoryIDs,
			BenefitIDs:  d.BenefitIDs,
		}
	case form.SectionDate:
		return &form.DateSection{StartAt: d.StartAt, EndAt: d.EndAt}
	case form.SectionLocation:
		return &form.LocationSection{
			Province:  d.Province,
			Regency:   d.Regency,
			Address:   d.Address,
			Gmaps:     d.Gmaps,
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
		}
	case form.SectionVolunteer:
		return &form.VolunteerSection{
			Requirement:   d.Requirement,
			ContactPerson: d.ContactPerson,
			MaxApplicant:  d.MaxApplicant,
			AcceptedQuota: d.AcceptedQuota,
		}
	case form.SectionBanner:
		return &form.BannerSection{Meta: d.Banner}
	}
	return &form.FeeSection{IsPaid: d.IsPaid, Price: d.Price}
}

func mergeString(dst *string, v any) {
	if s, ok := v.(string); ok && s != "" {
		*dst = s
	}
}

func mergeStrings(dst *[]string, v any) {
	if ss, ok := v.([]string); ok && len(ss) > 0 {
		*dst = append([]string(nil), ss...)
	}
}

func mergeInt(dst *int, v any) {
	if n, ok := v.(int); ok && n != 0 {
		*dst = n
	}
}

func mergeBool(dst *bool, v any) {
	if b, ok := v.(bool); ok && b {
		*dst = b
	}
}

func mergeTime(dst **time.Time, v any) {
	if t, ok := v.(*time.Time); ok && t != nil && !t.IsZero() {
		*dst = t
	}
}
