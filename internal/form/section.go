// Package form holds the section controllers of the event creation flow.
// Each section owns one topical slice of a draft event, validates it at two
// tiers (draft save vs. publish) and hands its fields to the aggregator as a
// keyed fragment.  The split mirrors the dashboard form: a partner fills the
// sections independently and the merged draft is reconstructed from them.
package form

import "strings"

// Section is the contract every section controller implements for the
// aggregator: report which slice it owns, validate it at the draft tier and
// expose the current field values keyed the way the merged draft expects.
// An empty Validate result means the section is valid for a draft save.
type Section interface {
	Name() string
	Validate() []string
	Data() map[string]any
}

// PublishValidator marks sections that carry extra publish-only rules.  Its
// checks are a superset of Validate: everything required for a draft save
// plus what must hold before the event goes public.  Sections without
// publish-only rules simply do not implement it.
type PublishValidator interface {
	ValidateForPublish() []string
}

// Normalizer is an optional hook run right after a section is bound from a
// request, before validation.  Sections use it to trim input and derive
// fields (the location section resolves pasted map links here).
type Normalizer interface {
	Normalize()
}

// Section names, also used as the PATCH path segment for each section.
const (
	SectionEvent     = "event"
	SectionDate      = "date"
	SectionLocation  = "location"
	SectionVolunteer = "volunteer"
	SectionFee       = "fee"
	SectionBanner    = "banner"
)

// trimAll trims every string in place and drops entries that end up empty.
func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
