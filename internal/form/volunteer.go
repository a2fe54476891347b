package form

import "strings"

// VolunteerSection owns the volunteer constraints: what is required of
// applicants, who to contact, and the applicant/acceptance quotas.
type VolunteerSection struct {
	Requirement   string `json:"requirement"`
	ContactPerson string `json:"contactPerson"`
	MaxApplicant  int    `json:"maxApplicant"`
	AcceptedQuota int    `json:"acceptedQuota"`
}

func (s *VolunteerSection) Name() string { return SectionVolunteer }

func (s *VolunteerSection) Normalize() {
	s.Requirement = strings.TrimSpace(s.Requirement)
	s.ContactPerson = strings.TrimSpace(s.ContactPerson)
}

// Validate applies the draft tier.  A quota exceeding the applicant cap
// surfaces a message here but never blocks the state update itself; the
// partner sees the warning while the typed values stay put.
func (s *VolunteerSection) Validate() []string {
	var errs []string
	if s.ContactPerson == "" {
		errs = append(errs, "contact person is required")
	}
	if s.MaxApplicant <= 0 {
		errs = append(errs, "max applicant must be greater than zero")
	}
	if s.MaxApplicant > 0 && s.AcceptedQuota > s.MaxApplicant {
		errs = append(errs, "accepted quota must not exceed max applicant")
	}
	return errs
}

func (s *VolunteerSection) ValidateForPublish() []string {
	errs := s.Validate()
	if s.Requirement == "" {
		errs = append(errs, "requirement is required to publish")
	}
	return errs
}

func (s *VolunteerSection) Data() map[string]any {
	return map[string]any{
		"requirement":   s.Requirement,
		"contactPerson": s.ContactPerson,
		"maxApplicant":  s.MaxApplicant,
		"acceptedQuota": s.AcceptedQuota,
	}
}
