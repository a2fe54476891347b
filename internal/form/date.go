package form

import "time"

// DateSection owns the event schedule.  The end date is deliberately
// optional at the draft tier: partners often save a draft before the end of
// an event is decided.  Publishing requires both.
type DateSection struct {
	StartAt *time.Time `json:"startAt"`
	EndAt   *time.Time `json:"endAt"`
}

func (s *DateSection) Name() string { return SectionDate }

func (s *DateSection) Validate() []string {
	var errs []string
	if s.StartAt == nil || s.StartAt.IsZero() {
		errs = append(errs, "start date is required")
	}
	if s.StartAt != nil && s.EndAt != nil && s.EndAt.Before(*s.StartAt) {
		errs = append(errs, "end date must not precede start date")
	}
	return errs
}

func (s *DateSection) ValidateForPublish() []string {
	errs := s.Validate()
	if s.EndAt == nil || s.EndAt.IsZero() {
		errs = append(errs, "end date is required to publish")
	}
	return errs
}

func (s *DateSection) Data() map[string]any {
	d := map[string]any{}
	if s.StartAt != nil && !s.StartAt.IsZero() {
		d["startAt"] = s.StartAt
	}
	if s.EndAt != nil && !s.EndAt.IsZero() {
		d["endAt"] = s.EndAt
	}
	return d
}
