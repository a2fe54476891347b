package form

import (
	"fmt"
	"strings"

	"github.com/volunteerin/partner-gateway/internal/model"
)

// EventSection owns the core description of the event: title, description,
// type and the category/benefit selections.
type EventSection struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	CategoryIDs []string `json:"categoryIds"`
	BenefitIDs  []string `json:"benefitIds"`
}

func (s *EventSection) Name() string { return SectionEvent }

// Normalize trims free-text fields, upper-cases the type and drops empty
// identifiers from the selection sets.
func (s *EventSection) Normalize() {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.Type = strings.ToUpper(strings.TrimSpace(s.Type))
	s.CategoryIDs = trimAll(s.CategoryIDs)
	s.BenefitIDs = trimAll(s.BenefitIDs)
}

// Validate applies the draft-save tier.  The selections are required even
// for a draft because the platform refuses event payloads without them.
func (s *EventSection) Validate() []string {
	var errs []string
	if s.Title == "" {
		errs = append(errs, "title is required")
	}
	if s.Description == "" {
		errs = append(errs, "description is required")
	}
	if s.Type != model.EventTypeOpen && s.Type != model.EventTypeLimited {
		errs = append(errs, "type must be OPEN or LIMITED")
	}
	if len(s.CategoryIDs) == 0 {
		errs = append(errs, "select at least one category")
	}
	if len(s.BenefitIDs) == 0 {
		errs = append(errs, "select at least one benefit")
	}
	if len(s.BenefitIDs) > model.MaxBenefitSelections {
		errs = append(errs, fmt.Sprintf("select at most %d benefits", model.MaxBenefitSelections))
	}
	return errs
}

func (s *EventSection) Data() map[string]any {
	return map[string]any{
		"title":       s.Title,
		"description": s.Description,
		"type":        s.Type,
		"categoryIds": s.CategoryIDs,
		"benefitIds":  s.BenefitIDs,
	}
}
