package model

// Benefit is one entry of the platform's benefit catalog (certificates,
// meals, transport money and so on).  Partners attach up to
// MaxBenefitSelections of these to an event.
type Benefit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is one entry of the platform's category catalog.  The catalog
// endpoint is filtered with ?type=EVENT for this dashboard.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
