package form

// FeeSection owns the registration fee toggle.  Free events carry a zero
// price; paid events need a positive one.
type FeeSection struct {
	IsPaid bool `json:"isPaid"`
	Price  int  `json:"price"`
}

func (s *FeeSection) Name() string { return SectionFee }

func (s *FeeSection) Validate() []string {
	var errs []string
	if s.Price < 0 {
		errs = append(errs, "price must not be negative")
	}
	if s.IsPaid && s.Price <= 0 {
		errs = append(errs, "price must be greater than zero for paid events")
	}
	return errs
}

func (s *FeeSection) Data() map[string]any {
	return map[string]any{
		"isPaid": s.IsPaid,
		"price":  s.Price,
	}
}
