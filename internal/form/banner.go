package form

import (
	"fmt"
	"strings"

	"github.com/volunteerin/partner-gateway/internal/model"
)

// BannerSection owns the event banner.  Unlike the other sections it is not
// bound from JSON: the upload handler fills it in after the image has been
// decoded and re-encoded, so validation here runs on the processed artifact.
type BannerSection struct {
	Meta *model.BannerMeta `json:"banner"`
}

func (s *BannerSection) Name() string { return SectionBanner }

func (s *BannerSection) Validate() []string {
	var errs []string
	if s.Meta == nil || s.Meta.FileName == "" {
		errs = append(errs, "banner image is required")
		return errs
	}
	if s.Meta.Size > model.MaxBannerBytes {
		errs = append(errs, fmt.Sprintf("banner must be at most %d bytes", model.MaxBannerBytes))
	}
	if s.Meta.Mime != "" && !strings.HasPrefix(s.Meta.Mime, "image/") {
		errs = append(errs, "banner must be an image")
	}
	return errs
}

func (s *BannerSection) Data() map[string]any {
	d := map[string]any{}
	if s.Meta != nil {
		d["banner"] = s.Meta
	}
	return d
}
