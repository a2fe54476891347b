package model

import "time"

// Event types understood by the platform.  OPEN events accept anyone who
// registers; LIMITED events gate acceptance behind the partner's review.
const (
	EventTypeOpen    = "OPEN"
	EventTypeLimited = "LIMITED"
)

// MaxBenefitSelections caps how many benefits a partner may attach to one
// event.  The platform rejects larger sets, so the cap is enforced here
// before anything goes over the wire.
const MaxBenefitSelections = 4

// MaxBannerBytes is the upstream limit for the event banner image.
const MaxBannerBytes = 1 << 20 // 1 MiB

// DraftEvent is the in-progress event record assembled from independently
// validated section fragments.  It is not owned by any single section: the
// aggregator reconstructs it by merging per-section updates, last write
// wins per field.  Coordinates are kept as strings because they are lifted
// verbatim from pasted map URLs and forwarded verbatim to the platform.
//
// Fields mirror the platform's create-event payload:
//
//	Title/Description/Type     – core description, Type is OPEN or LIMITED
//	CategoryIDs/BenefitIDs     – identifier sets, insertion order irrelevant
//	StartAt/EndAt              – EndAt is optional for a draft save but must
//	                             not precede StartAt when present
//	Province..Longitude        – location; Gmaps is the pasted maps URL
//	Requirement..AcceptedQuota – volunteer constraints
//	IsPaid/Price               – registration fee; Price > 0 when IsPaid
//	Banner                     – metadata only, bytes live in the keyed store
//	IsRelease                  – publish immediately when true
type DraftEvent struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Type          string      `json:"type"`
	CategoryIDs   []string    `json:"categoryIds"`
	BenefitIDs    []string    `json:"benefitIds"`
	StartAt       *time.Time  `json:"startAt,omitempty"`
	EndAt         *time.Time  `json:"endAt,omitempty"`
	Province      string      `json:"province"`
	Regency       string      `json:"regency"`
	Address       string      `json:"address"`
	Gmaps         string      `json:"gmaps"`
	Latitude      string      `json:"latitude"`
	Longitude     string      `json:"longitude"`
	Requirement   string      `json:"requirement"`
	ContactPerson string      `json:"contactPerson"`
	MaxApplicant  int         `json:"maxApplicant"`
	AcceptedQuota int         `json:"acceptedQuota"`
	IsPaid        bool        `json:"isPaid"`
	Price         int         `json:"price"`
	Banner        *BannerMeta `json:"banner,omitempty"`
	IsRelease     bool        `json:"isRelease"`
}

// BannerMeta describes the uploaded banner without its bytes.  Recovery
// snapshots serialize only this metadata; the binary is never written into
// a snapshot.
type BannerMeta struct {
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Mime     string `json:"mime"`
}

// DraftSnapshot is the best-effort recovery record written to the keyed
// store when a submission exhausts every strategy.  It lets the dashboard
// offer "restore your draft" after a failed publish instead of losing the
// partner's work.
type DraftSnapshot struct {
	DraftID string     `json:"draftId"`
	Draft   DraftEvent `json:"draft"`
	Reason  string     `json:"reason"`
	SavedAt time.Time  `json:"savedAt"`
}
