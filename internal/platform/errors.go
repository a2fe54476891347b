package platform

import (
	"fmt"
	"strings"
)

// Kind buckets an upstream failure into the branches the submission
// pipeline and the handlers care about.
type Kind int

const (
	KindTransport  Kind = iota // network unreachable, timeout, malformed response
	KindAuth                   // 401/403: force re-authentication
	KindValidation             // 400 with a structured errors array
	KindTooLarge               // 413: uploaded file too large
	KindServer                 // 5xx: potentially payload-specific
	KindOther                  // anything else (404, 409, ...)
)

// FieldError is one entry of the platform's structured 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx upstream response.  Status 0 marks a transport
// failure that never produced a response.
type APIError struct {
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream unreachable: %s", e.Message)
	}
	return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
}

// Kind classifies the error per the pipeline's branching rules.
func (e *APIError) Kind() Kind {
	switch {
	case e.Status == 0:
		return KindTransport
	case e.Status == 401 || e.Status == 403:
		return KindAuth
	case e.Status == 413:
		return KindTooLarge
	case e.Status == 400:
		return KindValidation
	case e.Status >= 500:
		return KindServer
	default:
		return KindOther
	}
}

// PreferredMessage picks the most actionable message to surface.  For a
// structured 400 the first benefit-related entry wins, because in practice
// benefit selection is what the platform rejects most; otherwise the first
// structured message, otherwise the general one.
func (e *APIError) PreferredMessage() string {
	if e.Kind() == KindValidation && len(e.Errors) > 0 {
		for _, fe := range e.Errors {
			if strings.Contains(strings.ToLower(fe.Field), "benefit") ||
				strings.Contains(strings.ToLower(fe.Message), "benefit") {
				return fe.Message
			}
		}
		return e.Errors[0].Message
	}
	if e.Kind() == KindTransport {
		return "could not reach the server, check your connection and try again"
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
