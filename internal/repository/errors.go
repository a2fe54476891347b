// Package repository contains data access logic separated from HTTP handlers.
// These sentinel values allow higher layers such as handlers to distinguish
// between different failure scenarios: ErrForbidden indicates the current
// user is trying to touch a draft owned by someone else, while
// ErrDraftNotFound means no such draft row exists at all.
package repository

import "errors"

// ErrDraftNotFound is returned when a draft lookup fails. Handlers should
// translate this into an HTTP 404 response.
var ErrDraftNotFound = errors.New("draft not found")

// ErrForbidden is returned when the caller attempts an operation on a draft
// they do not own. Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
