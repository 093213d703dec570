package domain

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when a sync is attempted before the
// merchant has saved both the API key and the account ID. It fails fast: no
// history record is written.
var ErrMissingCredentials = errors.New("API Key and Account ID are required")

// ErrSyncInProgress is returned when another sync already holds the
// per-shop lock.
var ErrSyncInProgress = errors.New("a sync is already in progress for this shop")

// QuotizaAPIError is a rejection from the Quotiza API. Message is the remote
// error message passed through verbatim.
type QuotizaAPIError struct {
	StatusCode int
	Message    string
}

func (e *QuotizaAPIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("quotiza api returned status %d", e.StatusCode)
}
