package domain

import "time"

// SyncStatus is the state of one sync attempt.
type SyncStatus string

const (
	SyncInProgress SyncStatus = "in_progress"
	SyncSuccess    SyncStatus = "success"
	SyncError      SyncStatus = "error"
)

// SyncHistoryRecord is one logged sync attempt. A record is created with
// status in_progress and closed exactly once, to success or to error.
type SyncHistoryRecord struct {
	ID            string     `json:"id"`
	Shop          string     `json:"shop"`
	Status        SyncStatus `json:"status"`
	Date          time.Time  `json:"date"`
	ProductsCount int        `json:"products_count,omitempty"`
	JobID         string     `json:"job_id,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// SyncResult is what the orchestrator returns to its caller. The UI surfaces
// Message verbatim on error.
type SyncResult struct {
	Status  SyncStatus `json:"status"`
	Message string     `json:"message,omitempty"`
}
