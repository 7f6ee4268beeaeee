package dto

import (
	"time"

	"github.com/stockflow/backend/internal/domain/sync"
)

// SyncRequest is the optional trigger body. An empty or missing
// syncTypes array means all three object types.
type SyncRequest struct {
	SyncTypes []string `json:"syncTypes"`
}

// SyncResponse is returned for any completed run, including runs with
// per-type failures inside Results. Callers must inspect the per-type
// success flags.
type SyncResponse struct {
	Success       bool          `json:"success"`
	Results       []sync.Result `json:"results"`
	TotalDuration int64         `json:"totalDuration"`
	Timestamp     time.Time     `json:"timestamp"`
}

// SyncErrorResponse is returned only for fatal pre-flight problems or
// unhandled failures.
type SyncErrorResponse struct {
	Error string `json:"error"`
}
