// Package model holds the shared domain types passed between the audit
// pipeline, the lead store, and the outbound sinks.
package model

import (
	"time"

	"github.com/sells-group/gbp-pulse/internal/score"
)

// Lead is a captured prospect: an email address tied to the business that
// was audited and the scores it received.
type Lead struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	BusinessName string        `json:"business_name"`
	PlaceID      string        `json:"place_id,omitempty"`
	OverallScore int           `json:"overall_score"`
	RotScore     int           `json:"rot_score"`
	StatusLabel  string        `json:"status_label"`
	Hot          bool          `json:"hot"`
	Report       *score.Report `json:"report,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
