package score

// Urgency is the follow-up tier derived from the rot score.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// RotStatus labels a rot score (higher = worse) for display.
type RotStatus struct {
	Label   string  `json:"label"`
	Urgency Urgency `json:"urgency"`
	Color   string  `json:"color"`
}

// HealthStatus labels an ascending 0-100 score (higher = better) for display.
type HealthStatus struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// RotStatusFor maps a rot score onto the staleness label scheme.
func RotStatusFor(rot int) RotStatus {
	switch {
	case rot <= 10:
		return RotStatus{Label: "Healthy Heartbeat", Urgency: UrgencyLow, Color: "#22c55e"}
	case rot <= 30:
		return RotStatus{Label: "Early Decay", Urgency: UrgencyMedium, Color: "#84cc16"}
	case rot <= 60:
		return RotStatus{Label: "Freshness Failing", Urgency: UrgencyHigh, Color: "#eab308"}
	case rot <= 80:
		return RotStatus{Label: "Rot Zone", Urgency: UrgencyCritical, Color: "#f97316"}
	default:
		return RotStatus{Label: "Critical Decay", Urgency: UrgencyCritical, Color: "#ef4444"}
	}
}

// HealthStatusFor maps an overall or sub-score onto the five-level health
// label scheme.
func HealthStatusFor(score int) HealthStatus {
	switch {
	case score >= 90:
		return HealthStatus{Label: "Excellent", Color: "#22c55e"}
	case score >= 70:
		return HealthStatus{Label: "Good", Color: "#84cc16"}
	case score >= 50:
		return HealthStatus{Label: "Fair", Color: "#eab308"}
	case score >= 30:
		return HealthStatus{Label: "Poor", Color: "#f97316"}
	default:
		return HealthStatus{Label: "Critical", Color: "#ef4444"}
	}
}
