// Package score implements the review freshness and profile health scoring
// engine. All functions are pure and deterministic; callers assemble a
// Snapshot from provider data and receive a Report, with no I/O in between.
package score

import "math"

// Sentinel day count used when no review date could be determined. It lands
// deep in the top rot band so unknown businesses surface as critically stale.
const UnknownReviewDays = 999

// Snapshot is the normalized bundle of business signals fed to the engine.
// It is constructed once per request and discarded after scoring.
type Snapshot struct {
	DaysSinceLastReview int     `json:"days_since_last_review"`
	TotalReviews        int     `json:"total_reviews"`
	AvgRating           float64 `json:"avg_rating"`

	HasName         bool `json:"has_name"`
	HasAddress      bool `json:"has_address"`
	ServiceAreaOnly bool `json:"service_area_only"`
	HasPhone        bool `json:"has_phone"`
	HasWebsite      bool `json:"has_website"`
	HasHours        bool `json:"has_hours"`
	HasDescription  bool `json:"has_description"`

	DescriptionLength    int  `json:"description_length"`
	CategoryCount        int  `json:"category_count"`
	HasServiceAttributes bool `json:"has_service_attributes"`
	PhotoCount           int  `json:"photo_count"`

	Reviews []Review `json:"reviews,omitempty"`
}

// Review carries the per-review signals the engine cares about.
type Review struct {
	HasOwnerResponse bool `json:"has_owner_response"`
}

// Report is the immutable scoring output for one business.
type Report struct {
	RotScore          int           `json:"rot_score"`
	ReviewHealthScore int           `json:"review_health_score"`
	Profile           ProfileScore  `json:"profile"`
	Photo             PhotoScore    `json:"photo"`
	Response          ResponseScore `json:"response"`
	OverallScore      int           `json:"overall_score"`
	Status            HealthStatus  `json:"status"`
	Rot               RotStatus     `json:"rot"`
	Impact            Impact        `json:"impact"`
}

// Overall score weights. The overall score is a fixed-weight linear
// combination of exactly these four sub-scores.
const (
	weightReviewHealth = 0.35
	weightProfile      = 0.25
	weightPhoto        = 0.20
	weightResponse     = 0.20
)

// Audit computes the full multi-factor report for a snapshot.
func Audit(snap Snapshot) Report {
	rot := Rot(snap.DaysSinceLastReview)
	health := ReviewHealth(snap.DaysSinceLastReview, snap.TotalReviews, snap.AvgRating)
	profile := ScoreProfile(snap)
	photo := ScorePhotos(snap.PhotoCount)
	response := ScoreResponses(snap.Reviews)
	overall := Overall(health, profile.Value, photo.Value, response.Value)

	return Report{
		RotScore:          rot,
		ReviewHealthScore: health,
		Profile:           profile,
		Photo:             photo,
		Response:          response,
		OverallScore:      overall,
		Status:            HealthStatusFor(overall),
		Rot:               RotStatusFor(rot),
		Impact:            EstimateImpact(overall),
	}
}

// Rot converts days since the last review into a 0-100 staleness score,
// higher meaning staler. Piecewise linear across five bands; the per-band
// formulas are part of the consumer-facing contract and are reproduced as
// specified rather than smoothed at the seams.
func Rot(days int) int {
	if days < 0 {
		days = 0
	}

	var s float64
	switch {
	case days <= 14:
		s = float64(days) / 14 * 10
	case days <= 21:
		s = 10 + float64(days-14)/7*20
	case days <= 56:
		s = 30 + float64(days-21)/35*30
	case days <= 70:
		s = 60 + float64(days-56)/14*20
	default:
		s = 80 + float64(days-70)/30*20
	}

	return clamp(int(math.Round(s)))
}

// ReviewHealth is the inverse composite of freshness, review volume, and
// rating quality, 0-100 with higher meaning healthier.
func ReviewHealth(days, totalReviews int, avgRating float64) int {
	freshness := float64(100 - Rot(days))
	volume := math.Min(100, float64(totalReviews)/100*100)
	quality := avgRating / 5 * 100

	return clamp(int(math.Round(freshness*0.4 + volume*0.3 + quality*0.3)))
}

// Overall combines the four sub-scores with fixed weights.
func Overall(reviewHealth, profile, photo, response int) int {
	v := float64(reviewHealth)*weightReviewHealth +
		float64(profile)*weightProfile +
		float64(photo)*weightPhoto +
		float64(response)*weightResponse
	return clamp(int(math.Round(v)))
}

// Impact is a display-copy estimate of what a weak profile costs the
// business each month. Not a scientific model; the linear formulas are part
// of the consumer-facing contract.
type Impact struct {
	MissedCallsPerMonth  int `json:"missed_calls_per_month"`
	MonthlyRevenueAtRisk int `json:"monthly_revenue_at_risk"`
}

// EstimateImpact derives the display-copy impact figures from the overall
// score. Businesses at or above 70 are considered healthy and show zero.
func EstimateImpact(overall int) Impact {
	gap := 70 - overall
	if gap < 0 {
		gap = 0
	}
	return Impact{
		MissedCallsPerMonth:  gap * 2,
		MonthlyRevenueAtRisk: gap * 150,
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func roundPct(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
