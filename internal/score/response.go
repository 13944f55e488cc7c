package score

import "fmt"

// ResponseScore is the owner response-rate result.
type ResponseScore struct {
	Value           int      `json:"value"`
	ResponseRate    int      `json:"response_rate"`
	Issues          []string `json:"issues,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// ScoreResponses computes the owner response rate over the given reviews.
// The score equals the rate; an empty review list scores zero.
func ScoreResponses(reviews []Review) ResponseScore {
	var r ResponseScore

	if len(reviews) == 0 {
		r.Issues = append(r.Issues, "No reviews to respond to")
		r.Recommendations = append(r.Recommendations, "Ask happy customers for reviews, then respond to every one")
		return r
	}

	responded := 0
	for _, rev := range reviews {
		if rev.HasOwnerResponse {
			responded++
		}
	}

	r.ResponseRate = roundPct(responded, len(reviews))
	r.Value = r.ResponseRate

	switch {
	case r.ResponseRate < 50:
		r.Issues = append(r.Issues, fmt.Sprintf("Only %d%% of reviews have an owner response", r.ResponseRate))
		r.Recommendations = append(r.Recommendations, "Respond to every review, starting with the most recent")
	case r.ResponseRate < 100:
		r.Recommendations = append(r.Recommendations, "Respond to the remaining reviews to reach 100%")
	}

	return r
}
