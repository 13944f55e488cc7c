package score

// PhotoScore is the photo coverage result.
type PhotoScore struct {
	Value           int      `json:"value"`
	Count           int      `json:"count"`
	Issues          []string `json:"issues,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// ScorePhotos maps a photo count onto the step scale. The issue and
// recommendation copy is consumer-facing and treated as part of the
// contract.
func ScorePhotos(count int) PhotoScore {
	p := PhotoScore{Count: count}

	switch {
	case count <= 0:
		p.Value = 0
		p.Issues = append(p.Issues, "No photos uploaded")
		p.Recommendations = append(p.Recommendations, "Upload at least 10 photos of your business, team, and work. Listings with photos get far more clicks and calls")
	case count < 10:
		p.Value = 25
		p.Issues = append(p.Issues, "Very few photos")
		p.Recommendations = append(p.Recommendations, "Add more photos. Aim for at least 25 covering your storefront, products, and staff")
	case count < 25:
		p.Value = 50
		p.Issues = append(p.Issues, "Photo count is low")
		p.Recommendations = append(p.Recommendations, "Grow your gallery to 25+ photos to stand out from competitors")
	case count < 50:
		p.Value = 75
		p.Recommendations = append(p.Recommendations, "You're close. Reach 50+ photos for full credit")
	default:
		p.Value = 100
		p.Recommendations = append(p.Recommendations, "Great photo coverage. Keep adding new photos regularly to stay fresh")
	}

	return p
}
