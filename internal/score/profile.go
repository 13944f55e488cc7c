package score

// Profile checklist point budget. The checks run in a fixed order so the
// issue and recommendation lists are deterministic for a given snapshot.
const (
	pointsName        = 10
	pointsAddress     = 10
	pointsPhone       = 15
	pointsWebsite     = 15
	pointsHours       = 15
	pointsDescription = 10
	pointsCategories  = 15
	pointsAttributes  = 10

	profilePointsTotal = pointsName + pointsAddress + pointsPhone + pointsWebsite +
		pointsHours + pointsDescription + pointsCategories + pointsAttributes

	// Descriptions shorter than this earn partial credit only.
	minDescriptionLength = 50

	// Full category credit requires this many categories.
	fullCategoryCount = 3
)

// ProfileScore is the profile-completeness result.
type ProfileScore struct {
	Value           int      `json:"value"`
	Issues          []string `json:"issues,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// ScoreProfile runs the completeness checklist over a snapshot. Check order
// is name, address, phone, website, hours, description, categories,
// attributes.
func ScoreProfile(snap Snapshot) ProfileScore {
	var p ProfileScore
	earned := 0

	if snap.HasName {
		earned += pointsName
	} else {
		p.Issues = append(p.Issues, "Business name is missing")
		p.Recommendations = append(p.Recommendations, "Add your business name to your profile")
	}

	switch {
	case snap.HasAddress:
		earned += pointsAddress
	case snap.ServiceAreaOnly:
		earned += pointsAddress / 2
		p.Recommendations = append(p.Recommendations, "Add a storefront address if you have one; service-area-only listings rank lower in map results")
	default:
		p.Issues = append(p.Issues, "No address listed")
		p.Recommendations = append(p.Recommendations, "Add your business address")
	}

	if snap.HasPhone {
		earned += pointsPhone
	} else {
		p.Issues = append(p.Issues, "No phone number listed")
		p.Recommendations = append(p.Recommendations, "Add a phone number so customers can call you directly")
	}

	if snap.HasWebsite {
		earned += pointsWebsite
	} else {
		p.Issues = append(p.Issues, "No website linked")
		p.Recommendations = append(p.Recommendations, "Link your website to capture search traffic")
	}

	if snap.HasHours {
		earned += pointsHours
	} else {
		p.Issues = append(p.Issues, "Business hours not set")
		p.Recommendations = append(p.Recommendations, "Set your business hours; missing hours turn away ready-to-buy customers")
	}

	switch {
	case snap.HasDescription && snap.DescriptionLength >= minDescriptionLength:
		earned += pointsDescription
	case snap.HasDescription:
		earned += pointsDescription / 2
		p.Recommendations = append(p.Recommendations, "Expand your business description; short descriptions miss keyword opportunities")
	default:
		p.Issues = append(p.Issues, "No business description")
		p.Recommendations = append(p.Recommendations, "Write a detailed business description")
	}

	switch {
	case snap.CategoryCount >= fullCategoryCount:
		earned += pointsCategories
	case snap.CategoryCount >= 1:
		earned += pointsCategories / 3
		p.Recommendations = append(p.Recommendations, "Add more categories; three or more helps you appear in related searches")
	default:
		p.Issues = append(p.Issues, "No categories selected")
		p.Recommendations = append(p.Recommendations, "Select at least 3 relevant business categories")
	}

	if snap.HasServiceAttributes {
		earned += pointsAttributes
	} else {
		p.Recommendations = append(p.Recommendations, "Add service attributes to improve search relevance")
	}

	p.Value = clamp(roundPct(earned, profilePointsTotal))
	return p
}
