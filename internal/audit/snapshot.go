package audit

import (
	"time"
	"unicode/utf8"

	"github.com/sells-group/gbp-pulse/internal/score"
	"github.com/sells-group/gbp-pulse/pkg/places"
)

// BuildSnapshot normalizes a Places detail response into the bundle of
// signals the scoring engine consumes.
func BuildSnapshot(place *places.Place, now time.Time) score.Snapshot {
	snap := score.Snapshot{
		DaysSinceLastReview:  score.UnknownReviewDays,
		TotalReviews:         place.UserRatingCount,
		AvgRating:            place.Rating,
		HasName:              place.DisplayName.Text != "",
		HasAddress:           place.FormattedAddress != "",
		ServiceAreaOnly:      place.PureServiceAreaBusiness,
		HasPhone:             place.NationalPhoneNumber != "",
		HasWebsite:           place.WebsiteURI != "",
		HasHours:             place.RegularOpeningHours != nil && len(place.RegularOpeningHours.WeekdayDescriptions) > 0,
		CategoryCount:        len(place.Types),
		HasServiceAttributes: place.HasServiceOptions(),
		PhotoCount:           len(place.Photos),
	}

	if place.EditorialSummary != nil && place.EditorialSummary.Text != "" {
		snap.HasDescription = true
		// Rune count, not bytes. Descriptions are user-facing prose and
		// often contain multibyte characters.
		snap.DescriptionLength = utf8.RuneCountInString(place.EditorialSummary.Text)
	}

	for _, r := range place.Reviews {
		snap.Reviews = append(snap.Reviews, score.Review{
			HasOwnerResponse: r.OwnerResponse != nil,
		})
	}

	if days, ok := daysSinceNewestReview(place.Reviews, now); ok {
		snap.DaysSinceLastReview = days
	}

	return snap
}

// daysSinceNewestReview finds the most recent review by publish timestamp,
// falling back to the relative-date description when the provider omits
// timestamps. Returns false when no review yields a usable date.
func daysSinceNewestReview(reviews []places.Review, now time.Time) (int, bool) {
	var newest time.Time
	for _, r := range reviews {
		published := r.PublishTime
		if published.IsZero() {
			parsed, ok := score.ParseRelative(r.RelativePublishTimeDescription, now)
			if !ok {
				continue
			}
			published = parsed
		}
		if published.After(newest) {
			newest = published
		}
	}
	if newest.IsZero() {
		return 0, false
	}

	days := int(now.Sub(newest).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}
