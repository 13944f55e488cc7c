package audit

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/gbp-pulse/internal/score"
	"github.com/sells-group/gbp-pulse/pkg/places"
)

var snapNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

func fullPlace() *places.Place {
	return &places.Place{
		ID:                  "ChIJ-joes",
		DisplayName:         places.DisplayName{Text: "Joe's Pizza"},
		FormattedAddress:    "7 Carmine St, New York, NY 10014",
		NationalPhoneNumber: "(212) 366-1182",
		WebsiteURI:          "https://joespizzanyc.com",
		Rating:              4.6,
		UserRatingCount:     2381,
		Types:               []string{"pizza_restaurant", "restaurant", "food"},
		EditorialSummary:    &places.Localized{Text: "A Greenwich Village slice institution since 1975."},
		RegularOpeningHours: &places.OpeningHours{WeekdayDescriptions: []string{"Monday: 10AM-4AM"}},
		Photos:              make([]places.Photo, 60),
		Takeout:             boolPtr(true),
		Reviews: []places.Review{
			{Rating: 5, PublishTime: snapNow.AddDate(0, 0, -3), OwnerResponse: &places.OwnerResponse{Text: "Thanks!"}},
			{Rating: 4, PublishTime: snapNow.AddDate(0, 0, -40)},
		},
	}
}

func TestBuildSnapshot_FullProfile(t *testing.T) {
	snap := BuildSnapshot(fullPlace(), snapNow)

	assert.Equal(t, 3, snap.DaysSinceLastReview)
	assert.Equal(t, 2381, snap.TotalReviews)
	assert.InDelta(t, 4.6, snap.AvgRating, 0.001)
	assert.True(t, snap.HasName)
	assert.True(t, snap.HasAddress)
	assert.False(t, snap.ServiceAreaOnly)
	assert.True(t, snap.HasPhone)
	assert.True(t, snap.HasWebsite)
	assert.True(t, snap.HasHours)
	assert.True(t, snap.HasDescription)
	assert.Equal(t, len("A Greenwich Village slice institution since 1975."), snap.DescriptionLength)
	assert.Equal(t, 3, snap.CategoryCount)
	assert.True(t, snap.HasServiceAttributes)
	assert.Equal(t, 60, snap.PhotoCount)

	reviews := snap.Reviews
	assert.Len(t, reviews, 2)
	assert.True(t, reviews[0].HasOwnerResponse)
	assert.False(t, reviews[1].HasOwnerResponse)
}

func TestBuildSnapshot_RelativeDateFallback(t *testing.T) {
	place := &places.Place{
		DisplayName: places.DisplayName{Text: "Stale Cuts Barbershop"},
		Reviews: []places.Review{
			{Rating: 4, RelativePublishTimeDescription: "2 months ago"},
			{Rating: 3, RelativePublishTimeDescription: "a year ago"},
		},
	}

	snap := BuildSnapshot(place, snapNow)
	want := int(snapNow.Sub(snapNow.AddDate(0, -2, 0)).Hours() / 24)
	assert.Equal(t, want, snap.DaysSinceLastReview)
}

func TestBuildSnapshot_NoUsableDates(t *testing.T) {
	place := &places.Place{
		DisplayName: places.DisplayName{Text: "Ghost Town Goods"},
		Reviews: []places.Review{
			{Rating: 2, RelativePublishTimeDescription: "a while back"},
		},
	}

	snap := BuildSnapshot(place, snapNow)
	assert.Equal(t, score.UnknownReviewDays, snap.DaysSinceLastReview)
}

func TestBuildSnapshot_NoReviews(t *testing.T) {
	place := &places.Place{DisplayName: places.DisplayName{Text: "Brand New LLC"}}

	snap := BuildSnapshot(place, snapNow)
	assert.Equal(t, score.UnknownReviewDays, snap.DaysSinceLastReview)
	assert.Empty(t, snap.Reviews)
	assert.False(t, snap.HasServiceAttributes)
}

func TestBuildSnapshot_MultibyteDescription(t *testing.T) {
	// 43 runes but 51 bytes. Length must count runes so a short non-ASCII
	// description does not sneak past the partial-credit cutoff.
	desc := "Petit café étoilé très fréquenté à Montréal"
	place := &places.Place{
		DisplayName:      places.DisplayName{Text: "Café Olimpico"},
		EditorialSummary: &places.Localized{Text: desc},
	}

	snap := BuildSnapshot(place, snapNow)
	assert.True(t, snap.HasDescription)
	assert.Equal(t, utf8.RuneCountInString(desc), snap.DescriptionLength)
	assert.Less(t, snap.DescriptionLength, len(desc))
}

func TestBuildSnapshot_FutureTimestampClamps(t *testing.T) {
	place := &places.Place{
		DisplayName: places.DisplayName{Text: "Time Travel Tours"},
		Reviews: []places.Review{
			{Rating: 5, PublishTime: snapNow.Add(2 * time.Hour)},
		},
	}

	snap := BuildSnapshot(place, snapNow)
	assert.Equal(t, 0, snap.DaysSinceLastReview)
}

func TestBuildSnapshot_ServiceAreaBusiness(t *testing.T) {
	place := &places.Place{
		DisplayName:             places.DisplayName{Text: "Mobile Mechanics"},
		PureServiceAreaBusiness: true,
	}

	snap := BuildSnapshot(place, snapNow)
	assert.True(t, snap.ServiceAreaOnly)
	assert.False(t, snap.HasAddress)
}
