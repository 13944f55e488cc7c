package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreProfileComplete(t *testing.T) {
	got := ScoreProfile(fullSnapshot())

	assert.Equal(t, 100, got.Value)
	assert.Empty(t, got.Issues)
	assert.Empty(t, got.Recommendations)
}

func TestScoreProfileEmpty(t *testing.T) {
	got := ScoreProfile(Snapshot{})

	assert.Equal(t, 0, got.Value)
	assert.Contains(t, got.Issues, "Business name is missing")
	assert.Contains(t, got.Issues, "No address listed")
	assert.Contains(t, got.Issues, "No phone number listed")
	assert.Contains(t, got.Issues, "No website linked")
	assert.Contains(t, got.Issues, "Business hours not set")
	assert.Contains(t, got.Issues, "No business description")
	assert.Contains(t, got.Issues, "No categories selected")
}

func TestScoreProfilePartialCredit(t *testing.T) {
	t.Run("service area address", func(t *testing.T) {
		got := ScoreProfile(Snapshot{ServiceAreaOnly: true})
		assert.Equal(t, 5, got.Value)
		assert.NotContains(t, got.Issues, "No address listed")
	})

	t.Run("short description", func(t *testing.T) {
		withShort := ScoreProfile(Snapshot{HasDescription: true, DescriptionLength: 20})
		withFull := ScoreProfile(Snapshot{HasDescription: true, DescriptionLength: 200})
		assert.Equal(t, 5, withShort.Value)
		assert.Equal(t, 10, withFull.Value)
	})

	t.Run("one or two categories", func(t *testing.T) {
		one := ScoreProfile(Snapshot{CategoryCount: 1})
		three := ScoreProfile(Snapshot{CategoryCount: 3})
		assert.Equal(t, 5, one.Value)
		assert.Equal(t, 15, three.Value)
	})
}

func TestScoreProfileCheckOrder(t *testing.T) {
	// Issues accumulate in checklist order regardless of field values.
	got := ScoreProfile(Snapshot{HasPhone: true, HasHours: true})

	assert.Equal(t, []string{
		"Business name is missing",
		"No address listed",
		"No website linked",
		"No business description",
		"No categories selected",
	}, got.Issues)
}
