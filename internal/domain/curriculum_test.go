package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurriculumCounts(t *testing.T) {
	assert.Equal(t, 25, TotalSkills())
	assert.Equal(t, 75, TotalRequiredSignoffs())
	assert.Equal(t, 69, NonALSRequiredSignoffs())
}

func TestFindSection(t *testing.T) {
	sec, ok := FindSection("Spike a bag")
	require.True(t, ok)
	assert.Equal(t, "ALS Assist Skills", sec.Title)
	assert.True(t, sec.ALS)

	sec, ok = FindSection("Perform and complete a truck check")
	require.True(t, ok)
	assert.False(t, sec.ALS)

	_, ok = FindSection("Fly the helicopter")
	assert.False(t, ok)
}

func TestSectionByTitle(t *testing.T) {
	sec, ok := SectionByTitle("Airway & Oxygen")
	require.True(t, ok)
	assert.Equal(t, "Airway & Oxygen", sec.Title)

	_, ok = SectionByTitle("Unknown Section")
	assert.False(t, ok)
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{0, "Novice"},
		{24, "Novice"},
		{25, "Intermediate"},
		{49, "Intermediate"},
		{50, "Advanced"},
		{74, "Advanced"},
		{75, "Certified"},
		{100, "Certified"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RankFor(tt.percent), "percent %d", tt.percent)
	}
}
