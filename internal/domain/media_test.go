package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediumKind(t *testing.T) {
	tests := []struct {
		in   string
		want MediumKind
		ok   bool
	}{
		{"movie", KindMovie, true},
		{"series", KindSeries, true},
		{"tv", KindSeries, true},
		{"Movie", "", false},
		{"podcast", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMediumKind(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.False(t, MediumKind("tv").Valid(), "alias is accepted on input only")
}

func TestCategories_SlugRoundTripAndRank(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 5)
	assert.Equal(t, CategoryHollywood, cats[0])
	assert.Equal(t, CategoryAnimated, cats[4])

	for i, c := range cats {
		assert.Equal(t, i, c.Rank())
		got, ok := CategoryFromSlug(c.Slug())
		require.True(t, ok, c)
		assert.Equal(t, c, got)
	}

	assert.Equal(t, "web-series", CategoryWebSeries.Slug())

	unknown := Category("Documentary")
	assert.Equal(t, len(cats), unknown.Rank())
	assert.Empty(t, unknown.Slug())
	_, ok := CategoryFromSlug("documentary")
	assert.False(t, ok)
}

func TestCategories_ReturnsCopy(t *testing.T) {
	cats := Categories()
	cats[0] = CategoryAnime
	assert.Equal(t, CategoryHollywood, Categories()[0])
}
