package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchParams_Values(t *testing.T) {
	p := SearchParams{
		Term:       "coffee",
		Location:   "San Francisco, CA",
		Radius:     1500,
		Categories: []string{"bars", "french"},
		Locale:     "en_US",
		Price:      []int{1, 2, 3},
		OpenNow:    true,
		Attributes: []string{"hot_and_new", "deals"},
	}

	v := p.values(50, 100)

	assert.Equal(t, "coffee", v.Get("term"))
	assert.Equal(t, "San Francisco, CA", v.Get("location"))
	assert.Equal(t, "50", v.Get("limit"))
	assert.Equal(t, "100", v.Get("offset"))
	assert.Equal(t, "1500", v.Get("radius"))
	assert.Equal(t, "bars,french", v.Get("categories"))
	assert.Equal(t, "en_US", v.Get("locale"))
	assert.Equal(t, "1,2,3", v.Get("price"))
	assert.Equal(t, "true", v.Get("open_now"))
	assert.Equal(t, "hot_and_new,deals", v.Get("attributes"))
	assert.Equal(t, SortBestMatch, v.Get("sort_by"))
}

func TestSearchParams_Values_Minimal(t *testing.T) {
	p := SearchParams{Location: "Portland, OR"}

	v := p.values(20, 0)

	// Absent optionals stay off the wire entirely.
	assert.False(t, v.Has("term"))
	assert.False(t, v.Has("offset"))
	assert.False(t, v.Has("radius"))
	assert.False(t, v.Has("open_now"))
	assert.False(t, v.Has("open_at"))
	assert.Equal(t, "20", v.Get("limit"))
}

func TestSearchParams_Values_OpenAt(t *testing.T) {
	p := SearchParams{Location: "SF", OpenAt: 1700000000}

	v := p.values(20, 0)

	assert.Equal(t, "1700000000", v.Get("open_at"))
	assert.False(t, v.Has("open_now"))
}

func TestSearchParams_Values_Coordinates(t *testing.T) {
	p := SearchParams{Latitude: Float(37.7749), Longitude: Float(-122.4194)}

	v := p.values(20, 0)

	assert.Equal(t, "37.7749", v.Get("latitude"))
	assert.Equal(t, "-122.4194", v.Get("longitude"))
	assert.False(t, v.Has("location"))
}

func TestSearchParams_Validate_Valid(t *testing.T) {
	tests := []struct {
		name   string
		params SearchParams
	}{
		{"location only", SearchParams{Location: "SF"}},
		{"coordinates only", SearchParams{Latitude: Float(1), Longitude: Float(2)}},
		{"all sorts", SearchParams{Location: "SF", SortBy: SortDistance}},
		{"max radius", SearchParams{Location: "SF", Radius: MaxRadiusMeters}},
		{"price bounds", SearchParams{Location: "SF", Price: []int{1, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.params.Validate())
		})
	}
}

func TestAutocompleteParams_Values(t *testing.T) {
	p := AutocompleteParams{Text: "cof"}

	v := p.values()

	assert.Equal(t, "cof", v.Get("text"))
	assert.False(t, v.Has("latitude"))
	assert.False(t, v.Has("locale"))
}

func TestReviewsParams_Values(t *testing.T) {
	assert.False(t, ReviewsParams{BusinessID: "x"}.values().Has("locale"))
	assert.Equal(t, "fr_FR", ReviewsParams{BusinessID: "x", Locale: "fr_FR"}.values().Get("locale"))
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "1,2,3", joinInts([]int{1, 2, 3}))
	assert.Equal(t, "2", joinInts([]int{2}))
	assert.Equal(t, "", joinInts(nil))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "37.7749", formatFloat(37.7749))
	assert.Equal(t, "-122.4194", formatFloat(-122.4194))
	assert.Equal(t, "0", formatFloat(0))
}
