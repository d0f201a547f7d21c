package fusion

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Sort orders accepted by the search endpoint.
const (
	SortBestMatch   = "best_match"
	SortRating      = "rating"
	SortReviewCount = "review_count"
	SortDistance    = "distance"
)

// Transaction types accepted by the transaction search endpoint.
// The upstream currently only supports food delivery in the US.
const TransactionTypeDelivery = "delivery"

// MaxRadiusMeters is the upstream cap on the search radius (25 miles).
const MaxRadiusMeters = 40000

// DefaultSearchLimit is the result count used when SearchParams.Limit
// is unset.
const DefaultSearchLimit = 20

// SearchParams describes a business search. Either Location or the
// Latitude/Longitude pair is required; everything else is optional.
type SearchParams struct {
	// Term is the free-text search term, e.g. "food" or a business
	// name like "Starbucks". Empty searches everything.
	Term string

	// Location is "address, neighborhood, city, state or zip, optional
	// country". Takes precedence over Latitude/Longitude when set.
	Location string

	// Latitude/Longitude of the point to search near. Required
	// together when Location is empty.
	Latitude  *float64
	Longitude *float64

	// Radius is the search radius in meters, at most MaxRadiusMeters.
	Radius int

	// Categories filters by category aliases, e.g. {"bars", "french"}.
	Categories []string

	// Locale selects the language of the returned business information.
	Locale string

	// Limit is the total number of results wanted. Values above the
	// 50-item page ceiling are assembled across multiple requests.
	// Defaults to DefaultSearchLimit.
	Limit int

	// Offset of the first result to return.
	Offset int

	// SortBy is one of the Sort* constants. Defaults to SortBestMatch.
	SortBy string

	// Price filters by pricing levels 1 ($) through 4 ($$$$).
	Price []int

	// OpenNow restricts results to businesses open now. Cannot be
	// combined with OpenAt.
	OpenNow bool

	// OpenAt restricts results to businesses open at the given Unix
	// time (in the search location's timezone). Cannot be combined
	// with OpenNow.
	OpenAt int64

	// Attributes are additional filters such as "hot_and_new" or
	// "deals". A business must satisfy all of them.
	Attributes []string
}

// Validate checks the parameter combination before it is serialized
// for the wire.
func (p SearchParams) Validate() error {
	if p.Location == "" && (p.Latitude == nil || p.Longitude == nil) {
		return fmt.Errorf("either location or latitude+longitude is required")
	}
	if p.Radius < 0 || p.Radius > MaxRadiusMeters {
		return fmt.Errorf("radius must be between 0 and %d meters (got %d)", MaxRadiusMeters, p.Radius)
	}
	if p.Limit < 0 {
		return fmt.Errorf("limit must be >= 0 (got %d)", p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("offset must be >= 0 (got %d)", p.Offset)
	}
	switch p.SortBy {
	case "", SortBestMatch, SortRating, SortReviewCount, SortDistance:
	default:
		return fmt.Errorf("invalid sort_by %q", p.SortBy)
	}
	for _, level := range p.Price {
		if level < 1 || level > 4 {
			return fmt.Errorf("price level must be between 1 and 4 (got %d)", level)
		}
	}
	if p.OpenNow && p.OpenAt != 0 {
		return fmt.Errorf("open_now and open_at cannot be used together")
	}
	return nil
}

// values serializes the params for one page request. The paginator
// owns limit and offset, so they are passed in rather than taken from
// the struct.
func (p SearchParams) values(limit, offset int) url.Values {
	v := url.Values{}

	if p.Term != "" {
		v.Set("term", p.Term)
	}
	v.Set("limit", strconv.Itoa(limit))

	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = SortBestMatch
	}
	v.Set("sort_by", sortBy)

	if p.Location != "" {
		v.Set("location", p.Location)
	} else {
		v.Set("latitude", formatFloat(*p.Latitude))
		v.Set("longitude", formatFloat(*p.Longitude))
	}
	if p.Radius > 0 {
		v.Set("radius", strconv.Itoa(p.Radius))
	}
	if len(p.Categories) > 0 {
		v.Set("categories", strings.Join(p.Categories, ","))
	}
	if p.Locale != "" {
		v.Set("locale", p.Locale)
	}
	if offset > 0 {
		v.Set("offset", strconv.Itoa(offset))
	}
	if len(p.Price) > 0 {
		v.Set("price", joinInts(p.Price))
	}
	if p.OpenNow {
		v.Set("open_now", "true")
	} else if p.OpenAt != 0 {
		v.Set("open_at", strconv.FormatInt(p.OpenAt, 10))
	}
	if len(p.Attributes) > 0 {
		v.Set("attributes", strings.Join(p.Attributes, ","))
	}

	return v
}

// AutocompleteParams describes an autocomplete query.
type AutocompleteParams struct {
	// Text to return suggestions for. Required.
	Text string

	// Latitude/Longitude enable business suggestions near the point.
	// Required together when either is set.
	Latitude  *float64
	Longitude *float64

	// Locale selects the language of the returned suggestions.
	Locale string
}

// Validate checks the parameter combination.
func (p AutocompleteParams) Validate() error {
	if p.Text == "" {
		return fmt.Errorf("text is required")
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be provided together")
	}
	return nil
}

func (p AutocompleteParams) values() url.Values {
	v := url.Values{}
	v.Set("text", p.Text)
	if p.Latitude != nil && p.Longitude != nil {
		v.Set("latitude", formatFloat(*p.Latitude))
		v.Set("longitude", formatFloat(*p.Longitude))
	}
	if p.Locale != "" {
		v.Set("locale", p.Locale)
	}
	return v
}

// ReviewsParams describes a business reviews lookup.
type ReviewsParams struct {
	// BusinessID as returned by the "id" field of search results. Required.
	BusinessID string

	// Locale selects the language of the returned reviews.
	Locale string
}

// Validate checks the parameter combination.
func (p ReviewsParams) Validate() error {
	if p.BusinessID == "" {
		return fmt.Errorf("business ID is required")
	}
	return nil
}

func (p ReviewsParams) values() url.Values {
	v := url.Values{}
	if p.Locale != "" {
		v.Set("locale", p.Locale)
	}
	return v
}

// TransactionSearchParams describes a transaction-type search. Either
// Location or the Latitude/Longitude pair is required.
type TransactionSearchParams struct {
	// TransactionType defaults to TransactionTypeDelivery.
	TransactionType string

	// Location is the delivery address. Takes precedence over
	// Latitude/Longitude when set.
	Location string

	// Latitude/Longitude of the delivery point. Required together
	// when Location is empty.
	Latitude  *float64
	Longitude *float64
}

// Validate checks the parameter combination.
func (p TransactionSearchParams) Validate() error {
	if p.Location == "" && (p.Latitude == nil || p.Longitude == nil) {
		return fmt.Errorf("either location or latitude+longitude is required")
	}
	return nil
}

func (p TransactionSearchParams) values() url.Values {
	v := url.Values{}
	if p.Location != "" {
		v.Set("location", p.Location)
	} else {
		v.Set("latitude", formatFloat(*p.Latitude))
		v.Set("longitude", formatFloat(*p.Longitude))
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Float returns a pointer to f, for the optional coordinate fields.
func Float(f float64) *float64 {
	return &f
}
