package fusion

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Category classifies a business, e.g. {"bars", "Bars"}.
type Category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

// Location is a business street address.
type Location struct {
	Address1       string   `json:"address1"`
	Address2       string   `json:"address2"`
	Address3       string   `json:"address3"`
	City           string   `json:"city"`
	ZipCode        string   `json:"zip_code"`
	Country        string   `json:"country"`
	State          string   `json:"state"`
	DisplayAddress []string `json:"display_address"`
	CrossStreets   string   `json:"cross_streets,omitempty"`
}

// Business is a single search result.
type Business struct {
	ID           string      `json:"id"`
	Alias        string      `json:"alias"`
	Name         string      `json:"name"`
	ImageURL     string      `json:"image_url"`
	IsClosed     bool        `json:"is_closed"`
	URL          string      `json:"url"`
	ReviewCount  int         `json:"review_count"`
	Categories   []Category  `json:"categories"`
	Rating       float64     `json:"rating"`
	Coordinates  Coordinates `json:"coordinates"`
	Transactions []string    `json:"transactions"`
	Price        string      `json:"price"`
	Location     Location    `json:"location"`
	Phone        string      `json:"phone"`
	DisplayPhone string      `json:"display_phone"`
	Distance     float64     `json:"distance,omitempty"`
}

// Region is the geographic area covered by a search.
type Region struct {
	Center Coordinates `json:"center"`
}

// SearchResponse is the body of a business search. For paginated
// searches, Businesses holds the stitched result set while Total and
// Region come from the first page.
type SearchResponse struct {
	Total      int        `json:"total"`
	Region     Region     `json:"region"`
	Businesses []Business `json:"businesses"`
}

// OpenHours is one opening interval of a business day.
type OpenHours struct {
	IsOvernight bool   `json:"is_overnight"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Day         int    `json:"day"`
}

// Hours is the weekly opening schedule of a business.
type Hours struct {
	Open      []OpenHours `json:"open"`
	HoursType string      `json:"hours_type"`
	IsOpenNow bool        `json:"is_open_now"`
}

// BusinessDetails is the detail view of a business, a superset of the
// search result fields.
type BusinessDetails struct {
	Business
	IsClaimed bool     `json:"is_claimed"`
	Photos    []string `json:"photos"`
	Hours     []Hours  `json:"hours"`
}

// User is the author of a review.
type User struct {
	ID         string `json:"id"`
	ProfileURL string `json:"profile_url"`
	ImageURL   string `json:"image_url"`
	Name       string `json:"name"`
}

// Review is a single business review.
type Review struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	Text        string  `json:"text"`
	Rating      float64 `json:"rating"`
	TimeCreated string  `json:"time_created"`
	User        User    `json:"user"`
}

// ReviewsResponse holds the up-to-three reviews of a business.
type ReviewsResponse struct {
	Total             int      `json:"total"`
	PossibleLanguages []string `json:"possible_languages"`
	Reviews           []Review `json:"reviews"`
}

// Term is a suggested search term.
type Term struct {
	Text string `json:"text"`
}

// BusinessSuggestion is an autocomplete business hit.
type BusinessSuggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AutocompleteResponse holds suggestions for an input text.
type AutocompleteResponse struct {
	Terms      []Term               `json:"terms"`
	Businesses []BusinessSuggestion `json:"businesses"`
	Categories []Category           `json:"categories"`
}

// PhoneSearchResponse holds businesses matching a phone number. More
// than one business can share a number (e.g. chain stores behind one
// +1 800 line).
type PhoneSearchResponse struct {
	Total      int        `json:"total"`
	Businesses []Business `json:"businesses"`
}

// TransactionSearchResponse holds businesses supporting a transaction type.
type TransactionSearchResponse struct {
	Total      int        `json:"total"`
	Businesses []Business `json:"businesses"`
}
