package fusion

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/openlocal/fusion-go/pkg/pagination"
)

// Endpoint paths fixed by the upstream contract.
const (
	autocompletePath      = "/v3/autocomplete"
	businessPath          = "/v3/businesses/%s"
	reviewsPath           = "/v3/businesses/%s/reviews"
	searchPath            = "/v3/businesses/search"
	phoneSearchPath       = "/v3/businesses/search/phone"
	transactionSearchPath = "/v3/transactions/%s/search"
)

// Autocomplete returns suggestions for search keywords, businesses and
// categories based on the input text.
func (c *Client) Autocomplete(ctx context.Context, params AutocompleteParams) (*AutocompleteResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("autocomplete params: %w", err)
	}

	var out AutocompleteResponse
	if err := c.core.Get(ctx, autocompletePath, params.values(), c.header, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BusinessDetails returns the detail information of a business.
// The upstream does not return businesses without any reviews.
func (c *Client) BusinessDetails(ctx context.Context, businessID string) (*BusinessDetails, error) {
	if businessID == "" {
		return nil, fmt.Errorf("business ID is required")
	}

	endpoint := fmt.Sprintf(businessPath, url.PathEscape(businessID))

	var out BusinessDetails
	if err := c.core.Get(ctx, endpoint, nil, c.header, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BusinessReviews returns up to three reviews of a business.
func (c *Client) BusinessReviews(ctx context.Context, params ReviewsParams) (*ReviewsResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("reviews params: %w", err)
	}

	endpoint := fmt.Sprintf(reviewsPath, url.PathEscape(params.BusinessID))

	var out ReviewsResponse
	if err := c.core.Get(ctx, endpoint, params.values(), c.header, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search returns up to 1000 businesses matching the search criteria.
// Limits above the upstream's 50-item page ceiling are assembled
// sequentially across multiple requests, bounded by the limit and the
// upstream-reported total; a page lost to a terminal fetch failure is
// skipped rather than failing the whole search.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("search params: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	// The first fetched page keeps its envelope (region, total); the
	// collector replaces its business list with the stitched sequence.
	var first *SearchResponse
	fetch := func(ctx context.Context, offset, pageLimit int) ([]Business, int, error) {
		var page SearchResponse
		if err := c.core.Get(ctx, searchPath, params.values(pageLimit, offset), c.header, &page); err != nil {
			return nil, 0, err
		}
		if first == nil {
			first = &page
		}
		return page.Businesses, page.Total, nil
	}

	cfg := pagination.DefaultConfig()
	cfg.Logger = c.logger

	items, _, err := pagination.Collect(ctx, cfg, fetch, params.Offset, limit)
	if err != nil {
		return nil, err
	}

	result := *first
	result.Businesses = items
	return &result, nil
}

// PhoneSearch returns businesses matching the given phone number. The
// number must start with + and include the country code, like
// +14159083801.
func (c *Client) PhoneSearch(ctx context.Context, phone string) (*PhoneSearchResponse, error) {
	if !strings.HasPrefix(phone, "+") {
		return nil, fmt.Errorf("phone must start with + and include the country code")
	}

	query := url.Values{}
	query.Set("phone", phone)

	var out PhoneSearchResponse
	if err := c.core.Get(ctx, phoneSearchPath, query, c.header, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransactionSearch returns businesses supporting the given
// transaction type at the given location.
func (c *Client) TransactionSearch(ctx context.Context, params TransactionSearchParams) (*TransactionSearchResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("transaction search params: %w", err)
	}

	transactionType := params.TransactionType
	if transactionType == "" {
		transactionType = TransactionTypeDelivery
	}
	endpoint := fmt.Sprintf(transactionSearchPath, url.PathEscape(transactionType))

	var out TransactionSearchResponse
	if err := c.core.Get(ctx, endpoint, params.values(), c.header, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
