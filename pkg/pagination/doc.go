// Package pagination stitches offset-paged Fusion results into a
// single result set.
//
// The upstream caps every response at 50 items, so a caller asking for
// more than one page gets the first page fetched eagerly (which also
// reports the upstream total), then subsequent pages at increasing
// offsets until either the desired count or the upstream total is
// reached. Fetching is strictly sequential: each page depends on the
// running offset and the total learned from page one.
//
// Example usage:
//
//	items, total, err := pagination.Collect(ctx, pagination.DefaultConfig(), fetch, 0, 120)
//
// A page that fails terminally mid-run is logged and skipped; its
// items are simply absent from the result. Only a first-page failure
// aborts the whole collection, because without it the total is
// unknown.
package pagination
