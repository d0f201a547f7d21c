package pagination

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// datasetFetch simulates an upstream with datasetSize sequential items,
// recording the offset and limit of every call.
func datasetFetch(datasetSize int, calls *[][2]int, failAt map[int]bool) FetchFunc[int] {
	return func(ctx context.Context, offset, limit int) ([]int, int, error) {
		*calls = append(*calls, [2]int{offset, limit})
		if failAt[offset] {
			return nil, 0, errors.New("page fetch failed")
		}
		end := offset + limit
		if end > datasetSize {
			end = datasetSize
		}
		var items []int
		for i := offset; i < end; i++ {
			items = append(items, i)
		}
		return items, datasetSize, nil
	}
}

func TestCollect_SinglePage(t *testing.T) {
	var calls [][2]int
	fetch := datasetFetch(200, &calls, nil)

	items, total, err := Collect(context.Background(), DefaultConfig(), fetch, 0, 20)
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("Expected 1 fetch, got %d", len(calls))
	}
	if calls[0] != [2]int{0, 20} {
		t.Errorf("Fetch call = %v, want offset 0 limit 20", calls[0])
	}
	if len(items) != 20 {
		t.Errorf("Items = %d, want 20", len(items))
	}
	if total != 200 {
		t.Errorf("Total = %d, want 200", total)
	}
}

func TestCollect_AcrossPages(t *testing.T) {
	// 120 of 200 available: three pages at offsets 0, 50, 100 with the
	// final page truncated to 20 items.
	var calls [][2]int
	fetch := datasetFetch(200, &calls, nil)

	items, total, err := Collect(context.Background(), DefaultConfig(), fetch, 0, 120)
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}

	wantCalls := [][2]int{{0, 50}, {50, 50}, {100, 50}}
	if len(calls) != len(wantCalls) {
		t.Fatalf("Expected %d fetches, got %d: %v", len(wantCalls), len(calls), calls)
	}
	for i, want := range wantCalls {
		if calls[i] != want {
			t.Errorf("Fetch %d = %v, want %v", i, calls[i], want)
		}
	}

	if len(items) != 120 {
		t.Fatalf("Items = %d, want 120", len(items))
	}
	for i, item := range items {
		if item != i {
			t.Fatalf("Item %d = %d, expected contiguous sequence", i, item)
		}
	}
	if total != 200 {
		t.Errorf("Total = %d, want 200", total)
	}
}

func TestCollect_BoundedByUpstreamTotal(t *testing.T) {
	// 120 requested but only 80 exist: the result is bounded by the
	// upstream total, not the desired count.
	var calls [][2]int
	fetch := datasetFetch(80, &calls, nil)

	items, total, err := Collect(context.Background(), DefaultConfig(), fetch, 0, 120)
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("Expected 2 fetches, got %d: %v", len(calls), calls)
	}
	if len(items) != 80 {
		t.Errorf("Items = %d, want 80", len(items))
	}
	if total != 80 {
		t.Errorf("Total = %d, want 80", total)
	}
}

func TestCollect_SkipsFailedPage(t *testing.T) {
	// Page two fails terminally: the result carries page one's items
	// only, with no error raised.
	var calls [][2]int
	fetch := datasetFetch(200, &calls, map[int]bool{50: true})

	items, total, err := Collect(context.Background(), DefaultConfig(), fetch, 0, 100)
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("Expected 2 fetches, got %d: %v", len(calls), calls)
	}
	if len(items) != 50 {
		t.Errorf("Items = %d, want 50 (page one only)", len(items))
	}
	if total != 200 {
		t.Errorf("Total = %d, want 200", total)
	}
}

func TestCollect_ContinuesAfterFailedPage(t *testing.T) {
	var calls [][2]int
	fetch := datasetFetch(200, &calls, map[int]bool{50: true})

	items, _, err := Collect(context.Background(), DefaultConfig(), fetch, 0, 150)
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}

	wantCalls := [][2]int{{0, 50}, {50, 50}, {100, 50}}
	if len(calls) != len(wantCalls) {
		t.Fatalf("Expected %d fetches, got %d: %v", len(wantCalls), len(calls), calls)
	}
	// Pages one and three survive, page two is a gap.
	if len(items) != 100 {
		t.Errorf("Items = %d, want 100", len(items))
	}
	if items[50] != 100 {
		t.Errorf("Item after gap = %d, want 100", items[50])
	}
}

func TestCollect_FirstPageFailureAborts(t *testing.T) {
	var calls [][2]int
	fetch := datasetFetch(200, &calls, map[int]bool{0: true})

	_, _, err := Collect(context.Background(), DefaultConfig(), fetch, 0, 120)
	if err == nil {
		t.Fatal("Expected error for failed first page, got nil")
	}
	if len(calls) != 1 {
		t.Errorf("Expected 1 fetch, got %d", len(calls))
	}
}

func TestCollect_ExplicitOffset(t *testing.T) {
	var calls [][2]int
	fetch := datasetFetch(200, &calls, nil)

	items, _, err := Collect(context.Background(), DefaultConfig(), fetch, 10, 120)
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}

	wantCalls := [][2]int{{10, 50}, {60, 50}, {110, 50}}
	if len(calls) != len(wantCalls) {
		t.Fatalf("Expected %d fetches, got %d: %v", len(wantCalls), len(calls), calls)
	}
	for i, want := range wantCalls {
		if calls[i] != want {
			t.Errorf("Fetch %d = %v, want %v", i, calls[i], want)
		}
	}

	// Offsets 10..119: the final page is truncated at the 120 boundary.
	if len(items) != 110 {
		t.Errorf("Items = %d, want 110", len(items))
	}
	if items[0] != 10 {
		t.Errorf("First item = %d, want 10", items[0])
	}
	if items[len(items)-1] != 119 {
		t.Errorf("Last item = %d, want 119", items[len(items)-1])
	}
}

func TestCollect_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	callCount := 0
	fetch := func(fctx context.Context, offset, limit int) ([]int, int, error) {
		callCount++
		cancel()
		items := make([]int, limit)
		return items, 500, nil
	}

	_, _, err := Collect(ctx, DefaultConfig(), fetch, 0, 200)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 fetch before cancellation, got %d", callCount)
	}
}

func TestCollect_PageSizeDefaulting(t *testing.T) {
	var calls [][2]int
	fetch := datasetFetch(200, &calls, nil)

	cfg := Config{} // zero page size falls back to the upstream ceiling
	_, _, err := Collect(context.Background(), cfg, fetch, 0, 60)
	if err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}
	if calls[0][1] != DefaultPageSize {
		t.Errorf("First fetch limit = %d, want %d", calls[0][1], DefaultPageSize)
	}
}

func ExampleCollect() {
	fetch := func(ctx context.Context, offset, limit int) ([]string, int, error) {
		page := make([]string, 0, limit)
		for i := offset; i < offset+limit && i < 75; i++ {
			page = append(page, fmt.Sprintf("item-%d", i))
		}
		return page, 75, nil
	}

	items, total, _ := Collect(context.Background(), DefaultConfig(), fetch, 0, 60)
	fmt.Println(len(items), total)
	// Output: 60 75
}
