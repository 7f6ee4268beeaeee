package erp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor serves pre-built pages in order, recording the
// variables of each call.
type fakeExecutor struct {
	pages []string
	calls []map[string]any
	err   error
}

func (f *fakeExecutor) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	f.calls = append(f.calls, variables)
	if f.err != nil {
		return nil, f.err
	}
	idx := len(f.calls) - 1
	if idx >= len(f.pages) {
		return nil, fmt.Errorf("unexpected call %d", idx)
	}
	return json.RawMessage(f.pages[idx]), nil
}

// buildPage renders a vendors connection page with n sequential nodes
// starting at offset.
func buildPage(rootField string, offset, n int, hasNext bool, endCursor string) string {
	edges := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			edges += ","
		}
		edges += fmt.Sprintf(`{"node":{"vendorId":"V%d"},"cursor":"c%d"}`, offset+i, offset+i)
	}
	return fmt.Sprintf(`{"%s":{"edges":[%s],"pageInfo":{"hasNextPage":%t,"endCursor":"%s"}}}`,
		rootField, edges, hasNext, endCursor)
}

func TestPagerFetchAll_ThreePages(t *testing.T) {
	exec := &fakeExecutor{pages: []string{
		buildPage("vendors", 0, 100, true, "cursor-1"),
		buildPage("vendors", 100, 100, true, "cursor-2"),
		buildPage("vendors", 200, 37, false, "cursor-3"),
	}}

	pager := NewPager(exec, VendorsQuery, VendorsField, 100, 1000)
	nodes, err := pager.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, nodes, 237)
	require.Len(t, exec.calls, 3)

	// First call carries no cursor, subsequent calls resume from the
	// previous page's end cursor.
	_, hasAfter := exec.calls[0]["after"]
	assert.False(t, hasAfter)
	assert.Equal(t, "cursor-1", exec.calls[1]["after"])
	assert.Equal(t, "cursor-2", exec.calls[2]["after"])
	for _, call := range exec.calls {
		assert.Equal(t, 100, call["first"])
	}

	// Order is preserved across page boundaries.
	var first, last struct {
		VendorID string `json:"vendorId"`
	}
	require.NoError(t, json.Unmarshal(nodes[0], &first))
	require.NoError(t, json.Unmarshal(nodes[236], &last))
	assert.Equal(t, "V0", first.VendorID)
	assert.Equal(t, "V236", last.VendorID)
}

func TestPagerFetchAll_StopsAtCap(t *testing.T) {
	exec := &fakeExecutor{pages: []string{
		buildPage("vendors", 0, 100, true, "cursor-1"),
		buildPage("vendors", 100, 100, true, "cursor-2"),
		buildPage("vendors", 200, 100, true, "cursor-3"),
	}}

	pager := NewPager(exec, VendorsQuery, VendorsField, 100, 200)
	nodes, err := pager.FetchAll(context.Background())
	require.NoError(t, err)

	// The cap stops the loop once reached; it does not truncate the
	// already-fetched page.
	assert.Len(t, nodes, 200)
	assert.Len(t, exec.calls, 2)
	assert.False(t, pager.HasMore())
}

func TestPagerFetchAll_EmptyPageEndsLoop(t *testing.T) {
	exec := &fakeExecutor{pages: []string{
		buildPage("vendors", 0, 50, true, "cursor-1"),
		buildPage("vendors", 50, 0, true, "cursor-1"),
	}}

	pager := NewPager(exec, VendorsQuery, VendorsField, 100, 1000)
	nodes, err := pager.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, nodes, 50)
	assert.Len(t, exec.calls, 2)
}

func TestPagerNext_MissingRootField(t *testing.T) {
	exec := &fakeExecutor{pages: []string{`{"other":{"edges":[]}}`}}

	pager := NewPager(exec, VendorsQuery, VendorsField, 100, 1000)
	_, err := pager.Next(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"vendors"`)
}

func TestPagerFetchAll_PropagatesClientError(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("connection refused")}

	pager := NewPager(exec, VendorsQuery, VendorsField, 100, 1000)
	_, err := pager.FetchAll(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestPagerWithFilters(t *testing.T) {
	exec := &fakeExecutor{pages: []string{
		buildPage("purchaseOrders", 0, 1, false, ""),
	}}

	pager := NewPager(exec, PurchaseOrdersQuery, PurchaseOrdersField, 100, 5000,
		WithFilters(map[string]any{"fromDate": "6/1/2023", "toDate": "6/1/2025"}))
	_, err := pager.FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, "6/1/2023", exec.calls[0]["fromDate"])
	assert.Equal(t, "6/1/2025", exec.calls[0]["toDate"])
}

func TestPagerReset(t *testing.T) {
	exec := &fakeExecutor{pages: []string{
		buildPage("vendors", 0, 10, false, "cursor-1"),
		buildPage("vendors", 0, 10, false, "cursor-1"),
	}}

	pager := NewPager(exec, VendorsQuery, VendorsField, 100, 1000)
	first, err := pager.FetchAll(context.Background())
	require.NoError(t, err)
	assert.False(t, pager.HasMore())

	pager.Reset()
	assert.True(t, pager.HasMore())
	second, err := pager.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))

	// The restarted sequence begins without a cursor.
	_, hasAfter := exec.calls[1]["after"]
	assert.False(t, hasAfter)
}
