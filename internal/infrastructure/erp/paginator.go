package erp

import (
	"context"
	"encoding/json"
	"fmt"
)

// Executor abstracts the GraphQL client for the paginator, so the
// cursor loop can be driven against a fake in tests.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
}

// connection mirrors the relay-style connection shape every ERP graph
// uses: edges of raw nodes plus page info.
type connection struct {
	Edges []struct {
		Node   json.RawMessage `json:"node"`
		Cursor string          `json:"cursor"`
	} `json:"edges"`
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
}

// Pager follows one object graph's cursor chain. Each Next call
// fetches a single page; FetchAll accumulates until the graph is
// exhausted or the safety cap is reached. The cap bounds worst-case
// run time and memory against an API with no guaranteed termination
// speed.
type Pager struct {
	client    Executor
	query     string
	rootField string
	pageSize  int
	maxNodes  int
	filters   map[string]any

	cursor  string
	hasMore bool
	fetched int
	started bool
}

// PagerOption configures a Pager
type PagerOption func(*Pager)

// WithFilters adds extra query variables, e.g. the purchase-order date range.
func WithFilters(filters map[string]any) PagerOption {
	return func(p *Pager) {
		p.filters = filters
	}
}

// NewPager creates a pager over one connection. maxNodes is the
// per-type safety cap and must be positive.
func NewPager(client Executor, query, rootField string, pageSize, maxNodes int, opts ...PagerOption) *Pager {
	p := &Pager{
		client:    client,
		query:     query,
		rootField: rootField,
		pageSize:  pageSize,
		maxNodes:  maxNodes,
		hasMore:   true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset rewinds the pager to the first page, making the sequence
// restartable.
func (p *Pager) Reset() {
	p.cursor = ""
	p.hasMore = true
	p.fetched = 0
	p.started = false
}

// HasMore reports whether another page may be available. It accounts
// for both the upstream hasNextPage flag and the safety cap.
func (p *Pager) HasMore() bool {
	return p.hasMore && p.fetched < p.maxNodes
}

// Next fetches one page of raw nodes and advances the cursor.
func (p *Pager) Next(ctx context.Context) ([]json.RawMessage, error) {
	variables := map[string]any{"first": p.pageSize}
	if p.started && p.cursor != "" {
		variables["after"] = p.cursor
	}
	for k, v := range p.filters {
		variables[k] = v
	}

	data, err := p.client.Execute(ctx, p.query, variables)
	if err != nil {
		return nil, err
	}

	var payload map[string]connection
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("erp: failed to parse %s page: %w", p.rootField, err)
	}
	conn, ok := payload[p.rootField]
	if !ok {
		return nil, fmt.Errorf("erp: response has no %q connection", p.rootField)
	}

	nodes := make([]json.RawMessage, 0, len(conn.Edges))
	for _, edge := range conn.Edges {
		nodes = append(nodes, edge.Node)
	}

	p.started = true
	p.cursor = conn.PageInfo.EndCursor
	p.hasMore = conn.PageInfo.HasNextPage
	p.fetched += len(nodes)

	return nodes, nil
}

// FetchAll follows the cursor chain from the current position and
// returns the accumulated ordered raw-node list. A mid-pagination
// failure aborts this graph only; independent pagers are unaffected.
func (p *Pager) FetchAll(ctx context.Context) ([]json.RawMessage, error) {
	var all []json.RawMessage
	for p.HasMore() {
		nodes, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, nodes...)
		if len(nodes) == 0 {
			// An empty page ends the loop even when hasNextPage is set.
			break
		}
	}
	return all, nil
}
