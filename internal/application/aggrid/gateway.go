// Package aggrid adapts the sentinel listing service to AG Grid's
// server-side row model.
package aggrid

import (
	"context"

	"ledger-admin/internal/domain"
)

// Lister is the listing capability the gateway reads through.
type Lister interface {
	List(ctx context.Context, entity domain.EntityType, q domain.ListQuery) (*domain.PagedResult, error)
}

// Gateway serves one entity type. It never writes.
type Gateway struct {
	Listing Lister
	Entity  domain.EntityType
}

// TotalCount is the number of rows List returns for filter, sentinel included.
func (g *Gateway) TotalCount(ctx context.Context, filter domain.Filter) (int, error) {
	res, err := g.Listing.List(ctx, g.Entity, domain.ListQuery{Filter: filter})
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

// Data returns rows [startRow, endRow) of the filtered, sorted listing.
func (g *Gateway) Data(ctx context.Context, filter domain.Filter, sort domain.Sort, startRow, endRow int) ([]domain.Row, error) {
	res, err := g.window(ctx, filter, sort, startRow, endRow)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// Handle answers one server-side row model request with a single listing read.
func (g *Gateway) Handle(ctx context.Context, req Request) (*Response, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	filter, err := req.Filter()
	if err != nil {
		return nil, err
	}
	sort, err := req.Sort()
	if err != nil {
		return nil, err
	}
	res, err := g.window(ctx, filter, sort, req.StartRow, req.EndRow)
	if err != nil {
		return nil, err
	}
	return &Response{Results: res.Rows, Count: res.Total, LastRow: res.Total}, nil
}

func (g *Gateway) window(ctx context.Context, filter domain.Filter, sort domain.Sort, startRow, endRow int) (*domain.PagedResult, error) {
	if startRow < 0 || endRow < startRow {
		return nil, domain.ErrValidation("invalid row window [%d, %d)", startRow, endRow)
	}
	q := domain.ListQuery{Filter: filter, Sort: sort, Page: domain.RowWindow(startRow, endRow)}
	res, err := g.Listing.List(ctx, g.Entity, q)
	if err != nil {
		return nil, err
	}
	// An empty window still reports the total; Limit 0 would mean unbounded.
	if endRow == startRow {
		res.Rows = []domain.Row{}
	}
	return res, nil
}
