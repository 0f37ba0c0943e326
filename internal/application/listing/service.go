package listing

import (
	"context"
	"maps"
	"slices"

	"ledger-admin/internal/domain"
)

// Source describes one listable entity type.
type Source struct {
	Fetcher domain.Fetcher
	// IDField names the identifier column, used as the final sort key.
	IDField string
	// Fields lists the fields clients may filter and sort on.
	Fields []string
	// Sentinel is the placeholder row appended to every listing.
	Sentinel    domain.Row
	DefaultSort domain.Sort
}

// Service lists entities with a sentinel "unknown" row, then filters, sorts
// and pages the combined sequence.
type Service struct {
	Sources map[domain.EntityType]Source
}

// List returns one page of the entity's rows plus the sentinel, and the total
// size of the filtered result.
func (s *Service) List(ctx context.Context, entity domain.EntityType, q domain.ListQuery) (*domain.PagedResult, error) {
	src, ok := s.Sources[entity]
	if !ok {
		return nil, domain.ErrNotFound("unknown entity type %q", entity)
	}
	if err := validateQuery(src, q); err != nil {
		return nil, err
	}

	fetched, err := src.Fetcher.Fetch(ctx, q.Filter)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(fetched)+1)
	for _, r := range append(fetched, maps.Clone(src.Sentinel)) {
		if q.Filter.Match(r) {
			rows = append(rows, r)
		}
	}

	order := q.Sort
	if len(order) == 0 {
		order = src.DefaultSort
	}
	sortRows(rows, order, src.IDField)

	return &domain.PagedResult{Rows: paginate(rows, q.Page), Total: len(rows)}, nil
}

// Fields returns the filterable and sortable fields of an entity type.
func (s *Service) Fields(entity domain.EntityType) ([]string, bool) {
	src, ok := s.Sources[entity]
	if !ok {
		return nil, false
	}
	return slices.Clone(src.Fields), true
}

func validateQuery(src Source, q domain.ListQuery) error {
	for _, p := range q.Filter {
		if !slices.Contains(src.Fields, p.Field) {
			return domain.ErrValidation("unknown filter field %q", p.Field)
		}
	}
	for _, f := range q.Sort {
		if !slices.Contains(src.Fields, f.Field) {
			return domain.ErrValidation("unknown sort field %q", f.Field)
		}
	}
	if q.Page.Offset < 0 || q.Page.Limit < 0 {
		return domain.ErrValidation("page offset and size must not be negative")
	}
	return nil
}

func paginate(rows []domain.Row, p domain.Page) []domain.Row {
	if p.Offset >= len(rows) {
		return []domain.Row{}
	}
	end := len(rows)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return rows[p.Offset:end]
}
