package aggrid

import (
	"maps"
	"slices"
	"strings"

	"ledger-admin/internal/domain"
)

// ColumnVO is a column reference in a server-side row model request.
type ColumnVO struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Field       string `json:"field"`
	AggFunc     string `json:"aggFunc,omitempty"`
}

// Request is the body AG Grid's server-side row model posts for each block.
type Request struct {
	StartRow     int                        `json:"startRow"`
	EndRow       int                        `json:"endRow"`
	RowGroupCols []ColumnVO                 `json:"rowGroupCols"`
	ValueCols    []ColumnVO                 `json:"valueCols"`
	PivotCols    []ColumnVO                 `json:"pivotCols"`
	PivotMode    bool                       `json:"pivotMode"`
	GroupKeys    []string                   `json:"groupKeys"`
	FilterModel  map[string]FilterModelItem `json:"filterModel"`
	SortModel    []SortModelItem            `json:"sortModel"`
}

// FilterModelItem is one column filter. Combined filters carry Operator and
// either Conditions or the older Condition1/Condition2 pair.
type FilterModelItem struct {
	FilterType string            `json:"filterType"`
	Type       string            `json:"type,omitempty"`
	Filter     interface{}       `json:"filter,omitempty"`
	Operator   string            `json:"operator,omitempty"`
	Conditions []FilterModelItem `json:"conditions,omitempty"`
	Condition1 *FilterModelItem  `json:"condition1,omitempty"`
	Condition2 *FilterModelItem  `json:"condition2,omitempty"`
}

type SortModelItem struct {
	ColID string `json:"colId"`
	Sort  string `json:"sort"`
}

// Response is what the grid's getRows callback expects back.
type Response struct {
	Results []domain.Row `json:"results"`
	Count   int          `json:"count"`
	LastRow int          `json:"lastRow"`
}

func (r Request) validate() error {
	if len(r.RowGroupCols) > 0 || len(r.GroupKeys) > 0 {
		return domain.ErrValidation("row grouping is not supported")
	}
	if r.PivotMode {
		return domain.ErrValidation("pivot mode is not supported")
	}
	if r.StartRow < 0 || r.EndRow < r.StartRow {
		return domain.ErrValidation("invalid row window [%d, %d)", r.StartRow, r.EndRow)
	}
	return nil
}

// Filter flattens the filter model into a conjunction of predicates.
func (r Request) Filter() (domain.Filter, error) {
	var filter domain.Filter
	for _, field := range slices.Sorted(maps.Keys(r.FilterModel)) {
		preds, err := r.FilterModel[field].predicates(field)
		if err != nil {
			return nil, err
		}
		filter = append(filter, preds...)
	}
	return filter, nil
}

func (m FilterModelItem) predicates(field string) (domain.Filter, error) {
	switch m.FilterType {
	case "text", "number", "":
	default:
		return nil, domain.ErrValidation("unsupported filter type %q on %q", m.FilterType, field)
	}

	conds := m.Conditions
	if len(conds) == 0 && m.Condition1 != nil {
		conds = []FilterModelItem{*m.Condition1}
		if m.Condition2 != nil {
			conds = append(conds, *m.Condition2)
		}
	}
	if len(conds) > 0 {
		if !strings.EqualFold(m.Operator, "AND") && m.Operator != "" {
			return nil, domain.ErrValidation("%s filter combination on %q is not supported", m.Operator, field)
		}
		var out domain.Filter
		for _, c := range conds {
			if c.FilterType == "" {
				c.FilterType = m.FilterType
			}
			preds, err := c.predicates(field)
			if err != nil {
				return nil, err
			}
			out = append(out, preds...)
		}
		return out, nil
	}

	op, err := domain.ParseFilterOp(m.Type)
	if err != nil {
		return nil, err
	}
	return domain.Filter{{Field: field, Op: op, Value: domain.FormatValue(m.Filter)}}, nil
}

// Sort converts the sort model, keeping its priority order.
func (r Request) Sort() (domain.Sort, error) {
	sort := make(domain.Sort, 0, len(r.SortModel))
	for _, s := range r.SortModel {
		switch s.Sort {
		case "asc", "":
			sort = append(sort, domain.SortField{Field: s.ColID})
		case "desc":
			sort = append(sort, domain.SortField{Field: s.ColID, Desc: true})
		default:
			return nil, domain.ErrValidation("invalid sort direction %q on %q", s.Sort, s.ColID)
		}
	}
	return sort, nil
}
