package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EntityType names a listable collection.
type EntityType string

const (
	EntityFoboAccount EntityType = "fobo-account"
	EntityBalanceType EntityType = "balance-type"
)

// The sentinel row stands for records that map to no real entity. It is
// computed at read time and never stored.
const (
	SentinelID    int64 = -1
	SentinelLabel       = "__unknown__"
)

// Row is one listing entry: field name to a comparable, filterable value.
type Row map[string]interface{}

// FilterOp is a predicate type, named after the AG Grid text filter options.
type FilterOp string

const (
	OpEquals      FilterOp = "equals"
	OpNotEqual    FilterOp = "notEqual"
	OpContains    FilterOp = "contains"
	OpNotContains FilterOp = "notContains"
	OpStartsWith  FilterOp = "startsWith"
	OpEndsWith    FilterOp = "endsWith"
	OpBlank       FilterOp = "blank"
	OpNotBlank    FilterOp = "notBlank"
)

// ParseFilterOp validates an operator name.
func ParseFilterOp(s string) (FilterOp, error) {
	switch op := FilterOp(s); op {
	case OpEquals, OpNotEqual, OpContains, OpNotContains, OpStartsWith, OpEndsWith, OpBlank, OpNotBlank:
		return op, nil
	}
	return "", ErrValidation("unsupported filter type %q", s)
}

// Predicate tests one field. Equality is exact; the substring operators
// ignore case.
type Predicate struct {
	Field string
	Op    FilterOp
	Value string
}

// Match applies the predicate to r. A missing or nil field reads as "".
func (p Predicate) Match(r Row) bool {
	v := FormatValue(r[p.Field])
	switch p.Op {
	case OpEquals:
		return v == p.Value
	case OpNotEqual:
		return v != p.Value
	case OpContains:
		return strings.Contains(strings.ToLower(v), strings.ToLower(p.Value))
	case OpNotContains:
		return !strings.Contains(strings.ToLower(v), strings.ToLower(p.Value))
	case OpStartsWith:
		return strings.HasPrefix(strings.ToLower(v), strings.ToLower(p.Value))
	case OpEndsWith:
		return strings.HasSuffix(strings.ToLower(v), strings.ToLower(p.Value))
	case OpBlank:
		return v == ""
	case OpNotBlank:
		return v != ""
	}
	return false
}

// Filter is a conjunction of predicates. The empty filter matches everything.
type Filter []Predicate

func (f Filter) Match(r Row) bool {
	for _, p := range f {
		if !p.Match(r) {
			return false
		}
	}
	return true
}

type SortField struct {
	Field string
	Desc  bool
}

type Sort []SortField

// Page selects a window of a sorted result. Limit 0 means unbounded.
type Page struct {
	Offset int
	Limit  int
}

// RowWindow converts a [startRow, endRow) grid window into a Page.
func RowWindow(startRow, endRow int) Page {
	return Page{Offset: startRow, Limit: endRow - startRow}
}

type ListQuery struct {
	Filter Filter
	Sort   Sort
	Page   Page
}

// PagedResult holds one page and the size of the whole filtered result.
type PagedResult struct {
	Rows  []Row `json:"results"`
	Total int   `json:"count"`
}

// Fetcher returns the real rows of one entity type. It may use filter to
// narrow the read; callers re-apply the filter, so returning extra rows is safe.
type Fetcher interface {
	Fetch(ctx context.Context, filter Filter) ([]Row, error)
}

// FormatValue renders a row value the way filters compare it.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
