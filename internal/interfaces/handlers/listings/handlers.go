package listings

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"ledger-admin/internal/application/aggrid"
	"ledger-admin/internal/application/listing"
	"ledger-admin/internal/domain"
	"ledger-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Query parameters with a meaning of their own; every other parameter is an
// equality filter on the field of the same name.
const (
	paramOrdering = "ordering"
	paramPage     = "page"
	paramPageSize = "page_size"
)

type Handlers struct {
	Service         *listing.Service
	DefaultPageSize int
	MaxPageSize     int
}

// List serves GET /api/v1/<entity>s:
// ?account_name=V111&ordering=-account_name,account_id&page=2&page_size=50
func (h *Handlers) List(entity domain.EntityType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := h.parseQuery(c)
		if err != nil {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		result, err := h.Service.List(c.UserContext(), entity, q)
		if err != nil {
			return err
		}
		return response.Success(c, "Listing fetched successfully", result, response.PageMeta{
			Page:     q.Page.Offset/q.Page.Limit + 1,
			PageSize: q.Page.Limit,
			Count:    result.Total,
		})
	}
}

// AgGrid serves POST /api/v1/<entity>s/ag-grid with the grid's server-side
// row model request as body.
func (h *Handlers) AgGrid(entity domain.EntityType) fiber.Handler {
	gw := &aggrid.Gateway{Listing: h.Service, Entity: entity}
	return func(c *fiber.Ctx) error {
		var req aggrid.Request
		if err := c.BodyParser(&req); err != nil {
			return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
		}
		resp, err := gw.Handle(c.UserContext(), req)
		if err != nil {
			return err
		}
		return response.Success(c, "Rows fetched successfully", resp, nil)
	}
}

func (h *Handlers) parseQuery(c *fiber.Ctx) (domain.ListQuery, error) {
	params := c.Queries()

	var q domain.ListQuery
	for _, key := range slices.Sorted(maps.Keys(params)) {
		switch key {
		case paramOrdering, paramPage, paramPageSize:
			continue
		}
		q.Filter = append(q.Filter, domain.Predicate{Field: key, Op: domain.OpEquals, Value: params[key]})
	}

	for _, f := range strings.Split(params[paramOrdering], ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if name, ok := strings.CutPrefix(f, "-"); ok {
			q.Sort = append(q.Sort, domain.SortField{Field: name, Desc: true})
		} else {
			q.Sort = append(q.Sort, domain.SortField{Field: f})
		}
	}

	page, err := positiveInt(params[paramPage], 1)
	if err != nil {
		return q, domain.ErrValidation("invalid page %q", params[paramPage])
	}
	size, err := positiveInt(params[paramPageSize], h.defaultPageSize())
	if err != nil {
		return q, domain.ErrValidation("invalid page_size %q", params[paramPageSize])
	}
	if h.MaxPageSize > 0 && size > h.MaxPageSize {
		size = h.MaxPageSize
	}
	q.Page = domain.Page{Offset: (page - 1) * size, Limit: size}
	return q, nil
}

func (h *Handlers) defaultPageSize() int {
	if h.DefaultPageSize < 1 {
		return 100
	}
	return h.DefaultPageSize
}

func positiveInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
