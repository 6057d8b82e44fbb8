package echoapi

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nebras-project/nebras-dashboard/core"
)

const (
	orderingParam    = "ordering"
	pageParam        = "page"
	pageSizeParam    = "page_size"
	perPageParam     = "per_page"
	totalCountHeader = "X-Total-Count"

	DefaultPageSize = 25
	MaxPageSize     = 200
)

// bindOrdering parses "field,-field" keeping only allowed fields.
func bindOrdering(values url.Values, allowed []string) []core.DBOrdering {
	val := values.Get(orderingParam)
	if val == "" {
		return nil
	}

	var orderings []core.DBOrdering
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" || !core.ContainsString(allowed, field) {
			continue
		}
		orderings = append(orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
	return orderings
}

// bindPageSize reads page_size (alias per_page); invalid values fall back to DefaultPageSize.
func bindPageSize(values url.Values) int {
	raw := values.Get(pageSizeParam)
	if raw == "" {
		raw = values.Get(perPageParam)
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

func bindPage(values url.Values) int {
	page, err := strconv.Atoi(values.Get(pageParam))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// bindListParams reads paging and ordering from the query string.
func bindListParams(ctx echo.Context, orderFields []string) core.ListParams {
	values := ctx.QueryParams()
	return core.ListParams{
		Page:     bindPage(values),
		PageSize: bindPageSize(values),
		Ordering: bindOrdering(values, orderFields),
	}
}

// sendList writes a page of rows along with the unpaginated total.
func sendList(ctx echo.Context, rows interface{}, total int) error {
	ctx.Response().Header().Set(totalCountHeader, strconv.Itoa(total))
	return ctx.JSON(http.StatusOK, rows)
}

// DestroyMultipleRequest is the body of a bulk DELETE.
type DestroyMultipleRequest struct {
	IDs []string `json:"ids"`
}
