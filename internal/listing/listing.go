package listing

import (
	"strconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100

	defaultSortColumn = "id"
)

// Params is the shared pagination contract of every list endpoint:
// {limit, page, sort_by, asc} query parameters.
type Params struct {
	Limit  int
	Page   int
	SortBy string
	Asc    bool
}

// Parse reads pagination parameters from the request. An unrecognized
// sort column or direction silently falls back to id/desc instead of
// erroring, so dynamic ORDER BY never becomes an injection surface.
func Parse(c *gin.Context, allowedSortColumns []string) Params {
	p := Params{
		Limit:  DefaultLimit,
		Page:   1,
		SortBy: defaultSortColumn,
		Asc:    false,
	}

	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		p.Limit = limit
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		p.Page = page
	}

	if sortBy := c.Query("sort_by"); sortBy != "" {
		for _, col := range allowedSortColumns {
			if sortBy == col {
				p.SortBy = sortBy
				break
			}
		}
	}

	switch c.Query("asc") {
	case "true", "1", "asc":
		p.Asc = true
	}

	return p
}

func (p Params) Offset() uint {
	return uint((p.Page - 1) * p.Limit)
}

func (p Params) order() exp.OrderedExpression {
	if p.Asc {
		return goqu.I(p.SortBy).Asc()
	}
	return goqu.I(p.SortBy).Desc()
}

// Apply adds ordering and pagination to a dataset.
func (p Params) Apply(query *goqu.SelectDataset) *goqu.SelectDataset {
	return query.Order(p.order()).Limit(uint(p.Limit)).Offset(p.Offset())
}

// Scoped restricts a dataset to rows owned by ownerID when ownerID is
// set; a nil ownerID (privileged caller) leaves the dataset untouched.
// Every list/read/update path of an owned entity goes through this.
func Scoped(query *goqu.SelectDataset, ownerColumn string, ownerID *int) *goqu.SelectDataset {
	if ownerID == nil {
		return query
	}
	return query.Where(goqu.Ex{ownerColumn: *ownerID})
}
