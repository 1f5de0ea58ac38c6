// Package pagination turns page/limit query values into a bounded window.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a clamped page window. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// FromQuery reads ?page and ?limit. Missing or unparsable values fall back to the defaults.
func FromQuery(c *gin.Context) Params {
	return New(queryInt(c, "page"), queryInt(c, "limit"))
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// New clamps page to at least 1 and limit into 1..MaxLimit, using DefaultLimit for non-positive limits.
func New(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages is the number of pages needed for total items; zero when there are none.
func (p Params) Pages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
