package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tracknest/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query is a validated page/size pair. Zero values never occur: FromContext
// substitutes defaults and clamps size, so Offset is always well-defined.
type Query struct {
	Page int
	Size int
}

// Offset returns the row offset of the first item on this page.
func (q Query) Offset() int { return (q.Page - 1) * q.Size }

// FromContext reads ?page= and ?size= from the request. Anything missing,
// unparsable or out of range falls back to the defaults; size is capped at
// MaxSize so a client cannot request unbounded pages.
func FromContext(c *gin.Context) Query {
	q := Query{Page: DefaultPage, Size: DefaultSize}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page >= 1 {
		q.Page = page
	}
	if size, err := strconv.Atoi(c.Query("size")); err == nil && size >= 1 {
		q.Size = size
	}
	if q.Size > MaxSize {
		q.Size = MaxSize
	}
	return q
}

// Paginate runs the count plus the page fetch on db and fills in the
// metadata the response envelope carries alongside the rows.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	if err := db.Offset(q.Offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}, nil
}
