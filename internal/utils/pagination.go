package utils

import (
	"strconv"

	"github.com/casetrack-dev/casetrack/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PageParam reads the "page" query parameter, defaulting to the first page.
func PageParam(ctx *gin.Context) int {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))

	if err != nil || page < 1 {
		return 1
	}

	return page
}

// Paginate limits a query to one fixed-size page.
func Paginate(page int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * types.PageSize).Limit(types.PageSize)
	}
}

func NewPaginationMeta(page int, total int64) types.PaginationMeta {
	totalPages := int((total + types.PageSize - 1) / types.PageSize)

	if totalPages < 1 {
		totalPages = 1
	}

	return types.PaginationMeta{
		CurrentPage: page,
		PerPage:     types.PageSize,
		Total:       total,
		TotalPages:  totalPages,
	}
}
