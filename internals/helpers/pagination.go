// file: internals/helpers/pagination.go
package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 500
)

/* ===============================
   Paging resolver (query → page/limit)
   page=0&limit=0 → semua data (tanpa paginasi)
=================================*/

type Paging struct {
	Page    int
	PerPage int
	All     bool
}

// ResolvePaging membaca ?page= & ?limit=. Nilai non-angka / negatif → error (400 di controller).
func ResolvePaging(c *fiber.Ctx) (Paging, error) {
	page, err := queryInt(c, "page", DefaultPage)
	if err != nil {
		return Paging{}, err
	}
	perPage, err := queryInt(c, "limit", DefaultPerPage)
	if err != nil {
		return Paging{}, err
	}

	if page == 0 && perPage == 0 {
		return Paging{All: true}, nil
	}
	if page < 1 {
		return Paging{}, fmt.Errorf("page must be a positive integer")
	}
	if perPage < 1 {
		return Paging{}, fmt.Errorf("limit must be a positive integer")
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Paging{Page: page, PerPage: perPage}, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

/* ===============================
   Pagination builder
=================================*/

type Pagination struct {
	Page         int   `json:"page"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
}

// BuildPagination: tanpa paginasi → page 0, totalPages 1; selain itu ceil(total/perPage).
func BuildPagination(p Paging, total int64) Pagination {
	if p.All {
		return Pagination{Page: 0, TotalPages: 1, TotalRecords: total}
	}
	per := int64(p.PerPage)
	if per <= 0 {
		per = DefaultPerPage
	}
	return Pagination{
		Page:         p.Page,
		TotalPages:   int((total + per - 1) / per),
		TotalRecords: total,
	}
}
