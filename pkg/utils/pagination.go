package utils

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageMeta struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// Page is one slice of a listing plus its metadata
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

func NewPage[T any](items []T, page, size int, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := CalculateTotalPages(total, size)
	return &Page[T]{
		Items: items,
		Meta: PageMeta{
			Page:          page,
			Size:          size,
			TotalElements: total,
			TotalPages:    totalPages,
			HasNext:       page < totalPages,
			HasPrevious:   page > 1,
		},
	}
}

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	return (ClampPage(page, perPage) - 1) * perPage
}

// ClampPage caps page so that (page-1)*size still fits in an int.
func ClampPage(page, size int) int {
	if size < 1 {
		return page
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt/size + 1
	}
	return page
}

// ParsePageParams reads 1-based page and size from the query string, clamping size to MaxPageSize.
func ParsePageParams(r *http.Request) (page, size int) {
	q := r.URL.Query()
	page = ParseInt(q.Get("page"), 1)
	size = ParseInt(q.Get("size"), DefaultPageSize)
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return ClampPage(page, size), size
}

// ParseInt converts string to int, falling back to defaultValue when empty, malformed or below 1
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}
