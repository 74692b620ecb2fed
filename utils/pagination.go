package utils

import (
	"strconv"
)

// Page is one fixed-size slice of an ordered result set.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate splits items into pages of pageSize and returns the page named by
// pageParam (1-indexed, usually straight from the "page" query parameter).
// A missing or non-numeric parameter resolves to page 1; out-of-range page
// numbers clamp to the nearest valid page rather than erroring. An empty
// result set still yields a single empty page.
func Paginate[T any](items []T, pageParam string, pageSize int) Page[T] {
	totalItems := len(items)
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(pageParam)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page[T]{
		Items:       items[start:end],
		Number:      number,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}
