package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginateNeverExceedsPageSize(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 25, 100} {
		items := intRange(total)
		page := Paginate(items, "1", 10)
		for p := 1; p <= page.TotalPages; p++ {
			got := Paginate(items, fmt.Sprint(p), 10)
			assert.LessOrEqual(t, len(got.Items), 10, "total=%d page=%d", total, p)
		}
	}
}

func TestPaginateReconstructsSequence(t *testing.T) {
	items := intRange(25)
	first := Paginate(items, "1", 10)

	var union []int
	for p := 1; p <= first.TotalPages; p++ {
		page := Paginate(items, fmt.Sprint(p), 10)
		union = append(union, page.Items...)
	}

	require.Equal(t, items, union)
}

func TestPaginateDefaultsToFirstPage(t *testing.T) {
	items := intRange(25)

	for _, param := range []string{"", "abc", "1.5", "-"} {
		page := Paginate(items, param, 10)
		assert.Equal(t, 1, page.Number, "param=%q", param)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, page.Items)
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	items := intRange(25)

	low := Paginate(items, "0", 10)
	assert.Equal(t, 1, low.Number)

	negative := Paginate(items, "-3", 10)
	assert.Equal(t, 1, negative.Number)

	high := Paginate(items, "99", 10)
	assert.Equal(t, 3, high.Number)
	assert.Equal(t, []int{20, 21, 22, 23, 24}, high.Items)
}

func TestPaginateMetadata(t *testing.T) {
	items := intRange(25)

	first := Paginate(items, "1", 10)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 25, first.TotalItems)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	middle := Paginate(items, "2", 10)
	assert.True(t, middle.HasNext)
	assert.True(t, middle.HasPrevious)

	last := Paginate(items, "3", 10)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int{}, "1", 10)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}
