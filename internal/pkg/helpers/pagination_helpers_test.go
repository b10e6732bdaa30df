package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "third page", page: 3, size: 20, wantOffset: 40, wantLimit: 20},
		{name: "zero page clamps to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative page clamps to first", page: -5, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "zero size falls back to default", page: 2, size: 0, wantOffset: 10, wantLimit: DefaultPageSize},
		{name: "oversized size falls back to default", page: 1, size: 500, wantOffset: 0, wantLimit: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name        string
		totalItems  int64
		page, size  int
		wantPages   int
		wantCurrent int
	}{
		{name: "exact division", totalItems: 40, page: 1, size: 10, wantPages: 4, wantCurrent: 1},
		{name: "remainder adds a page", totalItems: 41, page: 1, size: 10, wantPages: 5, wantCurrent: 1},
		{name: "empty result is one page", totalItems: 0, page: 1, size: 10, wantPages: 1, wantCurrent: 1},
		{name: "page beyond range clamps", totalItems: 20, page: 9, size: 10, wantPages: 2, wantCurrent: 2},
		{name: "single item", totalItems: 1, page: 1, size: 10, wantPages: 1, wantCurrent: 1},
		{name: "oversized size clamps to default", totalItems: 40, page: 1, size: 500, wantPages: 4, wantCurrent: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.totalItems, tt.page, tt.size)
			assert.Equal(t, tt.wantPages, info.TotalPages)
			assert.Equal(t, tt.wantCurrent, info.CurrentPage)
			assert.Equal(t, tt.totalItems, info.TotalItems)
		})
	}
}
