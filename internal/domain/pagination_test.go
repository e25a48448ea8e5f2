package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name      string
		pageStr   string
		limitStr  string
		wantPage  int64
		wantLimit int64
	}{
		{
			name:      "valid values",
			pageStr:   "3",
			limitStr:  "25",
			wantPage:  3,
			wantLimit: 25,
		},
		{
			name:      "empty values fall back to defaults",
			pageStr:   "",
			limitStr:  "",
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "non-numeric values fall back to defaults",
			pageStr:   "abc",
			limitStr:  "xyz",
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "zero falls back to defaults",
			pageStr:   "0",
			limitStr:  "0",
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "negative values fall back to defaults",
			pageStr:   "-2",
			limitStr:  "-5",
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "mixed valid and invalid",
			pageStr:   "4",
			limitStr:  "oops",
			wantPage:  4,
			wantLimit: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ParsePage(tt.pageStr, tt.limitStr)
			assert.Equal(t, tt.wantPage, page.Number)
			assert.Equal(t, tt.wantLimit, page.Limit)
		})
	}
}

func TestPageSkip(t *testing.T) {
	tests := []struct {
		name string
		page Page
		want int64
	}{
		{"first page skips nothing", Page{Number: 1, Limit: 10}, 0},
		{"second page skips one window", Page{Number: 2, Limit: 10}, 10},
		{"custom limit", Page{Number: 3, Limit: 7}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Skip())
		})
	}
}
