package dto_test

import (
	"hotel/shared/dto"
	"math"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name        string
		queryParams map[string]string
		expected    dto.QueryParams
	}{
		{
			name:        "no parameters",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{},
		},
		{
			name:        "page and limit",
			queryParams: map[string]string{"page": "2", "limit": "20"},
			expected:    dto.QueryParams{Page: 2, Limit: 20},
		},
		{
			name:        "limit only defaults page",
			queryParams: map[string]string{"limit": "5"},
			expected:    dto.QueryParams{Page: 1, Limit: 5},
		},
		{
			name:        "non-numeric values ignored",
			queryParams: map[string]string{"page": "two", "limit": "ten"},
			expected:    dto.QueryParams{},
		},
		{
			name:        "negative values kept for validation",
			queryParams: map[string]string{"page": "-1", "limit": "5"},
			expected:    dto.QueryParams{Page: -1, Limit: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			request := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			got := dto.QueryParams{}
			got.FromRequest(request)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQueryParams_Window(t *testing.T) {
	tests := []struct {
		name      string
		query     dto.QueryParams
		total     int
		wantStart int
		wantEnd   int
		wantPages int
		paginated bool
	}{
		{name: "unpaginated", query: dto.QueryParams{}, total: 7, wantStart: 0, wantEnd: 7},
		{name: "first page", query: dto.QueryParams{Page: 1, Limit: 3}, total: 7, wantStart: 0, wantEnd: 3, wantPages: 3, paginated: true},
		{name: "last partial page", query: dto.QueryParams{Page: 3, Limit: 3}, total: 7, wantStart: 6, wantEnd: 7, wantPages: 3, paginated: true},
		{name: "past the end", query: dto.QueryParams{Page: 9, Limit: 3}, total: 7, wantStart: 7, wantEnd: 7, wantPages: 3, paginated: true},
		{name: "empty list", query: dto.QueryParams{Page: 1, Limit: 3}, total: 0, wantStart: 0, wantEnd: 0, wantPages: 0, paginated: true},
		{name: "huge page", query: dto.QueryParams{Page: math.MaxInt / 50, Limit: 100}, total: 3, wantStart: 3, wantEnd: 3, wantPages: 1, paginated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.query.Window(tt.total)

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)

			pagination := tt.query.Pagination(tt.total)
			if !tt.paginated {
				assert.Nil(t, pagination)

				return
			}

			if assert.NotNil(t, pagination) {
				assert.Equal(t, tt.wantPages, pagination.TotalPages)
			}
		})
	}
}
