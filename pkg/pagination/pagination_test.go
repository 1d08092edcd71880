package pagination_test

import (
	"net/url"
	"testing"

	"github.com/shellac-studio/shellac/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, 20},
		{"negative page", -5, 10, 1, 10},
		{"oversized page size", 1, 500, 1, 100},
		{"valid request unchanged", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
			req.Normalize(cfg)

			if req.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("page_size = %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 4, PageSize: 25}
	if got := req.Offset(); got != 75 {
		t.Errorf("offset = %d, want 75", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	t.Run("parses all parameters", func(t *testing.T) {
		values := url.Values{}
		values.Set("page", "2")
		values.Set("page_size", "10")
		values.Set("search", "del-tones")
		values.Set("sort", "-created_at")

		req := pagination.PageRequestFromQuery(values, cfg)

		if req.Page != 2 || req.PageSize != 10 {
			t.Errorf("page = %d/%d, want 2/10", req.Page, req.PageSize)
		}
		if req.Search == nil || *req.Search != "del-tones" {
			t.Errorf("search = %v, want del-tones", req.Search)
		}
		if len(req.Sort) != 1 || req.Sort[0].Field != "created_at" || !req.Sort[0].Descending {
			t.Errorf("sort = %v", req.Sort)
		}
	})

	t.Run("empty query normalizes to defaults", func(t *testing.T) {
		req := pagination.PageRequestFromQuery(url.Values{}, cfg)

		if req.Page != 1 || req.PageSize != 20 {
			t.Errorf("page = %d/%d, want 1/20", req.Page, req.PageSize)
		}
		if req.Search != nil {
			t.Errorf("search = %v, want nil", req.Search)
		}
	})
}

func TestNewPageResult(t *testing.T) {
	t.Run("computes total pages with remainder", func(t *testing.T) {
		result := pagination.NewPageResult([]string{"a", "b"}, 45, 1, 20)

		if result.TotalPages != 3 {
			t.Errorf("total_pages = %d, want 3", result.TotalPages)
		}
	})

	t.Run("empty result has one page", func(t *testing.T) {
		result := pagination.NewPageResult([]string{}, 0, 1, 20)

		if result.TotalPages != 1 {
			t.Errorf("total_pages = %d, want 1", result.TotalPages)
		}
	})

	t.Run("nil data becomes empty slice", func(t *testing.T) {
		result := pagination.NewPageResult[string](nil, 0, 1, 20)

		if result.Data == nil {
			t.Error("data = nil, want empty slice")
		}
	})
}
