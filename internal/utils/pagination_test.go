package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPageParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=abc", 1},
	}

	for _, tc := range cases {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest("GET", "/"+tc.query, nil)

		if got := PageParam(ctx); got != tc.want {
			t.Fatalf("PageParam(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(1, 0)

	if meta.TotalPages != 1 {
		t.Fatalf("an empty listing still has one page, got %d", meta.TotalPages)
	}

	meta = NewPaginationMeta(2, 25)

	if meta.CurrentPage != 2 || meta.PerPage != 10 || meta.Total != 25 || meta.TotalPages != 3 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}
