// internal/pagination/paginator_test.go
package pagination

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const listURL = "http://localhost:8000/api/contacts?is_company=false&page=1&per_page=10"

func TestNumberOfPages(t *testing.T) {
	tests := []struct {
		totalCount int64
		perPage    int
		want       int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{9, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 10, 10},
		{101, 10, 11},
		{5, 1, 5},
		{7, 3, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("count=%d,per_page=%d", tt.totalCount, tt.perPage), func(t *testing.T) {
			p := New(1, tt.perPage, listURL)
			p.Paginate(tt.totalCount, nil)
			assert.Equal(t, tt.want, p.numberOfPages)
		})
	}
}

func TestNavigationLinks(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		totalCount int64
		wantNext   bool
		wantPrev   bool
	}{
		{"single page", 1, 10, 5, false, false},
		{"first of many", 1, 10, 35, true, false},
		{"middle page", 2, 10, 35, true, true},
		{"last page", 4, 10, 35, false, true},
		{"one past the end keeps previous", 5, 10, 35, false, true},
		{"two past the end has neither", 6, 10, 35, false, false},
		{"empty result set", 1, 10, 0, false, false},
		{"page 2 of empty result set", 2, 10, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.page, tt.perPage, listURL)
			resp := p.Paginate(tt.totalCount, []string{})

			assert.Equal(t, tt.totalCount, resp.TotalCount)
			assert.Equal(t, tt.wantNext, resp.NextPage != nil, "next_page presence")
			assert.Equal(t, tt.wantPrev, resp.PreviousPage != nil, "previous_page presence")
		})
	}
}

func TestNavigationLinksRewritePageParam(t *testing.T) {
	p := New(2, 10, "http://localhost:8000/api/invoices?page=2&per_page=10")
	resp := p.Paginate(35, []string{})

	require.NotNil(t, resp.NextPage)
	require.NotNil(t, resp.PreviousPage)
	assert.Contains(t, *resp.NextPage, "page=3")
	assert.Contains(t, *resp.NextPage, "per_page=10")
	assert.Contains(t, *resp.PreviousPage, "page=1")
}

func TestWindow(t *testing.T) {
	p := New(3, 25, listURL)
	assert.Equal(t, 25, p.Limit())
	assert.Equal(t, 50, p.Offset())

	p = New(1, 100, listURL)
	assert.Equal(t, 100, p.Limit())
	assert.Equal(t, 0, p.Offset())
}

func TestMissingRequestURLDegradesToAbsentLinks(t *testing.T) {
	p := New(2, 10, "")
	resp := p.Paginate(35, []string{})
	assert.Nil(t, resp.NextPage)
	assert.Nil(t, resp.PreviousPage)
	assert.Equal(t, int64(35), resp.TotalCount)
}

type row struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestPaginateQuery(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))
	for i := 1; i <= 7; i++ {
		require.NoError(t, db.Create(&row{Name: fmt.Sprintf("row-%d", i)}).Error)
	}

	p := New(2, 3, listURL)
	var page []row
	resp, err := p.PaginateQuery(context.Background(), db.Model(&row{}), &page)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.TotalCount)
	assert.Len(t, page, 3)
	assert.Equal(t, "row-4", page[0].Name)
	assert.NotNil(t, resp.NextPage)
	assert.NotNil(t, resp.PreviousPage)
}

// Exhaustive sweep of the pagination contract over a small grid.
func TestPaginationProperties(t *testing.T) {
	for page := 1; page <= 8; page++ {
		for perPage := 1; perPage <= 5; perPage++ {
			for count := int64(0); count <= 20; count++ {
				p := New(page, perPage, listURL)
				resp := p.Paginate(count, nil)

				totalPages := int(count) / perPage
				if int(count)%perPage != 0 {
					totalPages++
				}

				wantNext := page < totalPages
				wantPrev := page > 1 && page <= totalPages+1

				assert.Equal(t, wantNext, resp.NextPage != nil,
					"next: page=%d per_page=%d count=%d", page, perPage, count)
				assert.Equal(t, wantPrev, resp.PreviousPage != nil,
					"prev: page=%d per_page=%d count=%d", page, perPage, count)
			}
		}
	}
}
