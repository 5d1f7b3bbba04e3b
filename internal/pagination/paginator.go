// internal/pagination/paginator.go
package pagination

import (
	"context"
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

// Response is the envelope every paginated list endpoint returns.
// NextPage/PreviousPage are full resource locators (the request URL with the
// page parameter replaced) or null.
type Response struct {
	TotalCount   int64   `json:"total_count"`
	NextPage     *string `json:"next_page"`
	PreviousPage *string `json:"previous_page"`
	Items        any     `json:"items"`
}

// Paginator computes page windows and navigation links. Pure computation —
// the query flavor (PaginateQuery) is the only method that touches storage.
type Paginator struct {
	page       int
	perPage    int
	requestURL string

	// computed once the total count is known
	numberOfPages int
}

func New(page, perPage int, requestURL string) *Paginator {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	return &Paginator{page: page, perPage: perPage, requestURL: requestURL}
}

func (p *Paginator) Limit() int {
	return p.perPage
}

func (p *Paginator) Offset() int {
	return (p.page - 1) * p.perPage
}

// Paginate wraps an already-fetched item list and a pre-computed total count.
func (p *Paginator) Paginate(totalCount int64, items any) *Response {
	p.numberOfPages = p.getNumberOfPages(totalCount)
	return &Response{
		TotalCount:   totalCount,
		NextPage:     p.getNextPage(),
		PreviousPage: p.getPreviousPage(),
		Items:        items,
	}
}

// PaginateQuery applies the page window to a GORM query, issues a separate
// count query, and fetches the page into dest.
func (p *Paginator) PaginateQuery(ctx context.Context, query *gorm.DB, dest any) (*Response, error) {
	var count int64
	if err := query.WithContext(ctx).Count(&count).Error; err != nil {
		return nil, err
	}
	if err := query.WithContext(ctx).Limit(p.Limit()).Offset(p.Offset()).Find(dest).Error; err != nil {
		return nil, err
	}
	return p.Paginate(count, dest), nil
}

func (p *Paginator) getNumberOfPages(count int64) int {
	quotient := int(count) / p.perPage
	rest := int(count) % p.perPage
	if rest == 0 {
		return quotient
	}
	return quotient + 1
}

func (p *Paginator) getNextPage() *string {
	if p.page >= p.numberOfPages {
		return nil
	}
	return p.pageURL(p.page + 1)
}

func (p *Paginator) getPreviousPage() *string {
	// one page of slack past the end still gets a previous link
	if p.page == 1 || p.page > p.numberOfPages+1 {
		return nil
	}
	return p.pageURL(p.page - 1)
}

func (p *Paginator) pageURL(page int) *string {
	if p.requestURL == "" {
		return nil
	}
	u, err := url.Parse(p.requestURL)
	if err != nil {
		return nil
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
