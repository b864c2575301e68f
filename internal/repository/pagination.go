package repository

import "gorm.io/gorm"

const (
	defaultPageSize = 15
	maxPageSize     = 100
)

// Page is a 1-based page request. Zero values fall back to the first page of defaultPageSize.
type Page struct {
	Page     int
	PageSize int
}

// Normalized clamps the page number and size to their allowed ranges.
func (p Page) Normalized() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func (p Page) scope(db *gorm.DB) *gorm.DB {
	n := p.Normalized()
	return db.Offset((n.Page - 1) * n.PageSize).Limit(n.PageSize)
}

func likePattern(search string) string {
	return "%" + search + "%"
}
