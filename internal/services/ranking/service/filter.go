package service

import "pixivrank/internal/services/ranking/domain"

// DefaultMaxPages is the largest page count an item may declare and still be downloaded
const DefaultMaxPages = 5

// Filter decides which ranking entries are worth downloading
type Filter struct {
	MaxPages int // <=0 -> DefaultMaxPages
}

// Accept rejects entries carrying any policy flag or declaring too many pages
func (f Filter) Accept(it domain.RawItem) bool {
	limit := f.MaxPages
	if limit <= 0 {
		limit = DefaultMaxPages
	}
	if it.ContentType.Any() {
		return false
	}
	return it.ResolvedPages() <= limit
}
