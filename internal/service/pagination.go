package service

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePage clamps a 0-based page and a page size into range. A negative
// page becomes 0, a non-positive size becomes DefaultPageSize and sizes above
// MaxPageSize are capped.
func NormalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a normalized 0-based page into a query window.
func CalculateOffsetLimit(page, size int) (offset, limit int) {
	page, size = NormalizePage(page, size)
	return page * size, size
}

// PageLength is the number of items page p of size s holds out of n:
// min(s, max(0, n - p*s)).
func PageLength(total, page, size int) int {
	page, size = NormalizePage(page, size)
	rest := total - page*size
	if rest <= 0 {
		return 0
	}
	if rest < size {
		return rest
	}
	return size
}
