package pagination

// Slice returns the 1-based page of items. Out-of-range pages yield an
// empty slice, never an error.
func Slice[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// HasMore reports whether items exist beyond the given page.
func HasMore(page, size, total int) bool {
	return page*size < total
}
