package utils

// CalculateTotalPages is the number of pages of perPage needed for total rows.
func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}

// CalculateOffset returns the first row of a 1-based page; pages below 1 read from the start.
func CalculateOffset(page, perPage int) int {
	if page <= 1 || perPage <= 0 {
		return 0
	}
	return (page - 1) * perPage
}
