package domain

import "strconv"

// Pagination defaults: page and limit are 1-based and fall back to 1/10
// when the inputs are not positive integers.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is a 1-based pagination window
type Page struct {
	Number int64
	Limit  int64
}

// ParsePage parses raw page/limit query values, falling back to defaults
// on anything that is not a positive integer.
func ParsePage(pageStr, limitStr string) Page {
	page := parsePositive(pageStr, DefaultPage)
	limit := parsePositive(limitStr, DefaultLimit)
	return Page{Number: page, Limit: limit}
}

// Skip computes the number of documents to skip: (page-1)*limit
func (p Page) Skip() int64 {
	return (p.Number - 1) * p.Limit
}

func parsePositive(s string, fallback int64) int64 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
