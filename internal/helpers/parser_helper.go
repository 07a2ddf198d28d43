package helpers

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidPage  = errors.New("page must be a number of at least 1")
	ErrInvalidLimit = errors.New("limit must be a number of at least 1")
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParsePagination validates list query parameters. Both values must parse and
// be at least 1, so downstream offset math and page-count division stay safe.
func ParsePagination(pageStr, limitStr string) (int, int, error) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, ErrInvalidPage
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return 0, 0, ErrInvalidLimit
	}
	return page, limit, nil
}
