package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
		wantErr   error
	}{
		{"defaults", "1", "10", 1, 10, nil},
		{"deep page", "42", "25", 42, 25, nil},
		{"zero limit", "1", "0", 0, 0, ErrInvalidLimit},
		{"negative limit", "1", "-5", 0, 0, ErrInvalidLimit},
		{"zero page", "0", "10", 0, 0, ErrInvalidPage},
		{"negative page", "-1", "10", 0, 0, ErrInvalidPage},
		{"garbage page", "first", "10", 0, 0, ErrInvalidPage},
		{"garbage limit", "1", "all", 0, 0, ErrInvalidLimit},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			page, limit, err := ParsePagination(tc.page, tc.limit)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}
