package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Rejects(t *testing.T) {
	testCases := []struct {
		name     string
		page     int
		pageSize int
	}{
		{"zero page", 0, 10},
		{"negative page", -3, 10},
		{"zero page size", 1, 0},
		{"negative page size", 2, -1},
		{"both invalid", 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.page, tc.pageSize, 50)
			require.ErrorIs(t, err, ErrInvalid)
			assert.Equal(t, "Invalid pagination parameters.", err.Error())
		})
	}
}

func TestValidate_ClampsOversizedPage(t *testing.T) {
	for _, size := range []int{51, 100, 10000} {
		req, err := Validate(3, size, 50)
		require.NoError(t, err)
		assert.Equal(t, 50, req.PageSize)
		assert.Equal(t, 3, req.Page)
		assert.Equal(t, 100, req.Offset())
	}
}

func TestValidate_KeepsSizeWithinLimit(t *testing.T) {
	req, err := Validate(1, 10, 50)
	require.NoError(t, err)
	assert.Equal(t, Request{Page: 1, PageSize: 10}, req)
	assert.Equal(t, 0, req.Offset())

	req, err = Validate(2, 50, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, req.PageSize)
}
