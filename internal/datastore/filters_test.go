package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthVariants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"01", "1"}, MonthVariants("1"))
	assert.Equal(t, []string{"01", "1"}, MonthVariants("01"))
	assert.Equal(t, []string{"12"}, MonthVariants("12"))
	assert.Equal(t, []string{"09", "9"}, MonthVariants(" 9 "))
	assert.Equal(t, []string{"januari"}, MonthVariants("januari"))
	assert.Equal(t, []string{""}, MonthVariants(""))
}
