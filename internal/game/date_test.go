package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_AD(t *testing.T) {
	d, err := ParseDate("1776-07-04")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 1776, Month: 7, Day: 4}, d)
	assert.Equal(t, "1776-07-04", d.String())
}

func TestParseDate_BC(t *testing.T) {
	d, err := ParseDate("-0490-09-12")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: -490, Month: 9, Day: 12}, d)
	assert.Equal(t, "-0490-09-12", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "1776", "1776-7-04-01", "1776-13-01", "1776-00-10", "1776-01-32", "year-07-04"} {
		_, err := ParseDate(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestDateCompare_BCOrdering(t *testing.T) {
	mustParse := func(s string) Date {
		d, err := ParseDate(s)
		require.NoError(t, err)
		return d
	}

	// More negative years come first; all BC years come before AD.
	d500bc := mustParse("-0500-01-01")
	d100bc := mustParse("-0100-06-15")
	d1ad := mustParse("0001-01-01")

	assert.True(t, d500bc.Before(d100bc))
	assert.True(t, d100bc.Before(d1ad))
	assert.True(t, d500bc.Before(d1ad))
	assert.False(t, d1ad.Before(d500bc))
}

func TestDateCompare_TotalOrder(t *testing.T) {
	a := Date{Year: 1865, Month: 4, Day: 9}
	b := Date{Year: 1865, Month: 4, Day: 9}
	assert.Equal(t, 0, a.Compare(b))

	assert.Equal(t, -1, Date{Year: 1865, Month: 3, Day: 20}.Compare(a))
	assert.Equal(t, 1, Date{Year: 1865, Month: 4, Day: 10}.Compare(a))
	assert.Equal(t, -1, Date{Year: 1864, Month: 12, Day: 31}.Compare(a))
}
