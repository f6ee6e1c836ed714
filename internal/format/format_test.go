package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRupees(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Rs. 0", Rupees(0))
	require.Equal(t, "Rs. 950", Rupees(950))
	require.Equal(t, "Rs. 4,250", Rupees(4250))
	require.Equal(t, "Rs. 46,500", Rupees(46500))
	require.Equal(t, "Rs. 1,250,000", Rupees(1250000))
}

func TestRating(t *testing.T) {
	t.Parallel()

	require.Equal(t, "4.8", Rating(4.8))
	require.Equal(t, "4.0", Rating(4))
}

func TestDate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Apr 18, 2026", Date(time.Date(2026, 4, 18, 10, 0, 0, 0, time.UTC)))
}
