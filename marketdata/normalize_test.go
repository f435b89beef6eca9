package marketdata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"modesdk/marketdata"
)

func TestNormalizeSymbol(t *testing.T) {
	t.Parallel()

	require.Equal(t, "AAPL", marketdata.NormalizeSymbol("aapl"))
	require.Equal(t, "AAPL", marketdata.NormalizeSymbol(" AAPL "))
	require.Equal(t, "BRK.B", marketdata.NormalizeSymbol("brk.b"))

	// Idempotence: normalizing twice is the same as once.
	once := marketdata.NormalizeSymbol("msft")
	require.Equal(t, once, marketdata.NormalizeSymbol(once))
}

func TestNormalizeTime_NaiveIsUTC(t *testing.T) {
	t.Parallel()

	// A zoneless instant keeps its wall clock and gains the UTC zone.
	naive := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)
	got := marketdata.NormalizeTime(naive)
	require.Equal(t, time.UTC, got.Location())
	require.Equal(t, naive, got)
}

func TestNormalizeTime_AwareConvertsToUTC(t *testing.T) {
	t.Parallel()

	// Arrange: 10:00 at UTC+2 is 08:00 UTC.
	zone := time.FixedZone("CEST", 2*60*60)
	aware := time.Date(2023, 10, 27, 10, 0, 0, 0, zone)

	// Act
	got := marketdata.NormalizeTime(aware)

	// Assert
	require.Equal(t, time.UTC, got.Location())
	require.Equal(t, time.Date(2023, 10, 27, 8, 0, 0, 0, time.UTC), got)
}

func TestNormalizeTime_Idempotent(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("JST", 9*60*60)
	aware := time.Date(2024, 1, 1, 9, 0, 0, 0, zone)
	once := marketdata.NormalizeTime(aware)
	require.Equal(t, once, marketdata.NormalizeTime(once))
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339 zulu", "2023-01-01T12:00:00Z", time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", "2023-01-01T14:00:00+02:00", time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"rfc3339 fraction", "2023-02-02T12:13:07.393Z", time.Date(2023, 2, 2, 12, 13, 7, 393000000, time.UTC)},
		{"naive", "2023-10-27T10:00:00", time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)},
		{"naive space", "2023-10-27 10:00:00", time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)},
		{"date only", "2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := marketdata.ParseTime(tc.in)
			require.NoError(t, err)
			require.Equal(t, time.UTC, got.Location())
			require.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
		})
	}
}

func TestParseTime_Errors(t *testing.T) {
	t.Parallel()

	_, err := marketdata.ParseTime("")
	require.Error(t, err)

	_, err = marketdata.ParseTime("not-a-timestamp")
	require.Error(t, err)
}
