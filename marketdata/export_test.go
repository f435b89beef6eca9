package marketdata_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"modesdk/marketdata"
)

func mustSeries(t *testing.T, obj map[string]any) marketdata.Series {
	t.Helper()
	s, err := marketdata.ValidateSeries(obj)
	require.NoError(t, err)
	return s
}

func TestSeriesRecords(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, map[string]any{
		"symbol": "spy",
		"dataPoints": []any{
			map[string]any{"timestamp": "2024-01-01T00:00:00Z", "open": 100.0, "high": 110.0, "low": 90.0, "close": 105.0, "volume": 1000.0},
			map[string]any{"timestamp": "2024-01-02T00:00:00Z", "open": 106.0, "high": 112.0, "low": 101.0, "close": 110.0, "volume": 1500.0},
		},
	})

	recs := s.Records()
	require.Len(t, recs, 2)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), recs[0].Timestamp)
	require.InEpsilon(t, 100.0, recs[0].Open, 0.0001)
	require.Equal(t, int64(1500), recs[1].Volume)
}

func TestSeriesRecords_AbsentFields(t *testing.T) {
	t.Parallel()

	s := mustSeries(t, map[string]any{
		"symbol": "spy",
		"dataPoints": []any{
			map[string]any{"timestamp": "2024-01-01T00:00:00Z", "close": 105.0},
		},
	})

	recs := s.Records()
	require.Len(t, recs, 1)
	require.True(t, math.IsNaN(recs[0].Open))
	require.True(t, math.IsNaN(recs[0].High))
	require.InEpsilon(t, 105.0, recs[0].Close, 0.0001)
	require.Equal(t, int64(-1), recs[0].Volume)
}

func TestSeriesColumns_SortsAndDedups(t *testing.T) {
	t.Parallel()

	// Arrange: out-of-order delivery plus a duplicated timestamp; the later
	// occurrence must win.
	s := mustSeries(t, map[string]any{
		"symbol": "spy",
		"dataPoints": []any{
			map[string]any{"timestamp": "2024-01-02T00:00:00Z", "close": 110.0},
			map[string]any{"timestamp": "2024-01-01T00:00:00Z", "close": 105.0},
			map[string]any{"timestamp": "2024-01-02T00:00:00Z", "close": 111.0},
		},
	})

	// Act
	cols := s.Columns()

	// Assert: ascending, two rows, last duplicate kept.
	require.Len(t, cols.Timestamps, 2)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cols.Timestamps[0])
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), cols.Timestamps[1])
	require.InEpsilon(t, 105.0, cols.Close[0], 0.0001)
	require.InEpsilon(t, 111.0, cols.Close[1], 0.0001)
	require.True(t, math.IsNaN(cols.Open[0]))
	require.True(t, math.IsNaN(cols.Volume[0]))

	// Validation left the bars untouched.
	require.Len(t, s.Bars, 3)
	require.True(t, s.Bars[0].Timestamp.After(s.Bars[1].Timestamp))
}
