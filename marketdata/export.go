package marketdata

import (
	"math"
	"sort"
	"time"
)

// Record is one bar flattened for tabular export. Absent price fields are
// NaN and an absent volume is -1, so a record is a fixed-width row.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// Records flattens the series in input order.
func (s Series) Records() []Record {
	out := make([]Record, 0, len(s.Bars))
	for _, b := range s.Bars {
		out = append(out, Record{
			Timestamp: b.Timestamp,
			Open:      orNaN(b.Open),
			High:      orNaN(b.High),
			Low:       orNaN(b.Low),
			Close:     orNaN(b.Close),
			Volume:    orNegOne(b.Volume),
		})
	}
	return out
}

// Columns holds the series as parallel column slices for numeric tooling.
// Absent values are NaN (volume included, as float64 for uniformity).
type Columns struct {
	Timestamps []time.Time
	Open       []float64
	High       []float64
	Low        []float64
	Close      []float64
	Volume     []float64
}

// Columns reshapes the series column-wise, sorted ascending by timestamp
// with duplicate timestamps collapsed to the last occurrence. Validation
// deliberately leaves bars in delivery order; sorting and dedup happen only
// here, at the presentation boundary.
func (s Series) Columns() Columns {
	// last occurrence wins for a duplicated timestamp
	byTime := make(map[int64]Bar, len(s.Bars))
	keys := make([]int64, 0, len(s.Bars))
	for _, b := range s.Bars {
		k := b.Timestamp.UnixNano()
		if _, seen := byTime[k]; !seen {
			keys = append(keys, k)
		}
		byTime[k] = b
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	c := Columns{
		Timestamps: make([]time.Time, 0, len(keys)),
		Open:       make([]float64, 0, len(keys)),
		High:       make([]float64, 0, len(keys)),
		Low:        make([]float64, 0, len(keys)),
		Close:      make([]float64, 0, len(keys)),
		Volume:     make([]float64, 0, len(keys)),
	}
	for _, k := range keys {
		b := byTime[k]
		c.Timestamps = append(c.Timestamps, b.Timestamp)
		c.Open = append(c.Open, orNaN(b.Open))
		c.High = append(c.High, orNaN(b.High))
		c.Low = append(c.Low, orNaN(b.Low))
		c.Close = append(c.Close, orNaN(b.Close))
		if b.Volume != nil {
			c.Volume = append(c.Volume, float64(*b.Volume))
		} else {
			c.Volume = append(c.Volume, math.NaN())
		}
	}
	return c
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func orNegOne(v *int64) int64 {
	if v == nil {
		return -1
	}
	return *v
}
