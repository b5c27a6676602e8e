// Package survey aggregates species observation statistics for a place into
// a monthly-histogram report.
package survey

// monthNames are the calendar-order labels used for peak month reporting.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// NoData is the peak month sentinel for species whose histogram stayed all-zero.
const NoData = "No data"

// Histogram holds per-month observation counts, index 0 = January.
type Histogram [12]int

// IsZero reports whether no month has any observations.
func (h Histogram) IsZero() bool {
	for _, v := range h {
		if v != 0 {
			return false
		}
	}
	return true
}

// PeakMonth returns the name of the month with the most observations. Ties go
// to the earliest month. An all-zero histogram yields NoData.
func (h Histogram) PeakMonth() string {
	if h.IsZero() {
		return NoData
	}
	peak := 0
	for i, v := range h {
		if v > h[peak] {
			peak = i
		}
	}
	return monthNames[peak]
}

// HistogramFromMonths converts a sparse 1-indexed month→count mapping into a
// fixed calendar-order histogram. Absent months stay zero; out-of-range keys
// are dropped.
func HistogramFromMonths(months map[int]int) Histogram {
	var h Histogram
	for month, count := range months {
		if month < 1 || month > 12 {
			continue
		}
		h[month-1] = count
	}
	return h
}

// SpeciesRecord is one distinct taxon observed in the target place.
type SpeciesRecord struct {
	TaxonID         int
	IconicTaxonName string
	Kingdom         Label
	Phylum          Label
	CommonName      string
	LatinName       string
	Count           int
	Histogram       Histogram
	PeakMonth       string
}
