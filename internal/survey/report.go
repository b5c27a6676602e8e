package survey

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// MarshalCSV serializes the histogram as its 12-element calendar-order list.
func (h Histogram) MarshalCSV() ([]byte, error) {
	parts := make([]string, len(h))
	for i, v := range h {
		parts[i] = strconv.Itoa(v)
	}
	return []byte("[" + strings.Join(parts, ", ") + "]"), nil
}

// reportRow defines the fixed CSV column order.
type reportRow struct {
	IconicTaxonName string    `csv:"iconic_taxon_name"`
	Kingdom         string    `csv:"kingdom"`
	Phylum          string    `csv:"phylum"`
	CommonName      string    `csv:"common_name"`
	LatinName       string    `csv:"latin_name"`
	TaxonID         int       `csv:"taxon_id"`
	Count           int       `csv:"count"`
	Histogram       Histogram `csv:"histogram"`
	PeakMonth       string    `csv:"peak_month"`
}

// SortByCount orders records by observation count descending. The sort is
// stable: records with equal counts keep their first-seen listing order.
func SortByCount(records []*SpeciesRecord) []*SpeciesRecord {
	sorted := make([]*SpeciesRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return sorted
}

// WriteCSV writes the report, sorted by count descending, to path.
func WriteCSV(records []*SpeciesRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "report: create file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)

	// Header goes out even when no species matched.
	if err := enc.EncodeHeader(reportRow{}); err != nil {
		return eris.Wrap(err, "report: write header")
	}

	for _, rec := range SortByCount(records) {
		row := reportRow{
			IconicTaxonName: rec.IconicTaxonName,
			Kingdom:         rec.Kingdom.String(),
			Phylum:          rec.Phylum.String(),
			CommonName:      rec.CommonName,
			LatinName:       rec.LatinName,
			TaxonID:         rec.TaxonID,
			Count:           rec.Count,
			Histogram:       rec.Histogram,
			PeakMonth:       rec.PeakMonth,
		}
		if err := enc.Encode(row); err != nil {
			return eris.Wrap(err, "report: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "report: flush")
	}
	return nil
}
