package inat

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

// histogramResponse is the observations/histogram payload. Month keys are
// strings of 1-indexed month numbers; months without observations may be
// absent entirely.
type histogramResponse struct {
	Results struct {
		MonthOfYear map[string]int `json:"month_of_year"`
	} `json:"results"`
}

// ObservationHistogram fetches the month-of-year observation histogram for a
// single taxon in a place.
func (c *client) ObservationHistogram(ctx context.Context, q HistogramQuery) (map[int]int, error) {
	params := url.Values{
		"taxon_id":      {strconv.Itoa(q.TaxonID)},
		"place_id":      {strconv.Itoa(q.PlaceID)},
		"quality_grade": {q.QualityGrade},
		"date_field":    {"observed"},
		"interval":      {"month_of_year"},
	}

	if err := c.gate(ctx, "observation_histogram", params); err != nil {
		return nil, eris.Wrap(err, "inat: histogram rate gate")
	}

	body, err := c.get(ctx, "/observations/histogram", params)
	if err != nil {
		return nil, eris.Wrap(err, "inat: histogram")
	}

	var resp histogramResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "inat: histogram parse response")
	}

	months := make(map[int]int, len(resp.Results.MonthOfYear))
	for key, count := range resp.Results.MonthOfYear {
		month, err := strconv.Atoi(key)
		if err != nil || month < 1 || month > 12 {
			continue
		}
		months[month] = count
	}
	return months, nil
}
