package inat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

// SpeciesCountsPage is one page of the species_counts listing.
type SpeciesCountsPage struct {
	TotalResults int            `json:"total_results"`
	Page         int            `json:"page"`
	PerPage      int            `json:"per_page"`
	Results      []SpeciesCount `json:"results"`
}

// SpeciesCount is one listing entry: a taxon and its qualifying observation count.
type SpeciesCount struct {
	Count int   `json:"count"`
	Taxon Taxon `json:"taxon"`
}

// Taxon is the taxon summary embedded in listing entries.
type Taxon struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	PreferredCommonName string `json:"preferred_common_name"`
	IconicTaxonName     string `json:"iconic_taxon_name"`
	Rank                string `json:"rank"`
	AncestorIDs         []int  `json:"ancestor_ids"`
}

// SpeciesCounts fetches one page of species-with-counts for a place.
func (c *client) SpeciesCounts(ctx context.Context, q SpeciesCountsQuery) (*SpeciesCountsPage, error) {
	params := url.Values{
		"place_id":      {strconv.Itoa(q.PlaceID)},
		"quality_grade": {q.QualityGrade},
		"per_page":      {strconv.Itoa(q.PerPage)},
		"page":          {strconv.Itoa(q.Page)},
	}

	if err := c.gate(ctx, "species_counts", params); err != nil {
		return nil, eris.Wrap(err, "inat: species_counts rate gate")
	}

	body, err := c.get(ctx, "/observations/species_counts", params)
	if err != nil {
		return nil, eris.Wrap(err, "inat: species_counts")
	}

	var page SpeciesCountsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, eris.Wrap(err, "inat: species_counts parse response")
	}
	return &page, nil
}

// get issues a GET against path with params and returns the response body.
func (c *client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read body")
	}
	return body, nil
}
