package inat

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

// RankLevelPhylum is the iNaturalist rank level for phyla.
const RankLevelPhylum = 60

// TaxaPage is one page of a rank-level taxa listing.
type TaxaPage struct {
	TotalResults int         `json:"total_results"`
	Page         int         `json:"page"`
	PerPage      int         `json:"per_page"`
	Results      []TaxonInfo `json:"results"`
}

// TaxonInfo is a bare taxon from the taxa endpoint.
type TaxonInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TaxaAtRank fetches one page of taxa at the given rank level.
func (c *client) TaxaAtRank(ctx context.Context, rankLevel, perPage, page int) (*TaxaPage, error) {
	params := url.Values{
		"rank_level": {strconv.Itoa(rankLevel)},
		"per_page":   {strconv.Itoa(perPage)},
		"page":       {strconv.Itoa(page)},
	}

	if err := c.gate(ctx, "taxa", params); err != nil {
		return nil, eris.Wrap(err, "inat: taxa rate gate")
	}

	body, err := c.get(ctx, "/taxa", params)
	if err != nil {
		return nil, eris.Wrap(err, "inat: taxa")
	}

	var result TaxaPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "inat: taxa parse response")
	}
	return &result, nil
}
