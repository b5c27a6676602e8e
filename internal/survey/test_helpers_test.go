package survey

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/fmr-conservancy/inat-survey/pkg/inat"
)

// fakeClient is a scripted inat.Client for pipeline and taxonomy tests.
type fakeClient struct {
	// speciesPages[i] is returned for listing page i+1; pages beyond the
	// script are empty. speciesErrs overrides a page with an error.
	speciesPages [][]inat.SpeciesCount
	speciesErrs  map[int]error
	speciesCalls []int

	// taxaPages[i] is returned for taxa page i+1.
	taxaPages    [][]inat.TaxonInfo
	taxaErrs     map[int]error
	taxaCalls    int
	taxaRankLvls []int

	// histograms holds per-taxon sparse month data; histErrs per-taxon failures.
	histograms map[int]map[int]int
	histErrs   map[int]error
	histCalls  []int
}

func (f *fakeClient) SpeciesCounts(_ context.Context, q inat.SpeciesCountsQuery) (*inat.SpeciesCountsPage, error) {
	f.speciesCalls = append(f.speciesCalls, q.Page)
	if err := f.speciesErrs[q.Page]; err != nil {
		return nil, err
	}
	page := &inat.SpeciesCountsPage{Page: q.Page, PerPage: q.PerPage}
	if q.Page <= len(f.speciesPages) {
		page.Results = f.speciesPages[q.Page-1]
	}
	return page, nil
}

func (f *fakeClient) TaxaAtRank(_ context.Context, rankLevel, _, page int) (*inat.TaxaPage, error) {
	f.taxaCalls++
	f.taxaRankLvls = append(f.taxaRankLvls, rankLevel)
	if err := f.taxaErrs[page]; err != nil {
		return nil, err
	}
	resp := &inat.TaxaPage{Page: page}
	if page <= len(f.taxaPages) {
		resp.Results = f.taxaPages[page-1]
	}
	return resp, nil
}

func (f *fakeClient) ObservationHistogram(_ context.Context, q inat.HistogramQuery) (map[int]int, error) {
	f.histCalls = append(f.histCalls, q.TaxonID)
	if err := f.histErrs[q.TaxonID]; err != nil {
		return nil, err
	}
	if months, ok := f.histograms[q.TaxonID]; ok {
		return months, nil
	}
	return map[int]int{}, nil
}

var errFakeAPI = eris.New("fake api failure")

// entry builds a listing entry with the given taxon id, count, and ancestry.
func entry(id, count int, ancestors []int, latin string) inat.SpeciesCount {
	return inat.SpeciesCount{
		Count: count,
		Taxon: inat.Taxon{
			ID:          id,
			Name:        latin,
			AncestorIDs: ancestors,
		},
	}
}
