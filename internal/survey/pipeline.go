package survey

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fmr-conservancy/inat-survey/pkg/inat"
)

// Options configures a survey run.
type Options struct {
	PlaceID      int
	QualityGrade string
	PerPage      int
	MaxPages     int
	FilterIDs    map[int]bool // empty means no filtering
}

// Collector runs the aggregation pipeline: paginated species listing,
// taxonomy classification, histogram reconciliation.
type Collector struct {
	client     inat.Client
	classifier *Classifier
	opts       Options
	log        *zap.Logger
}

// NewCollector creates a Collector for one run.
func NewCollector(client inat.Client, classifier *Classifier, opts Options) *Collector {
	return &Collector{
		client:     client,
		classifier: classifier,
		opts:       opts,
		log: zap.L().Named("survey").With(
			zap.String("run_id", uuid.NewString()),
			zap.Int("place_id", opts.PlaceID),
		),
	}
}

// Run executes the pipeline and returns finalized records in first-seen
// listing order. A listing page failure aborts the run; per-species histogram
// failures and classification failures degrade locally.
func (c *Collector) Run(ctx context.Context) ([]*SpeciesRecord, error) {
	entries, err := c.fetchSpecies(ctx)
	if err != nil {
		return nil, err
	}
	c.log.Info("species listing complete", zap.Int("species", len(entries)))

	records, order := c.buildRecords(ctx, entries)
	c.reconcileHistograms(ctx, records, order)

	out := make([]*SpeciesRecord, 0, len(order))
	for _, id := range order {
		out = append(out, records[id])
	}
	return out, nil
}

// fetchSpecies paginates the species-counts listing, applying the optional
// taxon-id filter per page. Page counting and termination are measured on the
// unfiltered page, so a heavily filtered place can hit the ceiling before
// exhausting genuinely matching data.
func (c *Collector) fetchSpecies(ctx context.Context) ([]inat.SpeciesCount, error) {
	var entries []inat.SpeciesCount

	for page := 1; ; page++ {
		resp, err := c.client.SpeciesCounts(ctx, inat.SpeciesCountsQuery{
			PlaceID:      c.opts.PlaceID,
			QualityGrade: c.opts.QualityGrade,
			PerPage:      c.opts.PerPage,
			Page:         page,
		})
		if err != nil {
			return nil, eris.Wrapf(err, "survey: fetch species page %d", page)
		}

		if len(resp.Results) == 0 {
			c.log.Info("no more listing results", zap.Int("page", page))
			break
		}

		retained := resp.Results
		if len(c.opts.FilterIDs) > 0 {
			retained = make([]inat.SpeciesCount, 0, len(resp.Results))
			for _, entry := range resp.Results {
				if c.opts.FilterIDs[entry.Taxon.ID] {
					retained = append(retained, entry)
				}
			}
		}
		entries = append(entries, retained...)

		c.log.Info("fetched listing page",
			zap.Int("page", page),
			zap.Int("results", len(resp.Results)),
			zap.Int("retained", len(retained)),
		)

		if page >= c.opts.MaxPages {
			c.log.Info("reached listing page ceiling", zap.Int("max_pages", c.opts.MaxPages))
			break
		}
	}

	return entries, nil
}

// buildRecords creates one SpeciesRecord per listing entry, classified by its
// ancestor ids. Records are keyed by taxon id: a duplicate id across pages
// overwrites the earlier entry (last page wins) without changing its position
// in the ordering.
func (c *Collector) buildRecords(ctx context.Context, entries []inat.SpeciesCount) (map[int]*SpeciesRecord, []int) {
	records := make(map[int]*SpeciesRecord, len(entries))
	order := make([]int, 0, len(entries))
	var unknownKingdom []int

	for _, entry := range entries {
		kingdom, phylum := c.classifier.Classify(ctx, entry.Taxon.AncestorIDs)

		if _, seen := records[entry.Taxon.ID]; !seen {
			order = append(order, entry.Taxon.ID)
		}
		records[entry.Taxon.ID] = &SpeciesRecord{
			TaxonID:         entry.Taxon.ID,
			IconicTaxonName: entry.Taxon.IconicTaxonName,
			Kingdom:         kingdom,
			Phylum:          phylum,
			CommonName:      entry.Taxon.PreferredCommonName,
			LatinName:       entry.Taxon.Name,
			Count:           entry.Count,
		}

		if !kingdom.Resolved {
			unknownKingdom = append(unknownKingdom, entry.Taxon.ID)
		}
	}

	if len(unknownKingdom) > 0 {
		c.log.Warn("taxa with unresolved kingdom", zap.Ints("taxon_ids", unknownKingdom))
	}
	return records, order
}

// reconcileHistograms backfills every all-zero histogram with an individual
// per-species fetch, then finalizes peak months. Individual fetch failures
// leave the histogram zeroed and are never retried.
func (c *Collector) reconcileHistograms(ctx context.Context, records map[int]*SpeciesRecord, order []int) {
	var pending []int
	for _, id := range order {
		if records[id].Histogram.IsZero() {
			pending = append(pending, id)
		}
	}
	if len(pending) > 0 {
		c.log.Info("fetching histograms individually", zap.Int("species", len(pending)))
	}

	for _, id := range pending {
		rec := records[id]
		months, err := c.client.ObservationHistogram(ctx, inat.HistogramQuery{
			TaxonID:      id,
			PlaceID:      c.opts.PlaceID,
			QualityGrade: c.opts.QualityGrade,
		})
		if err != nil {
			c.log.Warn("histogram fetch failed, keeping zeros",
				zap.Int("taxon_id", id),
				zap.String("latin_name", rec.LatinName),
				zap.Error(err),
			)
			continue
		}
		rec.Histogram = HistogramFromMonths(months)

		if rec.Histogram.IsZero() {
			c.log.Warn("still no histogram data",
				zap.Int("taxon_id", id),
				zap.String("latin_name", rec.LatinName),
			)
		}
	}

	var stillEmpty []string
	for _, id := range order {
		rec := records[id]
		rec.PeakMonth = rec.Histogram.PeakMonth()
		if rec.PeakMonth == NoData {
			stillEmpty = append(stillEmpty, fmt.Sprintf("%d - %s (K: %s, P: %s)",
				rec.TaxonID, rec.LatinName, rec.Kingdom, rec.Phylum))
		}
	}
	if len(stillEmpty) > 0 {
		c.log.Warn("species without histogram data", zap.Strings("species", stillEmpty))
	}
	c.log.Info("run complete",
		zap.Int("species", len(order)),
		zap.Int("no_data", len(stillEmpty)),
	)
}
