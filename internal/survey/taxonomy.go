package survey

import (
	"context"

	"go.uber.org/zap"

	"github.com/fmr-conservancy/inat-survey/pkg/inat"
)

// Label is a taxonomy rank value. Resolved distinguishes a real name from the
// degraded "couldn't classify" state so callers don't compare sentinel strings.
type Label struct {
	Name     string
	Resolved bool
}

// String renders the label for output, degrading unresolved values to "Unknown".
func (l Label) String() string {
	if !l.Resolved {
		return "Unknown"
	}
	return l.Name
}

func unresolved() Label {
	return Label{}
}

// kingdomIDs maps iNaturalist kingdom taxon ids to kingdom names. Ancestor id
// sequences carry the kingdom at position 1 (position 0 is the root).
var kingdomIDs = map[int]string{
	1:      "Animalia",
	47126:  "Plantae",
	47170:  "Fungi",
	48222:  "Chromista",
	47686:  "Protozoa",
	67333:  "Bacteria",
	151817: "Archaea",
}

// Classifier maps ancestor-id sequences to (kingdom, phylum) labels. The
// kingdom table is fixed; the phylum table is fetched from the API once, on
// first use, and cached for the rest of the run.
type Classifier struct {
	client   inat.Client
	log      *zap.Logger
	pageSize int
	maxPages int

	phyla     map[int]string
	populated bool
}

// NewClassifier creates a Classifier with an empty phylum cache.
func NewClassifier(client inat.Client, pageSize, maxPages int) *Classifier {
	return &Classifier{
		client:   client,
		log:      zap.L().Named("taxonomy"),
		pageSize: pageSize,
		maxPages: maxPages,
		phyla:    make(map[int]string),
	}
}

// Classify resolves kingdom and phylum from an ancestor-id sequence.
// Classification never fails: missing or malformed data degrades to
// unresolved labels so one bad taxon can't stop the run.
func (c *Classifier) Classify(ctx context.Context, ancestorIDs []int) (kingdom, phylum Label) {
	kingdom, phylum = unresolved(), unresolved()

	if len(ancestorIDs) > 1 {
		if name, ok := kingdomIDs[ancestorIDs[1]]; ok {
			kingdom = Label{Name: name, Resolved: true}
		}
	}

	if len(ancestorIDs) > 2 {
		if name, ok := c.ensurePhyla(ctx)[ancestorIDs[2]]; ok {
			phylum = Label{Name: name, Resolved: true}
		}
	}

	return kingdom, phylum
}

// ensurePhyla returns the phylum cache, building it on first call. The fetch
// happens at most once per run: a partial or failed build is kept as-is and
// later lookups degrade to unresolved rather than refetching.
func (c *Classifier) ensurePhyla(ctx context.Context) map[int]string {
	if c.populated {
		return c.phyla
	}
	c.populated = true

	c.log.Info("building phylum cache", zap.Int("rank_level", inat.RankLevelPhylum))

	for page := 1; page <= c.maxPages; page++ {
		resp, err := c.client.TaxaAtRank(ctx, inat.RankLevelPhylum, c.pageSize, page)
		if err != nil {
			c.log.Warn("phylum cache build aborted, keeping partial cache",
				zap.Int("page", page),
				zap.Int("cached", len(c.phyla)),
				zap.Error(err),
			)
			return c.phyla
		}
		if len(resp.Results) == 0 {
			break
		}
		for _, taxon := range resp.Results {
			c.phyla[taxon.ID] = taxon.Name
		}
		if page == c.maxPages {
			// Anything beyond the page ceiling resolves to Unknown for
			// the rest of the run.
			c.log.Warn("phylum cache truncated at page ceiling", zap.Int("max_pages", c.maxPages))
		}
	}

	c.log.Info("phylum cache built", zap.Int("phyla", len(c.phyla)))
	return c.phyla
}
