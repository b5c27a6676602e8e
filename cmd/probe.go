package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fmr-conservancy/inat-survey/pkg/inat"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Issue single API calls for inspection",
}

var probeSpeciesCountsCmd = &cobra.Command{
	Use:   "species-counts",
	Short: "Fetch one species-counts listing page",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		page, _ := cmd.Flags().GetInt("page")
		resp, err := newAPIClient().SpeciesCounts(ctx, inat.SpeciesCountsQuery{
			PlaceID:      cfg.Survey.PlaceID,
			QualityGrade: cfg.Survey.QualityGrade,
			PerPage:      cfg.Survey.PerPage,
			Page:         page,
		})
		if err != nil {
			return eris.Wrap(err, "probe: species counts")
		}
		return printJSON(cmd, resp)
	},
}

var probePhylaCmd = &cobra.Command{
	Use:   "phyla",
	Short: "Fetch one page of phylum-rank taxa",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		page, _ := cmd.Flags().GetInt("page")
		resp, err := newAPIClient().TaxaAtRank(ctx, inat.RankLevelPhylum, cfg.Survey.PhylumPageSize, page)
		if err != nil {
			return eris.Wrap(err, "probe: phyla")
		}
		return printJSON(cmd, resp)
	},
}

var probeHistogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Fetch the monthly histogram for one taxon",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		taxonID, _ := cmd.Flags().GetInt("taxon-id")
		if taxonID == 0 {
			return eris.New("probe: --taxon-id is required")
		}
		months, err := newAPIClient().ObservationHistogram(ctx, inat.HistogramQuery{
			TaxonID:      taxonID,
			PlaceID:      cfg.Survey.PlaceID,
			QualityGrade: cfg.Survey.QualityGrade,
		})
		if err != nil {
			return eris.Wrap(err, "probe: histogram")
		}
		return printJSON(cmd, months)
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "probe: marshal response")
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func init() {
	probeSpeciesCountsCmd.Flags().Int("page", 1, "listing page to fetch")
	probePhylaCmd.Flags().Int("page", 1, "taxa page to fetch")
	probeHistogramCmd.Flags().Int("taxon-id", 0, "taxon to fetch the histogram for")

	probeCmd.AddCommand(probeSpeciesCountsCmd, probePhylaCmd, probeHistogramCmd)
	rootCmd.AddCommand(probeCmd)
}
