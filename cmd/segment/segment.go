// Package segment implements the audibility segmentation command: NVSPL
// measurement files in, noise and noise-free interval tables out.
package segment

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nps-soundscapes/activespace/internal/audibility"
	"github.com/nps-soundscapes/activespace/internal/conf"
	"github.com/nps-soundscapes/activespace/internal/errors"
	"github.com/nps-soundscapes/activespace/internal/logging"
	"github.com/nps-soundscapes/activespace/internal/nvspl"
)

// Command creates the segment command for deriving noise intervals from
// NVSPL measurement files.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment [nvspl.txt ...]",
		Short: "Segment NVSPL measurements into noise and noise-free intervals",
		Long: `Derive a per-second audibility series from NVSPL sound pressure levels,
segment it into closed noise and noise-free intervals, and report duration
statistics for both sides.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSegment(cmd, args, settings)
		},
	}

	cmd.Flags().StringVar(&settings.Analysis.Audibility.Band, "band",
		settings.Analysis.Audibility.Band, "Level band to derive the series from (dbA, dbC, dbF or an octave key such as 12.5)")
	cmd.Flags().Float64Var(&settings.Analysis.Audibility.Threshold, "threshold",
		settings.Analysis.Audibility.Threshold, "Level at or above which a second counts as noise")
	cmd.Flags().BoolVar(&settings.Analysis.Audibility.Invert, "invert",
		settings.Analysis.Audibility.Invert, "Invert detection semantics (input encodes quiet as detection)")

	return cmd
}

func runSegment(cmd *cobra.Command, args []string, settings *conf.Settings) error {
	log := logging.ForService("segment")

	ds, err := nvspl.ReadFiles(args)
	if err != nil {
		return err
	}
	log.Info("loaded NVSPL records", "files", len(args), "records", len(ds.Records))

	series, err := nvspl.AudibilitySeries(ds, settings.Analysis.Audibility.Band, settings.Analysis.Audibility.Threshold)
	if err != nil {
		return err
	}
	noise, noiseFree, err := audibility.Segment(series, settings.Analysis.Audibility.Invert)
	if err != nil {
		return err
	}

	noiseSum, freeSum, err := audibility.SummarizePair(noise, noiseFree)
	if err != nil {
		// A series that is all noise or all quiet legitimately has one empty
		// side; anything else is a real failure.
		if !errors.IsCategory(err, errors.CategoryEmptyComplement) {
			return err
		}
		log.Warn("one-sided series", "reason", err.Error())
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "side\tintervals\tsteps\tmean\tstdev\tmedian\tmad\n")
	writeSummary(w, "noise", noise, noiseSum)
	writeSummary(w, "noise-free", noiseFree, freeSum)
	return w.Flush()
}

func writeSummary(w *tabwriter.Writer, side string, set audibility.IntervalSet, summary *audibility.DurationSummary) {
	if summary == nil {
		fmt.Fprintf(w, "%s\t0\t0\t-\t-\t-\t-\n", side)
		return
	}
	fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
		side, len(set), set.TotalSteps(), summary.Mean, summary.StdDev, summary.Median, summary.MAD)
}
