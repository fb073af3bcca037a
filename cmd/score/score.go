// Package score implements the accuracy scoring command: ground-truth
// annotations and a predicted active space geometry in, confusion metrics
// out.
package score

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nps-soundscapes/activespace/internal/conf"
	"github.com/nps-soundscapes/activespace/internal/errors"
	"github.com/nps-soundscapes/activespace/internal/logging"
	"github.com/nps-soundscapes/activespace/internal/scoring"
)

// Command creates the score command for evaluating a predicted active space
// against annotated ground truth.
func Command(settings *conf.Settings) *cobra.Command {
	var includeInvalid bool

	cmd := &cobra.Command{
		Use:   "score [annotations.geojson] [activespace.geojson]",
		Short: "Score a predicted active space against ground-truth annotations",
		Long: `Test each annotated point for containment in the predicted active space
polygon and report precision, recall and the F-beta score. Both files must
be in the same planar coordinate system.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args[0], args[1], settings, includeInvalid)
		},
	}

	cmd.Flags().Float64Var(&settings.Analysis.Beta, "beta",
		settings.Analysis.Beta, "F-beta weighting; 1.0 weighs precision and recall equally")
	cmd.Flags().BoolVar(&includeInvalid, "include-invalid", false,
		"Score annotations that failed review as well")

	return cmd
}

func runScore(cmd *cobra.Command, annotationsPath, spacePath string, settings *conf.Settings, includeInvalid bool) error {
	log := logging.ForService("score")

	points, err := scoring.LoadAnnotations(annotationsPath)
	if err != nil {
		return err
	}
	if !includeInvalid {
		points = scoring.FilterValid(points)
	}
	log.Info("loaded annotations", "points", len(points), "include_invalid", includeInvalid)

	space, err := scoring.LoadActiveSpace(spacePath)
	if err != nil {
		return err
	}

	report, err := scoring.Score(points, space, settings.Analysis.Beta)
	if err != nil {
		// An undefined metric is a reportable outcome, not a crash: the
		// caller asked a question the data cannot answer.
		if errors.IsCategory(err, errors.CategoryUndefinedMetric) {
			log.Warn("metric undefined", "reason", err.Error())
			fmt.Fprintf(cmd.OutOrStdout(), "not applicable: %s\n", err.Error())
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "n_total    %d\n", report.NTotal)
	fmt.Fprintf(out, "tp         %d\n", report.TruePositives)
	fmt.Fprintf(out, "fp         %d\n", report.FalsePositives)
	fmt.Fprintf(out, "fn         %d\n", report.FalseNegatives)
	fmt.Fprintf(out, "precision  %.4f\n", report.Precision)
	fmt.Fprintf(out, "recall     %.4f\n", report.Recall)
	fmt.Fprintf(out, "fbeta      %.4f (beta=%.2f)\n", report.FBeta, settings.Analysis.Beta)
	return nil
}
