package cli

import (
	"fmt"
	"strings"

	handlers "github.com/NeuralTrust/TrustScan/pkg/handlers/http"
	"github.com/spf13/cobra"
)

func newModelCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show which scorer is active and the model's training metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateOutput(); err != nil {
				return err
			}
			c, _, err := opts.pipeline()
			if err != nil {
				return err
			}
			info := handlers.NewModelInfo(c.Selector.Status())
			if opts.output == "json" {
				return writeJSON(cmd.OutOrStdout(), info)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "mode:      %s\n", info.Mode)
			fmt.Fprintf(w, "model:     %s\n", info.ModelName)
			if info.Loaded {
				fmt.Fprintf(w, "version:   %s (%s)\n", info.Version, info.Kind)
				fmt.Fprintf(w, "metrics:   f1 %.3f, accuracy %.3f, auc %.3f\n", *info.F1Score, *info.Accuracy, *info.AUC)
				fmt.Fprintf(w, "trained:   %s\n", info.TrainedOn)
				fmt.Fprintf(w, "features:  %d (%s)\n", info.NFeatures, strings.Join(info.FeatureNames, ", "))
			}
			if info.Degraded {
				fmt.Fprintf(w, "degraded:  %s\n", info.Reason)
			}
			return nil
		},
	}
}
