package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/NeuralTrust/TrustScan/pkg/app/scan"
	"github.com/spf13/cobra"
)

func newFeaturesCmd(opts *rootOptions) *cobra.Command {
	var withDomain bool

	cmd := &cobra.Command{
		Use:   "features <url>",
		Short: "Print the feature vector extracted from a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateOutput(); err != nil {
				return err
			}
			c, _, err := opts.pipeline()
			if err != nil {
				return err
			}
			report, err := c.Scanner.Features(cmd.Context(), args[0], scan.Options{IncludeDomain: withDomain})
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return writeJSON(cmd.OutOrStdout(), report)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n\n", report.NormalizedURL)
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, entry := range report.Features.Entries() {
				fmt.Fprintf(tw, "%s\t%s\n", entry.Name, entry.Value)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&withDomain, "domain", false, "Run WHOIS and TLS enrichment")

	return cmd
}
