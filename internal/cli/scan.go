package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/NeuralTrust/TrustScan/pkg/app/scan"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	var withDomain bool

	cmd := &cobra.Command{
		Use:   "scan <url>...",
		Short: "Score one or more URLs",
		Long: `Score one or more URLs and print the verdict for each.

Malformed input is still scored: it is reported as suspicious with an
explanation instead of failing the command.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateOutput(); err != nil {
				return err
			}
			c, _, err := opts.pipeline()
			if err != nil {
				return err
			}

			verdicts := make([]*verdict.Verdict, 0, len(args))
			for _, raw := range args {
				v, err := c.Scanner.Scan(cmd.Context(), raw, scan.Options{IncludeDomain: withDomain})
				if err != nil {
					return fmt.Errorf("scan %q: %w", raw, err)
				}
				verdicts = append(verdicts, v)
			}

			if opts.output == "json" {
				if len(verdicts) == 1 {
					return writeJSON(cmd.OutOrStdout(), verdicts[0])
				}
				return writeJSON(cmd.OutOrStdout(), verdicts)
			}
			return writeVerdictTable(cmd.OutOrStdout(), verdicts)
		},
	}

	cmd.Flags().BoolVar(&withDomain, "domain", false, "Run WHOIS and TLS enrichment")

	return cmd
}

func writeVerdictTable(w io.Writer, verdicts []*verdict.Verdict) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "URL\tPREDICTION\tRISK\tCONFIDENCE\tMODEL")
	for _, v := range verdicts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%s\n", v.URL, v.Prediction, v.RiskScore, v.Confidence, v.ModelUsed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, v := range verdicts {
		if len(v.Explanations) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n  - %s\n", v.URL, strings.Join(v.Explanations, "\n  - "))
	}
	return nil
}
