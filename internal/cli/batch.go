package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/NeuralTrust/TrustScan/pkg/app/batch"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/spf13/cobra"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var (
		file       string
		withDomain bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "batch --file <path>",
		Short: "Score a list of URLs read from a file",
		Long: `Score a list of URLs, one per line. Blank lines and lines starting with
'#' are skipped. Use '-' to read from stdin.

Lists longer than batch.max_upload_count (or --limit) are truncated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateOutput(); err != nil {
				return err
			}
			urls, err := readURLs(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			c, cfg, err := opts.pipeline()
			if err != nil {
				return err
			}
			if limit <= 0 || limit > cfg.Batch.MaxUploadCount {
				limit = cfg.Batch.MaxUploadCount
			}

			res, err := c.Orchestrator.Run(cmd.Context(), urls, batch.Options{
				IncludeDomain: withDomain,
				MaxCount:      limit,
			})
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return writeBatchTable(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File with one URL per line ('-' for stdin)")
	cmd.Flags().BoolVar(&withDomain, "domain", false, "Run WHOIS and TLS enrichment")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of URLs to scan (capped by batch.max_upload_count)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readURLs(stdin io.Reader, file string) ([]string, error) {
	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(filepath.Clean(file))
		if err != nil {
			return nil, fmt.Errorf("open url list: %w", err)
		}
		defer f.Close()
		r = f
	}

	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url list: %w", err)
	}
	return urls, nil
}

func writeBatchTable(w io.Writer, res *verdict.BatchResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tURL\tPREDICTION\tRISK\tDETAIL")
	for _, item := range res.Results {
		if item.Failed() {
			fmt.Fprintf(tw, "%d\t%s\terror\t-\t%v\n", item.Index, item.URL, item.Err)
			continue
		}
		v := item.Verdict
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", item.Index, item.URL, v.Prediction, v.RiskScore, v.ModelUsed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nscanned %d, threats %d (phishing %d, suspicious %d), legitimate %d, errors %d",
		res.Count, res.ThreatCount, res.Stats.Phishing, res.Stats.Suspicious, res.Stats.Legitimate, res.Stats.Error)
	if res.Truncated {
		fmt.Fprint(w, ", list truncated")
	}
	fmt.Fprintln(w)
	return nil
}
