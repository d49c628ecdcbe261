package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/NeuralTrust/TrustScan/pkg/config"
	"github.com/NeuralTrust/TrustScan/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/TrustScan/pkg/infra/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	output     string
}

func NewRoot(version string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "scanctl",
		Short:         "scanctl: score URLs for phishing risk from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("scanctl {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", getenvDefault("CONFIG_PATH", "./config"), "directory holding config.yaml")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, json")

	cmd.AddCommand(newScanCmd(opts))
	cmd.AddCommand(newBatchCmd(opts))
	cmd.AddCommand(newFeaturesCmd(opts))
	cmd.AddCommand(newModelCmd(opts))

	return cmd
}

// pipeline builds the same scanner the API serves, without the HTTP layer.
func (o *rootOptions) pipeline() (*dependency_container.Container, *config.Config, error) {
	if err := config.Load(o.configPath); err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	cfg := config.GetConfig()
	c, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: infraLogger.NewConsoleLogger(),
	})
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

func (o *rootOptions) validateOutput() error {
	switch o.output {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", o.output)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
