package main

import (
	"context"
	"fmt"
	"os"

	"github.com/NeuralTrust/TrustScan/internal/cli"
	"github.com/NeuralTrust/TrustScan/pkg/version"
)

func main() {
	if err := cli.NewRoot(version.Version).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
