package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/weft-term/weftctl/internal/action"
	"github.com/weft-term/weftctl/internal/config"
	"github.com/weft-term/weftctl/internal/ipc"
	telem "github.com/weft-term/weftctl/internal/otel"
	"github.com/weft-term/weftctl/internal/report"
	"github.com/weft-term/weftctl/internal/target"
)

// Version is injected at build time via -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "weftctl",
	Short: "Send commands to a running weft instance",
	Long: `weftctl sends structured commands to an already-running weft terminal
multiplexer over its per-instance control socket.

Two commands are supported: new-split opens a split pane, and
send-to-split types text into an existing one. weftctl only delivers
the command; the receiving instance decides how to act on it.

Configuration is loaded from .weftctl.yaml or environment variables.
See the README for all configuration options.`,
	Version: Version,

	// Errors are printed by Execute with the message policy each kind
	// of failure calls for, so cobra's own reporting stays off.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. On failure it prints the diagnostic
// and exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(report.Exit(os.Stderr, err))
	}
}

// setupTelemetry wires the build version into OTEL and initializes it
// (no-op if no endpoint configured). Returns nil when init fails; the
// command proceeds without telemetry.
func setupTelemetry(ctx context.Context, cfg *config.Config) *telem.Telemetry {
	telem.Version = Version
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
		return nil
	}
	return tel
}

// printWarnings surfaces lenient-parse diagnostics without failing the
// command.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// deliver sends one payload to the instance selected by class and maps
// the delivery outcome onto the command's error result. An empty class
// falls back to the configured one, and failing that to auto-detection.
func deliver(ctx context.Context, cfg *config.Config, metrics *telem.Metrics, class string, payload action.Payload) error {
	if class == "" {
		class = cfg.Class
	}

	client := &ipc.Client{
		Transport: &ipc.SocketTransport{
			Dir:     cfg.SocketDir,
			Timeout: cfg.DialTimeoutDuration,
		},
		Metrics: metrics,
	}
	return report.FromOutcome(client.Deliver(ctx, target.Resolve(class), payload))
}
