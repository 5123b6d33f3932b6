package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weft-term/weftctl/internal/action"
	"github.com/weft-term/weftctl/internal/args"
	"github.com/weft-term/weftctl/internal/config"
	telem "github.com/weft-term/weftctl/internal/otel"
	"github.com/weft-term/weftctl/internal/report"
)

var newSplitCmd = &cobra.Command{
	Use:   "new-split [--direction=<dir>] [--class=<class>] [-e <command>...]",
	Short: "Open a new split pane in a running weft instance",
	Long: `Open a new split pane in a running weft instance.

The split runs the default shell unless -e is given. Everything after
-e is the command to run in the new split, passed through verbatim
with its token boundaries intact (no shell quoting, no re-splitting).`,
	Example: `  weftctl new-split --direction=right
  weftctl new-split --direction=down -e vim file.txt
  weftctl new-split --class=work -e tail -f /var/log/syslog`,

	// Tokens after -e must reach the run function untouched, so flag
	// parsing is done there instead of by cobra.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, argv []string) error {
		return runNewSplit(cmd, argv)
	},
}

func init() {
	newSplitCmd.Flags().String("direction", "auto", "where to place the split: right, down, left, up, auto")
	newSplitCmd.Flags().String("class", "", "address the instance with this class (default: auto-detect)")
	rootCmd.AddCommand(newSplitCmd)
}

func runNewSplit(cmd *cobra.Command, argv []string) error {
	ctx := cmd.Context()

	// Load configuration: defaults -> config file -> env vars.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tel := setupTelemetry(ctx, cfg)
	var metrics *telem.Metrics
	if tel != nil {
		defer tel.Shutdown(ctx)
		metrics = tel.Metrics
	}

	fs := cmd.Flags()

	// Config defaults first, leniently: a typo in the config file must
	// not break every invocation.
	lenient, err := args.ParseLenient(fs, cfg.Defaults.NewSplit)
	if err != nil {
		return fmt.Errorf("config defaults: %w", err)
	}
	printWarnings(lenient.Warnings)
	metrics.RecordParseWarnings(ctx, action.VerbNewSplit, len(lenient.Warnings))

	res, err := args.Parse(fs, args.ExecSentinel("-e"), argv)
	if errors.Is(err, args.ErrHelp) {
		return cmd.Help()
	}
	if err != nil {
		return err
	}
	if len(res.Stray) > 0 {
		return report.Hinted(
			fmt.Errorf("unexpected argument %q (use -e to run a command)", res.Stray[0]),
			cmd.CommandPath())
	}

	direction, _ := fs.GetString("direction")
	payload, err := action.NewSplitCommand(direction, res.Capture, res.Captured)
	if err != nil {
		return report.Hinted(err, cmd.CommandPath())
	}

	class, _ := fs.GetString("class")
	return deliver(ctx, cfg, metrics, class, payload)
}
