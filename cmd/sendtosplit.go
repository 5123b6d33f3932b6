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

var sendToSplitCmd = &cobra.Command{
	Use:   "send-to-split [--target=<target>] [--class=<class>] <text>...",
	Short: "Send text to a split in a running weft instance",
	Long: `Send text to an existing split pane in a running weft instance.

Everything from the first non-flag word onward is the text to send;
several words are joined with single spaces, and whitespace inside a
quoted word survives untouched. The target may be a split index, a
split id, or the literal "focused".`,
	Example: `  weftctl send-to-split --target=2 "vim file.txt"
  weftctl send-to-split --target=focused ls -la
  weftctl send-to-split --class=work make test`,

	// The trailing text must reach the run function untouched, so flag
	// parsing is done there instead of by cobra.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, argv []string) error {
		return runSendToSplit(cmd, argv)
	},
}

func init() {
	sendToSplitCmd.Flags().String("target", "focused", `split to send to: index, id, or "focused"`)
	sendToSplitCmd.Flags().String("class", "", "address the instance with this class (default: auto-detect)")
	rootCmd.AddCommand(sendToSplitCmd)
}

func runSendToSplit(cmd *cobra.Command, argv []string) error {
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
	lenient, err := args.ParseLenient(fs, cfg.Defaults.SendToSplit)
	if err != nil {
		return fmt.Errorf("config defaults: %w", err)
	}
	printWarnings(lenient.Warnings)
	metrics.RecordParseWarnings(ctx, action.VerbSendToSplit, len(lenient.Warnings))

	res, err := args.Parse(fs, args.FreeText(), argv)
	if errors.Is(err, args.ErrHelp) {
		return cmd.Help()
	}
	if err != nil {
		return err
	}

	tgt, _ := fs.GetString("target")
	payload, err := action.SendToSplitCommand(tgt, res.Capture)
	if err != nil {
		return report.Hinted(err, cmd.CommandPath())
	}

	class, _ := fs.GetString("class")
	return deliver(ctx, cfg, metrics, class, payload)
}
