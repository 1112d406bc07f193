// Package cli wires the aidispatch command tree.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spetersoncode/aidispatch/client"
	"github.com/spetersoncode/aidispatch/internal/config"
	"github.com/spetersoncode/aidispatch/internal/metrics"
	"github.com/spetersoncode/aidispatch/store"
)

// Options holds CLI-level configuration.
type Options struct {
	// BaseURLs points providers at other endpoints.
	BaseURLs client.BaseURLs

	// LogOutput receives log lines. Defaults to stderr.
	LogOutput io.Writer
}

// app is built once per invocation, after flags are parsed.
type app struct {
	cfg       *config.Config
	client    *client.Client
	events    chan client.Event
	history   *store.History
	templates *store.Templates
	costs     *store.CostLedger
	metrics   *metrics.Recorder
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(opts Options) *cobra.Command {
	var (
		verbose   bool
		configDir string
	)
	a := &app{}

	root := &cobra.Command{
		Use:   "aidispatch",
		Short: "Send prompts to OpenAI, Anthropic or Gemini",
		Long: "aidispatch sends a prompt to the provider that serves the chosen model,\n" +
			"cleans up the answer for the requested format and records history and cost.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.LogOutput, verbose)
			if configDir == "" {
				configDir = config.Dir()
			}
			return a.init(cmd.Context(), configDir, opts, cmd.OutOrStdout())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and print usage details")
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default $AIDISPATCH_HOME or ~/.aidispatch)")

	root.AddCommand(
		newSendCommand(a, &verbose),
		newHistoryCommand(a),
		newTemplateCommand(a),
		newCostCommand(a),
		newModelsCommand(),
		newConfigCommand(a),
	)
	return root
}

func setupLogging(w io.Writer, verbose bool) {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (a *app) init(ctx context.Context, dir string, opts Options, stdout io.Writer) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.events = make(chan client.Event, 8)
	a.client = client.New(client.Config{
		APIKeys: client.APIKeys{
			OpenAI:    cfg.OpenAIAPIKey,
			Anthropic: cfg.AnthropicAPIKey,
			Gemini:    cfg.GeminiAPIKey,
		},
		BaseURLs: opts.BaseURLs,
		Vertex: client.Vertex{
			Project:  cfg.VertexProject,
			Location: cfg.VertexLocation,
		},
		StreamWriter: stdout,
		Events:       a.events,
	})
	a.history = store.NewHistory(store.NewFileAdapter(cfg.HistoryPath()))
	a.templates = store.NewTemplates(store.NewFileAdapter(cfg.TemplatesPath()))
	a.costs = store.NewCostLedger(store.NewFileAdapter(cfg.CostsPath()))

	if cfg.MetricsFile != "" {
		a.metrics = metrics.New()
		records, err := a.costs.List(ctx)
		if err != nil {
			slog.Warn("failed to seed metrics from cost ledger", "error", err)
		}
		a.metrics.Seed(records)
	}
	return nil
}

// flushMetrics records buffered client events and writes the textfile.
func (a *app) flushMetrics() {
	if a.metrics == nil {
		// Keep the channel from filling up across sends.
		for len(a.events) > 0 {
			<-a.events
		}
		return
	}
	a.metrics.Drain(a.events)
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		slog.Warn("failed to write metrics", "error", err)
	}
}
