package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	ai "github.com/spetersoncode/aidispatch"
	"github.com/spetersoncode/aidispatch/output"
	"github.com/spetersoncode/aidispatch/postprocess"
)

type sendFlags struct {
	model       string
	provider    string
	format      string
	files       []string
	output      string
	overwrite   bool
	temperature float64
	maxTokens   int
	stream      bool
	template    string
}

func newSendCommand(a *app, verbose *bool) *cobra.Command {
	var f sendFlags

	cmd := &cobra.Command{
		Use:   "send [prompt...]",
		Short: "Send a prompt to a model",
		Long: "Send a prompt to a model. The provider is chosen from --provider, or\n" +
			"from the model name, falling back to OpenAI.",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.buildRequest(cmd, f, args)
			if err != nil {
				return err
			}
			return a.send(cmd, req, *verbose)
		},
	}

	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Model name (default from config)")
	cmd.Flags().StringVarP(&f.provider, "provider", "p", "", "Provider: openai, anthropic, gemini or auto")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: json, markdown, text or typescript")
	cmd.Flags().StringArrayVar(&f.files, "file", nil, "Input file to include (repeatable)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the response to this file")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Replace an existing output file")
	cmd.Flags().Float64VarP(&f.temperature, "temperature", "t", ai.DefaultTemperature, "Sampling temperature")
	cmd.Flags().IntVar(&f.maxTokens, "max-tokens", 0, "Maximum tokens to generate (provider default if 0)")
	cmd.Flags().BoolVarP(&f.stream, "stream", "s", false, "Stream the response (Gemini only)")
	cmd.Flags().StringVar(&f.template, "template", "", "Start the prompt from a saved template")
	return cmd
}

func (a *app) buildRequest(cmd *cobra.Command, f sendFlags, args []string) (ai.Request, error) {
	prompt := strings.Join(args, " ")
	if f.template != "" {
		tmpl, ok, err := a.templates.Get(cmd.Context(), f.template)
		if err != nil {
			return ai.Request{}, err
		}
		if !ok {
			return ai.Request{}, fmt.Errorf("template %q not found", f.template)
		}
		if prompt != "" {
			prompt = tmpl.Prompt + "\n\n" + prompt
		} else {
			prompt = tmpl.Prompt
		}
	}
	if strings.TrimSpace(prompt) == "" {
		return ai.Request{}, ai.ErrEmptyPrompt
	}

	providerName := f.provider
	if providerName == "" {
		providerName = a.cfg.DefaultProvider
	}
	provider, err := ai.ParseProvider(providerName)
	if err != nil {
		return ai.Request{}, err
	}

	formatName := f.format
	if formatName == "" {
		formatName = a.cfg.DefaultFormat
	}
	format, err := ai.ParseFormat(formatName)
	if err != nil {
		return ai.Request{}, err
	}

	model := f.model
	if model == "" {
		model = a.cfg.DefaultModel
	}

	req := ai.Request{
		Prompt:     prompt,
		Model:      model,
		Provider:   provider,
		Format:     format,
		InputFiles: f.files,
		OutputFile: f.output,
		Overwrite:  f.overwrite,
		MaxTokens:  f.maxTokens,
		Stream:     f.stream,
	}
	if cmd.Flags().Changed("temperature") {
		t := f.temperature
		req.Temperature = &t
	}
	return req, nil
}

func (a *app) send(cmd *cobra.Command, req ai.Request, verbose bool) error {
	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()

	resp, err := a.client.Send(ctx, req)
	a.flushMetrics()
	if err != nil {
		return err
	}

	if _, err := a.history.Add(ctx, req, resp); err != nil {
		slog.Warn("failed to save history", "error", err)
	}
	if _, err := a.costs.Append(ctx, resp); err != nil {
		slog.Warn("failed to record cost", "error", err)
	}

	var opts []postprocess.Option
	if a.cfg.RepairJSON {
		opts = append(opts, postprocess.WithJSONRepair())
	}
	result := postprocess.Process(resp.Content, req.Format, opts...)
	for _, w := range result.Warnings {
		slog.Warn("output format warning", "error", w)
	}

	if verbose {
		printUsage(cmd.ErrOrStderr(), resp)
	}

	if resp.Streamed && req.OutputFile == "" {
		// Already echoed chunk by chunk.
		_, err := io.WriteString(stdout, "\n")
		return err
	}
	if err := output.Write(stdout, req.OutputFile, result.Content, req.Overwrite); err != nil {
		return err
	}
	if req.OutputFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Response written to %s\n", req.OutputFile)
	}
	return nil
}

func printUsage(w io.Writer, resp *ai.Response) {
	fmt.Fprintf(w, "provider: %s  model: %s\n", resp.Provider, resp.Model)
	if u := resp.Usage; u != nil {
		fmt.Fprintf(w, "tokens: %d prompt + %d completion = %d  cost: $%.6f\n",
			u.PromptTokens, u.CompletionTokens, u.TotalTokens, u.Cost)
	}
}
