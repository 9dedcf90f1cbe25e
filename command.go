package main

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/urfave/cli/v3"

	"product_design_agent/config"
	"product_design_agent/generator"
	"product_design_agent/logger"
	"product_design_agent/publisher"
)

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "prd-design",
		Usage:     "Turn a product requirements document into a structured design package",
		ArgsUsage: "[PRD_PATH]",
		Description: "Reads the PRD file (or the provider's default input), embeds it in the " +
			"ProductDesignAgent prompt and prints the streamed model response.",
		Writer:          a.stdout,
		ErrWriter:       a.stderr,
		HideVersion:     true,
		HideHelpCommand: true,
		ExitErrHandler:  func(context.Context, *cli.Command, error) {},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return cli.Exit("Incorrect Usage: "+err.Error(), exitConfig)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "model provider: groq, anthropic, mock or a provider from the config file",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "override the provider's model identifier",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "override the provider's API base URL",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output policy: text (filtered, trimmed) or raw (every event as JSON)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   string(publisher.FormatMarkdown),
				Usage:   "design rendering for text output: markdown or html (not allowed with --output raw)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (yaml, toml or json); defaults to prd-design.yaml if present",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "abort the provider call after this long (0 disables)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logs",
			},
		},
		Action: a.run,
	}
}

func (a *app) run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return cli.Exit("expected at most one PRD path", exitConfig)
	}
	log := logger.New(a.stderr, cmd.Bool("verbose"), a.getenv)

	cfgPath, required := cmd.String("config"), cmd.IsSet("config")
	if !required {
		cfgPath = config.Discover(a.workDir)
	}
	cfg, err := config.Load(cfgPath, required)
	if err != nil {
		return cli.Exit(err, exitConfig)
	}

	// credentials are read here, before the PRD and before any network call
	p, err := cfg.Resolve(cmd.String("provider"), a.getenv)
	if err != nil {
		return cli.Exit(err, exitConfig)
	}
	if cmd.IsSet("model") {
		p.Model = cmd.String("model")
	}
	if cmd.IsSet("base-url") {
		p.BaseURL = cmd.String("base-url")
	}
	if cmd.IsSet("output") {
		p.Output = cmd.String("output")
	}
	if p.Output == "" {
		p.Output = string(generator.OutputText)
	}
	policy, err := generator.ParseOutputPolicy(p.Output)
	if err != nil {
		return cli.Exit(err, exitConfig)
	}
	format, err := publisher.ParseFormat(cmd.String("format"))
	if err != nil {
		return cli.Exit(err, exitConfig)
	}
	if policy == generator.OutputRaw && format != publisher.FormatMarkdown {
		return cli.Exit("--format "+string(format)+" requires text output", exitConfig)
	}

	llm, err := a.newLLM(p)
	if err != nil {
		return cli.Exit(err, exitConfig)
	}
	agent, err := generator.NewAgent(llm, p.Model)
	if err != nil {
		return cli.Exit(err, exitConfig)
	}
	pub, err := publisher.New(a.stdout, format)
	if err != nil {
		return cli.Exit(err, exitConfig)
	}

	path := cmd.Args().First()
	if path == "" {
		path = p.DefaultInput
	}
	log.Info().Str("path", path).Msg("Using PRD file")
	prd, err := generator.LoadInput(path)
	if err != nil {
		return cli.Exit(err, exitInput)
	}
	if !utf8.ValidString(prd) {
		log.Warn().Str("path", path).Msg("PRD is not valid UTF-8; embedding it unchanged")
	}

	if timeout := cmd.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Info().
		Str("provider", p.Name).
		Str("model", agent.Model()).
		Str("output", string(policy)).
		Msg("Running ProductDesignAgent")
	log.Debug().Int("prd_bytes", len(prd)).Msg("prompt built")

	start := time.Now()
	stream, err := agent.Run(ctx, prd)
	if err != nil {
		return cli.Exit(err, exitUpstream)
	}
	res, err := generator.Collect(stream, policy, pub)
	if err != nil {
		log.Error().Err(err).Str("provider", p.Name).Int("events", res.Events).Msg("provider call failed")
		return cli.Exit(err, exitUpstream)
	}

	log.Info().
		Int("events", res.Events).
		Int("text_events", res.TextEvents).
		Str("stop_reason", res.StopReason).
		Int64("input_tokens", res.Usage.InputTokens).
		Int64("output_tokens", res.Usage.OutputTokens).
		Dur("elapsed", time.Since(start)).
		Msg("design generated")
	if res.Text == "" {
		log.Warn().Msg("model returned no text")
	}
	return nil
}
