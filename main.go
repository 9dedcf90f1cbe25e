package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"product_design_agent/config"
	"product_design_agent/generator"
)

const (
	exitOK       = 0
	exitInput    = 1
	exitConfig   = 2
	exitUpstream = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotenv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitConfig)
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitConfig)
	}

	a := newApp(os.Stdout, os.Stderr, os.Getenv, wd)
	os.Exit(a.exec(ctx, os.Args))
}

// exec runs the command and maps its error to a process exit code.
func (a *app) exec(ctx context.Context, args []string) int {
	err := a.command().Run(ctx, args)
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(a.stderr, err)
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	// flag parsing and usage errors
	return exitConfig
}

func buildLLM(p config.Provider) (generator.Provider, error) {
	settings := &generator.LLMSettings{
		Provider:  p.Name,
		APIKey:    p.APIKey,
		BaseURL:   p.BaseURL,
		MaxTokens: p.MaxTokens,
	}
	switch p.Type {
	case config.TypeOpenAICompatible:
		return generator.NewOpenAILLMFromConfig(settings)
	case config.TypeAnthropic:
		return generator.NewAnthropicLLMFromConfig(settings)
	case config.TypeMock:
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider type %s not supported", p.Type)
	}
}

type app struct {
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	workDir string
	newLLM  func(config.Provider) (generator.Provider, error)
}

func newApp(stdout, stderr io.Writer, getenv func(string) string, workDir string) *app {
	return &app{
		stdout:  stdout,
		stderr:  stderr,
		getenv:  getenv,
		workDir: workDir,
		newLLM:  buildLLM,
	}
}
