package generator

import (
	"context"
	"errors"
	"fmt"
)

// Agent 负责把 PRD 组装成提示词并交给模型执行。
type Agent struct {
	llm   Provider
	model string
}

func NewAgent(llm Provider, model string) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm provider is required")
	}
	if model == "" {
		return nil, errors.New("llm model is required")
	}
	return &Agent{llm: llm, model: model}, nil
}

func (a *Agent) Model() string { return a.model }

// Run builds the design prompt for prd and starts the task. The caller owns the
// returned stream and must close it.
func (a *Agent) Run(ctx context.Context, prd string) (EventStream, error) {
	stream, err := a.llm.RunTask(ctx, BuildPrompt(prd), a.model)
	if err != nil {
		return nil, fmt.Errorf("run task with model %s: %w", a.model, err)
	}
	return stream, nil
}
