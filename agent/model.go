package agent

import (
	"context"

	"github.com/hupe1980/agentgraph/core"
	"github.com/hupe1980/agentgraph/model"
)

// ModelAgentOptions configures a ModelAgent instance.
//
// Use functional options with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	// Instructions is the system prompt sent with every turn.
	Instructions string
}

// ModelAgent is a workflow node backed by a language model. Each
// invocation runs a single turn: the inbound message text is the prompt,
// the model's final answer text becomes the outbound message.
type ModelAgent struct {
	name         string
	llm          model.Model
	instructions string
}

// NewModelAgent creates a model-backed node executor. The default system
// prompt introduces the agent by name; override it via options.
func NewModelAgent(name string, llm model.Model, optFns ...func(o *ModelAgentOptions)) *ModelAgent {
	opts := ModelAgentOptions{
		Instructions: "You are " + name + ", a helpful AI assistant.",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &ModelAgent{name: name, llm: llm, instructions: opts.Instructions}
}

// Name returns the agent's display name.
func (a *ModelAgent) Name() string { return a.name }

// Model returns the underlying language model.
func (a *ModelAgent) Model() model.Model { return a.llm }

// Invoke implements core.Executor.
func (a *ModelAgent) Invoke(ctx context.Context, msg core.Message) (core.Message, error) {
	resp, err := a.llm.Generate(ctx, model.Request{
		Instructions: a.instructions,
		Input:        msg.Text,
	})
	if err != nil {
		return core.Message{}, err
	}
	return msg.WithText(resp.Text), nil
}
