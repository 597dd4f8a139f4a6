package agent

import (
	"context"

	"github.com/hupe1980/agentgraph/core"
)

// Transform is a pure message transformation executed by a LocalAgent.
type Transform func(ctx context.Context, msg core.Message) (core.Message, error)

// LocalAgent wraps an in-process transform function as a workflow node
// executor. It holds no mutable state across calls.
type LocalAgent struct {
	name string
	fn   Transform
}

// NewLocalAgent creates a local node executor from a transform function.
func NewLocalAgent(name string, fn Transform) *LocalAgent {
	return &LocalAgent{name: name, fn: fn}
}

// Name returns the agent's display name.
func (a *LocalAgent) Name() string { return a.name }

// Invoke implements core.Executor.
func (a *LocalAgent) Invoke(ctx context.Context, msg core.Message) (core.Message, error) {
	return a.fn(ctx, msg)
}

// ConversationExecutor adapts a core.ConversationAgent (an opaque hosted
// conversational service) into a node executor. The inbound message text
// is the prompt; the response text becomes the outbound message.
type ConversationExecutor struct {
	name  string
	agent core.ConversationAgent
}

// NewConversationExecutor wraps a conversation agent as a node executor.
func NewConversationExecutor(name string, agent core.ConversationAgent) *ConversationExecutor {
	return &ConversationExecutor{name: name, agent: agent}
}

// Name returns the executor's display name.
func (e *ConversationExecutor) Name() string { return e.name }

// Invoke implements core.Executor.
func (e *ConversationExecutor) Invoke(ctx context.Context, msg core.Message) (core.Message, error) {
	text, err := e.agent.Run(ctx, msg.Text)
	if err != nil {
		return core.Message{}, err
	}
	return msg.WithText(text), nil
}
