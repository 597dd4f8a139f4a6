package core

import "context"

// Executor is the contract every workflow node implements: one turn of
// processing transforming an inbound message into an outbound one.
//
// Implementations must respect context cancellation and return errors
// rather than panic; the runtime converts both into error-text messages so
// a single failing node never aborts a run.
type Executor interface {
	Invoke(ctx context.Context, msg Message) (Message, error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, msg Message) (Message, error)

// Invoke implements Executor.
func (f ExecutorFunc) Invoke(ctx context.Context, msg Message) (Message, error) {
	return f(ctx, msg)
}

// ExecutorFactory produces a fresh Executor instance for a registered node.
// Factories perform no I/O; expensive binding (remote discovery, client
// construction) happens before registration so broken dependencies surface
// to the caller, not inside Build.
type ExecutorFactory func() (Executor, error)

// ConversationAgent is the collaborator interface for hosted conversational
// models: one prompt in, one response text out. The agent's reasoning is an
// opaque black box to the workflow core.
type ConversationAgent interface {
	Run(ctx context.Context, prompt string) (string, error)
}
