package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentgraph/core"
	"github.com/hupe1980/agentgraph/graph"
	"github.com/hupe1980/agentgraph/logging"
)

// errorPrefix marks outputs produced by the failure-conversion path.
// Downstream conditions see this text like any ordinary result.
const errorPrefix = "Error processing request: "

// invoker executes a single node and converts errors, panics and deadline
// expiry into an ordinary message so one bad node never aborts the run.
type invoker struct {
	timeout time.Duration
	logger  logging.Logger
}

// invoke runs the node's executor with the per-invocation deadline applied
// and the output's origin normalized to the node id.
func (iv *invoker) invoke(ctx context.Context, node *graph.Node, msg core.Message) (out core.Message) {
	defer func() {
		if r := recover(); r != nil {
			iv.logger.Error("node panicked", "node", node.ID, "panic", r)
			out = iv.errorMessage(node.ID, msg, fmt.Errorf("panic: %v", r))
		}
	}()

	if iv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, iv.timeout)
		defer cancel()
	}

	result, err := node.Executor.Invoke(ctx, msg)
	if err != nil {
		iv.logger.Warn("node invocation failed", "node", node.ID, "error", err)
		return iv.errorMessage(node.ID, msg, err)
	}

	result.Origin = node.ID
	return result
}

// errorMessage converts a failure into the node's output. Metadata of the
// inbound message is preserved so downstream nodes keep the seed context.
func (iv *invoker) errorMessage(id core.NodeID, in core.Message, err error) core.Message {
	out := in.WithText(errorPrefix + err.Error())
	out.Origin = id
	return out
}
