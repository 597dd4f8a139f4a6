package engine

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agentgraph/core"
	"github.com/hupe1980/agentgraph/graph"
	"github.com/hupe1980/agentgraph/logging"
)

// Config defines tuning parameters for the engine's operational behavior.
type Config struct {
	// MaxConcurrentBranches limits how many fan-out branches of one
	// frontier round execute simultaneously. Set to 0 for unlimited.
	MaxConcurrentBranches int

	// InvokeTimeout bounds a single node invocation. Zero disables the
	// per-invocation deadline.
	InvokeTimeout time.Duration
}

// DefaultConfig provides conservative defaults: bounded fan-out and a
// per-invocation deadline so one hung remote peer cannot stall a run
// forever.
var DefaultConfig = Config{
	MaxConcurrentBranches: 8,
	InvokeTimeout:         60 * time.Second,
}

// Options configures an Engine instance using the functional options pattern.
type Options struct {
	// Config contains operational parameters. Defaults to DefaultConfig.
	Config Config

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Output is one collected node result, in the order nodes were first
// invoked (breadth order of the queue).
type Output struct {
	Node    core.NodeID
	Message core.Message
}

// Engine executes runs against an immutable graph. The engine itself holds
// no per-run state; a single Engine is safe for concurrent runs.
type Engine struct {
	graph   *graph.Graph
	invoker *invoker
	config  Config
	logger  logging.Logger
}

// New creates an engine bound to a built graph.
func New(g *graph.Graph, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		graph:   g,
		invoker: &invoker{timeout: opts.Config.InvokeTimeout, logger: opts.Logger},
		config:  opts.Config,
		logger:  opts.Logger,
	}
}

// entry is one scheduled invocation: a node plus the message it receives.
type entry struct {
	node core.NodeID
	msg  core.Message
}

// Run executes the graph from its start node with the given seed message
// and returns every node output in first-invocation order.
//
// Execution proceeds in frontier rounds: all entries of a round are
// invoked (concurrently, bounded by MaxConcurrentBranches) and must
// complete before the next round starts. This round barrier keeps
// multi-predecessor scheduling deterministic. Outputs are collected by
// frontier index, so order is keyed by enqueue time, not completion time.
//
// Cancelling ctx stops further scheduling and returns the outputs
// collected so far; cancellation is never an error to the caller.
func (e *Engine) Run(ctx context.Context, seed core.Message) ([]Output, error) {
	frontier := []entry{{node: e.graph.Start(), msg: seed}}
	var outputs []Output

	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			e.logger.Info("run cancelled", "collected", len(outputs))
			return outputs, nil
		default:
		}

		results := e.invokeRound(ctx, frontier)

		var next []entry
		for i, en := range frontier {
			result := results[i]
			outputs = append(outputs, Output{Node: en.node, Message: result})

			satisfied := 0
			for _, edge := range e.graph.Outgoing(en.node) {
				if edge.Satisfied(result) {
					next = append(next, entry{node: edge.To, msg: result})
					satisfied++
				}
			}

			e.logger.Debug("node completed", "node", en.node, "satisfied_edges", satisfied)
		}

		frontier = next
	}

	return outputs, nil
}

// invokeRound runs every entry of the frontier and returns results indexed
// by frontier position. Branches run concurrently up to the configured
// limit; the indexed slice is the single point of collection, so no writer
// ordering is observable.
func (e *Engine) invokeRound(ctx context.Context, frontier []entry) []core.Message {
	results := make([]core.Message, len(frontier))

	if len(frontier) == 1 {
		results[0] = e.invoker.invoke(ctx, e.graph.Node(frontier[0].node), frontier[0].msg)
		return results
	}

	var sem chan struct{}
	if e.config.MaxConcurrentBranches > 0 {
		sem = make(chan struct{}, e.config.MaxConcurrentBranches)
	}

	var wg sync.WaitGroup
	for i, en := range frontier {
		wg.Add(1)
		go func(i int, en entry) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[i] = e.invoker.invoke(ctx, e.graph.Node(en.node), en.msg)
		}(i, en)
	}
	wg.Wait()

	return results
}
