// Package agentgraph provides a high-level façade over the graph builder
// and execution engine for constructing agent workflow pipelines. Most
// applications interact with this package by:
//  1. Building a graph via graph.NewBuilder (nodes, edges, conditions)
//  2. Wrapping it in a Workflow via New() (optionally overriding engine
//     config and logging)
//  3. Running it with a seed context and payload
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. Defaults are safe for local development and testing;
// production deployments typically supply a structured logger and tuned
// engine limits.
package agentgraph

import (
	"context"

	"github.com/hupe1980/agentgraph/core"
	"github.com/hupe1980/agentgraph/engine"
	"github.com/hupe1980/agentgraph/graph"
	"github.com/hupe1980/agentgraph/logging"
)

// Options configures a Workflow instance.
type Options struct {
	// EngineConfig tunes fan-out concurrency and the per-invocation
	// deadline. Defaults to engine.DefaultConfig.
	EngineConfig engine.Config

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Workflow aggregates an immutable graph with its execution engine. A
// Workflow is safe for concurrent runs.
type Workflow struct {
	graph  *graph.Graph
	engine *engine.Engine
}

// New creates a Workflow for a built graph with optional overrides.
func New(g *graph.Graph, optFns ...func(o *Options)) *Workflow {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(g, func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Logger = opts.Logger
	})

	return &Workflow{graph: g, engine: e}
}

// Graph returns the underlying immutable graph.
func (w *Workflow) Graph() *graph.Graph { return w.graph }

// Run executes the workflow with a seed context and payload, returning
// every node output in first-invocation order. The seed mapping travels
// with the message through the whole run as metadata.
func (w *Workflow) Run(ctx context.Context, seed map[string]string, payload string) ([]engine.Output, error) {
	return w.engine.Run(ctx, core.Message{Text: payload, Metadata: seed})
}

// RunMessage executes the workflow with an explicit seed message.
func (w *Workflow) RunMessage(ctx context.Context, seed core.Message) ([]engine.Output, error) {
	return w.engine.Run(ctx, seed)
}
