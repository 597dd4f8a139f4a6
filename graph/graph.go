// Package graph provides the immutable workflow graph: nodes produced by
// registered factories, ordered edges with optional conditions and a single
// start node. Graphs are built once via Builder and are then safe to share
// across concurrent runs.
package graph

import "github.com/hupe1980/agentgraph/core"

// Kind categorizes a node's executor implementation.
type Kind string

const (
	// KindLocal marks a node backed by an in-process executor (pure
	// transform or model-backed agent).
	KindLocal Kind = "local"

	// KindRemote marks a node backed by a peer-hosted agent reached over
	// the A2A protocol.
	KindRemote Kind = "remote"
)

// Node is a unit of work in the graph. Owned exclusively by the Graph and
// immutable after Build.
type Node struct {
	ID       core.NodeID
	Kind     Kind
	Executor core.Executor
}

// Edge is a directed link between two nodes, optionally gated by a
// condition over the producer's output. Edge order from the same source is
// registration order and determines scheduling order of fan-out targets.
type Edge struct {
	From      core.NodeID
	To        core.NodeID
	Condition Condition
}

// Satisfied reports whether the edge fires for the given producer output.
// An edge without a condition always fires.
func (e Edge) Satisfied(msg core.Message) bool {
	if e.Condition == nil {
		return true
	}
	return e.Condition.Evaluate(msg)
}

// Graph is the immutable result of Builder.Build. Every edge endpoint is
// guaranteed to reference a registered node and exactly one start node
// exists.
type Graph struct {
	nodes    map[core.NodeID]*Node
	edges    []Edge
	outgoing map[core.NodeID][]Edge
	start    core.NodeID
}

// Start returns the entry node id.
func (g *Graph) Start() core.NodeID { return g.start }

// Node returns the node for id, or nil when absent.
func (g *Graph) Node(id core.NodeID) *Node { return g.nodes[id] }

// Outgoing returns the edges leaving id in registration order. The returned
// slice is shared; callers must not modify it.
func (g *Graph) Outgoing(id core.NodeID) []Edge { return g.outgoing[id] }

// Edges returns all edges in registration order. The returned slice is
// shared; callers must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// Len returns the number of registered nodes.
func (g *Graph) Len() int { return len(g.nodes) }
