package graph

import (
	"github.com/pkg/errors"

	"github.com/hupe1980/agentgraph/core"
)

type registration struct {
	id      core.NodeID
	kind    Kind
	factory core.ExecutorFactory
}

// Builder accumulates node registrations and edges and validates them into
// an immutable Graph. The builder performs no I/O: factories are expected
// to be cheap constructors whose expensive binding (remote discovery,
// client setup) happened before registration.
//
// Builder is not safe for concurrent use; build the graph once and share
// the result.
type Builder struct {
	registrations []registration
	index         map[core.NodeID]int
	edges         []Edge
	start         core.NodeID
	startSet      bool
	err           error
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[core.NodeID]int)}
}

// Register associates id with a factory for a local executor. Registering
// the same id twice is an error surfaced by Build.
func (b *Builder) Register(id core.NodeID, factory core.ExecutorFactory) *Builder {
	return b.register(id, KindLocal, factory)
}

// RegisterRemote associates id with a factory for a peer-hosted executor.
func (b *Builder) RegisterRemote(id core.NodeID, factory core.ExecutorFactory) *Builder {
	return b.register(id, KindRemote, factory)
}

// RegisterExecutor is a convenience for registering an already-constructed
// local executor.
func (b *Builder) RegisterExecutor(id core.NodeID, exec core.Executor) *Builder {
	return b.Register(id, func() (core.Executor, error) { return exec, nil })
}

func (b *Builder) register(id core.NodeID, kind Kind, factory core.ExecutorFactory) *Builder {
	if _, exists := b.index[id]; exists {
		b.fail(errors.Wrapf(ErrDuplicateNode, "node %q", id))
		return b
	}
	b.index[id] = len(b.registrations)
	b.registrations = append(b.registrations, registration{id: id, kind: kind, factory: factory})
	return b
}

// AddEdge appends a directed edge. A nil condition means the edge always
// fires. Edge order from the same source is preserved into the Graph.
func (b *Builder) AddEdge(from, to core.NodeID, condition Condition) *Builder {
	b.edges = append(b.edges, Edge{From: from, To: to, Condition: condition})
	return b
}

// SetStart designates the entry node. Calling it twice is an error
// surfaced by Build.
func (b *Builder) SetStart(id core.NodeID) *Builder {
	if b.startSet {
		b.fail(ErrDuplicateStart)
		return b
	}
	b.start = id
	b.startSet = true
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build validates referential integrity and instantiates every node's
// executor. It fails with *BuildError when an edge or the start references
// an unregistered id, when no start was designated, or when a registration
// or factory failed. No node is invoked during Build.
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, &BuildError{Err: b.err}
	}
	if !b.startSet {
		return nil, &BuildError{Err: ErrNoStart}
	}

	missing := b.missingRefs()
	if len(missing) > 0 {
		return nil, &BuildError{Missing: missing, Err: ErrMissingNode}
	}

	g := &Graph{
		nodes:    make(map[core.NodeID]*Node, len(b.registrations)),
		edges:    append([]Edge(nil), b.edges...),
		outgoing: make(map[core.NodeID][]Edge),
		start:    b.start,
	}

	for _, reg := range b.registrations {
		exec, err := reg.factory()
		if err != nil {
			return nil, &BuildError{Err: errors.Wrapf(err, "node %q: factory failed", reg.id)}
		}
		g.nodes[reg.id] = &Node{ID: reg.id, Kind: reg.kind, Executor: exec}
	}

	for _, e := range g.edges {
		g.outgoing[e.From] = append(g.outgoing[e.From], e)
	}

	return g, nil
}

// missingRefs collects unregistered node ids referenced by edges or the
// start designation, deduplicated in first-reference order.
func (b *Builder) missingRefs() []string {
	seen := make(map[core.NodeID]bool)
	var missing []string

	record := func(id core.NodeID) {
		if _, ok := b.index[id]; !ok && !seen[id] {
			seen[id] = true
			missing = append(missing, string(id))
		}
	}

	record(b.start)
	for _, e := range b.edges {
		record(e.From)
		record(e.To)
	}
	return missing
}
