// Package core defines the shared vocabulary of AgentGraph: the Message
// value type passed between workflow nodes, the NodeID identifier space,
// the Executor contract implemented by every node kind and the narrow
// collaborator interfaces (conversation agents, executor factories) that
// node implementations depend on.
//
// The package is intentionally free of orchestration logic so that graph
// construction and condition evaluation can be tested without any network
// or credential dependency.
package core
