// Package a2a implements the agent-to-agent peer protocol used to reach
// workflow nodes hosted behind a network boundary.
//
// A peer publishes an AgentCard at the well-known discovery path
// (/.well-known/agent-card.json) describing its capabilities and skills.
// Callers submit a task carrying a single user message and either poll the
// task resource or consume its server-sent event stream until a terminal
// agent-authored message arrives.
//
// The protocol is symmetric: the Server's executor may itself wrap a
// workflow, so a graph node can expose a sub-graph to other peers.
package a2a
