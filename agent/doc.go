// Package agent provides the node executor implementations wired into a
// workflow graph: LocalAgent for pure in-process transforms, ModelAgent
// for nodes backed by a language model, ConversationExecutor for external
// text-in/text-out collaborators and RemoteAgent for peers reached over
// the a2a protocol.
//
// Every executor returns the shared core.Message type; conversion from
// provider- or protocol-specific response shapes happens once at this
// boundary.
package agent
