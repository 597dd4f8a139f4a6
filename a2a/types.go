package a2a

import "github.com/hupe1980/agentgraph/core"

// WellKnownCardPath is the discovery path every peer serves its card at.
const WellKnownCardPath = "/.well-known/agent-card.json"

// Message roles on the wire.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Capabilities advertises optional protocol features of a peer.
type Capabilities struct {
	Streaming         bool `json:"streaming"`
	PushNotifications bool `json:"pushNotifications"`
}

// Skill describes one capability advertised by a peer agent.
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// AgentCard is the remote-agent descriptor published at the well-known
// discovery path. Fetched once per remote node reference and cached for
// the lifetime of that reference.
type AgentCard struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	URL                string       `json:"url"`
	Version            string       `json:"version"`
	Capabilities       Capabilities `json:"capabilities"`
	DefaultInputModes  []string     `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string     `json:"defaultOutputModes,omitempty"`
	Skills             []Skill      `json:"skills,omitempty"`
}

// Part is a single text segment of a message envelope.
type Part struct {
	Text string `json:"text"`
}

// Message is the wire envelope exchanged with a peer. Role is "user" for
// submissions and "agent" for responses; every message carries a freshly
// generated id.
type Message struct {
	MessageID string `json:"messageId"`
	Role      string `json:"role"`
	Parts     []Part `json:"parts"`
}

// NewUserMessage builds a user-role envelope with one text part and a
// generated message id.
func NewUserMessage(text string) Message {
	return Message{MessageID: core.NewID(), Role: RoleUser, Parts: []Part{{Text: text}}}
}

// NewAgentMessage builds an agent-role envelope with one text part and a
// generated message id.
func NewAgentMessage(text string) Message {
	return Message{MessageID: core.NewID(), Role: RoleAgent, Parts: []Part{{Text: text}}}
}

// LastText returns the text of the last part, the agent's final answer
// after any intermediate tool-call chatter. Empty when the message has no
// parts.
func (m Message) LastText() string {
	if len(m.Parts) == 0 {
		return ""
	}
	return m.Parts[len(m.Parts)-1].Text
}

// TaskStatus is the lifecycle state of a single remote invocation.
type TaskStatus string

// Task lifecycle states. Completed and Failed are terminal.
const (
	TaskSubmitted TaskStatus = "submitted"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Terminal reports whether the status ends the task lifecycle.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// Task tracks one remote invocation from submission to its terminal state.
// Tasks are never reused.
type Task struct {
	ID      string     `json:"id"`
	Status  TaskStatus `json:"status"`
	Message Message    `json:"message"`
	Result  *Message   `json:"result,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// TaskRequest is the submission body accepted by the task endpoint.
type TaskRequest struct {
	Message Message `json:"message"`
}
