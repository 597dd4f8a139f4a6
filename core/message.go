package core

import "github.com/google/uuid"

// NodeID identifies a node within a single graph. IDs are opaque strings,
// unique per graph, assigned by the caller at registration time.
type NodeID string

// Message is the unit of data flowing between workflow nodes. It carries
// the producing node's text output plus optional string metadata seeded by
// the caller (machine ids, correlation keys, etc.).
//
// Messages have value semantics: they are passed by copy and never mutated
// in place. Use Clone when a node needs to derive a new message that shares
// the inbound metadata.
type Message struct {
	// Text is the payload evaluated by edge conditions.
	Text string `json:"text"`

	// Origin is the node that produced this message. Empty for the seed
	// message supplied by the caller.
	Origin NodeID `json:"origin,omitempty"`

	// Metadata carries caller-supplied context through the run.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewMessage creates a message with the given text and no metadata.
func NewMessage(text string) Message {
	return Message{Text: text}
}

// Clone returns a deep copy of the message. The metadata map is copied so
// the clone can be modified without affecting the original.
func (m Message) Clone() Message {
	c := Message{Text: m.Text, Origin: m.Origin}
	if m.Metadata != nil {
		c.Metadata = make(map[string]string, len(m.Metadata))
		for k, v := range m.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

// WithText returns a copy of the message carrying new text. Metadata is
// preserved so downstream nodes keep access to the seed context.
func (m Message) WithText(text string) Message {
	c := m.Clone()
	c.Text = text
	return c
}

// Meta returns the metadata value for key, or "" when absent.
func (m Message) Meta(key string) string {
	if m.Metadata == nil {
		return ""
	}
	return m.Metadata[key]
}

// NewID generates a unique identifier for messages, tasks and runs.
func NewID() string { return uuid.NewString() }
