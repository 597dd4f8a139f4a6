package agent

import (
	"context"

	"github.com/hupe1980/agentgraph/a2a"
	"github.com/hupe1980/agentgraph/core"
)

// RemoteAgent is a workflow node backed by a peer-hosted agent. The
// peer's card is discovered once at construction and cached for the
// lifetime of the reference; discovery failure is fatal here so broken
// remote dependencies surface at bind time, never mid-run.
type RemoteAgent struct {
	name   string
	card   *a2a.AgentCard
	client *a2a.Client
}

// NewRemoteAgent discovers the peer at baseURL and binds it as a node
// executor. Returns *a2a.DiscoveryError when the card is unreachable or
// malformed.
func NewRemoteAgent(ctx context.Context, client *a2a.Client, baseURL string) (*RemoteAgent, error) {
	card, err := client.Discover(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	return &RemoteAgent{name: card.Name, card: card, client: client}, nil
}

// NewRemoteAgentFromCard binds an already-discovered card, useful when the
// caller manages discovery or serves the peer in-process.
func NewRemoteAgentFromCard(client *a2a.Client, card *a2a.AgentCard) *RemoteAgent {
	return &RemoteAgent{name: card.Name, card: card, client: client}
}

// Name returns the peer's advertised name.
func (a *RemoteAgent) Name() string { return a.name }

// Card returns the cached agent card.
func (a *RemoteAgent) Card() *a2a.AgentCard { return a.card }

// Invoke implements core.Executor: one task round trip against the peer.
// The canonical result is the last text part of the terminal agent
// message.
func (a *RemoteAgent) Invoke(ctx context.Context, msg core.Message) (core.Message, error) {
	resp, err := a.client.Invoke(ctx, a.card, a2a.NewUserMessage(msg.Text))
	if err != nil {
		return core.Message{}, err
	}
	return msg.WithText(resp.LastText()), nil
}
