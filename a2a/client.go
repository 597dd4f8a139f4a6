package a2a

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/agentgraph/logging"
)

// ClientOptions configures a peer protocol client.
type ClientOptions struct {
	// HTTPClient performs all requests. Defaults to an http.Client with a
	// 60 second timeout; the timeout is dropped for event streams.
	HTTPClient *http.Client

	// PollInterval is the delay between task status polls when the peer
	// does not advertise streaming.
	PollInterval time.Duration

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Client talks to peer-hosted agents: card discovery plus task
// submission and result retrieval.
type Client struct {
	httpClient   *http.Client
	pollInterval time.Duration
	logger       logging.Logger
}

// NewClient creates a peer protocol client with optional overrides.
func NewClient(optFns ...func(o *ClientOptions)) *Client {
	opts := ClientOptions{
		HTTPClient:   &http.Client{Timeout: 60 * time.Second},
		PollInterval: 200 * time.Millisecond,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		httpClient:   opts.HTTPClient,
		pollInterval: opts.PollInterval,
		logger:       opts.Logger,
	}
}

// Discover fetches the agent card published at baseURL's well-known path.
// Any failure (unreachable host, non-2xx, malformed card) is wrapped in
// *DiscoveryError.
func (c *Client) Discover(ctx context.Context, baseURL string) (*AgentCard, error) {
	cardURL := strings.TrimSuffix(baseURL, "/") + WellKnownCardPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cardURL, nil)
	if err != nil {
		return nil, &DiscoveryError{URL: baseURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &DiscoveryError{URL: baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DiscoveryError{URL: baseURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var card AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, &DiscoveryError{URL: baseURL, Err: fmt.Errorf("malformed card: %w", err)}
	}
	if card.Name == "" || card.URL == "" {
		return nil, &DiscoveryError{URL: baseURL, Err: errors.New("malformed card: missing name or url")}
	}

	c.logger.Debug("discovered agent card", "name", card.Name, "url", card.URL)

	return &card, nil
}

// Invoke submits msg as a task to the peer described by card and waits for
// the terminal agent-authored response. When the card advertises streaming
// the task's event stream is consumed; otherwise the task resource is
// polled. The returned message is the agent's response envelope; use
// LastText for the canonical result.
func (c *Client) Invoke(ctx context.Context, card *AgentCard, msg Message) (Message, error) {
	task, err := c.submit(ctx, card, msg)
	if err != nil {
		return Message{}, err
	}

	c.logger.Debug("task submitted", "task_id", task.ID, "agent", card.Name)

	if card.Capabilities.Streaming {
		task, err = c.stream(ctx, card, task.ID)
	} else {
		task, err = c.poll(ctx, card, task.ID)
	}
	if err != nil {
		return Message{}, err
	}

	if task.Status == TaskFailed {
		return Message{}, &TaskError{TaskID: task.ID, Err: errors.New(task.Error)}
	}
	if task.Result == nil || task.Result.Role != RoleAgent {
		return Message{}, &TaskError{TaskID: task.ID, Err: errors.New("terminal task carries no agent message")}
	}

	return *task.Result, nil
}

func (c *Client) submit(ctx context.Context, card *AgentCard, msg Message) (*Task, error) {
	body, err := json.Marshal(TaskRequest{Message: msg})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.taskURL(card, ""), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("task submission rejected with status %d", resp.StatusCode)
	}

	var task Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("malformed task response: %w", err)
	}
	return &task, nil
}

// poll repeatedly fetches the task resource until it reaches a terminal
// state or the context is cancelled.
func (c *Client) poll(ctx context.Context, card *AgentCard, taskID string) (*Task, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		task, err := c.fetch(ctx, card, taskID)
		if err != nil {
			return nil, err
		}
		if task.Status.Terminal() {
			return task, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) fetch(ctx context.Context, card *AgentCard, taskID string) (*Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.taskURL(card, taskID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("task fetch rejected with status %d", resp.StatusCode)
	}

	var task Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("malformed task response: %w", err)
	}
	return &task, nil
}

// stream consumes the task's server-sent event stream. Each event carries
// a task snapshot; the stream ends once a terminal snapshot is emitted.
func (c *Client) stream(ctx context.Context, card *AgentCard, taskID string) (*Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.taskURL(card, taskID)+"/events", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	// Event streams outlive the client timeout; rely on ctx instead.
	streamClient := &http.Client{Transport: c.httpClient.Transport}

	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event stream rejected with status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		var task Task
		if err := json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))), &task); err != nil {
			return nil, fmt.Errorf("malformed event payload: %w", err)
		}
		if task.Status.Terminal() {
			return &task, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return nil, errors.New("event stream ended before terminal state")
}

// Cancel asks the peer to abandon a task. The peer marks a non-terminal
// task failed with a cancellation note; cancelling an already terminal
// task leaves it unchanged. The returned snapshot reflects the task state
// after the request.
func (c *Client) Cancel(ctx context.Context, card *AgentCard, taskID string) (*Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.taskURL(card, taskID)+"/cancel", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("task cancel rejected with status %d", resp.StatusCode)
	}

	var task Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("malformed task response: %w", err)
	}
	return &task, nil
}

func (c *Client) taskURL(card *AgentCard, taskID string) string {
	base := strings.TrimSuffix(card.URL, "/") + "/tasks"
	if taskID == "" {
		return base
	}
	return base + "/" + taskID
}
