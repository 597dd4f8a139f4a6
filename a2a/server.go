package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hupe1980/agentgraph/core"
	"github.com/hupe1980/agentgraph/logging"
)

// Executor runs a single task against the inbound user message and returns
// the reply. The server normalizes whatever comes back into exactly one
// agent-role message with a fresh message id.
//
// An executor may itself wrap a whole workflow, making the protocol
// symmetric: a node can expose a sub-graph to other peers.
type Executor func(ctx context.Context, msg Message) (Message, error)

// ServerOptions configures a peer protocol server.
type ServerOptions struct {
	// ExecTimeout bounds a single task execution.
	ExecTimeout time.Duration

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Server hosts an agent behind the peer protocol: it publishes the agent
// card at the well-known path, accepts task submissions and exposes task
// state via polling and server-sent events. Task state is held in memory;
// a task's lifecycle ends at its terminal status.
type Server struct {
	card        AgentCard
	exec        Executor
	execTimeout time.Duration
	logger      logging.Logger

	mu       sync.RWMutex
	tasks    map[string]*Task
	watchers map[string][]chan Task
}

// NewServer creates a server for the given card and executor.
func NewServer(card AgentCard, exec Executor, optFns ...func(o *ServerOptions)) *Server {
	opts := ServerOptions{
		ExecTimeout: 60 * time.Second,
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Server{
		card:        card,
		exec:        exec,
		execTimeout: opts.ExecTimeout,
		logger:      opts.Logger,
		tasks:       make(map[string]*Task),
		watchers:    make(map[string][]chan Task),
	}
}

// Card returns the published agent card.
func (s *Server) Card() AgentCard { return s.card }

// Handler returns the HTTP handler implementing the protocol surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+WellKnownCardPath, s.handleCard)
	mux.HandleFunc("POST /tasks", s.handleSubmit)
	mux.HandleFunc("GET /tasks/{id}", s.handleGet)
	mux.HandleFunc("GET /tasks/{id}/events", s.handleEvents)
	mux.HandleFunc("POST /tasks/{id}/cancel", s.handleCancel)
	return mux
}

func (s *Server) handleCard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.card)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("malformed task request: %v", err), http.StatusBadRequest)
		return
	}

	task := &Task{ID: core.NewID(), Status: TaskSubmitted, Message: req.Message}

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	s.logger.Info("task accepted", "task_id", task.ID, "agent", s.card.Name)

	go s.run(task.ID, req.Message)

	writeJSON(w, http.StatusCreated, task)
}

// run drives a task to its terminal state and notifies watchers on every
// transition.
func (s *Server) run(taskID string, msg Message) {
	s.transition(taskID, func(t *Task) { t.Status = TaskRunning })

	ctx, cancel := context.WithTimeout(context.Background(), s.execTimeout)
	defer cancel()

	out, err := s.exec(ctx, msg)
	if err != nil {
		s.logger.Error("task execution failed", "task_id", taskID, "error", err)
		s.transition(taskID, func(t *Task) {
			t.Status = TaskFailed
			t.Error = err.Error()
		})
		return
	}

	// Exactly one agent-authored response per task, fresh id regardless of
	// what the executor produced.
	result := NewAgentMessage(out.LastText())

	s.transition(taskID, func(t *Task) {
		t.Status = TaskCompleted
		t.Result = &result
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	task, ok := s.snapshot(r.PathValue("id"))
	if !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.RLock()
	_, ok := s.tasks[id]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	s.transition(id, func(t *Task) {
		t.Status = TaskFailed
		t.Error = "task cancelled"
	})

	task, _ := s.snapshot(id)
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	updates, unsubscribe, current, exists := s.subscribe(id)
	if !exists {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	if !writeEvent(w, flusher, current) || current.Status.Terminal() {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case task, ok := <-updates:
			if !ok {
				return
			}
			if !writeEvent(w, flusher, task) || task.Status.Terminal() {
				return
			}
		}
	}
}

// transition applies fn to the stored task and broadcasts the updated
// snapshot to all watchers. A task that already reached a terminal state
// is never modified again. Terminal transitions close all watcher
// channels; the whole update runs under the lock so a watcher channel can
// never be closed while another transition still holds a reference to it.
func (s *Server) transition(taskID string, fn func(t *Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.Status.Terminal() {
		return
	}

	fn(task)
	snapshot := *task

	watchers := s.watchers[taskID]
	if snapshot.Status.Terminal() {
		delete(s.watchers, taskID)
	}

	for _, ch := range watchers {
		select {
		case ch <- snapshot:
		default:
			if snapshot.Status.Terminal() {
				// Evict one stale snapshot so the terminal state always
				// reaches a slow consumer before the channel closes.
				select {
				case <-ch:
				default:
				}
				select {
				case ch <- snapshot:
				default:
				}
			}
		}
		if snapshot.Status.Terminal() {
			close(ch)
		}
	}
}

func (s *Server) snapshot(taskID string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// subscribe registers a watcher channel for the task and returns the
// current snapshot taken under the same lock, so no transition is lost
// between snapshot and subscription.
func (s *Server) subscribe(taskID string) (<-chan Task, func(), Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, nil, Task{}, false
	}

	ch := make(chan Task, 8)
	if !task.Status.Terminal() {
		s.watchers[taskID] = append(s.watchers[taskID], ch)
	}

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		watchers := s.watchers[taskID]
		for i, w := range watchers {
			if w == ch {
				s.watchers[taskID] = append(watchers[:i], watchers[i+1:]...)
				break
			}
		}
	}

	return ch, unsubscribe, *task, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, task Task) bool {
	payload, err := json.Marshal(task)
	if err != nil {
		return false
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
