package a2a

import "fmt"

// DiscoveryError reports that a peer's agent card could not be fetched or
// parsed. It surfaces at remote node binding time, never during a run, so
// broken remote dependencies are caught early.
type DiscoveryError struct {
	URL string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("agent card discovery failed for %s: %v", e.URL, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// TaskError reports a remote invocation that reached a terminal failed
// state or produced a malformed response.
type TaskError struct {
	TaskID string
	Err    error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s failed: %v", e.TaskID, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }
