package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentgraph/core"
	"github.com/hupe1980/agentgraph/graph"
)

func fixed(text string) core.Executor {
	return core.ExecutorFunc(func(_ context.Context, msg core.Message) (core.Message, error) {
		return msg.WithText(text), nil
	})
}

func echo() core.Executor {
	return core.ExecutorFunc(func(_ context.Context, msg core.Message) (core.Message, error) {
		return msg, nil
	})
}

func nodeOrder(outputs []Output) []core.NodeID {
	ids := make([]core.NodeID, len(outputs))
	for i, o := range outputs {
		ids[i] = o.Node
	}
	return ids
}

// The end-to-end scenario: Start --(unconditional)--> Classify
// --(contains "alert")--> Diagnose.
func buildTriageGraph(t *testing.T, classifyOut string) *graph.Graph {
	t.Helper()

	g, err := graph.NewBuilder().
		RegisterExecutor("Start", core.ExecutorFunc(func(_ context.Context, msg core.Message) (core.Message, error) {
			prompt := fmt.Sprintf("Classify the following anomalies for machine %s: %s", msg.Meta("machine_id"), msg.Text)
			return msg.WithText(prompt), nil
		})).
		RegisterExecutor("Classify", fixed(classifyOut)).
		RegisterExecutor("Diagnose", fixed("diagnosis: coolant pump degradation")).
		AddEdge("Start", "Classify", nil).
		AddEdge("Classify", "Diagnose", graph.Contains("alert")).
		SetStart("Start").
		Build()
	require.NoError(t, err)
	return g
}

func seedMessage() core.Message {
	return core.Message{
		Text:     "machine-007 telemetry: temp=210",
		Metadata: map[string]string{"machine_id": "machine-007"},
	}
}

func TestRunEndToEnd(t *testing.T) {
	g := buildTriageGraph(t, "ALERT: temperature exceeds threshold")
	e := New(g)

	outputs, err := e.Run(context.Background(), seedMessage())

	require.NoError(t, err)
	require.Equal(t, []core.NodeID{"Start", "Classify", "Diagnose"}, nodeOrder(outputs))
	assert.Equal(t, "Classify the following anomalies for machine machine-007: machine-007 telemetry: temp=210", outputs[0].Message.Text)
	assert.Equal(t, "ALERT: temperature exceeds threshold", outputs[1].Message.Text)
	assert.Equal(t, "diagnosis: coolant pump degradation", outputs[2].Message.Text)
	assert.Equal(t, core.NodeID("Diagnose"), outputs[2].Message.Origin)
}

func TestRunConditionalGating(t *testing.T) {
	g := buildTriageGraph(t, "status: ok")
	e := New(g)

	outputs, err := e.Run(context.Background(), seedMessage())

	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{"Start", "Classify"}, nodeOrder(outputs))
}

func TestRunConditionCaseInsensitive(t *testing.T) {
	g := buildTriageGraph(t, "Alert raised for inspection")
	e := New(g)

	outputs, err := e.Run(context.Background(), seedMessage())

	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{"Start", "Classify", "Diagnose"}, nodeOrder(outputs))
}

func TestRunDeterminism(t *testing.T) {
	g := buildTriageGraph(t, "ALERT: temperature exceeds threshold")
	e := New(g)

	first, err := e.Run(context.Background(), seedMessage())
	require.NoError(t, err)

	for range 5 {
		again, err := e.Run(context.Background(), seedMessage())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRunGracefulDegradation(t *testing.T) {
	g, err := graph.NewBuilder().
		RegisterExecutor("Start", echo()).
		RegisterExecutor("Broken", core.ExecutorFunc(func(_ context.Context, _ core.Message) (core.Message, error) {
			return core.Message{}, errors.New("upstream 500")
		})).
		RegisterExecutor("After", fixed("still ran")).
		AddEdge("Start", "Broken", nil).
		AddEdge("Broken", "After", nil).
		SetStart("Start").
		Build()
	require.NoError(t, err)

	outputs, err := New(g).Run(context.Background(), core.NewMessage("in"))

	require.NoError(t, err)
	require.Equal(t, []core.NodeID{"Start", "Broken", "After"}, nodeOrder(outputs))
	assert.True(t, strings.HasPrefix(outputs[1].Message.Text, "Error processing request: "))
	assert.Contains(t, outputs[1].Message.Text, "upstream 500")
	assert.Equal(t, core.NodeID("Broken"), outputs[1].Message.Origin)
	assert.Equal(t, "still ran", outputs[2].Message.Text)
}

func TestRunPanicRecovered(t *testing.T) {
	g, err := graph.NewBuilder().
		RegisterExecutor("Panicky", core.ExecutorFunc(func(_ context.Context, _ core.Message) (core.Message, error) {
			panic("nil map write")
		})).
		SetStart("Panicky").
		Build()
	require.NoError(t, err)

	outputs, err := New(g).Run(context.Background(), core.NewMessage("in"))

	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Contains(t, outputs[0].Message.Text, "Error processing request: panic: nil map write")
}

// Error text participates in condition evaluation like any other output:
// a keyword inside the failure description activates the edge.
func TestErrorTextActivatesCondition(t *testing.T) {
	g, err := graph.NewBuilder().
		RegisterExecutor("Broken", core.ExecutorFunc(func(_ context.Context, _ core.Message) (core.Message, error) {
			return core.Message{}, errors.New("critical backend outage")
		})).
		RegisterExecutor("Diagnose", fixed("diagnosing")).
		AddEdge("Broken", "Diagnose", graph.Contains("critical")).
		SetStart("Broken").
		Build()
	require.NoError(t, err)

	outputs, err := New(g).Run(context.Background(), core.NewMessage("in"))

	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{"Broken", "Diagnose"}, nodeOrder(outputs))
}

func TestRunFanOutOrderDeterministic(t *testing.T) {
	// The slow branch is registered first; output order must follow edge
	// registration order, not completion order.
	slow := core.ExecutorFunc(func(ctx context.Context, msg core.Message) (core.Message, error) {
		select {
		case <-ctx.Done():
			return core.Message{}, ctx.Err()
		case <-time.After(30 * time.Millisecond):
		}
		return msg.WithText("slow"), nil
	})

	g, err := graph.NewBuilder().
		RegisterExecutor("Fan", fixed("fan out")).
		RegisterExecutor("Slow", slow).
		RegisterExecutor("Fast", fixed("fast")).
		AddEdge("Fan", "Slow", nil).
		AddEdge("Fan", "Fast", nil).
		SetStart("Fan").
		Build()
	require.NoError(t, err)

	e := New(g, func(o *Options) { o.Config.MaxConcurrentBranches = 2 })

	for range 3 {
		outputs, err := e.Run(context.Background(), core.NewMessage("in"))
		require.NoError(t, err)
		assert.Equal(t, []core.NodeID{"Fan", "Slow", "Fast"}, nodeOrder(outputs))
	}
}

func TestRunCancellationReturnsPartialOutputs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	g, err := graph.NewBuilder().
		RegisterExecutor("First", core.ExecutorFunc(func(_ context.Context, msg core.Message) (core.Message, error) {
			cancel() // cancel mid-run; the queue must stop after this round
			return msg.WithText("first done"), nil
		})).
		RegisterExecutor("Second", fixed("never runs")).
		AddEdge("First", "Second", nil).
		SetStart("First").
		Build()
	require.NoError(t, err)

	outputs, err := New(g).Run(ctx, core.NewMessage("in"))

	require.NoError(t, err)
	require.Equal(t, []core.NodeID{"First"}, nodeOrder(outputs))
	assert.Equal(t, "first done", outputs[0].Message.Text)
}

func TestRunInvokeTimeout(t *testing.T) {
	hang := core.ExecutorFunc(func(ctx context.Context, _ core.Message) (core.Message, error) {
		<-ctx.Done()
		return core.Message{}, ctx.Err()
	})

	g, err := graph.NewBuilder().
		RegisterExecutor("Hang", hang).
		SetStart("Hang").
		Build()
	require.NoError(t, err)

	e := New(g, func(o *Options) { o.Config.InvokeTimeout = 20 * time.Millisecond })

	outputs, err := e.Run(context.Background(), core.NewMessage("in"))

	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Contains(t, outputs[0].Message.Text, "Error processing request: ")
	assert.Contains(t, outputs[0].Message.Text, "context deadline exceeded")
}

func TestEngineSafeForConcurrentRuns(t *testing.T) {
	g := buildTriageGraph(t, "ALERT: temperature exceeds threshold")
	e := New(g)

	done := make(chan []Output, 4)
	for range 4 {
		go func() {
			outputs, err := e.Run(context.Background(), seedMessage())
			assert.NoError(t, err)
			done <- outputs
		}()
	}

	first := <-done
	for range 3 {
		assert.Equal(t, first, <-done)
	}
}
