package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentgraph/core"
)

func echoExecutor() core.Executor {
	return core.ExecutorFunc(func(_ context.Context, msg core.Message) (core.Message, error) {
		return msg, nil
	})
}

func TestBuildValidGraph(t *testing.T) {
	g, err := NewBuilder().
		RegisterExecutor("start", echoExecutor()).
		RegisterExecutor("classify", echoExecutor()).
		RegisterExecutor("diagnose", echoExecutor()).
		AddEdge("start", "classify", nil).
		AddEdge("classify", "diagnose", Contains("alert")).
		SetStart("start").
		Build()

	require.NoError(t, err)
	assert.Equal(t, core.NodeID("start"), g.Start())
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, KindLocal, g.Node("classify").Kind)
	require.Len(t, g.Outgoing("classify"), 1)
	assert.Equal(t, core.NodeID("diagnose"), g.Outgoing("classify")[0].To)
	assert.Nil(t, g.Outgoing("diagnose"))
}

func TestBuildMissingNode(t *testing.T) {
	_, err := NewBuilder().
		RegisterExecutor("start", echoExecutor()).
		AddEdge("start", "ghost", nil).
		AddEdge("phantom", "start", nil).
		SetStart("start").
		Build()

	require.Error(t, err)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.ErrorIs(t, err, ErrMissingNode)
	assert.Equal(t, []string{"ghost", "phantom"}, buildErr.Missing)
}

func TestBuildMissingStart(t *testing.T) {
	_, err := NewBuilder().
		RegisterExecutor("start", echoExecutor()).
		Build()

	assert.ErrorIs(t, err, ErrNoStart)
}

func TestBuildUnregisteredStart(t *testing.T) {
	_, err := NewBuilder().
		RegisterExecutor("a", echoExecutor()).
		SetStart("missing").
		Build()

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, []string{"missing"}, buildErr.Missing)
}

func TestBuildDuplicateStart(t *testing.T) {
	_, err := NewBuilder().
		RegisterExecutor("a", echoExecutor()).
		RegisterExecutor("b", echoExecutor()).
		SetStart("a").
		SetStart("b").
		Build()

	assert.ErrorIs(t, err, ErrDuplicateStart)
}

func TestBuildDuplicateNode(t *testing.T) {
	_, err := NewBuilder().
		RegisterExecutor("a", echoExecutor()).
		RegisterExecutor("a", echoExecutor()).
		SetStart("a").
		Build()

	assert.ErrorIs(t, err, ErrDuplicateNode)
}

func TestBuildFactoryError(t *testing.T) {
	_, err := NewBuilder().
		Register("a", func() (core.Executor, error) { return nil, assert.AnError }).
		SetStart("a").
		Build()

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestEdgeOrderPreserved(t *testing.T) {
	b := NewBuilder().
		RegisterExecutor("src", echoExecutor()).
		RegisterExecutor("first", echoExecutor()).
		RegisterExecutor("second", echoExecutor()).
		RegisterExecutor("third", echoExecutor()).
		SetStart("src")

	b.AddEdge("src", "second", nil)
	b.AddEdge("src", "third", nil)
	b.AddEdge("src", "first", nil)

	g, err := b.Build()
	require.NoError(t, err)

	var targets []core.NodeID
	for _, e := range g.Outgoing("src") {
		targets = append(targets, e.To)
	}
	assert.Equal(t, []core.NodeID{"second", "third", "first"}, targets)
}

func TestEdgeSatisfied(t *testing.T) {
	unconditional := Edge{From: "a", To: "b"}
	gated := Edge{From: "a", To: "b", Condition: Contains("alert")}

	assert.True(t, unconditional.Satisfied(core.NewMessage("anything")))
	assert.True(t, gated.Satisfied(core.NewMessage("ALERT raised")))
	assert.False(t, gated.Satisfied(core.NewMessage("nominal")))
}
