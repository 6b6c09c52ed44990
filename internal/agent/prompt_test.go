package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ekp0/codegraph/internal/graph"
)

func testContext() *graph.NodeContext {
	return &graph.NodeContext{
		Node: &graph.Node{ID: "foo", Name: "foo"},
		Successors: []graph.Neighbor{
			{NodeID: "bar", Node: &graph.Node{ID: "bar", Name: "bar"}},
		},
		Predecessors: []graph.Neighbor{
			{NodeID: "caller", Node: &graph.Node{ID: "caller", Name: "caller"}},
		},
	}
}

func TestParseDecisionAnswer(t *testing.T) {
	d := parseDecision("ANSWER: it adds numbers", testContext())
	assert.Equal(t, actionAnswer, d.action)
	assert.Equal(t, "it adds numbers", d.answer)
}

func TestParseDecisionCaseInsensitive(t *testing.T) {
	d := parseDecision("answer: lowercase works", testContext())
	assert.Equal(t, actionAnswer, d.action)
	assert.Equal(t, "lowercase works", d.answer)

	d = parseDecision("Navigate: bar", testContext())
	assert.Equal(t, actionNavigate, d.action)
	assert.Equal(t, "bar", d.next.ID)
}

func TestParseDecisionFirstMarkerWins(t *testing.T) {
	d := parseDecision("NAVIGATE: bar since I cannot ANSWER: yet", testContext())
	assert.Equal(t, actionNavigate, d.action)

	d = parseDecision("ANSWER: done, no need to NAVIGATE: bar", testContext())
	assert.Equal(t, actionAnswer, d.action)
}

func TestParseDecisionNavigateSuccessorsFirst(t *testing.T) {
	// "a" is a substring of both "bar" and "caller"; successors win.
	ctx := &graph.NodeContext{
		Node:         &graph.Node{ID: "foo", Name: "foo"},
		Successors:   []graph.Neighbor{{NodeID: "bar", Node: &graph.Node{ID: "bar", Name: "bar"}}},
		Predecessors: []graph.Neighbor{{NodeID: "caller", Node: &graph.Node{ID: "caller", Name: "caller"}}},
	}
	d := parseDecision("NAVIGATE: a", ctx)
	assert.Equal(t, actionNavigate, d.action)
	assert.Equal(t, "bar", d.next.ID)
}

func TestParseDecisionNavigatePredecessorFallback(t *testing.T) {
	d := parseDecision("NAVIGATE: caller", testContext())
	assert.Equal(t, actionNavigate, d.action)
	assert.Equal(t, "caller", d.next.ID)
}

func TestParseDecisionNavigateTokenIsFirstWord(t *testing.T) {
	d := parseDecision("NAVIGATE: bar because it looks relevant", testContext())
	assert.Equal(t, actionNavigate, d.action)
	assert.Equal(t, "bar", d.next.ID)
}

func TestParseDecisionUnknownTarget(t *testing.T) {
	d := parseDecision("NAVIGATE: quux", testContext())
	assert.Equal(t, actionDone, d.action)
	assert.Contains(t, d.observation, "quux")
}

func TestParseDecisionDone(t *testing.T) {
	for _, reply := range []string{"DONE", "I have gathered enough context.", ""} {
		d := parseDecision(reply, testContext())
		assert.Equal(t, actionDone, d.action, "reply %q", reply)
	}
}

func TestSynthesisPromptEmbedsCitations(t *testing.T) {
	p := synthesisPrompt("how does foo work", []Citation{
		{FilePath: "a.py", StartLine: 1, EndLine: 2, Content: "def foo(): ...", NodeName: "foo"},
		{FilePath: "b.py", StartLine: 3, EndLine: 4, Content: "def bar(): ..."},
	})
	assert.Contains(t, p, "how does foo work")
	assert.Contains(t, p, "## foo (a.py:1-2)")
	assert.Contains(t, p, "## Code (b.py:3-4)")
	assert.Contains(t, p, "def bar(): ...")
}
