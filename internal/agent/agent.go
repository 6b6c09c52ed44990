// Package agent answers natural-language questions about a code graph by
// walking it under oracle guidance.
//
// The agent is a bounded state machine: Planning finds an entry node by
// search, Navigating repeatedly asks the oracle whether to answer or move
// to a neighboring node, and Answering synthesizes a final answer from the
// citations gathered along the way. The oracle is consulted at most
// maxIterations+1 times per question because a set answer is never cleared.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ekp0/codegraph/internal/graph"
	"github.com/Ekp0/codegraph/internal/oracle"
)

// DefaultMaxIterations bounds the navigation loop.
const DefaultMaxIterations = 10

// noAnswerSentinel is returned when the agent never produced an answer.
const noAnswerSentinel = "Unable to find an answer."

// Citation is a grounding reference attached to an answer.
type Citation struct {
	FilePath  string `json:"file_path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Content   string `json:"content"`
	NodeType  string `json:"node_type,omitempty"`
	NodeName  string `json:"node_name,omitempty"`
}

// ReasoningStep is one logged action in the agent's trace.
type ReasoningStep struct {
	StepNumber  int    `json:"step_number"`
	Action      string `json:"action"`
	NodeVisited string `json:"node_visited,omitempty"`
	Observation string `json:"observation,omitempty"`
}

// Result is the agent's final output for one question.
type Result struct {
	Answer         string          `json:"answer"`
	Citations      []Citation      `json:"citations"`
	ReasoningSteps []ReasoningStep `json:"reasoning_steps"`
	Confidence     float64         `json:"confidence"`
}

// Agent runs bounded multi-hop reasoning over a code graph.
type Agent struct {
	oracle        oracle.Oracle
	maxIterations int
	log           *slog.Logger
}

// New creates an agent. maxIterations <= 0 selects the default bound.
func New(o oracle.Oracle, maxIterations int) *Agent {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Agent{
		oracle:        o,
		maxIterations: maxIterations,
		log:           slog.Default().With("component", "agent"),
	}
}

// state carries the mutable fields of one question run. The reasoning and
// citation logs are append-only; the answer, once set, is never cleared.
type state struct {
	question   string
	steps      []ReasoningStep
	citations  []Citation
	focus      *graph.Node
	visited    map[string]bool
	answer     string
	confidence float64
	iterations int
}

func (s *state) addStep(action, nodeVisited, observation string) {
	s.steps = append(s.steps, ReasoningStep{
		StepNumber:  len(s.steps) + 1,
		Action:      action,
		NodeVisited: nodeVisited,
		Observation: observation,
	})
}

func (s *state) cite(n *graph.Node) {
	content := n.Source
	if content == "" {
		content = n.Signature
	}
	s.citations = append(s.citations, Citation{
		FilePath:  n.FilePath,
		StartLine: n.StartLine,
		EndLine:   n.EndLine,
		Content:   content,
		NodeType:  string(n.Type),
		NodeName:  n.Name,
	})
}

// Run answers the question against the graph. An oracle error aborts the
// whole run and propagates to the caller.
func (a *Agent) Run(ctx context.Context, question string, g *graph.Graph) (*Result, error) {
	t := graph.NewTraversal(g)
	s := &state{
		question: question,
		visited:  map[string]bool{},
	}

	a.plan(s, t)

	for s.iterations < a.maxIterations && s.answer == "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := a.navigate(ctx, s, t); err != nil {
			return nil, err
		}
		s.iterations++
	}

	if s.answer == "" {
		if err := a.answerFromCitations(ctx, s); err != nil {
			return nil, err
		}
	}

	answer := s.answer
	if answer == "" {
		answer = noAnswerSentinel
	}
	return &Result{
		Answer:         answer,
		Citations:      s.citations,
		ReasoningSteps: s.steps,
		Confidence:     s.confidence,
	}, nil
}

// plan searches for an entry node matching the question and makes the top
// result the initial focus.
func (a *Agent) plan(s *state, t *graph.Traversal) {
	results := t.SearchNodes(s.question, nil, 10)
	s.addStep("search", "", fmt.Sprintf("Found %d potentially relevant code elements", len(results)))

	if len(results) == 0 {
		return
	}
	best := results[0].Node
	s.focus = best
	s.visited[best.ID] = true
	s.cite(best)
}

// navigate runs one pass of the navigation loop: gather one-hop context for
// the focus node, ask the oracle, and act on its decision. The focus is set
// to nil when the oracle is done or its navigation target cannot be used,
// which makes the next pass synthesize the answer.
func (a *Agent) navigate(ctx context.Context, s *state, t *graph.Traversal) error {
	if s.focus == nil {
		return a.answerFromCitations(ctx, s)
	}

	nctx := t.NodeContext(s.focus.ID, 1)
	if nctx == nil {
		// Focus node disappeared from the graph; fall through to answering.
		s.focus = nil
		return nil
	}

	reply, err := a.oracle.Chat(ctx, []oracle.Message{
		{Role: oracle.RoleSystem, Content: systemPrompt},
		{Role: oracle.RoleUser, Content: navigationPrompt(s.question, nctx)},
	})
	if err != nil {
		return fmt.Errorf("navigation step: %w", err)
	}

	d := parseDecision(reply, nctx)
	s.addStep(d.action, s.focus.ID, d.observation)

	switch d.action {
	case actionAnswer:
		s.answer = d.answer
		s.confidence = 0.85
	case actionNavigate:
		if !s.visited[d.next.ID] {
			s.focus = d.next
			s.visited[d.next.ID] = true
			s.cite(d.next)
		} else {
			s.focus = nil
		}
	default:
		s.focus = nil
	}
	return nil
}

// answerFromCitations synthesizes a final answer from everything gathered.
func (a *Agent) answerFromCitations(ctx context.Context, s *state) error {
	reply, err := a.oracle.Chat(ctx, []oracle.Message{
		{Role: oracle.RoleSystem, Content: systemPrompt},
		{Role: oracle.RoleUser, Content: synthesisPrompt(s.question, s.citations)},
	})
	if err != nil {
		return fmt.Errorf("answer step: %w", err)
	}

	s.answer = reply
	if len(s.citations) > 0 {
		s.confidence = 0.85
	} else {
		s.confidence = 0.5
	}
	s.addStep("answer", "", "Generated final answer from gathered context")
	return nil
}
