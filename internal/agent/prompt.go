package agent

import (
	"fmt"
	"strings"

	"github.com/Ekp0/codegraph/internal/graph"
)

const systemPrompt = `You are a code understanding assistant. Your job is to navigate a code graph and answer questions about the codebase.

When analyzing code:
1. Pay attention to function signatures, return types, and docstrings
2. Trace call chains when understanding how functions work together
3. Note imports and dependencies between modules
4. Look for patterns and design decisions

Always base your answers on the actual code provided. Cite specific files and line numbers when relevant.`

// relatedLimit caps how many callers and callees appear in the navigation
// prompt.
const relatedLimit = 5

// navigationPrompt describes the focus node and its neighborhood and asks
// the oracle for a decision.
func navigationPrompt(question string, nctx *graph.NodeContext) string {
	var related []string
	for i, pred := range nctx.Predecessors {
		if i >= relatedLimit {
			break
		}
		related = append(related, "- Called by: "+pred.Node.Name)
	}
	for i, succ := range nctx.Successors {
		if i >= relatedLimit {
			break
		}
		related = append(related, "- Calls: "+succ.Node.Name)
	}
	relatedText := "No direct relationships."
	if len(related) > 0 {
		relatedText = strings.Join(related, "\n")
	}

	n := nctx.Node
	return fmt.Sprintf(`Question: %s

Current node: %s (%s)
File: %s
Signature: %s

Related nodes:
%s

Based on this context, decide:
1. If you can answer the question now, respond with: ANSWER: [your answer]
2. If you need to explore a related node, respond with: NAVIGATE: [node_name]
3. If you've gathered enough context, respond with: DONE

What is your decision?`, question, n.Name, n.Type, n.FilePath, n.Signature, relatedText)
}

// synthesisPrompt embeds every gathered citation in log order and asks for
// a final answer.
func synthesisPrompt(question string, citations []Citation) string {
	var b strings.Builder
	for i, c := range citations {
		if i > 0 {
			b.WriteString("\n\n")
		}
		name := c.NodeName
		if name == "" {
			name = "Code"
		}
		fmt.Fprintf(&b, "## %s (%s:%d-%d)\n```\n%s\n```", name, c.FilePath, c.StartLine, c.EndLine, c.Content)
	}

	return fmt.Sprintf(`Based on the following code context, answer the user's question.

Question: %s

Code Context:
%s

Provide a clear, detailed answer that references the specific code shown. If you cannot answer from the given context, say so.`, question, b.String())
}

const (
	actionAnswer   = "answer"
	actionNavigate = "navigate"
	actionDone     = "done"
)

// decision is the parsed outcome of one oracle navigation reply.
type decision struct {
	action      string
	answer      string
	next        *graph.Node
	observation string
}

// parseDecision interprets the oracle's reply. Markers are matched
// case-insensitively and the earliest occurring marker wins when both
// appear; any reply without a marker means the oracle is done exploring.
func parseDecision(reply string, nctx *graph.NodeContext) decision {
	upper := strings.ToUpper(reply)
	ansIdx := strings.Index(upper, "ANSWER:")
	navIdx := strings.Index(upper, "NAVIGATE:")

	switch {
	case ansIdx >= 0 && (navIdx < 0 || ansIdx < navIdx):
		return decision{
			action: actionAnswer,
			answer: strings.TrimSpace(reply[ansIdx+len("ANSWER:"):]),
		}
	case navIdx >= 0:
		return parseNavigate(reply[navIdx+len("NAVIGATE:"):], nctx)
	default:
		return decision{action: actionDone, observation: "Finished exploration"}
	}
}

// parseNavigate resolves the navigation token against the focus node's
// neighborhood, successors before predecessors, by case-insensitive name
// substring.
func parseNavigate(rest string, nctx *graph.NodeContext) decision {
	token := ""
	if fields := strings.Fields(rest); len(fields) > 0 {
		token = fields[0]
	}
	lower := strings.ToLower(token)

	for _, succ := range nctx.Successors {
		if strings.Contains(strings.ToLower(succ.Node.Name), lower) {
			return decision{
				action:      actionNavigate,
				next:        succ.Node,
				observation: "Navigating to " + token,
			}
		}
	}
	for _, pred := range nctx.Predecessors {
		if strings.Contains(strings.ToLower(pred.Node.Name), lower) {
			return decision{
				action:      actionNavigate,
				next:        pred.Node,
				observation: "Navigating to " + token,
			}
		}
	}
	return decision{action: actionDone, observation: "Could not find node: " + token}
}
