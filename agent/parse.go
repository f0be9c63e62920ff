package agent

import (
	"errors"
	"fmt"
	"strings"
)

// decision is one parsed model step: either a final answer or a tool
// invocation.
type decision struct {
	final     bool
	answer    string
	tool      string
	toolInput string
}

var errMissingAction = errors.New("output has neither a final answer nor an action")

// parseDecision interprets a reasoning completion. A "Final Answer:"
// marker wins even when an action is also present, since models that
// emit both have already decided to stop.
func parseDecision(output string) (decision, error) {
	if idx := strings.Index(output, "Final Answer:"); idx >= 0 {
		return decision{
			final:  true,
			answer: strings.TrimSpace(output[idx+len("Final Answer:"):]),
		}, nil
	}

	tool, ok := captureField(output, "Action:")
	if !ok || tool == "" {
		return decision{}, errMissingAction
	}
	input, ok := captureField(output, "Action Input:")
	if !ok {
		return decision{}, fmt.Errorf("action %q has no action input", tool)
	}

	return decision{tool: tool, toolInput: input}, nil
}

// captureField extracts the value following a "Label:" marker, up to
// the end of that line. Quotes and backticks around the value are
// stripped.
func captureField(text, label string) (string, bool) {
	idx := strings.Index(text, label)
	if idx < 0 {
		return "", false
	}
	value := text[idx+len(label):]
	if nl := strings.IndexByte(value, '\n'); nl >= 0 {
		value = value[:nl]
	}
	value = strings.TrimSpace(value)
	value = strings.Trim(value, "`\"'")
	return strings.TrimSpace(value), true
}
