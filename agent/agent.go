// Package agent runs the tool-using reasoning loop that turns a user
// question into a grounded answer with source attribution.
package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/campushq/campus-agent/llm"
	"github.com/campushq/campus-agent/tools"
)

// runState tracks where a run is in its lifecycle.
type runState int

const (
	statePrompt   runState = iota // ask the model for its next step
	stateAct                      // execute the selected tool
	stateFinalize                 // iteration cap hit, force an answer
	stateDone
)

// Options bound the reasoning loop.
type Options struct {
	MaxIterations int // completions before the run is force-finalized
	ParseRetries  int // corrective re-prompts for unparsable output
	TopK          int // passages fetched for the fallback answer
}

// Result is what a run hands back to the HTTP layer.
type Result struct {
	Answer    string
	Sources   []string
	ToolsUsed []string
}

// ToolInvocation records one executed step of a run.
type ToolInvocation struct {
	Tool        tools.Kind
	Input       string
	Observation string
}

// Agent drives the reasoning loop over an LLM and the tool registry.
// The retriever backs the fallback path when the loop itself fails.
type Agent struct {
	llm       llm.Client
	tools     *tools.Registry
	retriever tools.Retriever
	opts      Options
	logger    *log.Logger
}

func New(client llm.Client, registry *tools.Registry, retriever tools.Retriever, opts Options, logger *log.Logger) *Agent {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 5
	}
	if opts.ParseRetries < 0 {
		opts.ParseRetries = 0
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Agent{llm: client, tools: registry, retriever: retriever, opts: opts, logger: logger}
}

// Run answers a question. It never returns an error: when the
// reasoning loop fails it degrades to a direct retrieval answer, and
// when that fails too it returns a fixed apology.
func (a *Agent) Run(ctx context.Context, question string) Result {
	result, err := a.react(ctx, question)
	if err != nil {
		a.logger.Printf("agent: reasoning loop failed, using fallback: %v", err)
		return a.fallback(ctx, question)
	}
	return result
}

func (a *Agent) react(ctx context.Context, question string) (Result, error) {
	var (
		trail       []ToolInvocation
		scratchpad  strings.Builder
		current     decision
		retriesLeft = a.opts.ParseRetries
		iterations  = 0
	)

	state := statePrompt
	for state != stateDone {
		switch state {
		case statePrompt:
			if iterations >= a.opts.MaxIterations {
				state = stateFinalize
				continue
			}
			iterations++

			prompt := buildReactPrompt(a.tools.Describe(), a.tools.Names(), question, scratchpad.String())
			output, err := a.llm.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
			if err != nil {
				return Result{}, fmt.Errorf("reasoning completion: %w", err)
			}

			dec, err := parseDecision(output)
			if err != nil {
				if retriesLeft == 0 {
					return Result{}, fmt.Errorf("parse model output: %w", err)
				}
				retriesLeft--
				scratchpad.WriteString("Observation: Invalid format. Either provide an Action with an Action Input, or a Final Answer.\nThought: ")
				continue
			}
			if dec.final {
				return a.finish(dec.answer, trail), nil
			}
			current = dec
			state = stateAct

		case stateAct:
			kind, ok := tools.ParseKind(current.tool)
			if !ok {
				scratchpad.WriteString(fmt.Sprintf(
					"Action: %s\nAction Input: %s\nObservation: %s is not a valid tool, try one of [%s].\nThought: ",
					current.tool, current.toolInput, current.tool, a.tools.Names(),
				))
				state = statePrompt
				continue
			}

			observation, err := a.tools.Run(ctx, kind, current.toolInput)
			if err != nil {
				return Result{}, fmt.Errorf("tool %s: %w", kind, err)
			}
			trail = append(trail, ToolInvocation{Tool: kind, Input: current.toolInput, Observation: observation})
			scratchpad.WriteString(fmt.Sprintf(
				"Action: %s\nAction Input: %s\nObservation: %s\nThought: ",
				kind, current.toolInput, observation,
			))
			state = statePrompt

		case stateFinalize:
			answer, err := a.forceFinalize(ctx, question, scratchpad.String())
			if err != nil {
				return Result{}, err
			}
			return a.finish(answer, trail), nil
		}
	}

	return Result{}, fmt.Errorf("reasoning loop ended without an answer")
}

// forceFinalize demands a final answer from whatever evidence the
// scratchpad already holds.
func (a *Agent) forceFinalize(ctx context.Context, question, scratchpad string) (string, error) {
	prompt := buildReactPrompt(a.tools.Describe(), a.tools.Names(), question,
		scratchpad+"I have gathered enough information and must now answer.\nFinal Answer: ")
	output, err := a.llm.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
	if err != nil {
		return "", fmt.Errorf("finalize completion: %w", err)
	}
	if idx := strings.Index(output, "Final Answer:"); idx >= 0 {
		output = output[idx+len("Final Answer:"):]
	}
	return strings.TrimSpace(output), nil
}

// finish assembles the result: answer text, distinct source labels in
// first-use order, and the full tool trail.
func (a *Agent) finish(answer string, trail []ToolInvocation) Result {
	if answer == "" {
		answer = "I couldn't generate a response. Please try again."
	}

	var (
		sources   []string
		seen      = map[string]bool{}
		toolsUsed = make([]string, 0, len(trail))
	)
	for _, inv := range trail {
		toolsUsed = append(toolsUsed, string(inv.Tool))
		label := tools.SourceLabel(inv.Tool)
		if !seen[label] {
			seen[label] = true
			sources = append(sources, label)
		}
	}
	if len(sources) == 0 {
		sources = []string{"Knowledge Base"}
	}

	return Result{Answer: answer, Sources: sources, ToolsUsed: toolsUsed}
}

// fallback answers with a single grounded completion over directly
// retrieved passages. Every failure path here still yields a usable
// response body.
func (a *Agent) fallback(ctx context.Context, question string) Result {
	if a.retriever == nil {
		return Result{
			Answer:    "I'm having trouble accessing my knowledge base. Please try again later.",
			Sources:   []string{},
			ToolsUsed: []string{"fallback"},
		}
	}

	chunks, err := a.retriever.Retrieve(ctx, question, a.opts.TopK)
	if err != nil {
		a.logger.Printf("agent: fallback retrieval failed: %v", err)
		return a.apology()
	}

	contents := make([]string, 0, len(chunks))
	for _, c := range chunks {
		contents = append(contents, c.Content)
	}

	system := fmt.Sprintf(fallbackSystemPrompt, strings.Join(contents, "\n\n---\n\n"), "No database results available.")
	answer, err := a.llm.Generate(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: fmt.Sprintf(fallbackUserPrompt, question)},
	})
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			a.logger.Printf("agent: fallback completion failed: %v", err)
		}
		return a.apology()
	}

	return Result{
		Answer:    answer,
		Sources:   []string{"Knowledge Base (Fallback)"},
		ToolsUsed: []string{"rag-fallback"},
	}
}

func (a *Agent) apology() Result {
	return Result{
		Answer:    "I apologize, but I'm experiencing technical difficulties. Please contact the university office directly for assistance.",
		Sources:   []string{},
		ToolsUsed: []string{"error"},
	}
}
