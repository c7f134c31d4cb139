package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pagepilot/internal/application/port/input"
	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/domain/dom"
	"pagepilot/internal/domain/dom/history"
	"pagepilot/internal/domain/entity"
)

var _ input.TaskExecutor = (*ExecuteTaskUseCase)(nil)

var ErrMaxIterations = errors.New("reached iteration limit without a final answer")

const (
	defaultMaxIterations = 20
	maxObservationLen    = 16000
)

// observationAttributes are the element attributes worth showing the model.
// Everything else (style, data-*, framework ids) is noise at this layer.
var observationAttributes = []string{
	"title", "type", "name", "role", "aria-label", "placeholder", "value", "alt", "href",
}

const systemPrompt = `You are a browser automation agent. You control a real web browser through tools.

After each action you receive the current page's interactive elements as indexed lines like:

[3]<button type="submit">Sign in</button>

Elements marked with * are new since your previous observation. Use element indices with the click_element and input_text tools. When the task is complete, reply with a plain text final answer instead of calling a tool.`

type Config struct {
	MaxIterations int
	Temperature   float32
	StepsDir      string
}

type ExecuteTaskUseCase struct {
	browser  output.BrowserPort
	llm      output.LLMPort
	registry output.ToolRegistry
	recorder *service.StepRecorder
	logger   output.LoggerPort
	cfg      Config

	prevHashes map[string]struct{}
}

func NewExecuteTaskUseCase(
	browser output.BrowserPort,
	llm output.LLMPort,
	registry output.ToolRegistry,
	recorder *service.StepRecorder,
	logger output.LoggerPort,
	cfg Config,
) *ExecuteTaskUseCase {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	return &ExecuteTaskUseCase{
		browser:  browser,
		llm:      llm,
		registry: registry,
		recorder: recorder,
		logger:   logger,
		cfg:      cfg,
	}
}

func (uc *ExecuteTaskUseCase) Execute(ctx context.Context, task string) (*input.ExecuteResult, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: systemPrompt},
		{Role: entity.RoleUser, Content: "Task: " + task},
	}
	tools := uc.registry.Definitions()

	for iteration := 1; iteration <= uc.cfg.MaxIterations; iteration++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       tools,
			Temperature: uc.cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iteration, err)
		}

		assistant := resp.Message
		messages = append(messages, assistant)

		if len(assistant.ToolCalls) == 0 {
			uc.saveSteps()
			return &input.ExecuteResult{
				FinalAnswer: assistant.Content,
				Iterations:  iteration,
			}, nil
		}

		for _, call := range assistant.ToolCalls {
			result := uc.runTool(ctx, call)
			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
				Name:       call.Name,
			})
		}

		observation, err := uc.observe(ctx)
		if err != nil {
			uc.logger.Warn("Observation failed", "error", err)
			observation = "Could not observe the page: " + err.Error()
		}
		messages = append(messages, entity.Message{
			Role:    entity.RoleUser,
			Content: observation,
		})
	}

	uc.saveSteps()
	return nil, fmt.Errorf("%w (%d)", ErrMaxIterations, uc.cfg.MaxIterations)
}

func (uc *ExecuteTaskUseCase) runTool(ctx context.Context, call entity.ToolCall) string {
	tool, ok := uc.registry.Get(call.Name)
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q", call.Name)
	}

	uc.logger.Info("Executing tool", "tool", call.Name, "arguments", call.Arguments)
	result, err := tool.Execute(ctx, call.Arguments)
	if err != nil {
		uc.logger.Warn("Tool failed", "tool", call.Name, "error", err)
		return "Error: " + err.Error()
	}
	return result
}

// observe recaptures the page, marks elements that appeared since the
// previous observation, and renders the indexed listing for the model.
func (uc *ExecuteTaskUseCase) observe(ctx context.Context) (string, error) {
	state, err := uc.browser.CaptureState(ctx, dom.DefaultCaptureOptions())
	if err != nil {
		return "", err
	}

	history.MarkNew(state.Root, uc.prevHashes)
	state.ClickableHashes = history.ClickableHashSet(state.Root)
	uc.prevHashes = state.ClickableHashes

	listing := state.Root.ClickableElementsToString(observationAttributes)
	if listing == "" {
		listing = "(no interactive elements found)"
	}
	if len(listing) > maxObservationLen {
		listing = listing[:maxObservationLen] + "\n...[truncated]"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Current page: %s", state.URL)
	if state.Title != "" {
		fmt.Fprintf(&sb, " (%s)", state.Title)
	}
	sb.WriteString("\nInteractive elements:\n")
	sb.WriteString(listing)
	return sb.String(), nil
}

func (uc *ExecuteTaskUseCase) saveSteps() {
	if uc.recorder == nil || uc.cfg.StepsDir == "" {
		return
	}
	path, err := uc.recorder.Save(uc.cfg.StepsDir)
	if err != nil {
		uc.logger.Warn("Failed to save step trace", "error", err)
		return
	}
	uc.logger.Info("Step trace saved", "path", path)
}
