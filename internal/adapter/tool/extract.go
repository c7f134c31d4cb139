package tool

import (
	"context"
	"fmt"

	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/domain/entity"
)

var _ output.ToolPort = (*ExtractTool)(nil)

const maxExtractedText = 20000

type ExtractTool struct {
	browser  output.BrowserPort
	recorder *service.StepRecorder
}

func NewExtractTool(browser output.BrowserPort, recorder *service.StepRecorder) *ExtractTool {
	return &ExtractTool{browser: browser, recorder: recorder}
}

func (t *ExtractTool) Name() entity.ToolName { return entity.ToolExtract }

func (t *ExtractTool) Description() string {
	return "Extract the readable text content of the current page."
}

func (t *ExtractTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *ExtractTool) Execute(ctx context.Context, arguments string) (string, error) {
	text, err := t.browser.PageText(ctx)
	if err == nil && len(text) > maxExtractedText {
		text = text[:maxExtractedText] + "\n...[truncated]"
	}

	summary := ""
	if err == nil {
		summary = fmt.Sprintf("Extracted %d characters of text", len(text))
	}
	recordStep(t.recorder, t.browser, t.Name(), arguments, summary, err)

	if err != nil {
		return "", err
	}
	return text, nil
}
