package tool

import (
	"context"

	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/domain/entity"
)

var _ output.ToolPort = (*PressEnterTool)(nil)

type PressEnterTool struct {
	browser  output.BrowserPort
	recorder *service.StepRecorder
}

func NewPressEnterTool(browser output.BrowserPort, recorder *service.StepRecorder) *PressEnterTool {
	return &PressEnterTool{browser: browser, recorder: recorder}
}

func (t *PressEnterTool) Name() entity.ToolName { return entity.ToolPressEnter }

func (t *PressEnterTool) Description() string {
	return "Press the Enter key, typically to submit a focused form."
}

func (t *PressEnterTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *PressEnterTool) Execute(ctx context.Context, arguments string) (string, error) {
	err := t.browser.PressEnter(ctx)
	result := ""
	if err == nil {
		result = "Pressed Enter"
	}
	recordStep(t.recorder, t.browser, t.Name(), arguments, result, err)
	if err != nil {
		return "", err
	}
	return result, nil
}
