package tool

import (
	"context"
	"fmt"

	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/domain/entity"
)

var _ output.ToolPort = (*InputTextTool)(nil)

type InputTextTool struct {
	browser  output.BrowserPort
	recorder *service.StepRecorder
}

func NewInputTextTool(browser output.BrowserPort, recorder *service.StepRecorder) *InputTextTool {
	return &InputTextTool{browser: browser, recorder: recorder}
}

func (t *InputTextTool) Name() entity.ToolName { return entity.ToolInputText }

func (t *InputTextTool) Description() string {
	return "Type text into the input element with the given index, replacing its current value."
}

func (t *InputTextTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"index": map[string]interface{}{
			"type":        "integer",
			"description": "Highlight index of the input element",
		},
		"text": map[string]interface{}{
			"type":        "string",
			"description": "Text to type",
		},
	}, "index", "text")
}

func (t *InputTextTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Index int    `json:"index"`
		Text  string `json:"text"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return "", err
	}

	err := t.browser.FillElement(ctx, args.Index, args.Text)
	result := ""
	if err == nil {
		result = fmt.Sprintf("Typed %q into element %d", args.Text, args.Index)
	}
	recordStep(t.recorder, t.browser, t.Name(), arguments, result, err)
	if err != nil {
		return "", err
	}
	return result, nil
}
