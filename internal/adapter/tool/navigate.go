package tool

import (
	"context"
	"fmt"

	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/domain/entity"
)

var _ output.ToolPort = (*NavigateTool)(nil)

type NavigateTool struct {
	browser  output.BrowserPort
	recorder *service.StepRecorder
}

func NewNavigateTool(browser output.BrowserPort, recorder *service.StepRecorder) *NavigateTool {
	return &NavigateTool{browser: browser, recorder: recorder}
}

func (t *NavigateTool) Name() entity.ToolName { return entity.ToolNavigate }

func (t *NavigateTool) Description() string {
	return "Navigate the browser to the given URL and wait for the page to load."
}

func (t *NavigateTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"url": map[string]interface{}{
			"type":        "string",
			"description": "Absolute http(s) URL to open",
		},
	}, "url")
}

func (t *NavigateTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		URL string `json:"url"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return "", err
	}

	err := t.browser.Navigate(ctx, args.URL)
	result := ""
	if err == nil {
		result = fmt.Sprintf("Navigated to %s", args.URL)
	}
	recordStep(t.recorder, t.browser, t.Name(), arguments, result, err)
	if err != nil {
		return "", err
	}
	return result, nil
}
