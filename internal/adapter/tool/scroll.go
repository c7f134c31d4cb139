package tool

import (
	"context"
	"fmt"

	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/domain/entity"
)

var _ output.ToolPort = (*ScrollTool)(nil)

type ScrollTool struct {
	browser  output.BrowserPort
	recorder *service.StepRecorder
}

func NewScrollTool(browser output.BrowserPort, recorder *service.StepRecorder) *ScrollTool {
	return &ScrollTool{browser: browser, recorder: recorder}
}

func (t *ScrollTool) Name() entity.ToolName { return entity.ToolScroll }

func (t *ScrollTool) Description() string {
	return "Scroll the page. Direction is one of: up, down, top, bottom."
}

func (t *ScrollTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"direction": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"up", "down", "top", "bottom"},
			"description": "Where to scroll",
		},
	}, "direction")
}

func (t *ScrollTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Direction string `json:"direction"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return "", err
	}

	err := t.browser.Scroll(ctx, args.Direction)
	result := ""
	if err == nil {
		result = fmt.Sprintf("Scrolled %s", args.Direction)
	}
	recordStep(t.recorder, t.browser, t.Name(), arguments, result, err)
	if err != nil {
		return "", err
	}
	return result, nil
}
