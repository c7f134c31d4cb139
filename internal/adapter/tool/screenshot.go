package tool

import (
	"context"
	"encoding/base64"
	"fmt"

	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/domain/entity"
)

var _ output.ToolPort = (*ScreenshotTool)(nil)

type ScreenshotTool struct {
	browser  output.BrowserPort
	recorder *service.StepRecorder
}

func NewScreenshotTool(browser output.BrowserPort, recorder *service.StepRecorder) *ScreenshotTool {
	return &ScreenshotTool{browser: browser, recorder: recorder}
}

func (t *ScreenshotTool) Name() entity.ToolName { return entity.ToolScreenshot }

func (t *ScreenshotTool) Description() string {
	return "Take a screenshot of the current page. Returns base64-encoded JPEG data."
}

func (t *ScreenshotTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *ScreenshotTool) Execute(ctx context.Context, arguments string) (string, error) {
	shot, err := t.browser.Screenshot(ctx)
	result := ""
	if err == nil {
		result = fmt.Sprintf("data:image/%s;base64,%s",
			shot.Format, base64.StdEncoding.EncodeToString(shot.Data))
	}

	// Keep the trace readable; the image itself does not belong there.
	summary := ""
	if err == nil {
		summary = fmt.Sprintf("Captured %dx%d %s screenshot (%d bytes)",
			shot.Width, shot.Height, shot.Format, len(shot.Data))
	}
	recordStep(t.recorder, t.browser, t.Name(), arguments, summary, err)

	if err != nil {
		return "", err
	}
	return result, nil
}
