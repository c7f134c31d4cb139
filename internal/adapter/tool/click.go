package tool

import (
	"context"
	"fmt"

	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/domain/dom"
	"pagepilot/internal/domain/dom/history"
	"pagepilot/internal/domain/entity"
)

var _ output.ToolPort = (*ClickTool)(nil)

// ClickTool clicks an interactive element by its highlight index. Because the
// page may have shifted since the model last saw it, the tool records the
// target's structural fingerprint, recaptures the page, and relocates the
// element before clicking; the stale index is only used as a last resort.
type ClickTool struct {
	browser  output.BrowserPort
	recorder *service.StepRecorder
	logger   output.LoggerPort
}

func NewClickTool(browser output.BrowserPort, recorder *service.StepRecorder, logger output.LoggerPort) *ClickTool {
	return &ClickTool{browser: browser, recorder: recorder, logger: logger}
}

func (t *ClickTool) Name() entity.ToolName { return entity.ToolClick }

func (t *ClickTool) Description() string {
	return "Click the interactive element with the given index from the current page listing."
}

func (t *ClickTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"index": map[string]interface{}{
			"type":        "integer",
			"description": "Highlight index of the element to click",
		},
	}, "index")
}

func (t *ClickTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Index int `json:"index"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return "", err
	}

	index := args.Index
	var record *history.DOMHistoryElement

	if state := t.browser.State(); state != nil {
		if el, ok := state.ElementByIndex(index); ok {
			record = history.NewRecord(el)
		}
	}

	// Recapture so the click targets the page as it is now, not as it was
	// when the listing was produced.
	if record != nil {
		if fresh, err := t.browser.CaptureState(ctx, dom.DefaultCaptureOptions()); err == nil {
			if found, ok := history.FindInTree(record, fresh.Root); ok && found.HighlightIndex != nil {
				if *found.HighlightIndex != index && t.logger != nil {
					t.logger.Debug("Element moved between captures",
						"old_index", index, "new_index", *found.HighlightIndex)
				}
				index = *found.HighlightIndex
			} else if t.logger != nil {
				t.logger.Warn("Element not relocated, using original index",
					"index", index, "xpath", record.XPath)
			}
		}
	}

	err := t.browser.ClickElement(ctx, index)
	result := ""
	if err == nil {
		result = fmt.Sprintf("Clicked element %d", index)
	}

	if t.recorder != nil {
		step := entity.AgentStep{
			Tool:      string(t.Name()),
			Arguments: arguments,
			Element:   record,
			Result:    result,
			PageURL:   t.browser.CurrentURL(),
		}
		if err != nil {
			step.Error = err.Error()
		}
		t.recorder.Record(step)
	}

	if err != nil {
		return "", err
	}
	return result, nil
}
