// Package tool adapts browser operations into the tool-calling surface the
// agent exposes to the model.
package tool

import (
	"encoding/json"
	"fmt"
	"time"

	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/domain/entity"
)

func decodeArguments(raw string, into any) error {
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}
	return nil
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func recordStep(rec *service.StepRecorder, browser output.BrowserPort, name entity.ToolName, args string, result string, err error) {
	if rec == nil {
		return
	}
	step := entity.AgentStep{
		Tool:      string(name),
		Arguments: args,
		Result:    result,
		PageURL:   browser.CurrentURL(),
		Timestamp: time.Now(),
	}
	if err != nil {
		step.Error = err.Error()
	}
	rec.Record(step)
}
