package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pagepilot/internal/domain/entity"
)

// StepRecorder accumulates the per-step trace of a task run: which tool ran,
// with what arguments, against which element, and what came back.
type StepRecorder struct {
	mu    sync.Mutex
	steps []entity.AgentStep
}

func NewStepRecorder() *StepRecorder {
	return &StepRecorder{}
}

func (r *StepRecorder) Record(step entity.AgentStep) {
	r.mu.Lock()
	defer r.mu.Unlock()
	step.Step = len(r.steps) + 1
	if step.Timestamp.IsZero() {
		step.Timestamp = time.Now()
	}
	r.steps = append(r.steps, step)
}

func (r *StepRecorder) Steps() []entity.AgentStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AgentStep, len(r.steps))
	copy(out, r.steps)
	return out
}

// Save writes the trace as indented JSON under dir, one file per run.
func (r *StepRecorder) Save(dir string) (string, error) {
	steps := r.Steps()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create steps dir: %w", err)
	}

	data, err := json.MarshalIndent(steps, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal steps: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("steps_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write steps file: %w", err)
	}
	return path, nil
}
