// Package di wires the application together: environment, logging, browser,
// LLM client, tools, and the task executor.
package di

import (
	"context"
	"fmt"
	"time"

	"pagepilot/internal/adapter/tool"
	"pagepilot/internal/application/port/input"
	"pagepilot/internal/application/port/output"
	"pagepilot/internal/application/service"
	"pagepilot/internal/application/usecase"
	"pagepilot/internal/infrastructure/browser/rod"
	"pagepilot/internal/infrastructure/env"
	"pagepilot/internal/infrastructure/llm/openrouter"
	"pagepilot/internal/infrastructure/logger"
)

type Container struct {
	Logger   output.LoggerPort
	Browser  output.BrowserPort
	LLM      output.LLMPort
	Registry output.ToolRegistry
	Recorder *service.StepRecorder
	Executor input.TaskExecutor

	closers []func()
}

func NewContainer(ctx context.Context) (*Container, error) {
	envService := env.NewService()

	log, err := logger.NewZapAdapter(logger.Config{
		Level:   envService.Get("LOG_LEVEL", "info"),
		LogDir:  envService.Get("LOG_DIR", "log"),
		Console: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	c := &Container{Logger: log}
	c.closers = append(c.closers, func() { _ = log.Close() })

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = envService.GetBool("BROWSER_HEADLESS", true)
	browserCfg.NoSandbox = envService.GetBool("BROWSER_NO_SANDBOX", false)
	browserCfg.Timeout = time.Duration(envService.GetInt("BROWSER_TIMEOUT_SECONDS", 10)) * time.Second

	browser, err := rod.NewBrowserAdapter(ctx, browserCfg, log)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to init browser: %w", err)
	}
	c.Browser = browser
	c.closers = append(c.closers, browser.Close)

	apiKey, err := envService.MustGet("OPENROUTER_API_KEY")
	if err != nil {
		c.Close()
		return nil, err
	}

	llmCfg := openrouter.DefaultConfig()
	llmCfg.APIKey = apiKey
	llmCfg.Model = envService.Get("LLM_MODEL", llmCfg.Model)
	llmCfg.LogRequests = envService.GetBool("LLM_LOG_REQUESTS", false)

	llm, err := openrouter.NewAdapter(llmCfg, log)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to init llm client: %w", err)
	}
	c.LLM = llm

	recorder := service.NewStepRecorder()
	c.Recorder = recorder

	c.Registry = service.NewToolRegistry(
		tool.NewNavigateTool(browser, recorder),
		tool.NewClickTool(browser, recorder, log),
		tool.NewInputTextTool(browser, recorder),
		tool.NewScrollTool(browser, recorder),
		tool.NewPressEnterTool(browser, recorder),
		tool.NewScreenshotTool(browser, recorder),
		tool.NewExtractTool(browser, recorder),
	)

	c.Executor = usecase.NewExecuteTaskUseCase(browser, llm, c.Registry, recorder, log, usecase.Config{
		MaxIterations: envService.GetInt("AGENT_MAX_ITERATIONS", 20),
		Temperature:   0,
		StepsDir:      envService.Get("AGENT_STEPS_DIR", "steps"),
	})

	return c, nil
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
