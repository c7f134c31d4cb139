package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pagepilot/internal/di"
)

func main() {
	taskFlag := flag.String("task", "", "task for the agent; read from stdin when empty")
	timeoutFlag := flag.Duration("timeout", 30*time.Minute, "overall task timeout")
	flag.Parse()

	task := strings.TrimSpace(*taskFlag)
	if task == "" {
		fmt.Println("Enter a task for the agent:")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("failed to read input: %v", err)
		}
		task = strings.TrimSpace(line)
	}
	if task == "" {
		log.Fatal("no task given")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx)
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	container.Logger.Info("Task started", "task", task)

	result, err := container.Executor.Execute(ctx, task)
	if err != nil {
		container.Logger.Error("Task failed", "error", err)
		fmt.Fprintf(os.Stderr, "task failed: %v\n", err)
		os.Exit(1)
	}

	container.Logger.Info("Task completed", "iterations", result.Iterations)
	fmt.Println("\nFINAL ANSWER:")
	fmt.Println(result.FinalAnswer)
}
