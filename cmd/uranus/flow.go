package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/futureHQ/uranus/internal/agent"
	"github.com/futureHQ/uranus/internal/flow"
	"github.com/futureHQ/uranus/internal/llm"
	"github.com/futureHQ/uranus/internal/tool"
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Run multi-agent flows",
}

var flowRunCmd = &cobra.Command{
	Use:   "run <file> [input...]",
	Short: "Run a YAML-defined agent flow",
	Long: `Run a flow defined in a YAML file. Each agent in the file gets the
full tool registry; agents execute in sequence, each one's output
feeding the next one's input.

Example:
  uranus flow run flows/research.yaml "summarize the system status"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runFlow(args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	flowCmd.AddCommand(flowRunCmd)
}

func runFlow(path, input string) {
	def, err := flow.LoadDefinition(path)
	if err != nil {
		fmt.Printf("Error loading flow: %v\n", err)
		os.Exit(1)
	}

	client := llm.New(cfg.Profile("default"), logger)

	runners := make([]flow.Runner, 0, len(def.Agents))
	for _, ad := range def.Agents {
		registry := tool.NewRegistry()
		registry.Register(tool.NewSystemInfo(logger))
		registry.Register(tool.NewFileOperations(cfg.WorkspaceDir, logger))
		registry.Register(tool.NewBrowser(logger))
		registry.Register(tool.NewFileSaver(cfg.WorkspaceDir, logger))
		registry.Register(tool.NewPythonExecute(logger))
		registry.Register(tool.NewTerminal(logger))
		registry.Register(tool.NewTerminate())

		runners = append(runners, agent.New(agent.Config{
			Name:           ad.Name,
			Description:    ad.Description,
			SystemPrompt:   ad.SystemPrompt,
			NextStepPrompt: ad.NextStepPrompt,
			LLM:            client,
			Tools:          registry,
			MaxMessages:    cfg.MaxMessages,
			Logger:         logger,
		}))
	}

	f := flow.NewSequential(runners, logger)
	f.UseSequence(def.Sequence)

	fmt.Println(f.Execute(context.Background(), input))
}
