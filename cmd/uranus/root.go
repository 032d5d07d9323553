package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/futureHQ/uranus/internal/agent"
	"github.com/futureHQ/uranus/internal/config"
	"github.com/futureHQ/uranus/internal/llm"
	"github.com/futureHQ/uranus/internal/tool"
	"github.com/futureHQ/uranus/internal/ui"
)

var (
	inputText   string
	configPath  string
	interactive bool
	verbose     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "uranus",
	Short: "A reactive AI assistant with direct tool dispatch",
	Long: `Uranus is an AI assistant that routes requests to local tools
(system info, file operations, terminal, browser, Python execution)
and falls back to an LLM for everything else.

Usage:
  uranus                        Start a chat session
  uranus --it                   Start the full-screen interactive UI
  uranus --input "some request" Run a single request and exit
  uranus tools                  List available tools
  uranus config                 View configuration
  uranus flow run <file>        Run a YAML-defined agent flow`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = loadConfig()

		var err error
		logger, err = buildLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		return nil
	},

	Run: runSession,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a chat session",
	Long: `Start a chat session with the agent.

Examples:
  uranus chat                   Line-oriented REPL (exit with 'exit')
  uranus chat --it              Full-screen interactive UI
  uranus chat --input "request" Run a single request and exit`,
	Run: runSession,
}

func runSession(cmd *cobra.Command, args []string) {
	a := buildAgent(cfg, logger)

	if inputText != "" {
		fmt.Printf("Uranus: %s\n", a.Run(context.Background(), inputText))
		return
	}

	if interactive {
		if err := ui.Run(a, logger); err != nil {
			fmt.Printf("Error running UI: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runChat(a)
}

// buildLogger writes development output to the terminal under --verbose;
// otherwise production logs go to the per-user log directory so they stay
// out of the chat transcript.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return zap.NewNop(), nil
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{filepath.Join(cfg.LogDir, "uranus.log")}
	zcfg.ErrorOutputPaths = zcfg.OutputPaths
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop(), nil
	}
	return logger, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, chatCmd} {
		cmd.Flags().BoolVar(&interactive, "it", false, "Start the full-screen interactive UI")
		cmd.Flags().StringVar(&inputText, "input", "", "Input text to process once")
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration: the --config flag wins, then the
// documented lookup order, then environment-derived defaults.
func loadConfig() *config.Config {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Warning: Could not load config: %v\n", err)
			return config.DefaultConfig()
		}
		return cfg
	}
	return config.Resolve()
}

// buildAgent wires the full tool registry and LLM client into an agent.
func buildAgent(cfg *config.Config, logger *zap.Logger) *agent.Agent {
	registry := tool.NewRegistry()
	registry.Register(tool.NewSystemInfo(logger))
	registry.Register(tool.NewFileOperations(cfg.WorkspaceDir, logger))
	registry.Register(tool.NewBrowser(logger))
	registry.Register(tool.NewFileSaver(cfg.WorkspaceDir, logger))
	registry.Register(tool.NewPythonExecute(logger))
	registry.Register(tool.NewTerminal(logger))
	registry.Register(tool.NewTerminate())
	registry.Register(tool.NewBrowserUse(logger))
	if cfg.Search.APIKey != "" {
		registry.Register(tool.NewWebSearch(cfg.Search.Endpoint, cfg.Search.APIKey, logger))
	} else {
		logger.Warn("web_search not registered: no search API key configured")
	}

	return agent.New(agent.Config{
		Name:         "Uranus",
		Description:  "A helpful assistant that can perform various tasks.",
		SystemPrompt: "You are Uranus, a helpful AI assistant that can perform various tasks including providing system information, file operations, web browsing, executing Python code, and more.",
		LLM:          llm.New(cfg.Profile("default"), logger),
		Tools:        registry,
		MaxMessages:  cfg.MaxMessages,
		Logger:       logger,
	})
}

// runChat is the plain line-oriented session: read a line, run the agent,
// print the reply.
func runChat(a *agent.Agent) {
	fmt.Println("Welcome to Uranus! Type 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "exit", "quit", "q":
			fmt.Println("Goodbye!")
			return
		}

		fmt.Printf("\nUranus: %s\n\n", a.Run(context.Background(), input))
	}
}
