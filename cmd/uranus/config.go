package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/futureHQ/uranus/internal/config"
)

var (
	initConfig bool
	showConfig bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or initialize configuration",
	Long: `View the resolved uranus configuration.

Configuration is looked up in this order:
  1. the --config flag
  2. the URANUS_CONFIG environment variable
  3. config/config.toml
  4. config/config.example.toml
  5. environment-derived defaults (OPENAI_API_KEY)

Examples:
  uranus config          # View current config
  uranus config --show   # Same, explicitly
  uranus config --init   # Write config/config.example.toml`,
	Run: func(cmd *cobra.Command, args []string) {
		runConfigCmd()
	},
}

func init() {
	configCmd.Flags().BoolVar(&initConfig, "init", false, "Write an example config file")
	configCmd.Flags().BoolVar(&showConfig, "show", false, "Print the resolved configuration")
}

func runConfigCmd() {
	if initConfig {
		if err := writeExampleConfig(); err != nil {
			fmt.Printf("Error writing example config: %v\n", err)
			return
		}
		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Render("✓ Wrote config/config.example.toml"))
		fmt.Println()
	}

	printConfig(cfg)
}

func printConfig(cfg *config.Config) {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF")).
		Width(20)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB"))

	fmt.Println(headerStyle.Render("uranus Configuration"))
	fmt.Println()

	profiles := make([]string, 0, len(cfg.LLM))
	for name := range cfg.LLM {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)

	for _, name := range profiles {
		settings := cfg.LLM[name]
		fmt.Printf("%s %s\n", keyStyle.Render("LLM profile:"), valueStyle.Render(name))
		fmt.Printf("%s %s\n", keyStyle.Render("  Model:"), valueStyle.Render(settings.Model))
		fmt.Printf("%s %s\n", keyStyle.Render("  Base URL:"), valueStyle.Render(settings.BaseURL))
		fmt.Printf("%s %s\n", keyStyle.Render("  API key:"), valueStyle.Render(maskKey(settings.APIKey)))
		fmt.Printf("%s %s\n", keyStyle.Render("  Max tokens:"), valueStyle.Render(fmt.Sprintf("%d", settings.MaxTokens)))
		fmt.Printf("%s %s\n", keyStyle.Render("  Temperature:"), valueStyle.Render(fmt.Sprintf("%.1f", settings.Temperature)))
	}

	fmt.Printf("%s %s\n", keyStyle.Render("Workspace:"), valueStyle.Render(cfg.WorkspaceDir))
	fmt.Printf("%s %s\n", keyStyle.Render("Log dir:"), valueStyle.Render(cfg.LogDir))
	fmt.Printf("%s %s\n", keyStyle.Render("Max messages:"), valueStyle.Render(fmt.Sprintf("%d", cfg.MaxMessages)))
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func writeExampleConfig() error {
	if err := os.MkdirAll("config", 0o755); err != nil {
		return err
	}

	example := `# uranus configuration

[llm.default]
model = "gpt-3.5-turbo"
base_url = "https://api.openai.com/v1"
api_key = "sk-..."
max_tokens = 4096
temperature = 0.7
api_type = "openai"

# Optional second profile, selected in code by name.
# [llm.vision]
# model = "gpt-4o"
# base_url = "https://api.openai.com/v1"
# api_key = "sk-..."

[search]
endpoint = "https://serpapi.com/search"
api_key = ""

# workspace_dir = "~/uranus_workspace"
# max_messages = 100
`
	return os.WriteFile(filepath.Join("config", "config.example.toml"), []byte(example), 0o644)
}
