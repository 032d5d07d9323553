package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List available tools",
	Long: `List the tools the agent can dispatch to.

Triggered requests (like "system status" or "ls") invoke these tools
directly; everything else goes to the LLM, which sees their
descriptions.

Examples:
  uranus tools           # List all tools
  uranus tools --verbose # Show parameter schemas`,
	Run: func(cmd *cobra.Command, args []string) {
		runTools()
	},
}

func runTools() {
	registry := buildAgent(cfg, logger).Tools()

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	toolStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF"))

	paramStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#06B6D4"))

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	fmt.Println(headerStyle.Render("Available Tools"))
	fmt.Println()

	for _, name := range registry.List() {
		t, ok := registry.Get(name)
		if !ok {
			continue
		}
		fmt.Printf("  %s\n", toolStyle.Render("◆ "+t.Name()))
		fmt.Printf("    %s\n", descStyle.Render(t.Description()))

		if verbose {
			if props, ok := t.Parameters()["properties"].(map[string]any); ok && len(props) > 0 {
				names := make([]string, 0, len(props))
				for name := range props {
					names = append(names, name)
				}
				sort.Strings(names)

				fmt.Println("    Parameters:")
				for _, name := range names {
					fmt.Printf("      %s\n", paramStyle.Render(name))
					if spec, ok := props[name].(map[string]any); ok {
						if desc, ok := spec["description"].(string); ok && desc != "" {
							fmt.Printf("        %s\n", descStyle.Render(desc))
						}
					}
				}
			}
		}
		fmt.Println()
	}

	if !verbose {
		fmt.Println(dimStyle.Render("  Use --verbose for parameter details"))
	}
}
