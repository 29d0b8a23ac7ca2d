package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-gym/internal/registry"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List all registered policies",
	Long:  `Shows every policy that run, play and scores accept as --agent.`,
	Args:  cobra.NoArgs,
	Run:   runAgents,
}

func runAgents(cmd *cobra.Command, args []string) {
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Println("No agents registered.")
		return
	}

	fmt.Println("Available agents:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, p := range policies {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, p := range policies {
		fmt.Printf("  %-*s  %s\n", maxNameLen, p.Name, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'flappyenv run --agent <name>' to evaluate one.")
}
