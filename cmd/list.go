package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"holster-go/internal/config"
	"holster-go/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print active and inactive server entries",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	store := config.NewStore(path, zap.NewNop())
	doc, err := store.Load()
	if err != nil {
		return err
	}

	active, inactive := registry.List(doc)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Active (%d):\n", len(active))
	for _, name := range registry.Names(active) {
		entry := active[name]
		fmt.Fprintf(out, "  %-20s %s %s\n", name, entry.Command, strings.Join(entry.Args, " "))
	}
	fmt.Fprintf(out, "Inactive (%d):\n", len(inactive))
	for _, name := range registry.Names(inactive) {
		entry := inactive[name]
		fmt.Fprintf(out, "  %-20s %s %s\n", name, entry.Command, strings.Join(entry.Args, " "))
	}
	return nil
}
