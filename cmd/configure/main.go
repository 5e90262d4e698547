package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskflow-app/taskflow/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "taskflow-configure",
		Short: "Configuration tool for the TaskFlow API",
		Long:  "CLI tool for checking backends and managing stored TaskFlow data",
	}

	rootCmd.AddCommand(commands.NewCheckCmd())
	rootCmd.AddCommand(commands.NewDumpCmd())
	rootCmd.AddCommand(commands.NewResetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
