package main

import (
	"context"
	"os"

	"github.com/aretw0/marionette/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect SCRIPT",
	Short: "Describe the macros of a script graph",
	Long: `Lists the macros of SCRIPT and of every script it references.
With --graph the reference graph is printed as a Mermaid flowchart.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		mermaid, _ := cmd.Flags().GetBool("graph")
		opts := cli.InspectOptions{
			ScriptPath: args[0],
			Mermaid:    mermaid,
			Render:     !mermaid && isTerminal(os.Stdout),
		}
		return cli.Inspect(context.Background(), cfg, opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("graph", false, "Print a Mermaid flowchart instead of a table")
}
