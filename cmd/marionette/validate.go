package main

import (
	"context"

	"github.com/aretw0/marionette/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate SCRIPT",
	Short: "Check a script and the scripts it references",
	Long:  `Crawls every script reachable from SCRIPT through play and scan references and reports missing files and syntax errors.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			return cli.WatchValidate(ctx, cfg, args[0], cmd.OutOrStdout())
		}
		return cli.ValidateOnce(ctx, cfg, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolP("watch", "w", false, "Re-validate whenever a script changes")
}
