package main

import (
	"context"
	"os"

	"github.com/aretw0/marionette/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Play a script",
	Long: `Loads SCRIPT and plays its first macro, or the one named by --macro.
Input events are written to stdout one instruction per line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := cli.RunOptions{ScriptPath: args[0]}
		opts.Macro, _ = cmd.Flags().GetString("macro")
		opts.Times, _ = cmd.Flags().GetInt("times")
		opts.Set, _ = cmd.Flags().GetStringArray("set")
		opts.NoSleep, _ = cmd.Flags().GetBool("no-sleep")
		quiet, _ := cmd.Flags().GetBool("quiet")
		opts.Banner = !quiet && isTerminal(os.Stderr)

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Run(ctx, cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("macro", "m", "", "Name of the macro to play")
	runCmd.Flags().IntP("times", "n", 1, "Number of times to play the macro")
	runCmd.Flags().StringArray("set", nil, "Seed a variable as name=value (repeatable)")
	runCmd.Flags().Bool("no-sleep", false, "Write delays without waiting")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	runCmd.Flags().String("log-level", "", "Log level (debug, info, warn, error, off)")
	runCmd.Flags().String("log-format", "", "Log format (text, json)")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")
	runCmd.Flags().String("screen", "", "PNG or JPEG image used as the captured screen")
	runCmd.Flags().Duration("wait-interval", 0, "Polling period of wait instructions")
}
