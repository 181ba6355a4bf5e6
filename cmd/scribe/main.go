package main

import (
	"os"

	"github.com/grovetools/scribe/cli"
	"github.com/grovetools/scribe/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"scribe",
		"Upload monitoring and transcription pipeline for screen captures",
	)

	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewRecentCmd())
	rootCmd.AddCommand(cmd.NewProcessCmd())
	rootCmd.AddCommand(cmd.NewReportCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	cli.ApplyStyledHelpRecursive(rootCmd)

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
