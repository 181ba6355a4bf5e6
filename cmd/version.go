package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/scribe/cli"
)

func NewVersionCmd() *cobra.Command {
	return cli.NewVersionCommand("scribe")
}
