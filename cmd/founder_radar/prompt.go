package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <query>",
	Short: "Print the search prompt that would be sent for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), prompt.BuildSearch(strings.Join(args, " ")))
		return nil
	},
}
