package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research <query>",
	Short: "List deep-research sources for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		eng, cleanup, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		sources, err := eng.Research(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, s := range sources {
			fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, s.Title, s.Link)
		}
		return nil
	},
}
