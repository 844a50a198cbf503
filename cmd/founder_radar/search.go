package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/engine"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run the search pipeline and print the dashboard cards as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		eng, cleanup, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		return runSearch(ctx, eng, owner, strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func runSearch(ctx context.Context, eng *engine.Engine, owner, query string, out, progress io.Writer) error {
	res, err := eng.Search(ctx, owner, query, func(stage string, p int) {
		fmt.Fprintf(progress, "[%3d%%] %s\n", p, stage)
	})
	if err != nil {
		return err
	}
	if res.SchemaErr != nil {
		fmt.Fprintf(progress, "warning: %v\n", res.SchemaErr)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Items)
}
