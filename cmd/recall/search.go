package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quailykeep/recall/bundle"
	"github.com/quailykeep/recall/internal/logutil"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a scoring pass without writing the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}

			query := strings.TrimSpace(flagOrViperString(cmd, "query", ""))
			if query == "" && len(args) > 0 {
				query = strings.TrimSpace(strings.Join(args, " "))
			}

			b := bundle.NewBuilder(bundleConfigFromFlags(cmd), logger)
			snap := b.Assemble(query)

			out, err := json.MarshalIndent(snap.SearchResult, "", "  ")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	addPipelineFlags(cmd)
	return cmd
}
