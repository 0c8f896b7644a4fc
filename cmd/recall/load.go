package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quailykeep/recall/bundle"
	"github.com/quailykeep/recall/internal/logutil"
	"github.com/quailykeep/recall/internal/pathutil"
	"github.com/quailykeep/recall/internal/statepaths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Answer a query against the session index and write the memory bundle snapshot",
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
			snap, err := b.Build(query)
			if err != nil {
				return err
			}

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

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "Query text to match against session metadata.")
	cmd.Flags().String("dir", "", "Memory directory (defaults to <file_state_dir>/memory).")
	cmd.Flags().Float64("threshold", 0.65, "Minimum fraction of the max score a session must reach.")
	cmd.Flags().Int("max-results", 5, "Maximum sessions to return.")
	cmd.Flags().Int("ttl", 3600, "Snapshot TTL in seconds.")
	cmd.Flags().Bool("cascade", true, "Try the recent partition before the full index.")
}

func bundleConfigFromFlags(cmd *cobra.Command) bundle.Config {
	if dir := strings.TrimSpace(flagOrViperString(cmd, "dir", "")); dir != "" {
		viper.Set("memory.dir", pathutil.ExpandHomePath(dir))
	}
	memoryDir := statepaths.MemoryDir()
	return bundle.Config{
		ProjectRoot:  memoryDir,
		IndexPath:    statepaths.IndexPath(),
		SessionsDir:  statepaths.SessionsDir(),
		SnapshotPath: statepaths.SnapshotPath(),
		LessonsPath:  statepaths.LessonsPath(),
		ProjectPath:  statepaths.ProjectBriefPath(),
		ProfilePath:  statepaths.AdaptationProfilePath(),
		Threshold:    flagOrViperFloat64(cmd, "threshold", "search.threshold"),
		MaxResults:   flagOrViperInt(cmd, "max-results", "search.max_results"),
		TTLSeconds:   flagOrViperInt(cmd, "ttl", "snapshot.ttl_seconds"),
		Cascade:      flagOrViperBool(cmd, "cascade", "search.cascade"),
	}
}
