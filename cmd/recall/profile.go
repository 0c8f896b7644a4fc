package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/quailykeep/recall/internal/logutil"
	"github.com/quailykeep/recall/internal/statepaths"
	"github.com/quailykeep/recall/persona"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [file...]",
		Short: "Feed text through the personality classifier and update the running profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}

			classifier, err := classifierFromViper(logger)
			if err != nil {
				return err
			}

			texts, err := gatherTexts(cmd, args)
			if err != nil {
				return err
			}
			if len(texts) == 0 {
				return fmt.Errorf("no input text (pass files or pipe to stdin)")
			}

			profilePath := statepaths.PersonaProfilePath()
			prof, _ := persona.LoadProfile(profilePath, logger)
			for _, text := range texts {
				prof = classifier.Observe(prof, text, time.Now())
			}
			if save, _ := cmd.Flags().GetBool("save"); save {
				if err := persona.SaveProfile(profilePath, prof); err != nil {
					return err
				}
				logger.Info("persona profile updated", "path", profilePath)
			}

			result := classifier.Classify(prof.Dimensions)
			out, err := json.MarshalIndent(struct {
				Classification persona.Classification             `json:"classification"`
				Dimensions     map[string]persona.DimensionState `json:"dimensions"`
			}{result, prof.Dimensions}, "", "  ")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().Bool("save", true, "Persist the updated running profile.")
	return cmd
}

func classifierFromViper(logger *slog.Logger) (*persona.Classifier, error) {
	threshold := viper.GetFloat64("persona.confidence_threshold")
	patternsFile := strings.TrimSpace(viper.GetString("persona.patterns_file"))
	specs, err := persona.DefaultPatterns()
	if patternsFile != "" {
		var data []byte
		data, err = os.ReadFile(patternsFile)
		if err != nil {
			return nil, fmt.Errorf("read patterns file: %w", err)
		}
		specs, err = persona.LoadPatterns(data)
	}
	if err != nil {
		return nil, err
	}
	return persona.NewClassifier(specs, threshold, logger)
}

func gatherTexts(cmd *cobra.Command, args []string) ([]string, error) {
	texts := make([]string, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			texts = append(texts, text)
		}
	}
	if len(args) == 0 {
		stat, err := os.Stdin.Stat()
		if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, err
			}
			if text := strings.TrimSpace(string(data)); text != "" {
				texts = append(texts, text)
			}
		}
	}
	return texts, nil
}
