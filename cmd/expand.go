package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	adsvc "pomelo/internal/service/ad"
)

var expandCmd = &cobra.Command{
	Use:   "expand [concept text or file]",
	Short: "Expand a 2-3 sentence concept into a full scripted narrative",
	Long: `Expand a high-level concept into a complete scene-by-scene narrative,
judge the result, then revise it against the judge's feedback. One model
drives all three steps. The argument is either the concept text itself or
a path to a text file containing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	conceptText := args[0]
	if info, err := os.Stat(conceptText); err == nil && !info.IsDir() {
		data, err := os.ReadFile(conceptText)
		if err != nil {
			return fmt.Errorf("read concept file: %w", err)
		}
		conceptText = strings.TrimSpace(string(data))
	}
	if conceptText == "" {
		return fmt.Errorf("concept text is empty")
	}

	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		result, err := svc.ExpandConcept(ctx, conceptText)
		if err != nil {
			return err
		}
		log.Info().
			Str("concept", result.ConceptName).
			Int("score", result.Score).
			Str("revised", result.RevisedFile).
			Msg("concept expansion finished")
		return nil
	})
}
