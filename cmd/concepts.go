package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	adsvc "pomelo/internal/service/ad"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "Generate a concept batch for every style, template and model combination",
	RunE:  runConcepts,
}

var (
	judgeSummaryPath string

	judgeCmd = &cobra.Command{
		Use:   "judge",
		Short: "Score every concept in a batch and write the ranked evaluation",
		RunE:  runJudge,
	}
)

var (
	bestEvaluationPath string

	bestCmd = &cobra.Command{
		Use:   "best",
		Short: "Extract the highest-scoring concept from an evaluation",
		RunE:  runBest,
	}
)

func init() {
	rootCmd.AddCommand(conceptsCmd)

	judgeCmd.Flags().StringVar(&judgeSummaryPath, "summary", "", "batch summary JSON (defaults to the newest batch)")
	rootCmd.AddCommand(judgeCmd)

	bestCmd.Flags().StringVar(&bestEvaluationPath, "evaluation", "", "evaluation JSON (defaults to the newest evaluation)")
	rootCmd.AddCommand(bestCmd)
}

func runConcepts(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		summary, path, err := svc.GenerateConcepts(ctx)
		if err != nil {
			return err
		}
		log.Info().
			Int("successful", summary.Successful).
			Int("failed", summary.Failed).
			Str("summary", path).
			Msg("concept batch finished")
		return nil
	})
}

func runJudge(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		jsonPath, csvPath, err := svc.JudgeBatch(ctx, judgeSummaryPath)
		if err != nil {
			return err
		}
		log.Info().Str("evaluation", jsonPath).Str("scores", csvPath).Msg("judging finished")
		return nil
	})
}

func runBest(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		record, path, err := svc.ExtractBestConcept(bestEvaluationPath)
		if err != nil {
			return err
		}
		log.Info().
			Int("score", record.BestConcept.Score).
			Str("file", path).
			Msg("best concept extracted")
		return nil
	})
}
