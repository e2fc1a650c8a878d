package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	adsvc "pomelo/internal/service/ad"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full ad generation pipeline",
	Long: `Run every stage in order: concept batch, judging, best-concept pick,
script revision, universe extraction, reference images, scene prompts,
first frames, video clips and the final merge. Skip flags reuse artifacts
already on disk instead of regenerating them.`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.String("start-from", "", "resume from an existing evaluation JSON")
	flags.Bool("skip-concepts", false, "reuse the latest concept batch")
	flags.Bool("skip-evaluation", false, "reuse the latest evaluation")
	flags.Bool("skip-images", false, "reuse reference images when the output dir exists")
	flags.Bool("skip-first-frames", false, "reuse first frames when the output dir exists")
	flags.Bool("skip-clips", false, "skip clip generation, merge whatever clips exist")
	flags.Bool("regenerate-prompts", false, "regenerate scene prompts and clips even if present")

	_ = viper.BindPFlag("pipeline.start_from", flags.Lookup("start-from"))
	_ = viper.BindPFlag("pipeline.skip_concept_generation", flags.Lookup("skip-concepts"))
	_ = viper.BindPFlag("pipeline.skip_evaluation", flags.Lookup("skip-evaluation"))
	_ = viper.BindPFlag("advanced.skip_image_generation", flags.Lookup("skip-images"))
	_ = viper.BindPFlag("advanced.skip_first_frames", flags.Lookup("skip-first-frames"))
	_ = viper.BindPFlag("advanced.skip_video_clips", flags.Lookup("skip-clips"))
	_ = viper.BindPFlag("advanced.regenerate_scene_prompts", flags.Lookup("regenerate-prompts"))
}

func runPipeline(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		run, err := svc.Run(ctx)
		if err != nil {
			return err
		}
		log.Info().
			Str("run_id", run.RunID).
			Str("final_video", run.FinalVideo).
			Msg("pipeline finished")
		return nil
	})
}
