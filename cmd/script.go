package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	adsvc "pomelo/internal/service/ad"
)

var (
	scriptConceptPath string
	scriptOutputDir   string

	scriptCmd = &cobra.Command{
		Use:   "script",
		Short: "Revise a winning concept into a production-ready video script",
		RunE:  runScript,
	}
)

var (
	universeRevisedPath string
	universeOutputDir   string

	universeCmd = &cobra.Command{
		Use:   "universe",
		Short: "Extract recurring characters, locations and props from a revised script",
		RunE:  runUniverse,
	}
)

var (
	promptsRevisedPath  string
	promptsUniversePath string
	promptsManifestPath string
	promptsOutputDir    string

	promptsCmd = &cobra.Command{
		Use:   "prompts",
		Short: "Generate per-scene director prompts from a revised script and universe",
		RunE:  runPrompts,
	}
)

func init() {
	scriptCmd.Flags().StringVar(&scriptConceptPath, "concept", "", "winning concept text file (required)")
	scriptCmd.Flags().StringVar(&scriptOutputDir, "output-dir", "", "output directory (default: {base_output_dir}/{concept})")
	_ = scriptCmd.MarkFlagRequired("concept")
	rootCmd.AddCommand(scriptCmd)

	universeCmd.Flags().StringVar(&universeRevisedPath, "revised", "", "revised script file (required)")
	universeCmd.Flags().StringVar(&universeOutputDir, "output-dir", "", "output directory (default: alongside the revised script)")
	_ = universeCmd.MarkFlagRequired("revised")
	rootCmd.AddCommand(universeCmd)

	promptsCmd.Flags().StringVar(&promptsRevisedPath, "revised", "", "revised script file (required)")
	promptsCmd.Flags().StringVar(&promptsUniversePath, "universe", "", "universe JSON (required)")
	promptsCmd.Flags().StringVar(&promptsManifestPath, "manifest", "", "reference image manifest JSON (optional)")
	promptsCmd.Flags().StringVar(&promptsOutputDir, "output-dir", "", "output directory (default: alongside the revised script)")
	_ = promptsCmd.MarkFlagRequired("revised")
	_ = promptsCmd.MarkFlagRequired("universe")
	rootCmd.AddCommand(promptsCmd)
}

// fileStem 文件名去掉扩展名
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runScript(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		outDir := scriptOutputDir
		if outDir == "" {
			outDir = filepath.Join(GetConfig().Output.BaseOutputDir, fileStem(scriptConceptPath))
		}
		path, err := svc.ReviseScript(ctx, scriptConceptPath, outDir)
		if err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("script revision finished")
		return nil
	})
}

func runUniverse(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		outDir := universeOutputDir
		if outDir == "" {
			outDir = filepath.Dir(universeRevisedPath)
		}
		record, path, err := svc.ExtractUniverse(ctx, universeRevisedPath, outDir)
		if err != nil {
			return err
		}
		log.Info().
			Int("characters", len(record.Characters)).
			Int("locations", len(record.Universe.Locations)).
			Int("props", len(record.Universe.Props)).
			Str("file", path).
			Msg("universe extraction finished")
		return nil
	})
}

func runPrompts(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		outDir := promptsOutputDir
		if outDir == "" {
			outDir = filepath.Dir(promptsRevisedPath)
		}
		set, path, err := svc.GenerateScenePrompts(ctx, promptsRevisedPath, promptsUniversePath, promptsManifestPath, outDir)
		if err != nil {
			return err
		}
		log.Info().Int("scenes", len(set.Scenes)).Str("file", path).Msg("scene prompts finished")
		return nil
	})
}
