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
	imagesUniversePath string
	imagesOutputDir    string

	imagesCmd = &cobra.Command{
		Use:   "images",
		Short: "Generate canonical reference images for every recurring entity",
		RunE:  runImages,
	}
)

var (
	framesScenesPath   string
	framesUniversePath string
	framesImagesDir    string
	framesOutputDir    string

	framesCmd = &cobra.Command{
		Use:   "frames",
		Short: "Generate first-frame images for every scene",
		RunE:  runFrames,
	}
)

var (
	clipsScenesPath string
	clipsFramesDir  string
	clipsOutputDir  string
	clipsForce      bool

	clipsCmd = &cobra.Command{
		Use:   "clips",
		Short: "Generate a video clip per scene, seeded with its first frame",
		RunE:  runClips,
	}
)

var (
	mergeScenesPath string
	mergeClipsDir   string
	mergeOutputPath string

	mergeCmd = &cobra.Command{
		Use:   "merge",
		Short: "Concatenate scene clips into the final video",
		RunE:  runMerge,
	}
)

func init() {
	imagesCmd.Flags().StringVar(&imagesUniversePath, "universe", "", "universe JSON (required)")
	imagesCmd.Flags().StringVar(&imagesOutputDir, "output-dir", "", "output directory (default: {universe_images_dir}/{concept})")
	_ = imagesCmd.MarkFlagRequired("universe")
	rootCmd.AddCommand(imagesCmd)

	framesCmd.Flags().StringVar(&framesScenesPath, "scenes", "", "scene prompts JSON (required)")
	framesCmd.Flags().StringVar(&framesUniversePath, "universe", "", "universe JSON (required)")
	framesCmd.Flags().StringVar(&framesImagesDir, "images-dir", "", "reference images directory (required)")
	framesCmd.Flags().StringVar(&framesOutputDir, "output-dir", "", "output directory (default: {first_frames_dir}/{concept})")
	_ = framesCmd.MarkFlagRequired("scenes")
	_ = framesCmd.MarkFlagRequired("universe")
	_ = framesCmd.MarkFlagRequired("images-dir")
	rootCmd.AddCommand(framesCmd)

	clipsCmd.Flags().StringVar(&clipsScenesPath, "scenes", "", "scene prompts JSON (required)")
	clipsCmd.Flags().StringVar(&clipsFramesDir, "frames-dir", "", "first frames directory (required)")
	clipsCmd.Flags().StringVar(&clipsOutputDir, "output-dir", "", "output directory (default: {video_outputs_dir}/{concept})")
	clipsCmd.Flags().BoolVar(&clipsForce, "force", false, "regenerate clips that already exist")
	_ = clipsCmd.MarkFlagRequired("scenes")
	_ = clipsCmd.MarkFlagRequired("frames-dir")
	rootCmd.AddCommand(clipsCmd)

	mergeCmd.Flags().StringVar(&mergeScenesPath, "scenes", "", "scene prompts JSON (required)")
	mergeCmd.Flags().StringVar(&mergeClipsDir, "clips-dir", "", "clips directory (required)")
	mergeCmd.Flags().StringVar(&mergeOutputPath, "output", "", "final video path (default: {clips-dir}/{concept}_final_{model}.mp4)")
	_ = mergeCmd.MarkFlagRequired("scenes")
	_ = mergeCmd.MarkFlagRequired("clips-dir")
	rootCmd.AddCommand(mergeCmd)
}

// conceptFromArtifact 从产物文件名推出创意名
func conceptFromArtifact(path, suffix string) string {
	return strings.TrimSuffix(fileStem(path), suffix)
}

func runImages(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		outDir := imagesOutputDir
		if outDir == "" {
			concept := conceptFromArtifact(imagesUniversePath, "_universe_characters")
			outDir = filepath.Join(GetConfig().Output.UniverseImagesDir, concept)
		}
		manifest, path, err := svc.GenerateReferenceImages(ctx, imagesUniversePath, outDir)
		if err != nil {
			return err
		}
		log.Info().
			Int("successful", len(manifest.Successful())).
			Int("failed", manifest.FailedCount()).
			Str("manifest", path).
			Msg("reference images finished")
		return nil
	})
}

func runFrames(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		outDir := framesOutputDir
		if outDir == "" {
			concept := conceptFromArtifact(framesScenesPath, "_scene_prompts")
			outDir = filepath.Join(GetConfig().Output.FirstFramesDir, concept)
		}
		produced, total, err := svc.GenerateFirstFrames(ctx, framesScenesPath, framesUniversePath, framesImagesDir, outDir)
		if err != nil {
			return err
		}
		log.Info().Int("produced", produced).Int("total", total).Msg("first frames finished")
		return nil
	})
}

func runClips(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		outDir := clipsOutputDir
		if outDir == "" {
			concept := conceptFromArtifact(clipsScenesPath, "_scene_prompts")
			outDir = filepath.Join(GetConfig().Output.VideoOutputsDir, concept)
		}
		available, total, err := svc.GenerateClips(ctx, clipsScenesPath, clipsFramesDir, outDir, clipsForce)
		if err != nil {
			return err
		}
		log.Info().Int("available", available).Int("total", total).Msg("clip generation finished")
		return nil
	})
}

func runMerge(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc adsvc.PipelineService) error {
		path, err := svc.MergeClips(ctx, mergeScenesPath, mergeClipsDir, mergeOutputPath)
		if err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("merge finished")
		return nil
	})
}
