package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pomelo/internal/config"
	"pomelo/internal/pkg/logger"
	adsvc "pomelo/internal/service/ad"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pomelo",
	Short: "Pomelo - AI-powered ad video pipeline",
	Long: `Pomelo turns a brand config and a handful of prompt templates into a
finished short-form ad video: concept generation, judging, script revision,
universe extraction, reference images, first frames, clips and the final cut.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// .env 里的 API Key 先进环境，再被 AutomaticEnv 捡走
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.pomelo")
	}

	// 环境变量设置
	viper.SetEnvPrefix("POMELO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// AI
	viper.SetDefault("ai.options.temperature", 0.7)
	viper.SetDefault("ai.options.max_tokens", 8192)
	viper.SetDefault("ai.options.top_p", 1.0)

	// Models
	viper.SetDefault("models.llm_model", "anthropic/claude-sonnet-4-5-20250929")
	viper.SetDefault("models.image_model", "replicate/google/nano-banana")
	viper.SetDefault("models.video_model", "replicate/google/veo-3-fast")

	// Video
	viper.SetDefault("video.duration_seconds", 30)
	viper.SetDefault("video.resolution", "720p")
	viper.SetDefault("video.aspect_ratio", "16:9")

	// Workers
	viper.SetDefault("workers.concepts", 4)
	viper.SetDefault("workers.judges", 4)
	viper.SetDefault("workers.images", 5)
	viper.SetDefault("workers.frames", 5)
	viper.SetDefault("workers.rate_interval", "1s")

	// Output
	viper.SetDefault("output.results_dir", "outputs/concepts")
	viper.SetDefault("output.prompts_dir", "outputs/prompts")
	viper.SetDefault("output.base_output_dir", "outputs/scripts")
	viper.SetDefault("output.universe_images_dir", "outputs/universe_images")
	viper.SetDefault("output.first_frames_dir", "outputs/first_frames")
	viper.SetDefault("output.video_outputs_dir", "outputs/video_clips")

	// Concepts
	viper.SetDefault("concepts.brand_config", "configs/brand.json")
	viper.SetDefault("concepts.template_dir", "configs/templates")

	// Evaluation
	viper.SetDefault("evaluation.output_dir", "outputs/evaluations")

	// Cache
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "1h")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}

// withService 校验配置、构建流水线服务并执行 fn
// 收到 SIGINT/SIGTERM 时取消上下文，进行中的阶段尽快退出
func withService(fn func(ctx context.Context, svc adsvc.PipelineService) error) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	svc, err := adsvc.NewPipelineService(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	return fn(ctx, svc)
}
