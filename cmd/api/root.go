package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"LeraAssistant/internal/config"
	"LeraAssistant/internal/logging"
)

var (
	debug   bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "lera",
	Short: "Lera personal assistant backend",
	Long:  `Lera는 텍스트/음성 대화와 수학 증명 PDF 생성을 제공하는 HTTP 서버입니다.`,
	// 하위 명령 없이 실행하면 서버 시작
	RunE: serveCmd.RunE,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an env file loaded before reading configuration")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Debug = cfg.Debug || debug
	return cfg, nil
}

func setupLogger(ctx context.Context, cfg config.Config) (context.Context, func()) {
	return logging.NewContextWithLogger(ctx, cfg.Debug)
}
