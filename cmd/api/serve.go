package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"LeraAssistant/internal/app"
	"LeraAssistant/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `저장소, 모델 서버, 음성 클라이언트를 준비하고 HTTP API를 실행합니다.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, cfg)
		defer flushLog()

		logger := logging.FromCtx(ctx)
		logger.Info().Msg("starting lera")

		a, err := app.New(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize")
			return err
		}
		defer a.Close()

		if err := a.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("server stopped with error")
			return err
		}
		logger.Info().Msg("lera has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
