package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/okliver/jobwatch/internal/scheduler"
	"github.com/okliver/jobwatch/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registration and search UI and run matching on a daily schedule",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address for the web surface (default :8080)")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx := context.Background()

	logger, config := mustSetup()

	logger.Info("starting jobwatch", zap.String("version", version))

	comps, err := buildComponents(ctx, config, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}

	dailyAt := defaultDailyAt
	if config.Schedule != nil && config.Schedule.DailyAt != "" {
		dailyAt = config.Schedule.DailyAt
	}

	sched, err := scheduler.New(dailyAt, func() {
		report := comps.runner.RunAll()
		logger.Info("scheduled matching run finished", zap.String("report", report.String()))
	}, logger)
	if err != nil {
		logger.Fatal("creating scheduler", zap.Error(err))
	}

	sched.Start()
	defer sched.Stop()

	listen := viper.GetString("listen")
	if listen == "" {
		listen = config.Listen
	}
	if listen == "" {
		listen = defaultListen
	}

	server := &http.Server{
		Addr:              listen,
		Handler:           web.New(comps.registry, comps.runner, comps.cache, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("serving web surface", zap.String("addr", listen))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serving", zap.Error(err))
		}
	}()

	waitCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-waitCtx.Done()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutting down web surface", zap.Error(err))
	}
}
