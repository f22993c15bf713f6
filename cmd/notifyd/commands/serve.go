package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/history"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/notifier"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/runlog"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/scheduler"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/statusapi"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduler daemon",
		RunE:  runServe,
	}
	cmd.Flags().String("history", "", "path to a SQLite database recording every job execution (disabled if empty)")
	cmd.Flags().Bool("status-api", false, "enable the read-only /health and /status HTTP endpoints")
	cmd.Flags().String("status-address", "127.0.0.1:8090", "address for the status API to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	jobPath, _ := cmd.Root().PersistentFlags().GetString("config")
	notifierPath, _ := cmd.Root().PersistentFlags().GetString("notifier-config")
	runLogPath, _ := cmd.Root().PersistentFlags().GetString("runlog")
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	historyPath, _ := cmd.Flags().GetString("history")
	statusEnabled, _ := cmd.Flags().GetBool("status-api")
	statusAddress, _ := cmd.Flags().GetString("status-address")

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	var handler slog.Handler
	if term.IsTerminal(int(os.Stdout.Fd())) {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(handler)

	cfg, notifierCfg, err := config.Load(jobPath, notifierPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	runLog := runlog.New()
	if b, err := os.ReadFile(runLogPath); err == nil {
		loaded, err := runlog.ReadFromString(string(b))
		if err != nil {
			return fmt.Errorf("parsing run log %s: %w", runLogPath, err)
		}
		runLog = loaded
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading run log %s: %w", runLogPath, err)
	}

	var deliverer notifier.Deliverer
	if notifierCfg.Backend != "" {
		deliverer, err = notifier.New(*notifierCfg)
		if err != nil {
			return fmt.Errorf("building notifier: %w", err)
		}
	} else {
		logger.Warn("no notifier configured, results will only be logged")
	}

	var hist *history.Store
	if historyPath != "" {
		hist, err = history.Open(historyPath)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer hist.Close()
	}

	sched := scheduler.New(cfg, runLogPath, runLog, deliverer, hist, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statusEnabled = statusEnabled || notifierCfg.StatusAPI.Enabled
	if !cmd.Flags().Changed("status-address") && notifierCfg.StatusAPI.Address != "" {
		statusAddress = notifierCfg.StatusAPI.Address
	}
	if statusEnabled {
		statusSrv := statusapi.New(statusapi.Config{
			Enabled:   true,
			Address:   statusAddress,
			AuthToken: notifierCfg.StatusAPI.AuthToken,
		}, sched, logger)
		go func() {
			if err := statusSrv.ListenAndServe(); err != nil {
				logger.Error("status API stopped", "error", err)
			}
		}()
	}

	go sched.Run(ctx)

	logger.Info("notifyd running, press Ctrl+C to stop", "jobs", len(cfg.Jobs))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, stopping")
	cancel()
	time.Sleep(200 * time.Millisecond)
	return nil
}

