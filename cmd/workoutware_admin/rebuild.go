package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/2beens/workoutware/internal/config"
	"github.com/2beens/workoutware/internal/db"
	"github.com/2beens/workoutware/internal/logging"
	"github.com/2beens/workoutware/internal/progress"

	log "github.com/sirupsen/logrus"
)

var (
	rebuildUserID  int
	rebuildPeriods string
)

var rebuildProgressCmd = &cobra.Command{
	Use:   "rebuild-progress",
	Short: "Recompute the stored progress of one or all users",
	Long: `Recompute stored progress from the logged sets.

Without --user every user is rebuilt, one transaction per user.
--periods takes a comma separated list (daily, weekly, monthly, quarterly,
yearly) or "all". Weekly is used when it is empty.`,
	RunE: runRebuildProgress,
}

func init() {
	rebuildProgressCmd.Flags().IntVar(&rebuildUserID, "user", 0, "user id to rebuild (0 for all users)")
	rebuildProgressCmd.Flags().StringVar(&rebuildPeriods, "periods", "", "periods to rebuild")
}

func runRebuildProgress(cmd *cobra.Command, _ []string) error {
	periods, err := progress.ParsePeriods(rebuildPeriods)
	if err != nil {
		return err
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBPassword: os.Getenv("WORKOUTWARE_DB_PASS"),
	})
	if err != nil {
		return fmt.Errorf("new db pool: %w", err)
	}
	defer dbPool.Close()

	service := progress.NewService(progress.NewRepo(dbPool), nil)
	return rebuild(ctx, service, cmd, periods)
}

type progressRebuilder interface {
	Rebuild(ctx context.Context, userID int, periods []progress.Period, trigger string) (int, error)
	RebuildAll(ctx context.Context, periods []progress.Period, trigger string) (rebuilt, failed int, err error)
}

func rebuild(ctx context.Context, service progressRebuilder, cmd *cobra.Command, periods []progress.Period) error {
	if rebuildUserID > 0 {
		written, err := service.Rebuild(ctx, rebuildUserID, periods, progress.TriggerAdmin)
		if err != nil {
			return err
		}
		cmd.Printf("user %d: %d progress rows written\n", rebuildUserID, written)
		return nil
	}

	rebuilt, failed, err := service.RebuildAll(ctx, periods, progress.TriggerAdmin)
	if err != nil {
		return err
	}
	cmd.Printf("rebuilt %d users, %d failed\n", rebuilt, failed)
	if failed > 0 {
		log.Warnf("%d users failed to rebuild, check the logs above", failed)
		return fmt.Errorf("%d rebuilds failed", failed)
	}
	return nil
}
