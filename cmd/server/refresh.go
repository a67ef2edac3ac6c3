package main

import (
	"encoding/json"

	"anoa.com/skinannotator/internal/config"
	leaderboardRepo "anoa.com/skinannotator/internal/modules/leaderboard/repository"
	leaderboardService "anoa.com/skinannotator/internal/modules/leaderboard/service"
	"anoa.com/skinannotator/internal/scheduler"
	"anoa.com/skinannotator/pkg/database"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh-leaderboard",
	Short: "Rebuild the leaderboard snapshot once and print the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		svc := leaderboardService.NewLeaderboardService(leaderboardRepo.NewLeaderboardRepository(db), nil, leaderboardService.Options{
			MaxStaleness: cfg.LeaderboardMaxStaleness,
		})

		sched, err := scheduler.New(nil)
		if err != nil {
			return err
		}
		job := leaderboardService.NewRefreshJob(svc, "")
		if err := sched.Register(job); err != nil {
			return err
		}
		runErr := sched.RunByName(cmd.Context(), leaderboardService.RefreshJobName)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(job.LastResult()); err != nil {
			return err
		}
		return runErr
	},
}
