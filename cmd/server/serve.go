package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/skinannotator/internal/bootstrap"
	"anoa.com/skinannotator/internal/config"
	leaderboardService "anoa.com/skinannotator/internal/modules/leaderboard/service"
	"anoa.com/skinannotator/internal/scheduler"
	"anoa.com/skinannotator/internal/server"
	"anoa.com/skinannotator/pkg/database"
	"anoa.com/skinannotator/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and the leaderboard scheduler",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if cfg.AppEnv == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := bootstrap.Migrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var redisClient *redis.Client
		if cfg.RedisURL != "" {
			redisClient, err = ratelimiter.Connect(ctx, cfg.RedisURL)
			if err != nil {
				log.Printf("[REDIS] disabled: %v", err)
				redisClient = nil
			} else {
				defer redisClient.Close()
			}
		}

		srv := server.NewServer(cfg, db, redisClient)

		loc, err := time.LoadLocation(cfg.LeaderboardTimezone)
		if err != nil {
			return err
		}
		sched, err := scheduler.New(loc)
		if err != nil {
			return err
		}
		if err := sched.Register(leaderboardService.NewRefreshJob(srv.Leaderboard(), cfg.LeaderboardSchedule)); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				log.Printf("[SCHEDULER] %v", err)
			}
		}()

		httpServer := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server listening on :%s", cfg.Port)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", true, "Run schema migrations before serving")
}
