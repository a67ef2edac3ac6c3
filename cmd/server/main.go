package main

import (
	"log"
	"os"
	"strings"

	"anoa.com/skinannotator/internal/config"
	"anoa.com/skinannotator/pkg/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "skinannotator",
	Short: "Skin image annotation backend",
	Long: strings.TrimSpace(`
Serves the annotation API: claim an image, submit its attributes, earn XP and
climb the leaderboard. Run "serve" to start the HTTP server.
    `),
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error executing command: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(refreshCmd)
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	return database.Connect(database.Options{
		DSN:          cfg.DSN(),
		MaxOpenConns: cfg.DBMaxOpenConns,
		ConnMaxIdle:  cfg.DBConnMaxIdle,
		Debug:        cfg.AppEnv == "development",
	})
}
