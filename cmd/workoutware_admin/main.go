package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "workoutware_admin",
	Short: "Maintenance tasks for the workoutware backend",
	Long: `Maintenance tasks that run against the workoutware storage.

Available commands:
  rebuild-progress - Recompute the stored progress of one or all users
  hash-password    - Print a bcrypt hash for a password`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")

	rootCmd.AddCommand(rebuildProgressCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
