package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/2beens/workoutware/pkg"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "" {
			return errors.New("empty password")
		}
		hash, err := pkg.HashPassword(args[0])
		if err != nil {
			return err
		}
		cmd.Println(hash)
		return nil
	},
}
