package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"LeraAssistant/internal/app"
	"LeraAssistant/internal/auth"
	"LeraAssistant/internal/storage"
)

var adduserCmd = &cobra.Command{
	Use:   "adduser <username> <password>",
	Short: "Create a user without going through /register",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		stores, err := app.OpenStores(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer stores.Close()

		err = auth.NewCredentials(stores.Users).Register(cmd.Context(), args[0], args[1])
		if errors.Is(err, storage.ErrUsernameExists) {
			return fmt.Errorf("user %q already exists", args[0])
		}
		if err != nil {
			return err
		}
		cmd.Printf("user %s created (%s backend)\n", args[0], cfg.Storage.Backend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adduserCmd)
}
