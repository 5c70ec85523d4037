package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/rutinas/internal/users"
	"github.com/2beens/rutinas/pkg"

	"github.com/spf13/cobra"
)

var (
	userNombre   string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user, typically the first administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		nombre := strings.TrimSpace(userNombre)
		if nombre == "" || userPassword == "" {
			return errors.New("--nombre and --password are required")
		}

		hash, err := pkg.HashPassword(userPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		dbPool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer dbPool.Close()

		user, err := users.NewRepo(dbPool).Add(cmd.Context(), nombre, hash)
		if err != nil {
			if errors.Is(err, users.ErrUserExists) {
				return fmt.Errorf("user [%s] already exists", nombre)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "user [%s] created with id %d\n", user.Nombre, user.ID)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userNombre, "nombre", "", "user name")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "plain text password, stored as a bcrypt hash")
	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}
