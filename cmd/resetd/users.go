package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"resetd/internal/app"
	"resetd/internal/config"
	"resetd/internal/repositories"
	"resetd/internal/services"
)

func newUsersCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "inspect stored user accounts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list users and whether they hold an active reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := app.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := services.NewUserService(repositories.NewUserRepository(store.DB), services.NewAuthService())
			users, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tRESET ACTIVE")
			now := time.Now()
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.ID.Hex(), u.Email, u.Name, u.HasActiveReset(now))
			}
			return w.Flush()
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check-password <email>",
		Short: "verify a password against the stored hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := app.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			auth := services.NewAuthService()
			svc := services.NewUserService(repositories.NewUserRepository(store.DB), auth)
			user, err := svc.GetByEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			pw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if err := auth.CheckPassword(user.Password, string(pw)); err != nil {
				return fmt.Errorf("password does not match")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password matches")
			return nil
		},
	}

	usersCmd.AddCommand(listCmd, checkCmd)
	return usersCmd
}
