package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/newtron-network/patchplan/pkg/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect permissions and manage local-user passwords",
	Long: `Inspect the current user's permissions and manage the local password
store used by operators without an external identity provider.

Examples:
  patchplan auth whoami
  patchplan auth permissions
  patchplan auth set-password`,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the current user and superuser status",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("User: %s\n", app.permChecker.CurrentUser())
		if app.permChecker.IsSuperUser() {
			fmt.Println("Superuser: yes")
		} else {
			fmt.Println("Superuser: no")
			groups := app.permChecker.GetUserGroups(app.permChecker.CurrentUser())
			if len(groups) > 0 {
				fmt.Printf("Groups: %v\n", groups)
			}
		}
	},
}

var authPermissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "List the current user's permissions",
	Run: func(cmd *cobra.Command, args []string) {
		perms := app.permChecker.ListPermissions()
		if len(perms) == 0 {
			fmt.Println("No permissions granted.")
			return
		}
		for _, p := range perms {
			fmt.Println(p)
		}
	},
}

var authSetPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Set the local password for the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := app.permChecker.CurrentUser()

		fmt.Print("New password: ")
		pw1, err := term.ReadPassword(0)
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		fmt.Print("Confirm password: ")
		pw2, err := term.ReadPassword(0)
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading password confirmation: %w", err)
		}

		if string(pw1) != string(pw2) {
			return fmt.Errorf("passwords do not match")
		}

		ps, err := auth.LoadPasswordStore(auth.DefaultPasswordStorePath())
		if err != nil {
			return fmt.Errorf("loading password store: %w", err)
		}
		if err := ps.SetPassword(user, string(pw1)); err != nil {
			return err
		}
		if err := ps.Save(); err != nil {
			return fmt.Errorf("saving password store: %w", err)
		}

		fmt.Printf("Password set for %s.\n", user)
		return nil
	},
}

func init() {
	authCmd.AddCommand(authWhoamiCmd)
	authCmd.AddCommand(authPermissionsCmd)
	authCmd.AddCommand(authSetPasswordCmd)
}
