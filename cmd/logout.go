package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Cierra la sesión actual.",
	Long:  "Clears the stored session and ends it with the identity provider.",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := buildDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		if !deps.Session.LoggedIn() {
			fmt.Println("No hay ninguna sesión activa.")
			return nil
		}
		if err := deps.Session.SignOut(cmd.Context()); err != nil {
			return fmt.Errorf("no se pudo cerrar la sesión por completo: %w", err)
		}
		fmt.Println("Sesión cerrada.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
