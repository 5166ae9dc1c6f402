package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/covered-news/covered/pkg/auth"
	"github.com/covered-news/covered/pkg/otp"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Inicia sesión con tu cuenta de Covered.",
	Long: `Signs in with email and password and stores the session locally.
Credentials can also live in the config file under auth.email and
auth.password; a TOTP secret under auth.totp_secret enables the second
factor automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		register, _ := cmd.Flags().GetBool("register")

		if email == "" {
			email = viper.GetString("auth.email")
		}
		if password == "" {
			password = viper.GetString("auth.password")
		}
		if err := auth.ValidateCredentials(email, password); err != nil {
			return err
		}

		deps, cleanup, err := buildDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		var user *auth.User
		if register {
			user, err = deps.Auth.SignUp(cmd.Context(), email, password)
		} else {
			code := ""
			if secret := viper.GetString("auth.totp_secret"); secret != "" {
				if c, otpErr := otp.GenerateTOTP(secret, time.Now()); otpErr == nil {
					code = c
				}
			}
			user, err = deps.Auth.SignInWithPassword(cmd.Context(), email, password, code)
		}
		if err != nil {
			return fmt.Errorf("%s", auth.Message(err))
		}

		if err := deps.Session.SaveUser(user, "email"); err != nil {
			return err
		}
		fmt.Printf("¡Bienvenido %s!\n", deps.Session.UserName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().StringP("password", "p", "", "Account password")
	loginCmd.Flags().BoolP("register", "r", false, "Create a new account instead of signing in")
}
