package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/covered-news/covered/internal/tui"
	"github.com/covered-news/covered/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	 ___ _____ _____ ___ _ __ ___  __| |
	/ __/ _ \ \ / / _ \ '__/ _ \/ _' |
	| (_| (_) \ V /  __/ | |  __/ (_| |
	\___\___/ \_/ \___|_|  \___|\__,_|
`
)

// rootCmd represents the base command when called without any subcommands.
// Without a subcommand it starts the interactive verification screen.
var rootCmd = &cobra.Command{
	Use:   "covered",
	Short: "Verifica la veracidad de noticias e información.",
	Long: LOGO + `covered checks news articles and claims against the Covered
fact-checking backend, right from your command line.

Run it without arguments for the interactive app, or use the verify,
history and stats subcommands for one-shot queries.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := buildDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		program := tea.NewProgram(tui.New(deps), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.covered.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("api-url", "", "", "Override the verification API base URL")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".covered")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.covered.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("api.base_url", "https://api.covered.news")
	viper.SetDefault("auth.base_url", "https://identity.covered.news")
	viper.SetDefault("auth.totp_secret", "")
	viper.SetDefault("device_id", "")

	// The device identifier is minted once and reused on every request.
	if viper.GetString("device_id") == "" {
		viper.Set("device_id", uuid.NewString())
		if err := viper.WriteConfig(); err != nil {
			utils.Log.Debug("could not persist device_id: ", err)
		}
	}

	if apiURL, _ := rootCmd.PersistentFlags().GetString("api-url"); apiURL != "" {
		viper.Set("api.base_url", apiURL)
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
