package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobwatch"

	defaultCountry = "gb"
	defaultDailyAt = "09:00"
	defaultListen  = ":8080"
)

type Config struct {
	Adzuna   *AdzunaConfig   `mapstructure:"adzuna"`
	Email    *EmailConfig    `mapstructure:"email"`
	Schedule *ScheduleConfig `mapstructure:"schedule"`
	Listen   string          `mapstructure:"listen"`
	Users    []*SeedUser     `mapstructure:"users"`
}

type AdzunaConfig struct {
	AppIDFile  string `mapstructure:"app-id-file"`
	AppKeyFile string `mapstructure:"app-key-file"`
	Country    string `mapstructure:"country"`
}

type EmailConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	From       string `mapstructure:"from"`
}

type ScheduleConfig struct {
	DailyAt string `mapstructure:"daily-at"`
}

// SeedUser is a profile registered at startup from the config file. Roles
// and skills are comma-separated, matching the registration form.
type SeedUser struct {
	Name      string `mapstructure:"name"`
	Email     string `mapstructure:"email"`
	Location  string `mapstructure:"location"`
	Roles     string `mapstructure:"roles"`
	Skills    string `mapstructure:"skills"`
	MinSalary int    `mapstructure:"min-salary"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobwatch matches job postings against registered profiles and emails the best ones",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"adzuna.app-id-file":  "ADZUNA_APP_ID_FILE",
		"adzuna.app-key-file": "ADZUNA_APP_KEY_FILE",
		"email.api-key-file":  "RESEND_API_KEY_FILE",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobwatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Every command except version needs the config.
	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
