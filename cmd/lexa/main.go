package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lexalang/lexa-go/pkg/api"
	"github.com/lexalang/lexa-go/pkg/logger"
	"github.com/lexalang/lexa-go/pkg/presenter"
)

var rootCmd = &cobra.Command{
	Use:   "lexa",
	Short: "Run language-AI pipelines against the Lexa service",
	Long: `lexa sends text, conversations and files through Lexa skill pipelines
and prints the extracted labels and generated texts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetLogFormat(viper.GetString("log_format"))

		quiet, _ := cmd.Flags().GetBool("quiet")
		presenter.SetQuiet(quiet)
		return nil
	},
}

func init() {
	// .env support for LEXA_API_KEY during local development
	_ = godotenv.Load()

	// Environment variables
	viper.SetEnvPrefix("LEXA")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.lexa")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "fmt")

	// Accept log_level and log-level alike, matching the config file keys
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().String("api-key", "", "Lexa API key (env: LEXA_API_KEY)")
	rootCmd.PersistentFlags().String("base-url", "", "Override the service base URL")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress non-essential output")

	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(versionCmd)
}

func newTransport() *api.HTTPTransport {
	return api.NewHTTPTransport(api.HTTPOptions{
		APIKey:  viper.GetString("api_key"),
		BaseURL: viper.GetString("base_url"),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		presenter.Error(err, "")
		os.Exit(1)
	}
}
