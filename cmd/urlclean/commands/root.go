// Package commands implements the CLI commands for urlclean.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/urlclean/internal/logger"
)

func init() {
	cobra.OnInitialize(initConfig)
}

// newRootCmd builds the command tree with fresh flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "urlclean",
		Short: "Strip tracking parameters from URLs",
		Long: `urlclean removes analytics and attribution parameters (utm_source,
fbclid, gclid, ...) from URLs while keeping every other parameter in order.

Exactly one input source is required: a single URL, a file of URLs, or the
clipboard.

Examples:
  # Clean a single URL
  urlclean -u "https://example.com/item?id=7&utm_source=newsletter"

  # Clean a file of URLs and write the cleaned list
  urlclean -f links.txt -o clean.txt

  # Clean the links of a bookmarks export and report as JSON
  urlclean -f bookmarks.html --input-format html --format json

  # Clean the clipboard in place
  urlclean -c --copy`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Options{
				Debug:  viper.GetBool("debug"),
				Quiet:  viper.GetBool("quiet"),
				JSON:   viper.GetBool("log_json"),
				Output: cmd.ErrOrStderr(),
			})
		},
		RunE: runCleanCommand,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.urlclean.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))

	registerCleanFlags(rootCmd)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".urlclean")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("URLCLEAN")
	viper.AutomaticEnv()

	// A missing default config file is fine; an explicit one must be readable.
	if err := viper.ReadInConfig(); err != nil && viper.GetString("config") != "" {
		logger.Warn("failed to read config file", "path", viper.GetString("config"), "error", err)
	}
}

// Execute runs the root command.
func Execute() error {
	return execute(newRootCmd())
}

func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		logger.Error("urlclean failed", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.Name())
	}
	return err
}
