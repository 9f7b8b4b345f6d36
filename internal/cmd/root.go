package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cheerioskun/charbrowser/internal/config"
	"github.com/cheerioskun/charbrowser/internal/utils"
)

var (
	cfgFile string
	appFs   afero.Fs = afero.NewOsFs()

	// configReadErr holds a config file failure until the logger exists
	configReadErr error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "charbrowser",
	Short: "Browse the Rick and Morty character catalog from the terminal",
	Long: `charbrowser queries the public Rick and Morty character API and shows the
results as cards. Filter by name, status, species and gender.

Run without a subcommand to start the interactive browser.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.charbrowser.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("endpoint", "", "character listing endpoint")
	rootCmd.PersistentFlags().Duration("timeout", 0, "request timeout")
	rootCmd.PersistentFlags().Int("retries", 0, "retries on transient failures")
	rootCmd.PersistentFlags().String("log-file", "", "log file path")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("api.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("api.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("api.retries", rootCmd.PersistentFlags().Lookup("retries"))
	viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	viper.SetFs(appFs)
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".charbrowser")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
		return
	}

	// A missing default config file is normal
	var notFound viper.ConfigFileNotFoundError
	if cfgFile != "" || !errors.As(err, &notFound) {
		fmt.Fprintf(os.Stderr, "Failed to read config file, using defaults: %v\n", err)
		configReadErr = err
	}
}

// loadRuntime resolves the configuration and opens the log file. The
// returned logger is also installed as the package default.
func loadRuntime() (config.Config, *utils.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, err
	}

	logger, err := utils.NewLogger(appFs, cfg.Log.File, cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log file, falling back to stderr: %v\n", err)
		logger = utils.NewWriterLogger(os.Stderr, cfg.Verbose)
	}
	utils.SetDefault(logger)

	if configReadErr != nil {
		utils.Warning("failed to read config file, using defaults: %v", configReadErr)
	}

	return cfg, logger, nil
}
