package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/diamond-ops/diamondctl/configs"
	"github.com/diamond-ops/diamondctl/internal/logger"
	"github.com/diamond-ops/diamondctl/internal/whitelist"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "diamondctl"

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "CLI for operating a diamond proxy's function whitelist",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Initialize(slog.LevelDebug)

		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			viper.AddConfigPath(execDir)
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")

		// Try to read config file, but don't fail if it doesn't exist
		// Flags can provide all necessary configuration
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				slog.Debug("no config file found, will rely on flags and defaults")
			} else {
				const errMsg = "error reading config file"
				slog.With("err", err.Error()).Error(errMsg)
				return errors.Join(err, errors.New(errMsg))
			}
		} else {
			slog.With("config_file", viper.ConfigFileUsed()).Debug("config file loaded")
		}

		if err := viper.Unmarshal(&configs.Values); err != nil {
			const errMsg = "unable to decode application config"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}

		// Without a config file the network catalogue comes from the
		// embedded example config.
		if len(configs.Values.Networks) == 0 {
			defaults, err := configs.DefaultConfig()
			if err != nil {
				return err
			}
			configs.Values.Networks = defaults.Networks
			slog.Debug("using embedded default networks")
		}

		return nil
	},
}

func main() {
	rootCmd.AddCommand(whitelist.CMD)

	if err := rootCmd.Execute(); err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
