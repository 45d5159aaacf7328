package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = &cobra.Command{
	Use:           "formstate",
	Short:         "Inspect and replay form validation state",
	Long:          `formstate loads a form definition and drives its field-validation engine from scripted focus, change, blur, and submit events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("form", "", "form definition file (.yaml, .json, .jsonc, .toml)")
	rootCmd.PersistentFlags().String("env-prefix", "FORMSTATE_FORM_", "prefix of environment overrides applied to the definition")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging to stderr")

	_ = viper.BindPFlag("form", rootCmd.PersistentFlags().Lookup("form"))
	_ = viper.BindPFlag("env-prefix", rootCmd.PersistentFlags().Lookup("env-prefix"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initConfig lets FORMSTATE_FORM, FORMSTATE_ENV_PREFIX and FORMSTATE_DEBUG stand in for flags.
func initConfig() {
	viper.SetEnvPrefix("formstate")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}
